package tvm

import (
	"errors"

	"github.com/tonkeeper/tvmcore/cell"
	"github.com/tonkeeper/tvmcore/gas"
)

// Sentinel errors for step-level failures not already defined elsewhere in
// this package (stack.go defines ErrStackUnderflow/ErrStackOverflow/
// ErrTypeCheck since those are needed by the stack and jump machinery
// directly).
var (
	errIntegerOverflow    = errors.New("tvm: integer overflow")
	errIntegerOutOfRange  = errors.New("tvm: integer out of range")
	errInvalidOpcode      = errors.New("tvm: invalid opcode")
	errDict               = errors.New("tvm: dictionary error")
	errCellUnderflowAlias = cell.ErrCellUnderflow
	errOutOfGasAlias      = gas.ErrOutOfGas
)
