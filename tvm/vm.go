package tvm

import (
	"github.com/tonkeeper/tvmcore/cell"
	"github.com/tonkeeper/tvmcore/gas"
)

// CommittedState is the (c4, c5) pair the VM snapshots on successful exit,
// used by the action-phase executor as its c5 input (spec.md §2, §3).
type CommittedState struct {
	Data    *cell.Cell
	Actions *cell.Cell
}

// ThrowArgError lets an opcode implementation (THROWARG) raise an exception
// carrying an explicit argument value rather than the default zero (spec.md
// §4.3, "arg defaults to 0").
type ThrowArgError struct {
	Code int
	Arg  Value
}

func (e *ThrowArgError) Error() string { return "tvm: thrown exception with argument" }

// VM is the single-threaded, cooperative TVM state machine (spec.md §4.3,
// §5). A VM is created per transaction and discarded after commit.
type VM struct {
	cr       ControlRegisters
	stack    *Stack
	code     cell.Slice
	codepage int

	gas       *gas.Consumer
	gasPrices gas.Prices

	libraries cell.LibraryProvider
	registry  *CodepageRegistry

	exitCode      int
	exited        bool
	inException   bool
	committed     *CommittedState
}

// Config bundles the host-supplied collaborators a VM needs beyond the
// initial stack and control registers (spec.md §2, "a transaction supplies
// an initial stack and c7...to C3").
type Config struct {
	Gas       *gas.Consumer
	Prices    gas.Prices
	Libraries cell.LibraryProvider
	Registry  *CodepageRegistry
}

// New constructs a VM ready to run code with the given initial stack and
// control registers (c0..c5, c7 already populated by the caller per spec.md
// §2's "initial stack and c7").
func New(code cell.Slice, codepage int, stack *Stack, cr ControlRegisters, cfg Config) *VM {
	return &VM{
		cr:        cr,
		stack:     stack,
		code:      code,
		codepage:  codepage,
		gas:       cfg.Gas,
		gasPrices: cfg.Prices,
		libraries: cfg.Libraries,
		registry:  cfg.Registry,
	}
}

// Stack returns the VM's current stack handle.
func (vm *VM) Stack() *Stack { return vm.stack }

// ControlRegisters returns a pointer to the VM's live control registers.
func (vm *VM) ControlRegisters() *ControlRegisters { return &vm.cr }

// Gas returns the VM's gas consumer.
func (vm *VM) Gas() *gas.Consumer { return vm.gas }

// Committed returns the committed (c4, c5) snapshot, or nil if the VM has
// not committed (either still running or exited without committing).
func (vm *VM) Committed() *CommittedState { return vm.committed }

// ExitCode returns the VM's exit status once Run has returned.
func (vm *VM) ExitCode() int { return vm.exitCode }

// installCode sets the VM's current code slice and codepage, the effect an
// OrdCont's trampoline has (spec.md §4.2).
func (vm *VM) installCode(code cell.Slice, codepage int) {
	vm.code = code
	vm.codepage = codepage
}

// setcp implements the SETCP(n) opcode: load a new static dispatch table;
// unknown n raises invalid-opcode (spec.md §4.3).
func (vm *VM) setcp(n int) error {
	if _, ok := vm.registry.Get(n); !ok {
		return errInvalidOpcode
	}
	vm.codepage = n
	return nil
}

// Run executes step() until it terminates, matching spec.md §4.3's "run()
// loops until step returns a non-zero exit code". It returns the final exit
// code.
//
// The "during handling" window spans from the moment an exception jumps to
// c2 until the first subsequent step completes without error: a handler
// that fails on its very first instruction is a second exception during
// handling and is fatal (spec.md §4.3, §7); once the handler has executed
// at least one step cleanly, a later failure is an ordinary fresh
// exception again.
func (vm *VM) Run() int {
	for !vm.exited {
		if err := vm.step(); err != nil {
			vm.raiseException(err)
			continue
		}
		vm.inException = false
	}
	vm.tryCommit()
	return vm.exitCode
}

// step performs exactly one of: dispatch an opcode, implicit JMPREF, or
// implicit RET (spec.md §4.3), returning the raw, unconverted error so the
// caller can track the exception-handling window.
func (vm *VM) step() error {
	if vm.exited {
		return nil
	}
	if vm.code.RemainingBits() >= 8 {
		return vm.dispatchOpcode()
	}
	if vm.code.RemainingRefs() > 0 {
		return vm.implicitJmpref()
	}
	return vm.implicitRet()
}

func (vm *VM) dispatchOpcode() error {
	opByte, err := vm.code.LoadUint(8)
	if err != nil {
		return err
	}
	table, ok := vm.registry.Get(vm.codepage)
	if !ok {
		return errInvalidOpcode
	}
	handler, price, ok := table.Lookup(byte(opByte))
	if !ok {
		return errInvalidOpcode
	}
	if err := vm.gas.TryConsume(price); err != nil {
		return err
	}
	return handler(vm)
}

func (vm *VM) implicitJmpref() error {
	if err := vm.gasPrices.ChargeImplicitJmpref(vm.gas); err != nil {
		return err
	}
	ref, err := vm.code.LoadRef()
	if err != nil {
		return err
	}
	next := &OrdCont{Code: cell.NewSlice(ref), Codepage: vm.codepage}
	return vm.jump(next)
}

func (vm *VM) implicitRet() error {
	if err := vm.gasPrices.ChargeImplicitRet(vm.gas); err != nil {
		return err
	}
	c0, ok := vm.cr.Get(RegC0)
	var cont Continuation = Quit0
	if ok && c0.Cont != nil {
		cont = c0.Cont
	}
	return vm.jump(cont)
}

// raiseException converts a step error into a VM exception, per spec.md
// §4.3: charge the per-exception gas fee, replace the stack with [arg,
// code], clear code, and jump to c2. A second exception during handling is
// fatal; the VM exits directly with the non-negatable exit code (spec.md
// §4.3, §7).
func (vm *VM) raiseException(err error) {
	if vm.exited {
		return
	}
	code := ExcUnknown
	arg := IntFromInt64(0)
	if ta, ok := err.(*ThrowArgError); ok {
		code = ExcCode(ta.Code)
		arg = ta.Arg
	} else {
		code = classifyError(err)
	}

	if vm.inException {
		vm.exitCode = code.AsExitCode()
		vm.exited = true
		vm.gas.ForceConsumeAll()
		return
	}

	if chargeErr := vm.gasPrices.ChargeException(vm.gas); chargeErr != nil {
		vm.exitCode = ExcOutOfGas.AsExitCode()
		vm.exited = true
		return
	}

	vm.inException = true
	vm.stack.SetTo([]Value{arg, IntFromInt64(int64(code))})
	vm.code = cell.NewSlice(cell.Empty)

	var handler Continuation = ExcQuit
	if c2, ok := vm.cr.Get(RegC2); ok && c2.Cont != nil {
		handler = c2.Cont
	}
	if err := vm.jump(handler); err != nil {
		vm.raiseException(err)
	}
	// inException stays true across the jump: the handler's first step is
	// still "during handling". Run clears it once a step succeeds.
}

// tryCommit implements spec.md §4.3's commit discipline: on exit codes 0 or
// -1, snapshot (c4, c5) only if both are level-0 cells with depth <= 512;
// otherwise force a CellOverflow exit and clear the stack.
func (vm *VM) tryCommit() {
	if vm.exitCode != 0 && vm.exitCode != -1 {
		return
	}
	c4, ok4 := vm.cr.Get(RegC4)
	c5, ok5 := vm.cr.Get(RegC5)
	if ok4 && ok5 && committable(c4) && committable(c5) {
		vm.committed = &CommittedState{Data: c4.Cell.Cell, Actions: c5.Cell.Cell}
		return
	}
	vm.exitCode = ExcCellOverflow.AsExitCode()
	vm.stack.Clear()
}

func committable(v RegValue) bool {
	if v.Cell.Kind != KindCell || v.Cell.Cell == nil {
		return false
	}
	c := v.Cell.Cell
	return c.Level() == 0 && c.Depth() <= cell.MaxDepth
}
