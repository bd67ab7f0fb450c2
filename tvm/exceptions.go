package tvm

// ExcCode enumerates the VM exception codes from spec.md §6.
type ExcCode int

const (
	ExcStackUnderflow ExcCode = 2
	ExcStackOverflow  ExcCode = 3
	ExcIntegerOverflow ExcCode = 4
	ExcIntegerOutOfRange ExcCode = 5
	ExcInvalidOpcode  ExcCode = 6
	ExcTypeCheck      ExcCode = 7
	ExcCellOverflow   ExcCode = 8
	ExcCellUnderflow  ExcCode = 9
	ExcDictError      ExcCode = 10
	ExcUnknown        ExcCode = 11
	ExcOutOfGas       ExcCode = 13
)

// classifyError maps a Go error produced during a step into the VM
// exception code spec.md §6 assigns it. Unrecognized errors map to
// ExcUnknown (11).
func classifyError(err error) ExcCode {
	switch err {
	case ErrStackUnderflow:
		return ExcStackUnderflow
	case ErrStackOverflow:
		return ExcStackOverflow
	case ErrTypeCheck:
		return ExcTypeCheck
	case errIntegerOverflow:
		return ExcIntegerOverflow
	case errIntegerOutOfRange:
		return ExcIntegerOutOfRange
	case errInvalidOpcode:
		return ExcInvalidOpcode
	case errCellUnderflowAlias:
		return ExcCellUnderflow
	case errDict:
		return ExcDictError
	case errOutOfGasAlias:
		return ExcOutOfGas
	default:
		return ExcUnknown
	}
}

// AsExitCode returns the VM exit code corresponding to this exception when
// it terminates execution fatally (a second exception during handling). It
// is always returned as a positive value so a contract cannot spoof a
// fatal code by negating it (spec.md §4.3, §7).
func (e ExcCode) AsExitCode() int {
	v := int(e)
	if v < 0 {
		v = -v
	}
	return v
}
