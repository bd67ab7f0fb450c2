package gas

import "github.com/tonkeeper/tvmcore/cell"

// Prices collects the fixed gas costs the VM step loop and continuation
// substrate charge outside of per-opcode static prices (spec.md §4.1, §4.2,
// §4.3). Values follow the TVM spec's published constants.
type Prices struct {
	CellLoadFirst  int64 // charged the first time a given cell is loaded
	CellLoadRepeat int64 // charged on subsequent loads of an already-resolved cell
	StackEntry     int64 // charged per new cell of stack depth growth
	ExceptionFee   int64 // charged once when converting a step error to an exception
	ImplicitJmpref int64 // charged for the implicit JMPREF at end-of-data-bits
	ImplicitRet    int64 // charged for the implicit RET at end-of-code
	FreeNestedJumps int64 // nested trivial jumps allowed before metering kicks in
	NestedJumpFee  int64 // per-level charge beyond FreeNestedJumps
}

// Default returns the standard TVM gas price table (post v9, where nested
// jumps are metered).
func Default() Prices {
	return Prices{
		CellLoadFirst:   500,
		CellLoadRepeat:  25,
		StackEntry:      1,
		ExceptionFee:    50,
		ImplicitJmpref:  10,
		ImplicitRet:     5,
		FreeNestedJumps: 8,
		NestedJumpFee:   1,
	}
}

// ChargeCellLoad charges the consumer for loading c in the given mode,
// distinguishing first access from a repeat, as spec.md §4.1 requires
// ("charges the cell price for mode ∈ {Full, Resolve, Noop}").
func (p Prices) ChargeCellLoad(g *Consumer, mode cell.AccessMode, firstAccess bool) error {
	switch mode {
	case cell.Noop:
		return nil
	case cell.Resolve:
		return g.TryConsume(p.CellLoadRepeat)
	default: // cell.Full
		if firstAccess {
			return g.TryConsume(p.CellLoadFirst)
		}
		return g.TryConsume(p.CellLoadRepeat)
	}
}

// ChargeStackGrowth charges for growing the stack by newDepth-oldDepth new
// cells (spec.md §3, "stack growth charges gas per new cell in the stack
// depth").
func (p Prices) ChargeStackGrowth(g *Consumer, oldDepth, newDepth int) error {
	if newDepth <= oldDepth {
		return nil
	}
	return g.TryConsume(int64(newDepth-oldDepth) * p.StackEntry)
}

// ChargeException charges the per-exception gas fee taken when a step error
// is converted into a VM exception (spec.md §4.3).
func (p Prices) ChargeException(g *Consumer) error {
	return g.TryConsume(p.ExceptionFee)
}

// ChargeImplicitJmpref charges for the implicit JMPREF transition.
func (p Prices) ChargeImplicitJmpref(g *Consumer) error {
	return g.TryConsume(p.ImplicitJmpref)
}

// ChargeImplicitRet charges for the implicit RET transition.
func (p Prices) ChargeImplicitRet(g *Consumer) error {
	return g.TryConsume(p.ImplicitRet)
}

// ChargeNestedJump charges 1 gas per jump level beyond the free budget,
// called once per trampoline hop by the continuation substrate's jump()
// (spec.md §4.2, §9).
func (p Prices) ChargeNestedJump(g *Consumer, level int64) error {
	if level <= p.FreeNestedJumps {
		return nil
	}
	return g.TryConsume(p.NestedJumpFee)
}
