// Package gas implements the metered gas consumer used by the VM for every
// cell load, stack growth, exception, and implicit jump (spec.md §4.1).
package gas

import "errors"

// ErrOutOfGas is the sentinel for a failed try_consume; it maps to VM
// exception code 13 (spec.md §6).
var ErrOutOfGas = errors.New("gas: out of gas")

// Consumer tracks limit/max/base/remaining exactly as spec.md §3 describes
// the GasConsumer: a budget that can only shrink, with a "base" amount that
// is never refunded even on early termination.
type Consumer struct {
	limit     int64
	max       int64
	base      int64
	remaining int64
}

// New returns a Consumer with the given limit, max, and base. remaining
// starts equal to limit.
func New(limit, max, base int64) *Consumer {
	return &Consumer{limit: limit, max: max, base: base, remaining: limit}
}

// Limit returns the configured gas limit.
func (g *Consumer) Limit() int64 { return g.limit }

// Max returns the configured gas max (the ceiling used when limit is
// exceeded mid-execution by a buy-back, e.g. special transactions).
func (g *Consumer) Max() int64 { return g.max }

// Base returns the base gas amount charged regardless of outcome.
func (g *Consumer) Base() int64 { return g.base }

// Remaining returns the currently remaining gas.
func (g *Consumer) Remaining() int64 { return g.remaining }

// Consumed returns the single progress metric reported on out-of-gas
// (spec.md §4.3, "consumed() is the single progress metric").
func (g *Consumer) Consumed() int64 { return g.limit - g.remaining }

// TryConsume charges n gas, failing with ErrOutOfGas (without mutating
// remaining) when n exceeds what is left.
func (g *Consumer) TryConsume(n int64) error {
	if n < 0 {
		n = 0
	}
	if n > g.remaining {
		return ErrOutOfGas
	}
	g.remaining -= n
	return nil
}

// ForceConsumeAll drains remaining gas to zero, used when the VM must
// report a definitive out-of-gas state (e.g. a second exception during
// exception handling, spec.md §4.3).
func (g *Consumer) ForceConsumeAll() {
	g.remaining = 0
}
