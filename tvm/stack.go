// Package tvm implements the continuation and control-register substrate
// (spec.md §4.2) and the VM step loop and dispatch (spec.md §4.3).
package tvm

import (
	"errors"

	"github.com/holiman/uint256"
	"github.com/tonkeeper/tvmcore/cell"
)

// ErrStackUnderflow/ErrStackOverflow/ErrTypeCheck map to TVM exception codes
// 2, 3, 7 respectively (spec.md §6).
var (
	ErrStackUnderflow = errors.New("tvm: stack underflow")
	ErrStackOverflow  = errors.New("tvm: stack overflow")
	ErrTypeCheck      = errors.New("tvm: type check error")
)

// ValueKind discriminates the stack value union described in spec.md §3.
type ValueKind byte

const (
	KindNull ValueKind = iota
	KindNaN
	KindInt
	KindCell
	KindSlice
	KindBuilder
	KindCont
	KindTuple
)

// Value is a single stack value: integer (arbitrary precision, carrying a
// validity bit), cell, cell-slice, cell-builder, continuation, tuple, null,
// or NaN (spec.md §3). NaN is modeled as an Int value with valid=false
// rather than a distinct Go type, the same way the teacher's EVM stack
// keeps one numeric representation and layers validity in the caller.
type Value struct {
	Kind    ValueKind
	Int     *uint256.Int // 256-bit magnitude, sign in IntSign; valid only if Kind==KindInt
	IntSign bool         // true if the integer is negative (uint256 has no sign)
	Valid   bool         // false => NaN, regardless of Int's bits
	Cell    *cell.Cell
	Slice   *cell.Slice
	Builder *cell.Builder
	Cont    Continuation
	Tuple   []Value
}

// Null returns the null stack value.
func Null() Value { return Value{Kind: KindNull} }

// NaN returns an invalid-integer stack value.
func NaN() Value { return Value{Kind: KindInt, Valid: false} }

// IntValue wraps a valid signed 256-bit integer.
func IntValue(v *uint256.Int, negative bool) Value {
	return Value{Kind: KindInt, Int: v, IntSign: negative, Valid: true}
}

// IntFromInt64 is a convenience constructor for small integers.
func IntFromInt64(v int64) Value {
	neg := v < 0
	u := new(uint256.Int)
	if neg {
		u.SetUint64(uint64(-v))
	} else {
		u.SetUint64(uint64(v))
	}
	return IntValue(u, neg)
}

// CellValue wraps a cell reference.
func CellValue(c *cell.Cell) Value { return Value{Kind: KindCell, Cell: c} }

// SliceValue wraps a cell slice.
func SliceValue(s cell.Slice) Value { return Value{Kind: KindSlice, Slice: &s} }

// BuilderValue wraps a cell builder.
func BuilderValue(b *cell.Builder) Value { return Value{Kind: KindBuilder, Builder: b} }

// ContValue wraps a continuation.
func ContValue(c Continuation) Value { return Value{Kind: KindCont, Cont: c} }

// TupleValue wraps a tuple of values.
func TupleValue(vs []Value) Value { return Value{Kind: KindTuple, Tuple: vs} }

// IsNaN reports whether v is an invalid integer.
func (v Value) IsNaN() bool { return v.Kind == KindInt && !v.Valid }

// Stack is the ordered sequence of stack values, reference-counted and
// copy-on-write (spec.md §3): copying a *Stack handle is cheap, and a deep
// copy only happens when a shared stack is about to be mutated.
type Stack struct {
	values []Value
	shared bool // true once a second owner may be holding the same backing array
}

// NewStack returns an empty stack.
func NewStack() *Stack { return &Stack{} }

// Depth returns the number of values currently on the stack.
func (s *Stack) Depth() int { return len(s.values) }

// Share returns a new *Stack handle over the same backing values, marking
// both the original and the new handle as shared so the next mutation on
// either triggers a copy-on-write clone. This is how a continuation capture
// "shares" a stack cheaply (spec.md §3, §9).
func (s *Stack) Share() *Stack {
	s.shared = true
	return &Stack{values: s.values, shared: true}
}

// ensureOwned clones the backing array if it is shared, so this handle can
// be mutated without affecting any other handle that shares it.
func (s *Stack) ensureOwned() {
	if !s.shared {
		return
	}
	cp := make([]Value, len(s.values))
	copy(cp, s.values)
	s.values = cp
	s.shared = false
}

// Push appends v to the top of the stack.
func (s *Stack) Push(v Value) {
	s.ensureOwned()
	s.values = append(s.values, v)
}

// Pop removes and returns the top value.
func (s *Stack) Pop() (Value, error) {
	if len(s.values) == 0 {
		return Value{}, ErrStackUnderflow
	}
	s.ensureOwned()
	v := s.values[len(s.values)-1]
	s.values = s.values[:len(s.values)-1]
	return v, nil
}

// Top returns the top value without removing it.
func (s *Stack) Top() (Value, error) {
	if len(s.values) == 0 {
		return Value{}, ErrStackUnderflow
	}
	return s.values[len(s.values)-1], nil
}

// Get returns the value at depth i from the top (0 = top) without removing
// it.
func (s *Stack) Get(i int) (Value, error) {
	idx := len(s.values) - 1 - i
	if idx < 0 || idx >= len(s.values) {
		return Value{}, ErrStackUnderflow
	}
	return s.values[idx], nil
}

// SplitTop removes and returns the top n values, in bottom-to-top order,
// used by jump_ext/call_ext to carve out the "pass_args" portion of a
// stack (spec.md §4.2).
func (s *Stack) SplitTop(n int) ([]Value, error) {
	if n < 0 || n > len(s.values) {
		return nil, ErrStackUnderflow
	}
	s.ensureOwned()
	cut := len(s.values) - n
	out := make([]Value, n)
	copy(out, s.values[cut:])
	s.values = s.values[:cut]
	return out, nil
}

// PushAll appends vs, in order, to the top of the stack.
func (s *Stack) PushAll(vs []Value) {
	s.ensureOwned()
	s.values = append(s.values, vs...)
}

// Clear empties the stack, used when the VM replaces it wholesale during
// exception handling (spec.md §4.3).
func (s *Stack) Clear() {
	s.ensureOwned()
	s.values = s.values[:0]
}

// SetTo replaces the stack's contents with vs (spec.md §4.3, "the stack is
// replaced with [arg, code]").
func (s *Stack) SetTo(vs []Value) {
	s.shared = false
	s.values = append([]Value(nil), vs...)
}

// Clone returns a deep copy of the stack's current contents.
func (s *Stack) Clone() *Stack {
	cp := make([]Value, len(s.values))
	copy(cp, s.values)
	return &Stack{values: cp}
}

// AdjustDepth truncates or extends (with Null values, at the bottom) the
// stack to exactly n entries while preserving the existing top entries,
// matching jump_ext's "adjust current stack to exactly next_depth elements,
// preserving the top" (spec.md §4.2).
func (s *Stack) AdjustDepth(n int) error {
	if n < 0 {
		return ErrTypeCheck
	}
	s.ensureOwned()
	cur := len(s.values)
	switch {
	case n == cur:
		return nil
	case n < cur:
		s.values = s.values[cur-n:]
	default:
		pad := make([]Value, n-cur)
		for i := range pad {
			pad[i] = Null()
		}
		s.values = append(pad, s.values...)
	}
	return nil
}
