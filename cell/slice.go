package cell

import "errors"

// ErrCellUnderflow is returned whenever a read would consume more bits or
// refs than a slice has remaining. It corresponds to TVM exception code 9
// (spec.md §6).
var ErrCellUnderflow = errors.New("cell: underflow")

// Slice is a read cursor over a cell's payload: a (data-bit offset, length)
// and (ref offset, length) pair into a single root cell. Slices never copy
// the underlying cell; they are cheap to create, split, and pass by value.
type Slice struct {
	root     *Cell
	dataOff  int
	dataLen  int
	refOff   int
	refLen   int
}

// OwnedSlice bundles a Slice with a strong reference to its root cell so it
// can outlive the call that produced it (e.g. a stack value). Because Cell
// trees are plain Go pointers kept alive by any reachable reference, this is
// just Slice itself; the type alias documents the intent at call sites that
// specifically need a slice to own its root.
type OwnedSlice = Slice

// NewSlice returns a Slice covering the whole of the given cell.
func NewSlice(c *Cell) Slice {
	return Slice{root: c, dataOff: 0, dataLen: c.bits, refOff: 0, refLen: len(c.refs)}
}

// Root returns the cell this slice is a view into.
func (s Slice) Root() *Cell { return s.root }

// RemainingBits reports how many data bits remain unconsumed.
func (s Slice) RemainingBits() int { return s.dataLen }

// RemainingRefs reports how many child references remain unconsumed.
func (s Slice) RemainingRefs() int { return s.refLen }

// IsEmpty reports whether the slice has no remaining bits and no remaining
// refs, the condition used to detect "consumes the entire slice" during
// action-list validation (spec.md §4.4).
func (s Slice) IsEmpty() bool { return s.dataLen == 0 && s.refLen == 0 }

// bitAt returns the boolean value of the i-th bit (0 = most significant) of
// the slice's underlying data.
func (s Slice) bitAt(i int) bool {
	idx := s.dataOff + i
	b := s.root.data[idx/8]
	return b&(0x80>>uint(idx%8)) != 0
}

// LoadUint reads n (<=64) bits as a big-endian unsigned integer and advances
// the cursor.
func (s *Slice) LoadUint(n int) (uint64, error) {
	if n < 0 || n > 64 || n > s.dataLen {
		return 0, ErrCellUnderflow
	}
	var v uint64
	for i := 0; i < n; i++ {
		v <<= 1
		if s.bitAt(i) {
			v |= 1
		}
	}
	s.dataOff += n
	s.dataLen -= n
	return v, nil
}

// LoadInt reads n (<=64) bits as a two's-complement signed integer and
// advances the cursor.
func (s *Slice) LoadInt(n int) (int64, error) {
	if n < 1 || n > 64 || n > s.dataLen {
		return 0, ErrCellUnderflow
	}
	u, err := s.LoadUint(n)
	if err != nil {
		return 0, err
	}
	if n == 64 {
		return int64(u), nil
	}
	sign := uint64(1) << (n - 1)
	if u&sign != 0 {
		return int64(u) - int64(sign<<1), nil
	}
	return int64(u), nil
}

// LoadBits returns the next n bits as a freshly packed byte slice and
// advances the cursor, without copying more than necessary.
func (s *Slice) LoadBits(n int) ([]byte, error) {
	if n < 0 || n > s.dataLen {
		return nil, ErrCellUnderflow
	}
	out := make([]byte, (n+7)/8)
	for i := 0; i < n; i++ {
		if s.bitAt(i) {
			out[i/8] |= 0x80 >> uint(i%8)
		}
	}
	s.dataOff += n
	s.dataLen -= n
	return out, nil
}

// PreloadUint32 peeks at the next 32 bits (used to read an action or message
// tag without consuming it, e.g. the SendMsg-shaped-cell special case in
// spec.md §4.4).
func (s Slice) PreloadUint32() (uint32, error) {
	tmp := s
	v, err := tmp.LoadUint(32)
	return uint32(v), err
}

// LoadRef consumes and returns the next child reference.
func (s *Slice) LoadRef() (*Cell, error) {
	if s.refLen == 0 {
		return nil, ErrCellUnderflow
	}
	r := s.root.refs[s.refOff]
	s.refOff++
	s.refLen--
	return r, nil
}

// PreloadRef peeks at the next child reference without consuming it.
func (s Slice) PreloadRef() (*Cell, error) {
	if s.refLen == 0 {
		return nil, ErrCellUnderflow
	}
	return s.root.refs[s.refOff], nil
}

// SkipRef advances past the next reference without returning it, used by the
// action-list validation pass which skips the prev-action link before
// parsing the body (spec.md §4.4).
func (s *Slice) SkipRef() error {
	_, err := s.LoadRef()
	return err
}

// LoadRefAsSlice consumes the next reference and returns a Slice over it.
func (s *Slice) LoadRefAsSlice() (Slice, error) {
	r, err := s.LoadRef()
	if err != nil {
		return Slice{}, err
	}
	return NewSlice(r), nil
}
