package tvm

// RegIndex names a savelist/control-register slot. Only the continuation
// and cell-bearing registers (c0..c5, c7) participate in the savelist
// algebra; c6 is reserved and unused by this core (spec.md §3).
type RegIndex int

const (
	RegC0 RegIndex = iota
	RegC1
	RegC2
	RegC3
	RegC4
	RegC5
	RegC7
	regCount
)

// RegValue holds either a continuation or a cell value for a single
// register slot, matching spec.md §3's "Map with keys in {c0,c1,c2,c3,c4,
// c5,c7} and optional continuation/cell values".
type RegValue struct {
	set  bool
	Cont Continuation
	Cell Value // used for c4/c5 (data/action-list cells) and c7 (context tuple)
}

// ContReg wraps a continuation as a RegValue.
func ContReg(c Continuation) RegValue { return RegValue{set: true, Cont: c} }

// CellReg wraps a cell-bearing stack Value as a RegValue.
func CellReg(v Value) RegValue { return RegValue{set: true, Cell: v} }

// IsSet reports whether the slot carries a value.
func (r RegValue) IsSet() bool { return r.set }

// Savelist is the small associative array of register slots a continuation
// may carry, with the two algebra operations spec.md §4.2 defines: Define
// and Preclear.
type Savelist struct {
	slots [regCount]RegValue
}

// Get returns the value stored at idx, if any.
func (s *Savelist) Get(idx RegIndex) (RegValue, bool) {
	v := s.slots[idx]
	return v, v.set
}

// Set unconditionally stores v at idx.
func (s *Savelist) Set(idx RegIndex, v RegValue) {
	s.slots[idx] = v
}

// Define fills slot idx with v only if it is currently empty, leaving an
// already-defined slot untouched (spec.md §4.2).
func (s *Savelist) Define(idx RegIndex, v RegValue) {
	if !s.slots[idx].set {
		s.slots[idx] = v
	}
}

// Preclear zeros, in dst, every register for which s defines a value
// (spec.md §4.2: "for every defined slot in savelist, zero the
// corresponding register before applying it").
func (s *Savelist) Preclear(dst *ControlRegisters) {
	for i := RegIndex(0); i < regCount; i++ {
		if s.slots[i].set {
			dst.Clear(i)
		}
	}
}

// Merge fills only the empty slots of dst from s ("fills only those
// register slots currently empty", spec.md §4.2).
func (s *Savelist) Merge(dst *ControlRegisters) {
	for i := RegIndex(0); i < regCount; i++ {
		if s.slots[i].set {
			dst.Define(i, s.slots[i])
		}
	}
}

// Clone returns a shallow copy of the savelist (register values themselves
// are immutable once stored).
func (s *Savelist) Clone() Savelist {
	return Savelist{slots: s.slots}
}

// ControlRegisters is the live set of c0..c7 registers the VM dispatches
// against. c6 (reserved) and the host-only c7 subfields are modeled at the
// index-7 slot as an opaque tuple Value.
type ControlRegisters struct {
	slots [regCount]RegValue
}

// Get returns the current value of register idx.
func (c *ControlRegisters) Get(idx RegIndex) (RegValue, bool) {
	v := c.slots[idx]
	return v, v.set
}

// Set unconditionally installs v into register idx.
func (c *ControlRegisters) Set(idx RegIndex, v RegValue) {
	c.slots[idx] = v
}

// Define installs v into idx only if currently empty.
func (c *ControlRegisters) Define(idx RegIndex, v RegValue) {
	if !c.slots[idx].set {
		c.slots[idx] = v
	}
}

// Clear empties register idx.
func (c *ControlRegisters) Clear(idx RegIndex) {
	c.slots[idx] = RegValue{}
}

// SnapshotSavelist captures the current c0..c5/c7 registers into a fresh
// Savelist, used when a new OrdCont must carry the caller's registers
// (spec.md §4.2, extract_cc).
func (c *ControlRegisters) SnapshotSavelist() Savelist {
	var sl Savelist
	sl.slots = c.slots
	return sl
}
