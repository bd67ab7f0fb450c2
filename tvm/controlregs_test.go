package tvm

import "testing"

func TestSavelist_DefineLeavesAlreadySetSlotUntouched(t *testing.T) {
	var sl Savelist
	sl.Define(RegC0, ContReg(Quit0))
	sl.Define(RegC0, ContReg(Quit1))
	v, ok := sl.Get(RegC0)
	if !ok || v.Cont != Quit0 {
		t.Fatalf("Define overwrote an already-set slot")
	}
}

func TestSavelist_PreclearZerosOnlyDefinedRegistersInDst(t *testing.T) {
	var sl Savelist
	sl.Set(RegC0, ContReg(Quit0))

	var cr ControlRegisters
	cr.Set(RegC0, ContReg(Quit1))
	cr.Set(RegC1, ContReg(Quit1))

	sl.Preclear(&cr)

	if _, ok := cr.Get(RegC0); ok {
		t.Fatalf("Preclear left c0 set, want cleared")
	}
	if _, ok := cr.Get(RegC1); !ok {
		t.Fatalf("Preclear cleared c1, which the savelist does not define")
	}
}

func TestSavelist_MergeFillsOnlyEmptySlots(t *testing.T) {
	var sl Savelist
	sl.Set(RegC0, ContReg(Quit0))
	sl.Set(RegC1, ContReg(Quit1))

	var cr ControlRegisters
	cr.Set(RegC1, ContReg(ExcQuit)) // already occupied, must survive merge

	sl.Merge(&cr)

	c0, ok := cr.Get(RegC0)
	if !ok || c0.Cont != Quit0 {
		t.Fatalf("Merge did not fill empty c0")
	}
	c1, ok := cr.Get(RegC1)
	if !ok || c1.Cont != ExcQuit {
		t.Fatalf("Merge overwrote an already-occupied c1, want ExcQuit preserved")
	}
}

func TestSavelist_DefineThenPreclearThenMergeRoundTrips(t *testing.T) {
	// The define/preclear/merge algebra composes the way a continuation's
	// capture-then-restore cycle needs: define captures values conditionally,
	// preclear evicts the live registers the savelist is about to restore,
	// and merge installs them into the now-empty slots.
	var sl Savelist
	sl.Define(RegC0, ContReg(Quit1))
	sl.Define(RegC2, ContReg(ExcQuit))

	var cr ControlRegisters
	cr.Set(RegC0, ContReg(Quit0))
	cr.Set(RegC1, ContReg(Quit1))

	sl.Preclear(&cr)
	sl.Merge(&cr)

	c0, ok := cr.Get(RegC0)
	if !ok || c0.Cont != Quit1 {
		t.Fatalf("round trip: c0 = %v, want Quit1", c0)
	}
	c1, ok := cr.Get(RegC1)
	if !ok || c1.Cont != Quit1 {
		t.Fatalf("round trip: c1 should be untouched, got %v", c1)
	}
	c2, ok := cr.Get(RegC2)
	if !ok || c2.Cont != ExcQuit {
		t.Fatalf("round trip: c2 = %v, want ExcQuit", c2)
	}
}

func TestControlRegisters_DefineDoesNotOverwriteSetRegister(t *testing.T) {
	var cr ControlRegisters
	cr.Set(RegC0, ContReg(Quit0))
	cr.Define(RegC0, ContReg(Quit1))
	v, _ := cr.Get(RegC0)
	if v.Cont != Quit0 {
		t.Fatalf("Define overwrote a live register")
	}
}

func TestControlRegisters_ClearEmptiesSlot(t *testing.T) {
	var cr ControlRegisters
	cr.Set(RegC0, ContReg(Quit0))
	cr.Clear(RegC0)
	if _, ok := cr.Get(RegC0); ok {
		t.Fatalf("Clear left c0 set")
	}
}

func TestControlRegisters_SnapshotSavelistCapturesCurrentValues(t *testing.T) {
	var cr ControlRegisters
	cr.Set(RegC0, ContReg(Quit0))
	cr.Set(RegC2, ContReg(ExcQuit))

	sl := cr.SnapshotSavelist()

	v, ok := sl.Get(RegC0)
	if !ok || v.Cont != Quit0 {
		t.Fatalf("snapshot missing c0")
	}
	v, ok = sl.Get(RegC2)
	if !ok || v.Cont != ExcQuit {
		t.Fatalf("snapshot missing c2")
	}
	if _, ok := sl.Get(RegC1); ok {
		t.Fatalf("snapshot has c1 set, want unset")
	}

	// Mutating the live registers afterwards must not perturb the snapshot.
	cr.Set(RegC0, ContReg(Quit1))
	v, _ = sl.Get(RegC0)
	if v.Cont != Quit0 {
		t.Fatalf("snapshot aliases live registers, want an independent copy")
	}
}
