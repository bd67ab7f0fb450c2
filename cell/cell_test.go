package cell

import "testing"

func TestCell_HashIsDeterministicAndContentAddressed(t *testing.T) {
	b1 := NewBuilder()
	if err := b1.StoreUint(0x2a, 8); err != nil {
		t.Fatalf("store: %v", err)
	}
	c1, err := b1.FinalizeOrdinary()
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}

	b2 := NewBuilder()
	if err := b2.StoreUint(0x2a, 8); err != nil {
		t.Fatalf("store: %v", err)
	}
	c2, err := b2.FinalizeOrdinary()
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}

	if c1.Hash() != c2.Hash() {
		t.Fatalf("identical cells produced different hashes")
	}

	b3 := NewBuilder()
	if err := b3.StoreUint(0x2b, 8); err != nil {
		t.Fatalf("store: %v", err)
	}
	c3, err := b3.FinalizeOrdinary()
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if c1.Hash() == c3.Hash() {
		t.Fatalf("different cells produced the same hash")
	}
}

func TestCell_LevelPropagatesFromRefs(t *testing.T) {
	leaf := New(Ordinary, nil, 0, nil)
	if leaf.Level() != 0 {
		t.Fatalf("leaf level = %d, want 0", leaf.Level())
	}

	b := NewBuilder()
	if err := b.StoreRef(leaf); err != nil {
		t.Fatalf("store ref: %v", err)
	}
	parent, err := b.FinalizeOrdinary()
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if parent.Level() != 0 {
		t.Fatalf("ordinary parent of level-0 leaf must be level 0, got %d", parent.Level())
	}
}

func TestCell_EmptyIsZeroBitsZeroRefs(t *testing.T) {
	if Empty.BitLen() != 0 || Empty.RefCount() != 0 {
		t.Fatalf("Empty must have 0 bits and 0 refs, got bits=%d refs=%d", Empty.BitLen(), Empty.RefCount())
	}
}

func TestBuilder_OverflowsPastMaxBitsAndMaxRefs(t *testing.T) {
	b := NewBuilder()
	for i := 0; i < MaxBits; i++ {
		if err := b.StoreBit(false); err != nil {
			t.Fatalf("unexpected overflow at bit %d: %v", i, err)
		}
	}
	if err := b.StoreBit(false); err != ErrBuilderOverflow {
		t.Fatalf("expected ErrBuilderOverflow, got %v", err)
	}

	b2 := NewBuilder()
	for i := 0; i < MaxRefs; i++ {
		if err := b2.StoreRef(Empty); err != nil {
			t.Fatalf("unexpected overflow at ref %d: %v", i, err)
		}
	}
	if err := b2.StoreRef(Empty); err != ErrBuilderOverflow {
		t.Fatalf("expected ErrBuilderOverflow, got %v", err)
	}
}
