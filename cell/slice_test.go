package cell

import "testing"

func TestSlice_LoadUintRoundTrip(t *testing.T) {
	b := NewBuilder()
	if err := b.StoreUint(0xABCD, 16); err != nil {
		t.Fatalf("store: %v", err)
	}
	c, err := b.FinalizeOrdinary()
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	s := NewSlice(c)
	v, err := s.LoadUint(16)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if v != 0xABCD {
		t.Fatalf("got %x, want ABCD", v)
	}
	if !s.IsEmpty() {
		t.Fatalf("slice should be fully consumed")
	}
}

func TestSlice_LoadIntSignExtends(t *testing.T) {
	b := NewBuilder()
	if err := b.StoreInt(-5, 8); err != nil {
		t.Fatalf("store: %v", err)
	}
	c, _ := b.FinalizeOrdinary()
	s := NewSlice(c)
	v, err := s.LoadInt(8)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if v != -5 {
		t.Fatalf("got %d, want -5", v)
	}
}

func TestSlice_UnderflowOnShortRead(t *testing.T) {
	s := NewSlice(Empty)
	if _, err := s.LoadUint(1); err != ErrCellUnderflow {
		t.Fatalf("expected ErrCellUnderflow, got %v", err)
	}
	if _, err := s.LoadRef(); err != ErrCellUnderflow {
		t.Fatalf("expected ErrCellUnderflow, got %v", err)
	}
}

func TestSlice_PreloadDoesNotConsume(t *testing.T) {
	b := NewBuilder()
	_ = b.StoreUint(0x0ec3c86d, 32)
	c, _ := b.FinalizeOrdinary()
	s := NewSlice(c)
	tag, err := s.PreloadUint32()
	if err != nil {
		t.Fatalf("preload: %v", err)
	}
	if tag != 0x0ec3c86d {
		t.Fatalf("got %x", tag)
	}
	if s.RemainingBits() != 32 {
		t.Fatalf("preload must not consume bits, remaining=%d", s.RemainingBits())
	}
}

func TestBuilder_StoreSliceAppendsBitsAndRefs(t *testing.T) {
	inner := NewBuilder()
	_ = inner.StoreUint(7, 4)
	_ = inner.StoreRef(Empty)
	innerCell, _ := inner.FinalizeOrdinary()

	out := NewBuilder()
	if err := out.StoreSlice(NewSlice(innerCell)); err != nil {
		t.Fatalf("store slice: %v", err)
	}
	result, err := out.FinalizeOrdinary()
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if result.BitLen() != 4 || result.RefCount() != 1 {
		t.Fatalf("got bits=%d refs=%d, want 4,1", result.BitLen(), result.RefCount())
	}
}
