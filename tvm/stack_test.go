package tvm

import "testing"

func TestStack_PushPopOrdersLastInFirstOut(t *testing.T) {
	s := NewStack()
	s.Push(IntFromInt64(1))
	s.Push(IntFromInt64(2))
	s.Push(IntFromInt64(3))

	for _, want := range []int64{3, 2, 1} {
		v, err := s.Pop()
		if err != nil {
			t.Fatalf("Pop: %v", err)
		}
		if int64(v.Int.Uint64()) != want {
			t.Fatalf("Pop() = %d, want %d", v.Int.Uint64(), want)
		}
	}
}

func TestStack_PopOnEmptyStackUnderflows(t *testing.T) {
	s := NewStack()
	if _, err := s.Pop(); err != ErrStackUnderflow {
		t.Fatalf("Pop on empty stack = %v, want ErrStackUnderflow", err)
	}
}

func TestStack_TopDoesNotConsume(t *testing.T) {
	s := NewStack()
	s.Push(IntFromInt64(7))
	top, err := s.Top()
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	if top.Int.Uint64() != 7 {
		t.Fatalf("Top() = %d, want 7", top.Int.Uint64())
	}
	if s.Depth() != 1 {
		t.Fatalf("Depth() = %d after Top(), want 1", s.Depth())
	}
}

func TestStack_GetIndexesFromTheTop(t *testing.T) {
	s := NewStack()
	s.Push(IntFromInt64(10))
	s.Push(IntFromInt64(20))
	s.Push(IntFromInt64(30))

	v, err := s.Get(0)
	if err != nil || v.Int.Uint64() != 30 {
		t.Fatalf("Get(0) = %v, %v, want 30", v, err)
	}
	v, err = s.Get(2)
	if err != nil || v.Int.Uint64() != 10 {
		t.Fatalf("Get(2) = %v, %v, want 10", v, err)
	}
	if _, err := s.Get(3); err != ErrStackUnderflow {
		t.Fatalf("Get(3) = %v, want ErrStackUnderflow", err)
	}
}

func TestStack_SplitTopReturnsBottomToTopOrderAndShrinksStack(t *testing.T) {
	s := NewStack()
	s.Push(IntFromInt64(1))
	s.Push(IntFromInt64(2))
	s.Push(IntFromInt64(3))

	top2, err := s.SplitTop(2)
	if err != nil {
		t.Fatalf("SplitTop: %v", err)
	}
	if len(top2) != 2 || top2[0].Int.Uint64() != 2 || top2[1].Int.Uint64() != 3 {
		t.Fatalf("SplitTop(2) = %v, want [2 3]", top2)
	}
	if s.Depth() != 1 {
		t.Fatalf("Depth() after SplitTop = %d, want 1", s.Depth())
	}
}

func TestStack_SplitTopMoreThanDepthUnderflows(t *testing.T) {
	s := NewStack()
	s.Push(IntFromInt64(1))
	if _, err := s.SplitTop(5); err != ErrStackUnderflow {
		t.Fatalf("SplitTop(5) on depth 1 = %v, want ErrStackUnderflow", err)
	}
}

func TestStack_AdjustDepthTruncatesKeepingTop(t *testing.T) {
	s := NewStack()
	s.Push(IntFromInt64(1))
	s.Push(IntFromInt64(2))
	s.Push(IntFromInt64(3))

	if err := s.AdjustDepth(1); err != nil {
		t.Fatalf("AdjustDepth: %v", err)
	}
	if s.Depth() != 1 {
		t.Fatalf("Depth() = %d, want 1", s.Depth())
	}
	top, _ := s.Top()
	if top.Int.Uint64() != 3 {
		t.Fatalf("AdjustDepth(1) kept %v, want top (3)", top)
	}
}

func TestStack_AdjustDepthExtendsWithNullAtTheBottom(t *testing.T) {
	s := NewStack()
	s.Push(IntFromInt64(9))

	if err := s.AdjustDepth(3); err != nil {
		t.Fatalf("AdjustDepth: %v", err)
	}
	if s.Depth() != 3 {
		t.Fatalf("Depth() = %d, want 3", s.Depth())
	}
	bottom, err := s.Get(2)
	if err != nil || bottom.Kind != KindNull {
		t.Fatalf("Get(2) = %v, %v, want a Null padding value", bottom, err)
	}
	top, _ := s.Get(0)
	if top.Int.Uint64() != 9 {
		t.Fatalf("AdjustDepth lost the original top value")
	}
}

func TestStack_ShareIsCopyOnWrite(t *testing.T) {
	s := NewStack()
	s.Push(IntFromInt64(1))
	s.Push(IntFromInt64(2))

	shared := s.Share()
	if shared.Depth() != 2 {
		t.Fatalf("Share() depth = %d, want 2", shared.Depth())
	}

	// Mutating the new handle must not be visible through the original, and
	// vice versa, once either is written to.
	shared.Push(IntFromInt64(3))
	if s.Depth() != 2 {
		t.Fatalf("mutating the shared handle leaked into the original: depth = %d", s.Depth())
	}
	if shared.Depth() != 3 {
		t.Fatalf("Share() handle depth = %d after Push, want 3", shared.Depth())
	}

	s.Push(IntFromInt64(99))
	if shared.Depth() != 3 {
		t.Fatalf("mutating the original leaked into the shared handle: depth = %d", shared.Depth())
	}
}

func TestStack_CloneIsIndependent(t *testing.T) {
	s := NewStack()
	s.Push(IntFromInt64(1))
	clone := s.Clone()
	clone.Push(IntFromInt64(2))
	if s.Depth() != 1 {
		t.Fatalf("Clone mutation leaked into original: depth = %d", s.Depth())
	}
}

func TestStack_SetToReplacesContentsAndDropsSharing(t *testing.T) {
	s := NewStack()
	s.Push(IntFromInt64(1))
	shared := s.Share()

	s.SetTo([]Value{IntFromInt64(42)})
	if s.Depth() != 1 {
		t.Fatalf("Depth() after SetTo = %d, want 1", s.Depth())
	}
	top, _ := s.Top()
	if top.Int.Uint64() != 42 {
		t.Fatalf("SetTo did not replace contents")
	}
	if shared.Depth() != 1 {
		t.Fatalf("SetTo on one handle mutated the other handle it was sharing with")
	}
}

func TestStack_ClearEmptiesTheStack(t *testing.T) {
	s := NewStack()
	s.Push(IntFromInt64(1))
	s.Push(IntFromInt64(2))
	s.Clear()
	if s.Depth() != 0 {
		t.Fatalf("Depth() after Clear = %d, want 0", s.Depth())
	}
}

func TestStack_PushAllAppendsInOrder(t *testing.T) {
	s := NewStack()
	s.PushAll([]Value{IntFromInt64(1), IntFromInt64(2), IntFromInt64(3)})
	top, _ := s.Top()
	if top.Int.Uint64() != 3 {
		t.Fatalf("PushAll: top = %v, want 3", top)
	}
	if s.Depth() != 3 {
		t.Fatalf("PushAll: depth = %d, want 3", s.Depth())
	}
}

func TestValue_IsNaNOnlyForInvalidInts(t *testing.T) {
	if !NaN().IsNaN() {
		t.Fatalf("NaN() is not NaN")
	}
	if IntFromInt64(0).IsNaN() {
		t.Fatalf("a valid zero int reports as NaN")
	}
	if Null().IsNaN() {
		t.Fatalf("Null reports as NaN")
	}
}
