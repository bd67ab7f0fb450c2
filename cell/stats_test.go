package cell

import "testing"

func TestWalkStats_DeduplicatesSharedSubtrees(t *testing.T) {
	leaf := Empty
	b := NewBuilder()
	_ = b.StoreRef(leaf)
	_ = b.StoreRef(leaf) // same cell referenced twice
	root, err := b.FinalizeOrdinary()
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	stats, err := WalkStats(root, 1<<20, 1<<20)
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	// root + the single deduplicated leaf = 2 cells, not 3.
	if stats.Cells != 2 {
		t.Fatalf("got %d cells, want 2 (deduplicated)", stats.Cells)
	}
}

func TestWalkStats_ExceedsLimitStops(t *testing.T) {
	b := NewBuilder()
	_ = b.StoreRef(Empty)
	root, _ := b.FinalizeOrdinary()
	if _, err := WalkStats(root, 1<<20, 1); err != ErrStatsExceeded {
		t.Fatalf("expected ErrStatsExceeded, got %v", err)
	}
}

func TestStatsCache_MemoizesByHash(t *testing.T) {
	cache := NewStatsCache(16)
	b := NewBuilder()
	_ = b.StoreUint(1, 8)
	c, _ := b.FinalizeOrdinary()

	first := cache.Get(c)
	second := cache.Get(c)
	if first != second {
		t.Fatalf("cached stats diverged: %+v vs %+v", first, second)
	}
	if first.Cells != 1 {
		t.Fatalf("got %d cells, want 1", first.Cells)
	}
}
