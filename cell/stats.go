package cell

import lru "github.com/hashicorp/golang-lru/v2"

// Stats is the tree-statistics view exposed by every cell: the total bit
// count and cell count of its transitive, deduplicated subtree (spec.md §3).
type Stats struct {
	Bits  int
	Cells int
}

// Add returns the elementwise sum of two Stats, used to combine a message's
// state-init, body, and extra-currency subtree statistics (spec.md §4.4.1).
func (s Stats) Add(o Stats) Stats {
	return Stats{Bits: s.Bits + o.Bits, Cells: s.Cells + o.Cells}
}

// statsExceeded is the error type behind ErrStatsExceeded, returned by the
// bounded walker when either limit is crossed.
type statsExceeded struct{}

func (statsExceeded) Error() string { return "cell: storage stats exceeded limit" }

// ErrStatsExceeded is the sentinel compared with errors.Is by callers that
// want to distinguish "limit crossed" from other walk failures.
var ErrStatsExceeded error = statsExceeded{}

// WalkStats walks the transitive, deduplicated subtree rooted at c, stopping
// and returning ErrStatsExceeded as soon as either maxBits or maxCells would
// be crossed. A nil root counts as empty stats.
func WalkStats(root *Cell, maxBits, maxCells int) (Stats, error) {
	if root == nil {
		return Stats{}, nil
	}
	seen := make(map[[32]byte]struct{})
	var stats Stats
	var visit func(c *Cell) error
	visit = func(c *Cell) error {
		h := c.Hash()
		if _, ok := seen[h]; ok {
			return nil
		}
		seen[h] = struct{}{}
		stats.Bits += c.bits
		stats.Cells++
		if stats.Bits > maxBits || stats.Cells > maxCells {
			return ErrStatsExceeded
		}
		for _, r := range c.refs {
			if err := visit(r); err != nil {
				return err
			}
		}
		return nil
	}
	if err := visit(root); err != nil {
		return stats, err
	}
	return stats, nil
}

// StatsCache memoizes WalkStats results keyed by cell hash, mirroring the
// teacher's analysis.go LRU cache of per-code-hash jump-destination
// analysis. It is used by the action executor's state-limit check to avoid
// re-walking cells that were already measured for a previous candidate
// state (spec.md §4.4, "a diff walker reuses cached storage stats").
type StatsCache struct {
	cache *lru.Cache[[32]byte, Stats]
}

// NewStatsCache returns a StatsCache holding up to size entries.
func NewStatsCache(size int) *StatsCache {
	c, err := lru.New[[32]byte, Stats](size)
	if err != nil {
		panic("cell: failed to create stats cache: " + err.Error())
	}
	return &StatsCache{cache: c}
}

// Get returns the cached stats for a cell's full transitive subtree,
// computing and caching it with an effectively unbounded walk (maxBits,
// maxCells large enough to never trip in practice) on a cache miss.
func (c *StatsCache) Get(root *Cell) Stats {
	if root == nil {
		return Stats{}
	}
	h := root.Hash()
	if s, ok := c.cache.Get(h); ok {
		return s
	}
	s, _ := WalkStats(root, 1<<30, 1<<30)
	c.cache.Add(h, s)
	return s
}
