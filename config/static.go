package config

// StaticCatalog is an in-memory Catalog backed by fixed values, used by
// tests in place of a real config-dict lookup (spec.md §1, "Configuration
// catalog lookup ... a keyed read-only store").
type StaticCatalog struct {
	Masterchain ForwardingPrices
	Basechain   ForwardingPrices
	Limits      SizeLimits
}

// NewStaticCatalog returns a StaticCatalog with the given records.
func NewStaticCatalog(mc, bc ForwardingPrices, limits SizeLimits) *StaticCatalog {
	return &StaticCatalog{Masterchain: mc, Basechain: bc, Limits: limits}
}

func (c *StaticCatalog) ForwardingPrices(masterchain bool) (ForwardingPrices, error) {
	if masterchain {
		return c.Masterchain, nil
	}
	return c.Basechain, nil
}

func (c *StaticCatalog) SizeLimits() (SizeLimits, error) {
	return c.Limits, nil
}

func (c *StaticCatalog) IsMasterchain(workchain int32) bool {
	return workchain == -1
}

// DefaultPrices returns a ForwardingPrices record with representative
// mainnet-shaped magnitudes, useful as a baseline for tests that do not
// care about the exact fee schedule.
func DefaultPrices() ForwardingPrices {
	return ForwardingPrices{
		LumpPrice:      400_000,
		BitPrice:       26_214_400,
		CellPrice:      2_621_440_000,
		IHRPriceFactor: 98_304,
		FirstFrac:      21_845, // ~1/3 of 1<<16
		NextFrac:       21_845,
	}
}

// DefaultLimits returns a SizeLimits record with representative bounds.
func DefaultLimits() SizeLimits {
	return SizeLimits{
		MaxMsgCells:      1 << 13,
		MaxLibraryCells:  1 << 13,
		MasterchainBits:  1 << 21,
		MasterchainCells: 1 << 17,
		BasechainBits:    1 << 19,
		BasechainCells:   1 << 16,
	}
}
