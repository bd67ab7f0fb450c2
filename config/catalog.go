// Package config models the read-only configuration catalog the action
// phase executor consults for forwarding prices, size limits, and
// workchain descriptors (spec.md §6, "Configuration parameters consulted
// (by key index)"). The catalog itself — persistence, network fetch,
// config-dict parsing — is out of scope; this package only defines the
// contract and a static in-memory implementation for tests.
package config

// ForwardingPrices mirrors the TL-B ConfigParam 24/25 record: the fields
// compute_fwd_fee needs (spec.md §6).
type ForwardingPrices struct {
	LumpPrice      uint64
	BitPrice       uint64
	CellPrice      uint64
	IHRPriceFactor uint64
	FirstFrac      uint64 // numerator over 1<<16; account-retained share of fwd_fee
	NextFrac       uint64
}

// ComputeFwdFee implements spec.md §6's compute_fwd_fee formula:
// lump_price + shift_ceil(bit_price*bits + cell_price*cells, 16).
func (p ForwardingPrices) ComputeFwdFee(bits, cells uint64) uint64 {
	weighted := p.BitPrice*bits + p.CellPrice*cells
	return p.LumpPrice + shiftCeil(weighted, 16)
}

// GetFirstPart returns the account-retained share of a forwarding fee,
// ceil(fee*first_frac/2^16) (spec.md §4.4.1 step 11, "fees_collected").
func (p ForwardingPrices) GetFirstPart(fee uint64) uint64 {
	return shiftCeil(fee*p.FirstFrac, 16)
}

func shiftCeil(v uint64, shift uint) uint64 {
	mask := uint64(1)<<shift - 1
	return (v + mask) >> shift
}

// SizeLimits mirrors ConfigParam 43: the per-workchain bounds an account's
// new state must respect after the action phase (spec.md §4.4,
// "state-limit check").
type SizeLimits struct {
	MaxMsgCells      uint64
	MaxLibraryCells  uint64
	MasterchainBits  uint64
	MasterchainCells uint64
	BasechainBits    uint64
	BasechainCells   uint64
}

// Catalog is the read-only configuration collaborator spec.md §1 lists as
// "out of scope" (a keyed read-only store) and §6 names by key index: 24
// (masterchain forwarding prices), 25 (basechain forwarding prices), 43
// (size limits).
type Catalog interface {
	// ForwardingPrices returns the forwarding-price record for the given
	// workchain (true selects masterchain/key-24 prices).
	ForwardingPrices(masterchain bool) (ForwardingPrices, error)
	// SizeLimits returns the account-size limits record (key 43).
	SizeLimits() (SizeLimits, error)
	// IsMasterchain reports whether a workchain id is the masterchain
	// (-1), the only workchain distinction the action phase needs beyond
	// the forwarding-price/limit selection (spec.md §6, "Masterchain vs
	// basechain").
	IsMasterchain(workchain int32) bool
}
