package config

import "golang.org/x/sync/errgroup"

// Snapshot is the subset of catalog rows an action phase needs resolved up
// front: both workchains' forwarding prices plus the size limits (spec.md
// §6, keys 24, 25, 43).
type Snapshot struct {
	Masterchain ForwardingPrices
	Basechain   ForwardingPrices
	Limits      SizeLimits
}

// FetchSnapshot resolves the three catalog rows concurrently, the same
// fan-out/join shape the teacher's processor construction uses for
// independent read-only lookups. All three fetches run to completion; the
// first error encountered is returned.
func FetchSnapshot(cat Catalog) (Snapshot, error) {
	var snap Snapshot
	var g errgroup.Group

	g.Go(func() error {
		prices, err := cat.ForwardingPrices(true)
		snap.Masterchain = prices
		return err
	})
	g.Go(func() error {
		prices, err := cat.ForwardingPrices(false)
		snap.Basechain = prices
		return err
	})
	g.Go(func() error {
		limits, err := cat.SizeLimits()
		snap.Limits = limits
		return err
	})

	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// PricesFor returns the forwarding prices for the workchain the message's
// destination selects: masterchain prices if our own workchain is the
// masterchain or the destination is, basechain prices otherwise (spec.md
// §4.4.1 step 5, "use_mc_prices = our_wc == -1 ∨ dst.is_masterchain()").
func (s Snapshot) PricesFor(useMC bool) ForwardingPrices {
	if useMC {
		return s.Masterchain
	}
	return s.Basechain
}
