package action

import (
	"sort"

	"golang.org/x/exp/maps"

	"github.com/tonkeeper/tvmcore/cell"
)

// The extra-currency collection and the library dictionary are both
// modeled, like tvm's DICTGET/DICTSET family, as a singly linked chain of
// entry cells rather than a real HashmapE trie (spec.md §4.4's dictionary
// mutations are representative, not byte-exact to the TL-B encoding).
// Encoding always emits entries in ascending key order so two equal maps
// produce identical cells, which action_list_hash and determinism (spec.md
// §8) depend on.

// encodeExtraCurrencyDict builds a linked-chain cell for m, or cell.Empty if
// m is empty.
func encodeExtraCurrencyDict(m map[uint32]uint64) (*cell.Cell, error) {
	ids := maps.Keys(m)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var chain *cell.Cell
	for _, id := range ids {
		b := cell.NewBuilder()
		if err := b.StoreUint(uint64(id), 32); err != nil {
			return nil, err
		}
		if err := b.StoreUint(m[id], 64); err != nil {
			return nil, err
		}
		if chain != nil {
			if err := b.StoreRef(chain); err != nil {
				return nil, err
			}
		}
		next, err := b.FinalizeOrdinary()
		if err != nil {
			return nil, err
		}
		chain = next
	}
	if chain == nil {
		return cell.Empty, nil
	}
	return chain, nil
}

// decodeExtraCurrencyDict walks the chain built by encodeExtraCurrencyDict.
// A malformed chain decodes to whatever prefix parsed cleanly; this mirrors
// the permissiveness of tvm's DICTGET miss-on-error behavior rather than
// failing the whole action.
func decodeExtraCurrencyDict(root *cell.Cell) map[uint32]uint64 {
	if root == nil || isEmptyChainCell(root) {
		return nil
	}
	out := make(map[uint32]uint64)
	cur := root
	for cur != nil && !isEmptyChainCell(cur) {
		s := cell.NewSlice(cur)
		id, err := s.LoadUint(32)
		if err != nil {
			break
		}
		amt, err := s.LoadUint(64)
		if err != nil {
			break
		}
		out[uint32(id)] = amt
		if s.RemainingRefs() == 0 {
			break
		}
		next, err := s.LoadRef()
		if err != nil {
			break
		}
		cur = next
	}
	return out
}
