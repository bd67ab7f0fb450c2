package action

import (
	"bytes"
	"sort"

	"github.com/tonkeeper/tvmcore/cell"
	"github.com/tonkeeper/tvmcore/config"
)

// libraryEntry is one entry of the candidate state's library dictionary:
// the library code plus whether it was published as public.
type libraryEntry struct {
	Public bool
	Code   *cell.Cell
}

// decodeLibraryDict walks the same kind of linked-chain encoding
// action/dict.go uses for extra currencies, keyed here by 256-bit library
// hash instead of a 32-bit currency id (spec.md §4.4.4).
func decodeLibraryDict(root *cell.Cell) map[[32]byte]libraryEntry {
	out := make(map[[32]byte]libraryEntry)
	if root == nil || isEmptyChainCell(root) {
		return out
	}
	cur := root
	for cur != nil && !isEmptyChainCell(cur) {
		s := cell.NewSlice(cur)
		hashBits, err := s.LoadBits(256)
		if err != nil {
			break
		}
		public, err := s.LoadUint(1)
		if err != nil {
			break
		}
		code, err := s.LoadRef()
		if err != nil {
			break
		}
		var h [32]byte
		copy(h[:], hashBits)
		out[h] = libraryEntry{Public: public == 1, Code: code}
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

// encodeLibraryDict is decodeLibraryDict's build-side counterpart, emitting
// entries in ascending hash order for determinism.
func encodeLibraryDict(m map[[32]byte]libraryEntry) (*cell.Cell, error) {
	hashes := make([][32]byte, 0, len(m))
	for h := range m {
		hashes = append(hashes, h)
	}
	sort.Slice(hashes, func(i, j int) bool { return bytes.Compare(hashes[i][:], hashes[j][:]) < 0 })

	var chain *cell.Cell
	for _, h := range hashes {
		e := m[h]
		b := cell.NewBuilder()
		if err := b.StoreBits(h[:], 256); err != nil {
			return nil, err
		}
		if err := b.StoreBit(e.Public); err != nil {
			return nil, err
		}
		if err := b.StoreRef(e.Code); err != nil {
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

// execChangeLibrary adds, republishes, or removes one library entry in the
// candidate state's library dictionary (spec.md §4.4.4). A mode of neither
// ADD_PRIVATE nor ADD_PUBLIC removes the entry named by the action's hash.
func execChangeLibrary(ctx *ActionContext, limits config.SizeLimits, act OutAction) error {
	mode := act.LibMode
	if mode&^uint8(libraryModeKnownMask) != 0 {
		return fail(CodeActionInvalid, false, errUnknownLibraryFlag)
	}
	addPrivate := mode&libraryModeAddPrivate != 0
	addPublic := mode&libraryModeAddPublic != 0
	if addPrivate && addPublic {
		return fail(CodeActionInvalid, false, errInvalidLibraryFlag)
	}
	ignoreErr := mode&libraryModeIgnoreError != 0
	bounceOnErr := mode&libraryModeBounceOnError != 0

	dict := decodeLibraryDict(ctx.NewState.Libraries)

	if !addPrivate && !addPublic {
		delete(dict, act.LibHash)
	} else {
		if act.LibKind != LibRefCell || act.LibCell == nil {
			if ignoreErr {
				return nil
			}
			return fail(CodeNoLibCode, bounceOnErr, errNoLibCode)
		}
		dict[act.LibHash] = libraryEntry{Public: addPublic, Code: act.LibCell}
	}

	newRoot, err := encodeLibraryDict(dict)
	if err != nil {
		if ignoreErr {
			return nil
		}
		return fail(CodeInvalidLibDict, bounceOnErr, errInvalidLibDict)
	}

	if _, err := cell.WalkStats(newRoot, 1<<30, int(limits.MaxLibraryCells)); err != nil {
		if ignoreErr {
			return nil
		}
		return fail(CodeLibOutOfLimits, bounceOnErr, errLibOutOfLimits)
	}

	ctx.NewState.Libraries = newRoot
	ctx.specialActions++
	return nil
}
