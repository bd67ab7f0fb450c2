package action

import "github.com/tonkeeper/tvmcore/cell"

// phaseError carries a numbered result code plus the action index it
// applies to, the shape both the parsing and validation passes need to
// report (spec.md §4.4, §6).
type phaseError struct {
	Code int
	Arg  int
}

func isEmptyChainCell(c *cell.Cell) bool {
	return c == cell.Empty || (c.BitLen() == 0 && c.RefCount() == 0 && !c.IsExotic())
}

// walkActionList performs the parsing pass (spec.md §4.4): forward walk
// following each cell's first reference, exotic-cell and length checks,
// then the reversal that recovers insertion order. The returned slice is in
// insertion order (oldest action first); its length is total_actions.
func walkActionList(head *cell.Cell) ([]*cell.Cell, *phaseError) {
	var traversal []*cell.Cell
	cur := head
	idx := 0
	for !isEmptyChainCell(cur) {
		if cur.IsExotic() {
			return nil, &phaseError{Code: CodeActionListInvalid, Arg: idx}
		}
		traversal = append(traversal, cur)
		idx++
		if idx > MaxActions {
			return nil, &phaseError{Code: CodeTooManyActions, Arg: idx}
		}
		s := cell.NewSlice(cur)
		prev, err := s.LoadRef()
		if err != nil {
			return nil, &phaseError{Code: CodeActionListInvalid, Arg: idx - 1}
		}
		cur = prev
	}

	insertion := make([]*cell.Cell, len(traversal))
	for i, c := range traversal {
		insertion[len(traversal)-1-i] = c
	}
	return insertion, nil
}

// parsedAction is one validated entry: either a fully parsed OutAction, or
// a recorded skip from the SendMsg IGNORE_ERROR special case.
type parsedAction struct {
	Action  OutAction
	Skipped bool
}

// validateActionList performs the validation pass (spec.md §4.4): for each
// cell in insertion order, skip the prev-action link, then parse the body.
// A SendMsg-shaped cell that fails to parse falls back to the mode-bit
// special case instead of failing outright.
func validateActionList(cells []*cell.Cell) ([]parsedAction, *phaseError, bool /*bounce*/) {
	out := make([]parsedAction, 0, len(cells))
	for i, c := range cells {
		body := cell.NewSlice(c)
		if err := body.SkipRef(); err != nil {
			return nil, &phaseError{Code: CodeActionListInvalid, Arg: i}, false
		}
		parseSlice := body
		act, err := parseActionBody(&parseSlice)
		if err == nil && parseSlice.IsEmpty() {
			out = append(out, parsedAction{Action: act})
			continue
		}

		if body.RemainingBits() >= 40 {
			tagSlice := body
			tag, tagErr := tagSlice.PreloadUint32()
			if tagErr == nil && tag == tagSendMsg {
				_, _ = tagSlice.LoadUint(32)
				mode, modeErr := tagSlice.LoadUint(8)
				if modeErr == nil {
					switch {
					case mode&sendModeIgnoreError != 0:
						out = append(out, parsedAction{Skipped: true})
						continue
					case mode&sendModeBounceOnError != 0:
						return nil, &phaseError{Code: CodeActionInvalid, Arg: i}, true
					default:
						return nil, &phaseError{Code: CodeActionInvalid, Arg: i}, false
					}
				}
			}
		}
		return nil, &phaseError{Code: CodeActionInvalid, Arg: i}, false
	}
	return out, nil, false
}

// parseActionBody dispatches on the leading 32-bit tag and parses the
// remainder of s into an OutAction (spec.md §4.4, §6's action tags).
func parseActionBody(s *cell.Slice) (OutAction, error) {
	if s.RemainingBits() < 32 {
		return OutAction{}, errActionParse
	}
	tag, err := s.LoadUint(32)
	if err != nil {
		return OutAction{}, errActionParse
	}
	switch uint32(tag) {
	case tagSendMsg:
		return parseSendMsgBody(s)
	case tagSetCode:
		return parseSetCodeBody(s)
	case tagReserveCurrency:
		return parseReserveCurrencyBody(s)
	case tagChangeLibrary:
		return parseChangeLibraryBody(s)
	default:
		return OutAction{}, errUnknownActionTag
	}
}

func parseSendMsgBody(s *cell.Slice) (OutAction, error) {
	mode, err := s.LoadUint(8)
	if err != nil {
		return OutAction{}, errActionParse
	}
	msg, err := s.LoadRef()
	if err != nil {
		return OutAction{}, errActionParse
	}
	return OutAction{Kind: ActionSendMsg, SendMode: uint8(mode), Message: msg}, nil
}

func parseSetCodeBody(s *cell.Slice) (OutAction, error) {
	code, err := s.LoadRef()
	if err != nil {
		return OutAction{}, errActionParse
	}
	return OutAction{Kind: ActionSetCode, NewCode: code}, nil
}

func parseReserveCurrencyBody(s *cell.Slice) (OutAction, error) {
	mode, err := s.LoadUint(8)
	if err != nil {
		return OutAction{}, errActionParse
	}
	cc, err := loadCurrencyCollection(s)
	if err != nil {
		return OutAction{}, errActionParse
	}
	return OutAction{Kind: ActionReserveCurrency, ReserveMode: uint8(mode), Reserve: cc}, nil
}

func parseChangeLibraryBody(s *cell.Slice) (OutAction, error) {
	mode, err := s.LoadUint(8)
	if err != nil {
		return OutAction{}, errActionParse
	}
	isRef, err := s.LoadUint(1)
	if err != nil {
		return OutAction{}, errActionParse
	}
	if isRef == 1 {
		libCell, err := s.LoadRef()
		if err != nil {
			return OutAction{}, errActionParse
		}
		return OutAction{Kind: ActionChangeLibrary, LibMode: uint8(mode), LibKind: LibRefCell, LibCell: libCell, LibHash: libCell.Hash()}, nil
	}
	hashBits, err := s.LoadBits(256)
	if err != nil {
		return OutAction{}, errActionParse
	}
	var hash [32]byte
	copy(hash[:], hashBits)
	return OutAction{Kind: ActionChangeLibrary, LibMode: uint8(mode), LibKind: LibRefHash, LibHash: hash}, nil
}

// loadCurrencyCollection decodes the (tokens, maybe-other) encoding this
// core uses for CurrencyCollection: a 64-bit token amount followed by a
// presence bit and, if set, a reference to the extra-currency dictionary
// root (spec.md §6, CurrencyCollection = "currencies$_ grams:Grams
// other:ExtraCurrencyCollection").
func loadCurrencyCollection(s *cell.Slice) (CurrencyCollection, error) {
	tokens, err := s.LoadUint(64)
	if err != nil {
		return CurrencyCollection{}, err
	}
	hasOther, err := s.LoadUint(1)
	if err != nil {
		return CurrencyCollection{}, err
	}
	cc := CurrencyCollection{Tokens: tokens}
	if hasOther == 1 {
		dict, err := s.LoadRef()
		if err != nil {
			return CurrencyCollection{}, err
		}
		cc.Other = decodeExtraCurrencyDict(dict)
	}
	return cc, nil
}

// storeCurrencyCollection is the build-side counterpart of
// loadCurrencyCollection.
func storeCurrencyCollection(b *cell.Builder, cc CurrencyCollection) error {
	if err := b.StoreUint(cc.Tokens, 64); err != nil {
		return err
	}
	if len(cc.Other) == 0 {
		return b.StoreBit(false)
	}
	if err := b.StoreBit(true); err != nil {
		return err
	}
	dict, err := encodeExtraCurrencyDict(cc.Other)
	if err != nil {
		return err
	}
	return b.StoreRef(dict)
}
