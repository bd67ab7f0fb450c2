package action

import "github.com/tonkeeper/tvmcore/cell"

// AddressExt is a (workchain, address) pair, the source/destination
// encoding both internal and external-outbound messages carry.
type AddressExt struct {
	Workchain int32
	Address   [32]byte
}

// RelaxedMsgInfo is the header of an OwnedRelaxedMessage: value, addressing
// and timing fields, with fwd_fee/ihr_fee still placeholders until the
// forwarding-fee computation fills them in (spec.md §4.4.1 step 4, "clear
// bounced, ihr_fee = fwd_fee = 0 (temporary)").
type RelaxedMsgInfo struct {
	IsExternalOut bool
	Src           AddressExt
	Dst           AddressExt
	Value         CurrencyCollection // meaningless for ExternalOut
	IHRDisabled   bool
	Bounce        bool
	Bounced       bool
	IHRFee        uint64
	FwdFee        uint64
	CreatedLT     uint64
	CreatedAt     uint32
}

// rewriteState is the three-state layout-rewrite cycle spec.md §4.4.1 step
// 3 describes: None -> StateInitToCell -> BodyToCell -> None.
type rewriteState int

const (
	rewriteNone rewriteState = iota
	rewriteStateInitToCell
	rewriteBodyToCell
)

// relaxedMessage is the parsed form of an OutAction's SendMsg message cell
// (spec.md §6, "RelaxedMessage = Maybe (Either StateInit ^StateInit) Maybe
// (Either X ^X) Info").
type relaxedMessage struct {
	Info          RelaxedMsgInfo
	StateInit     *StateInit
	StateInitToRef bool
	Body          cell.Slice
	BodyToRef     bool
}

// parseRelaxedMessage parses root per spec.md §4.4.1 steps 1-2: an exotic
// root cell fails outright; trailing bits or refs after the body fail too.
func parseRelaxedMessage(root *cell.Cell) (relaxedMessage, error) {
	if root.IsExotic() {
		return relaxedMessage{}, errActionParse
	}
	s := cell.NewSlice(root)

	extOutBit, err := s.LoadUint(1)
	if err != nil {
		return relaxedMessage{}, errActionParse
	}
	info := RelaxedMsgInfo{IsExternalOut: extOutBit == 1}

	if !info.IsExternalOut {
		ihrDisabled, err := s.LoadUint(1)
		if err != nil {
			return relaxedMessage{}, errActionParse
		}
		bounce, err := s.LoadUint(1)
		if err != nil {
			return relaxedMessage{}, errActionParse
		}
		bounced, err := s.LoadUint(1)
		if err != nil {
			return relaxedMessage{}, errActionParse
		}
		info.IHRDisabled = ihrDisabled == 1
		info.Bounce = bounce == 1
		info.Bounced = bounced == 1

		if info.Src, err = loadAddress(&s); err != nil {
			return relaxedMessage{}, errActionParse
		}
		if info.Dst, err = loadAddress(&s); err != nil {
			return relaxedMessage{}, errActionParse
		}
		if info.Value, err = loadCurrencyCollection(&s); err != nil {
			return relaxedMessage{}, errActionParse
		}
		if info.IHRFee, err = s.LoadUint(64); err != nil {
			return relaxedMessage{}, errActionParse
		}
		if info.FwdFee, err = s.LoadUint(64); err != nil {
			return relaxedMessage{}, errActionParse
		}
	} else {
		var err error
		if info.Dst, err = loadAddress(&s); err != nil {
			return relaxedMessage{}, errActionParse
		}
	}
	createdLt, err := s.LoadUint(64)
	if err != nil {
		return relaxedMessage{}, errActionParse
	}
	createdAt, err := s.LoadUint(32)
	if err != nil {
		return relaxedMessage{}, errActionParse
	}
	info.CreatedLT = createdLt
	info.CreatedAt = uint32(createdAt)

	msg := relaxedMessage{Info: info}

	hasInit, err := s.LoadUint(1)
	if err != nil {
		return relaxedMessage{}, errActionParse
	}
	if hasInit == 1 {
		toRef, err := s.LoadUint(1)
		if err != nil {
			return relaxedMessage{}, errActionParse
		}
		msg.StateInitToRef = toRef == 1
		if msg.StateInitToRef {
			ref, err := s.LoadRef()
			if err != nil {
				return relaxedMessage{}, errActionParse
			}
			si, err := parseStateInit(cell.NewSlice(ref))
			if err != nil {
				return relaxedMessage{}, errActionParse
			}
			msg.StateInit = &si
		} else {
			si, err := parseStateInit(s)
			if err != nil {
				return relaxedMessage{}, errActionParse
			}
			msg.StateInit = &si
			// parseStateInit does not advance s (it reads a copy); advance
			// s past the same fields in place to reach the post-StateInit
			// cursor.
			if err := skipStateInit(&s); err != nil {
				return relaxedMessage{}, errActionParse
			}
		}
	}

	bodyToRef, err := s.LoadUint(1)
	if err != nil {
		return relaxedMessage{}, errActionParse
	}
	msg.BodyToRef = bodyToRef == 1
	if msg.BodyToRef {
		ref, err := s.LoadRef()
		if err != nil {
			return relaxedMessage{}, errActionParse
		}
		if !s.IsEmpty() {
			return relaxedMessage{}, errActionParse
		}
		msg.Body = cell.NewSlice(ref)
	} else {
		msg.Body = s
	}
	return msg, nil
}

func loadAddress(s *cell.Slice) (AddressExt, error) {
	wc, err := s.LoadInt(32)
	if err != nil {
		return AddressExt{}, err
	}
	addr, err := s.LoadBits(256)
	if err != nil {
		return AddressExt{}, err
	}
	var a AddressExt
	a.Workchain = int32(wc)
	copy(a.Address[:], addr)
	return a, nil
}

func storeAddress(b *cell.Builder, a AddressExt) error {
	if err := b.StoreInt(int64(a.Workchain), 32); err != nil {
		return err
	}
	return b.StoreBits(a.Address[:], 256)
}

// parseStateInit reads a StateInit (inline or as the contents of a
// referenced cell, the caller decides which slice to pass) per spec.md
// §4.4's StateInit tuple.
func parseStateInit(s cell.Slice) (StateInit, error) {
	var si StateInit
	hasSplit, err := s.LoadUint(1)
	if err != nil {
		return StateInit{}, err
	}
	if hasSplit == 1 {
		sd, err := s.LoadUint(5)
		if err != nil {
			return StateInit{}, err
		}
		si.SplitDepth = uint8(sd)
	}
	hasSpecial, err := s.LoadUint(1)
	if err != nil {
		return StateInit{}, err
	}
	if hasSpecial == 1 {
		sp, err := s.LoadUint(1)
		if err != nil {
			return StateInit{}, err
		}
		si.Special = sp == 1
	}
	hasCode, err := s.LoadUint(1)
	if err != nil {
		return StateInit{}, err
	}
	if hasCode == 1 {
		si.Code, err = s.LoadRef()
		if err != nil {
			return StateInit{}, err
		}
	}
	hasData, err := s.LoadUint(1)
	if err != nil {
		return StateInit{}, err
	}
	if hasData == 1 {
		si.Data, err = s.LoadRef()
		if err != nil {
			return StateInit{}, err
		}
	}
	hasLib, err := s.LoadUint(1)
	if err != nil {
		return StateInit{}, err
	}
	if hasLib == 1 {
		si.Libraries, err = s.LoadRef()
		if err != nil {
			return StateInit{}, err
		}
	}
	return si, nil
}

// skipStateInit advances s past an inline StateInit without returning its
// contents, used to recover the post-StateInit cursor after
// parseStateInit's read-only pass.
func skipStateInit(s *cell.Slice) error {
	hasSplit, err := s.LoadUint(1)
	if err != nil {
		return err
	}
	if hasSplit == 1 {
		if _, err := s.LoadUint(5); err != nil {
			return err
		}
	}
	hasSpecial, err := s.LoadUint(1)
	if err != nil {
		return err
	}
	if hasSpecial == 1 {
		if _, err := s.LoadUint(1); err != nil {
			return err
		}
	}
	hasCode, err := s.LoadUint(1)
	if err != nil {
		return err
	}
	if hasCode == 1 {
		if _, err := s.LoadRef(); err != nil {
			return err
		}
	}
	hasData, err := s.LoadUint(1)
	if err != nil {
		return err
	}
	if hasData == 1 {
		if _, err := s.LoadRef(); err != nil {
			return err
		}
	}
	hasLib, err := s.LoadUint(1)
	if err != nil {
		return err
	}
	if hasLib == 1 {
		if _, err := s.LoadRef(); err != nil {
			return err
		}
	}
	return nil
}

func storeStateInit(b *cell.Builder, si *StateInit) error {
	if si.SplitDepth != 0 {
		if err := b.StoreBit(true); err != nil {
			return err
		}
		if err := b.StoreUint(uint64(si.SplitDepth), 5); err != nil {
			return err
		}
	} else if err := b.StoreBit(false); err != nil {
		return err
	}
	if err := b.StoreBit(true); err != nil {
		return err
	}
	if err := b.StoreBit(si.Special); err != nil {
		return err
	}
	if err := storeOptionalRef(b, si.Code); err != nil {
		return err
	}
	if err := storeOptionalRef(b, si.Data); err != nil {
		return err
	}
	return storeOptionalRef(b, si.Libraries)
}

func storeOptionalRef(b *cell.Builder, c *cell.Cell) error {
	if c == nil {
		return b.StoreBit(false)
	}
	if err := b.StoreBit(true); err != nil {
		return err
	}
	return b.StoreRef(c)
}

// buildRelaxedMessage re-serializes msg into a single cell, honoring the
// current rewrite state (whether state-init and/or body are forced into a
// reference). Returns cell.ErrBuilderOverflow-wrapped errors when the
// result does not fit (spec.md §4.4.1 step 10).
func buildRelaxedMessage(msg relaxedMessage) (*cell.Cell, error) {
	b := cell.NewBuilder()
	if msg.Info.IsExternalOut {
		if err := b.StoreBit(true); err != nil {
			return nil, err
		}
	} else {
		if err := b.StoreBit(false); err != nil {
			return nil, err
		}
		if err := b.StoreBit(msg.Info.IHRDisabled); err != nil {
			return nil, err
		}
		if err := b.StoreBit(msg.Info.Bounce); err != nil {
			return nil, err
		}
		if err := b.StoreBit(msg.Info.Bounced); err != nil {
			return nil, err
		}
		if err := storeAddress(b, msg.Info.Src); err != nil {
			return nil, err
		}
		if err := storeAddress(b, msg.Info.Dst); err != nil {
			return nil, err
		}
		if err := storeCurrencyCollection(b, msg.Info.Value); err != nil {
			return nil, err
		}
		if err := b.StoreUint(msg.Info.IHRFee, 64); err != nil {
			return nil, err
		}
		if err := b.StoreUint(msg.Info.FwdFee, 64); err != nil {
			return nil, err
		}
	}
	if msg.Info.IsExternalOut {
		if err := storeAddress(b, msg.Info.Dst); err != nil {
			return nil, err
		}
	}
	if err := b.StoreUint(msg.Info.CreatedLT, 64); err != nil {
		return nil, err
	}
	if err := b.StoreUint(uint64(msg.Info.CreatedAt), 32); err != nil {
		return nil, err
	}

	if msg.StateInit == nil {
		if err := b.StoreBit(false); err != nil {
			return nil, err
		}
	} else {
		if err := b.StoreBit(true); err != nil {
			return nil, err
		}
		if msg.StateInitToRef {
			if err := b.StoreBit(true); err != nil {
				return nil, err
			}
			sib := cell.NewBuilder()
			if err := storeStateInit(sib, msg.StateInit); err != nil {
				return nil, err
			}
			siCell, err := sib.FinalizeOrdinary()
			if err != nil {
				return nil, err
			}
			if err := b.StoreRef(siCell); err != nil {
				return nil, err
			}
		} else {
			if err := b.StoreBit(false); err != nil {
				return nil, err
			}
			if err := storeStateInit(b, msg.StateInit); err != nil {
				return nil, err
			}
		}
	}

	if msg.BodyToRef {
		if err := b.StoreBit(true); err != nil {
			return nil, err
		}
		bodyBuilder := cell.NewBuilder()
		if err := bodyBuilder.StoreSlice(msg.Body); err != nil {
			return nil, err
		}
		bodyCell, err := bodyBuilder.FinalizeOrdinary()
		if err != nil {
			return nil, err
		}
		if err := b.StoreRef(bodyCell); err != nil {
			return nil, err
		}
	} else {
		if err := b.StoreBit(false); err != nil {
			return nil, err
		}
		if err := b.StoreSlice(msg.Body); err != nil {
			return nil, err
		}
	}
	return b.FinalizeOrdinary()
}
