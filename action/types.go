package action

import "github.com/tonkeeper/tvmcore/cell"

// CurrencyCollection is the native-token-plus-extra-currencies balance type
// that flows through every fee and reservation computation (spec.md §3,
// "currency balance never goes negative").
type CurrencyCollection struct {
	Tokens uint64
	Other  map[uint32]uint64 // extra-currency id -> amount
}

// Add returns the element-wise sum of c and o.
func (c CurrencyCollection) Add(o CurrencyCollection) CurrencyCollection {
	out := CurrencyCollection{Tokens: c.Tokens + o.Tokens, Other: mergeOther(c.Other, o.Other, func(a, b uint64) uint64 { return a + b })}
	return out
}

// Sub returns c - o, or an error if either the token amount or any extra
// currency would go negative (spec.md §3 invariant).
func (c CurrencyCollection) Sub(o CurrencyCollection) (CurrencyCollection, error) {
	if o.Tokens > c.Tokens {
		return CurrencyCollection{}, errInsufficientTokens
	}
	out := CurrencyCollection{Tokens: c.Tokens - o.Tokens}
	if len(c.Other) > 0 || len(o.Other) > 0 {
		out.Other = make(map[uint32]uint64)
		for id, amt := range c.Other {
			out.Other[id] = amt
		}
		for id, amt := range o.Other {
			have := out.Other[id]
			if amt > have {
				return CurrencyCollection{}, errInsufficientExtra
			}
			out.Other[id] = have - amt
		}
		normalizeOther(out.Other)
	}
	return out, nil
}

// IsZero reports whether the collection carries no value at all.
func (c CurrencyCollection) IsZero() bool {
	if c.Tokens != 0 {
		return false
	}
	for _, v := range c.Other {
		if v != 0 {
			return false
		}
	}
	return true
}

func mergeOther(a, b map[uint32]uint64, f func(x, y uint64) uint64) map[uint32]uint64 {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(map[uint32]uint64, len(a)+len(b))
	for id, amt := range a {
		out[id] = amt
	}
	for id, amt := range b {
		out[id] = f(out[id], amt)
	}
	normalizeOther(out)
	return out
}

// normalizeOther strips zero-valued entries, matching spec.md §4.4.3's
// "normalize reserve.other (strip empty entries)".
func normalizeOther(m map[uint32]uint64) {
	for id, amt := range m {
		if amt == 0 {
			delete(m, id)
		}
	}
}

// StateInit is the candidate account state a contract's SetCode action
// mutates and the action phase ultimately commits (spec.md §4.4,
// "new_state: the candidate new StateInit").
type StateInit struct {
	SplitDepth uint8
	Special    bool
	Code       *cell.Cell
	Data       *cell.Cell
	Libraries  *cell.Cell // dictionary root; nil or cell.Empty if empty
}

// ReceivedMessage is the triggering inbound message, carrying whatever
// value remains of it after the compute phase's gas and fee deductions
// (spec.md §4.4, "received_message ... carrying balance_remaining").
type ReceivedMessage struct {
	BalanceRemaining CurrencyCollection
	SourceWorkchain  int32
	IsExternal       bool
}

// ActionPhase mirrors the on-chain ActionPhase record (spec.md §4.4).
type ActionPhase struct {
	Success          bool
	Valid            bool
	NoFunds          bool
	StatusChange     int
	TotalFwdFees     *uint64 // nil == None
	TotalActionFees  uint64
	ResultCode       int
	ResultArg        int
	TotalActions     int
	SpecialActions   int
	SkippedActions   int
	MessagesCreated  int
	ActionListHash   [32]byte
	TotalMessageSize uint64
	EndLT            uint64
}

// ActionPhaseFull is the action executor's complete output (spec.md §4.4).
type ActionPhaseFull struct {
	ActionPhase        ActionPhase
	ActionFine         uint64
	StateExceedsLimits bool
	Bounce             bool

	// NewBalance and NewState are the account's post-phase balance and
	// candidate state, valid whenever ActionPhase.Valid is true. On a
	// per-action failure NewBalance is NOT built from whatever actions
	// executed before the failing one: it is the pre-phase balance minus
	// the fine, since a failed action phase rolls back every action's
	// balance effect and only ever charges the fine. NewState, however,
	// keeps whatever SetCode/ChangeLibrary already applied.
	NewBalance CurrencyCollection
	NewState   StateInit
	OutMsgs    []*cell.Cell
}

// Account status-change codes StatusChange records (only Deleted is named
// explicitly by spec.md §4.4; the rest are the conventional TON triple).
const (
	StatusUnchanged = 0
	StatusFrozen    = 2
	StatusDeleted   = 3
)

// ActionKind discriminates the four OutAction variants (spec.md §4.4).
type ActionKind int

const (
	ActionSendMsg ActionKind = iota
	ActionSetCode
	ActionReserveCurrency
	ActionChangeLibrary
)

// LibRefKind discriminates ChangeLibrary's LibRef union (spec.md §4.4.4).
type LibRefKind int

const (
	LibRefHash LibRefKind = iota
	LibRefCell
)

// OutAction is the parsed form of one action-list entry (spec.md §4.4).
// Only the fields relevant to Kind are populated.
type OutAction struct {
	Kind ActionKind

	// SendMsg
	SendMode uint8
	Message  *cell.Cell // the lazy OwnedRelaxedMessage root cell

	// SetCode
	NewCode *cell.Cell

	// ReserveCurrency
	ReserveMode uint8
	Reserve     CurrencyCollection

	// ChangeLibrary
	LibMode uint8
	LibKind LibRefKind
	LibHash [32]byte
	LibCell *cell.Cell // populated when LibKind == LibRefCell
}

// ActionContext is the mutable state threaded through the execution pass
// (spec.md §4.4, "Maintain a mutable ActionContext").
type ActionContext struct {
	RemainingBalance CurrencyCollection
	ReservedBalance  CurrencyCollection
	ActionFine       uint64
	NewState         StateInit
	EndLT            uint64
	OutMsgs          []*cell.Cell
	DeleteAccount    bool

	totalFwdFees    uint64
	hasFwdFees      bool
	totalActionFees uint64
	messagesCreated int
	specialActions  int
	skippedActions  int
	totalMsgSize    uint64
}
