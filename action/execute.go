package action

import (
	"errors"

	"github.com/tonkeeper/tvmcore/cell"
	"github.com/tonkeeper/tvmcore/config"
)

// actionFailure is the internal carrier every per-action handler returns on
// failure: a numbered result code, whether BOUNCE_ON_ERROR was set for this
// action, and the underlying sentinel that explains why.
type actionFailure struct {
	code   int
	bounce bool
	cause  error
}

func (f *actionFailure) Error() string { return f.cause.Error() }
func (f *actionFailure) Unwrap() error { return f.cause }

func fail(code int, bounce bool, cause error) error {
	return &actionFailure{code: code, bounce: bounce, cause: cause}
}

// Input is everything the execution pass needs beyond the action list
// itself: the account's addressing, its balance before the phase, the
// candidate state the phase mutates, and the message that triggered it
// (spec.md §4.4).
type Input struct {
	Actions                *cell.Cell
	OriginalBalance        CurrencyCollection
	Balance                CurrencyCollection
	NewState               StateInit
	OurWorkchain           int32
	OurAddress             [32]byte
	IsSpecialAccount       bool
	StartLT                uint64
	ReceivedMessage        *ReceivedMessage
	ChargeActionFeesOnFail bool

	// ComputePhaseGasFees is the compute phase's gas_fees (spec.md §4.4,
	// "compute_phase: includes gas_fees"), netted out of a
	// WITH_REMAINING_BALANCE send alongside the accumulated action fine
	// when PAY_FEE_SEPARATELY isn't set (action.rs "rewrite_message_value").
	ComputePhaseGasFees uint64
}

// Executor runs the action phase against a resolved configuration
// snapshot, the collaborator config.FetchSnapshot produces once per block
// and every account's action phase in that block reuses (spec.md §4.4,
// "Configuration parameters consulted").
type Executor struct {
	snapshot config.Snapshot
	cat      config.Catalog
	stats    *cell.StatsCache
}

// NewExecutor resolves cat's forwarding-price and size-limit rows up front.
func NewExecutor(cat config.Catalog) (*Executor, error) {
	snap, err := config.FetchSnapshot(cat)
	if err != nil {
		return nil, err
	}
	return &Executor{snapshot: snap, cat: cat, stats: cell.NewStatsCache(256)}, nil
}

// Run executes the full action phase for one account: parsing, validation,
// per-action execution, the state-limit check, and final commit (spec.md
// §4.4).
func (e *Executor) Run(in Input) ActionPhaseFull {
	head := in.Actions
	if head == nil {
		head = cell.Empty
	}
	listHash := head.Hash()

	chain, perr := walkActionList(head)
	if perr != nil {
		return invalidPhase(*perr, listHash, in)
	}

	parsed, perr, bounce := validateActionList(chain)
	if perr != nil {
		phase := invalidPhase(*perr, listHash, in)
		phase.Bounce = bounce
		return phase
	}

	ctx := &ActionContext{
		RemainingBalance: in.Balance,
		ReservedBalance:  CurrencyCollection{},
		NewState:         in.NewState,
		EndLT:            in.StartLT,
	}

	env := sendMsgEnv{
		snapshot:      e.snapshot,
		limits:        e.snapshot.Limits,
		ourWorkchain:  in.OurWorkchain,
		ourAddress:    in.OurAddress,
		isMasterchain: e.cat.IsMasterchain,
		gasFees:       in.ComputePhaseGasFees,
	}
	if in.ReceivedMessage != nil {
		remain := in.ReceivedMessage.BalanceRemaining
		env.receivedRemain = &remain
	}

	for i, pa := range parsed {
		if pa.Skipped {
			ctx.skippedActions++
			continue
		}
		var err error
		switch pa.Action.Kind {
		case ActionSendMsg:
			err = execSendMsg(ctx, env, pa.Action)
		case ActionSetCode:
			err = execSetCode(ctx, pa.Action)
		case ActionReserveCurrency:
			err = execReserveCurrency(ctx, in.OriginalBalance, pa.Action)
		case ActionChangeLibrary:
			err = execChangeLibrary(ctx, e.snapshot.Limits, pa.Action)
		}
		if err != nil {
			return failedPhase(ctx, in, i, len(parsed), listHash, err)
		}
	}

	if !in.IsSpecialAccount {
		if err := checkStateLimits(e.stats, ctx.NewState, in.OurWorkchain, e.cat, e.snapshot.Limits); err != nil {
			phase := failedPhase(ctx, in, len(parsed), len(parsed), listHash, fail(CodeStateOutOfLimits, false, err))
			phase.StateExceedsLimits = true
			return phase
		}
	}

	ctx.RemainingBalance = ctx.RemainingBalance.Add(ctx.ReservedBalance)
	ctx.totalActionFees += ctx.ActionFine

	statusChange := StatusUnchanged
	if ctx.DeleteAccount && ctx.RemainingBalance.IsZero() {
		statusChange = StatusDeleted
	}

	phase := ActionPhase{
		Success:          true,
		Valid:            true,
		ResultCode:       0,
		ResultArg:        0,
		StatusChange:     statusChange,
		TotalActions:     len(parsed),
		SpecialActions:   ctx.specialActions,
		SkippedActions:   ctx.skippedActions,
		MessagesCreated:  ctx.messagesCreated,
		ActionListHash:   listHash,
		TotalMessageSize: ctx.totalMsgSize,
		TotalActionFees:  ctx.totalActionFees,
		EndLT:            ctx.EndLT,
	}
	if ctx.hasFwdFees {
		fees := ctx.totalFwdFees
		phase.TotalFwdFees = &fees
	}
	return ActionPhaseFull{
		ActionPhase: phase,
		ActionFine:  ctx.ActionFine,
		Bounce:      false,
		NewBalance:  ctx.RemainingBalance,
		NewState:    ctx.NewState,
		OutMsgs:     ctx.OutMsgs,
	}
}

func invalidPhase(perr phaseError, listHash [32]byte, in Input) ActionPhaseFull {
	return ActionPhaseFull{
		ActionPhase: ActionPhase{
			Success:        false,
			Valid:          false,
			ResultCode:     perr.Code,
			ResultArg:      perr.Arg,
			ActionListHash: listHash,
		},
		NewBalance: in.Balance,
		NewState:   in.NewState,
	}
}

// failedPhase assembles the phase record for a per-action execution
// failure (spec.md §4.4: coerce result_code to 34 if unset, set no_funds
// for 37/38, fold the fine, clear total_fwd_fees, propagate bounce).
func failedPhase(ctx *ActionContext, in Input, idx, totalActions int, listHash [32]byte, err error) ActionPhaseFull {
	code := CodeActionInvalid
	var bounce bool
	var af *actionFailure
	if errors.As(err, &af) {
		if af.code != 0 {
			code = af.code
		}
		bounce = af.bounce
	}
	noFunds := code == CodeNotEnoughBalance || code == CodeNotEnoughExtra

	// total_action_fees ends up holding whatever was already collected plus
	// this failure's fine; when charge_action_fees_on_fail folds the prior
	// total into the fine itself, the prior total is consumed there instead
	// of being added twice (spec.md §4.4, "Apply the accumulated fine").
	priorFees := ctx.totalActionFees
	if in.ChargeActionFeesOnFail {
		ctx.ActionFine += priorFees
		priorFees = 0
	}

	// A per-action failure rolls back every effect this phase had on the
	// balance, not just the failing action's own: the committed balance is
	// the pre-phase balance minus the fine, never ctx.RemainingBalance
	// (which may already reflect earlier successful SendMsg/ReserveCurrency
	// debits in this same action list). Grounded on the original's
	// apply_fine_on_error, which charges the fine against the account's
	// balance as it stood before the phase began, not against the
	// in-progress ActionContext's remaining_balance (action.rs:220-224
	// passes `&mut self.balance`, set once before the loop and otherwise
	// untouched until a fully successful phase commits it at its end).
	ctx.RemainingBalance = in.Balance
	if remaining, subErr := ctx.RemainingBalance.Sub(CurrencyCollection{Tokens: ctx.ActionFine}); subErr == nil {
		ctx.RemainingBalance = remaining
	}

	phase := ActionPhase{
		Success:         false,
		Valid:           true,
		NoFunds:         noFunds,
		ResultCode:      code,
		ResultArg:       idx,
		TotalActions:    totalActions,
		SpecialActions:  ctx.specialActions,
		SkippedActions:  ctx.skippedActions,
		MessagesCreated: ctx.messagesCreated,
		ActionListHash:  listHash,
		TotalActionFees: priorFees + ctx.ActionFine,
		EndLT:           ctx.EndLT,
	}
	return ActionPhaseFull{
		ActionPhase: phase,
		ActionFine:  ctx.ActionFine,
		Bounce:      bounce,
		NewBalance:  ctx.RemainingBalance,
		NewState:    ctx.NewState,
		OutMsgs:     ctx.OutMsgs,
	}
}

// checkStateLimits verifies the candidate state's code/data/library subtrees
// stay within the workchain-appropriate size limits (spec.md §4.4,
// "state-limit check (skip for special accounts)").
func checkStateLimits(cache *cell.StatsCache, state StateInit, workchain int32, cat config.Catalog, limits config.SizeLimits) error {
	maxBits, maxCells := int(limits.BasechainBits), int(limits.BasechainCells)
	if cat.IsMasterchain(workchain) {
		maxBits, maxCells = int(limits.MasterchainBits), int(limits.MasterchainCells)
	}

	var total cell.Stats
	for _, c := range []*cell.Cell{state.Code, state.Data, state.Libraries} {
		if c == nil {
			continue
		}
		total = total.Add(cache.Get(c))
	}
	if total.Bits > maxBits || total.Cells > maxCells {
		return errStateOutOfLimits
	}
	return nil
}
