package action

import (
	"github.com/tonkeeper/tvmcore/cell"
	"github.com/tonkeeper/tvmcore/config"
)

// sendMsgEnv bundles the collaborators execSendMsg needs beyond the mutable
// ActionContext: the resolved forwarding-price/limit snapshot and the
// workchain/address identifying the sending account (spec.md §4.4.1).
type sendMsgEnv struct {
	snapshot      config.Snapshot
	limits        config.SizeLimits
	ourWorkchain  int32
	ourAddress    [32]byte
	isMasterchain func(int32) bool

	// receivedRemain points at the triggering inbound message's leftover
	// balance, shared across every action this phase executes; a
	// WITH_REMAINING_BALANCE or ALL_BALANCE send that consumes it zeroes
	// it out here so a second such send in the same action list doesn't
	// re-attach the same funds (action.rs "received_message", "the
	// received message is consumed at most once").
	receivedRemain *CurrencyCollection

	// gasFees is the compute phase's gas_fees, subtracted (together with
	// the accumulated action fine) from a WITH_REMAINING_BALANCE value
	// when the fee isn't paid separately (action.rs "rewrite_message_value").
	gasFees uint64
}

// rewriteAttempt pairs a layout-rewrite stage with the mutation it applies
// before a retry (spec.md §4.4.1 step 3's None -> StateInitToCell ->
// BodyToCell cycle).
type rewriteAttempt struct {
	stage rewriteState
	apply func(msg *relaxedMessage)
}

var rewriteAttempts = []rewriteAttempt{
	{rewriteNone, func(msg *relaxedMessage) {}},
	{rewriteStateInitToCell, func(msg *relaxedMessage) { msg.StateInitToRef = true }},
	{rewriteBodyToCell, func(msg *relaxedMessage) { msg.BodyToRef = true }},
}

// execSendMsg carries out one SendMsg action end to end: flag validation,
// address fix-up, value computation, the fit/rewrite loop, forwarding-fee
// computation, and the balance debit (spec.md §4.4.1).
func execSendMsg(ctx *ActionContext, env sendMsgEnv, act OutAction) error {
	mode := act.SendMode
	if mode&^uint8(sendModeKnownMask) != 0 {
		return fail(CodeActionInvalid, false, errUnknownSendMsgFlag)
	}
	if mode&sendModeAllBalance != 0 && mode&sendModeWithRemaining != 0 {
		return fail(CodeActionInvalid, false, errInvalidSendMsgFlag)
	}
	ignoreErr := mode&sendModeIgnoreError != 0
	bounceOnErr := mode&sendModeBounceOnError != 0

	msg, err := parseRelaxedMessage(act.Message)
	if err != nil {
		if ignoreErr {
			ctx.skippedActions++
			return nil
		}
		return fail(CodeActionInvalid, bounceOnErr, errActionParse)
	}

	if msg.Info.IsExternalOut {
		if mode&^uint8(sendModeExtOutAllowedMask) != 0 {
			if ignoreErr {
				ctx.skippedActions++
				return nil
			}
			return fail(CodeActionInvalid, bounceOnErr, errInvalidSendMsgFlag)
		}
	} else {
		if msg.Info.Src.Workchain != 0 || msg.Info.Src.Address != ([32]byte{}) {
			if ignoreErr {
				ctx.skippedActions++
				return nil
			}
			return fail(CodeInvalidSrcAddr, bounceOnErr, errInvalidSrcAddr)
		}
		msg.Info.Src = AddressExt{Workchain: env.ourWorkchain, Address: env.ourAddress}

		if msg.Info.Dst.Workchain != 0 && msg.Info.Dst.Workchain != -1 {
			if ignoreErr {
				ctx.skippedActions++
				return nil
			}
			return fail(CodeInvalidDstAddr, bounceOnErr, errInvalidDstAddr)
		}
	}

	allBalance := mode&sendModeAllBalance != 0
	withRemaining := mode&sendModeWithRemaining != 0
	payFeeSeparately := mode&sendModePayFeeSeparately != 0

	// Value rewrite (action.rs "rewrite_message_value"): ALL_BALANCE
	// attaches the whole remaining balance and always nets the fee out
	// of it; WITH_REMAINING_BALANCE adds back whatever the inbound
	// message still carries and, unless the fee is paid separately,
	// nets out the compute phase's gas fee and the accumulated action
	// fine up front.
	value := msg.Info.Value
	switch {
	case allBalance:
		value = ctx.RemainingBalance
		payFeeSeparately = false
	case withRemaining:
		if env.receivedRemain != nil {
			value = value.Add(*env.receivedRemain)
		}
		if !payFeeSeparately {
			afterFine, subErr := value.Sub(CurrencyCollection{Tokens: ctx.ActionFine})
			if subErr != nil {
				if ignoreErr {
					ctx.skippedActions++
					return nil
				}
				return fail(codeForCurrencyError(subErr), bounceOnErr, subErr)
			}
			afterGas, subErr := afterFine.Sub(CurrencyCollection{Tokens: env.gasFees})
			if subErr != nil {
				if ignoreErr {
					ctx.skippedActions++
					return nil
				}
				return fail(codeForCurrencyError(subErr), bounceOnErr, subErr)
			}
			value = afterGas
		}
	}

	msg.Info.Bounced = false
	msg.Info.IHRFee = 0
	msg.Info.FwdFee = 0
	msg.Info.Value = value
	msg.Info.CreatedLT = ctx.EndLT

	var built *cell.Cell
	var stats cell.Stats
	var stage rewriteState
	for _, a := range rewriteAttempts {
		if a.stage == rewriteStateInitToCell && msg.StateInit == nil {
			continue
		}
		a.apply(&msg)
		b, buildErr := buildRelaxedMessage(msg)
		if buildErr != nil {
			continue
		}
		s, statErr := cell.WalkStats(b, 1<<30, int(env.limits.MaxMsgCells))
		if statErr != nil {
			continue
		}
		built, stats, stage = b, s, a.stage
		break
	}

	useMC := env.isMasterchain(env.ourWorkchain) || env.isMasterchain(msg.Info.Dst.Workchain)
	prices := env.snapshot.PricesFor(useMC)

	if built == nil {
		fine := finePerCell(prices) * uint64(stats.Cells+1)
		ctx.ActionFine += fine
		if ignoreErr {
			ctx.skippedActions++
			return nil
		}
		return fail(CodeFailedToFitMessage, bounceOnErr, errFailedToFitMessage)
	}
	_ = stage

	total, firstPart := messageFwdFee(prices, stats)

	if msg.Info.IsExternalOut {
		if ctx.RemainingBalance.Tokens < total {
			if ignoreErr {
				ctx.skippedActions++
				return nil
			}
			return fail(CodeNotEnoughBalance, bounceOnErr, errInsufficientTokens)
		}
		ctx.RemainingBalance.Tokens -= total
		ctx.totalFwdFees += total
		ctx.hasFwdFees = true
		ctx.totalActionFees += total
	} else {
		// charge is always the full value the account gives up: when the
		// fee is not paid separately it is carved out of value for the
		// recipient, but the account itself still parts with the
		// original (pre-fee) amount.
		charge := value
		afterFee, err := value.Sub(CurrencyCollection{Tokens: total})
		if !payFeeSeparately {
			if err != nil {
				if ignoreErr {
					ctx.skippedActions++
					return nil
				}
				return fail(codeForCurrencyError(err), bounceOnErr, err)
			}
			value = afterFee
		} else {
			charge = charge.Add(CurrencyCollection{Tokens: total})
		}
		msg.Info.Value = value
		// The account retains fees_collected = firstPart; the message
		// only carries the remainder onward (action.rs:573-574).
		msg.Info.FwdFee = total - firstPart

		remaining, err := ctx.RemainingBalance.Sub(charge)
		if err != nil {
			if ignoreErr {
				ctx.skippedActions++
				return nil
			}
			// The account cannot cover the message, so whatever balance
			// remains is confiscated as the fine (spec.md §8, "PAY_FEE_
			// SEPARATELY with balance below fwd_fee ... total_action_fees
			// = initial_balance.tokens").
			ctx.ActionFine += ctx.RemainingBalance.Tokens
			return fail(codeForCurrencyError(err), bounceOnErr, err)
		}
		ctx.RemainingBalance = remaining
		ctx.totalFwdFees += total
		ctx.hasFwdFees = true
		ctx.totalActionFees += firstPart

		if mode&sendModeDeleteIfEmpty != 0 && ctx.RemainingBalance.IsZero() {
			ctx.DeleteAccount = true
		}
	}

	final, err := buildRelaxedMessage(msg)
	if err != nil {
		if ignoreErr {
			ctx.skippedActions++
			return nil
		}
		return fail(CodeMessageOutOfLimits, bounceOnErr, errMessageOutOfLimits)
	}

	// The inbound message's leftover balance is consumed at most once
	// per phase (action.rs:586-592).
	if (allBalance || withRemaining) && env.receivedRemain != nil {
		*env.receivedRemain = CurrencyCollection{}
	}

	ctx.OutMsgs = append(ctx.OutMsgs, final)
	ctx.messagesCreated++
	ctx.totalMsgSize += uint64(stats.Bits)
	ctx.EndLT++
	return nil
}
