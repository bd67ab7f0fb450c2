package action

import "errors"

// execReserveCurrency carries out one ReserveCurrency action (spec.md
// §4.4.3, action.rs "do_reserve_currency"): it computes a reserve amount
// from WITH_ORIGINAL_BALANCE/REVERSE, optionally clamps it to the
// remaining balance under IGNORE_ERROR, moves it out of remaining_balance
// into reserved_balance, and (ALL_BUT) swaps which side ends up holding
// which amount.
func execReserveCurrency(ctx *ActionContext, original CurrencyCollection, act OutAction) error {
	mode := act.ReserveMode
	if mode&^uint8(reserveModeKnownMask) != 0 {
		return fail(CodeActionInvalid, false, errUnknownReserveFlag)
	}
	withOriginal := mode&reserveModeWithOriginal != 0
	reverse := mode&reserveModeReverse != 0
	if reverse && !withOriginal {
		return fail(CodeActionInvalid, false, errInvalidReserveFlag)
	}
	ignoreErr := mode&reserveModeIgnoreError != 0
	bounceOnErr := mode&reserveModeBounceOnError != 0

	// Resolve the requested reserve amount against the chosen base
	// (action.rs:670-679): WITH_ORIGINAL_BALANCE+REVERSE subtracts the
	// requested amount from the original balance; WITH_ORIGINAL_BALANCE
	// alone adds it to the original balance; neither flag leaves the
	// requested amount untouched. Unlike SendMsg, ReserveCurrency has no
	// skip-on-error path: IGNORE_ERROR only changes the clamp below, and
	// every other failure here is a hard action failure regardless of
	// that bit (action.rs:651-719 never calls the SendMsg-only
	// "check_skip_invalid").
	reserve := act.Reserve
	switch {
	case withOriginal && reverse:
		sub, err := original.Sub(reserve)
		if err != nil {
			return fail(codeForCurrencyError(err), bounceOnErr, err)
		}
		reserve = sub
	case withOriginal:
		reserve = reserve.Add(original)
	}

	// IGNORE_ERROR clamps the reserve to whatever remains rather than
	// failing the action (action.rs:681-684, "checked_clamp"): the
	// reservation always completes and still counts as a special action.
	if ignoreErr {
		reserve = clampToBalance(reserve, ctx.RemainingBalance)
	}

	newBalance, err := ctx.RemainingBalance.Sub(reserve)
	if err != nil {
		return fail(codeForCurrencyError(err), bounceOnErr, err)
	}
	normalizeOther(reserve.Other)

	if mode&reserveModeAllBut != 0 {
		newBalance, reserve = reserve, newBalance
	}

	ctx.RemainingBalance = newBalance
	ctx.ReservedBalance = ctx.ReservedBalance.Add(reserve)
	ctx.specialActions++
	return nil
}

// clampToBalance limits reserve to at most what limit holds, currency by
// currency (action.rs "checked_clamp").
func clampToBalance(reserve, limit CurrencyCollection) CurrencyCollection {
	out := reserve
	if out.Tokens > limit.Tokens {
		out.Tokens = limit.Tokens
	}
	if len(out.Other) > 0 {
		clamped := make(map[uint32]uint64, len(out.Other))
		for id, amt := range out.Other {
			if have := limit.Other[id]; amt > have {
				amt = have
			}
			clamped[id] = amt
		}
		out.Other = clamped
	}
	return out
}

func codeForCurrencyError(err error) int {
	if errors.Is(err, errInsufficientExtra) {
		return CodeNotEnoughExtra
	}
	return CodeNotEnoughBalance
}
