package action

// execSetCode replaces the candidate state's code with the given cell and
// records a special action. It never fails (spec.md §4.4.2).
func execSetCode(ctx *ActionContext, act OutAction) error {
	ctx.NewState.Code = act.NewCode
	ctx.specialActions++
	return nil
}
