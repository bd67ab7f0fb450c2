package tvm

// jump installs cont as the next thing the VM executes (spec.md §4.2). If
// cont carries a saved stack or an explicit nargs, it delegates to jumpExt;
// otherwise it merges cont's savelist into the current control registers
// and runs its trampoline directly.
func (vm *VM) jump(cont Continuation) error {
	if cont.OwnStack() != nil {
		_, hasNargs := cont.NArgs()
		_ = hasNargs
		return vm.jumpExt(cont, vm.stack.Depth())
	}
	if _, hasNargs := cont.NArgs(); hasNargs {
		return vm.jumpExt(cont, vm.stack.Depth())
	}
	return vm.doJumpTo(cont)
}

// jumpExt adjusts the current stack to exactly next_depth elements,
// preserving the top, validates nargs <= pass_args <= depth, attaches to
// cont's own stack if present, and jumps (spec.md §4.2).
func (vm *VM) jumpExt(cont Continuation, passArgs int) error {
	depth := vm.stack.Depth()
	nargs, hasNargs := cont.NArgs()
	nextDepth := passArgs
	if hasNargs {
		nextDepth = nargs
	}
	if hasNargs {
		if nargs > passArgs || passArgs > depth {
			return ErrTypeCheck
		}
	} else if passArgs > depth {
		return ErrTypeCheck
	}

	if err := vm.stack.AdjustDepth(nextDepth); err != nil {
		return err
	}
	args, err := vm.stack.SplitTop(nextDepth)
	if err != nil {
		return err
	}

	if own := cont.OwnStack(); own != nil {
		own.PushAll(args)
		vm.stack = own
	} else {
		vm.stack = NewStack()
		vm.stack.PushAll(args)
	}
	return vm.doJumpTo(cont)
}

// doJumpTo runs the trampoline loop: repeatedly invoke cont's trampoline
// until it returns a nil next continuation, charging 1 gas per level beyond
// the free nested-jump budget (spec.md §4.2, §9).
func (vm *VM) doJumpTo(cont Continuation) error {
	level := int64(0)
	for cont != nil {
		level++
		if err := vm.gasPrices.ChargeNestedJump(vm.gas, level); err != nil {
			return err
		}
		next, err := cont.trampoline(vm)
		if err != nil {
			return err
		}
		cont = next
	}
	return nil
}

// call implements spec.md §4.2's call: if cont already has c0 saved, reduce
// to jump; else push a return continuation capturing current code, c0, and
// codepage into c0, then jump to cont.
func (vm *VM) call(cont Continuation) error {
	if sl := cont.SaveList(); sl != nil {
		if _, ok := sl.Get(RegC0); ok {
			return vm.jump(cont)
		}
	}
	ret := vm.makeReturnContinuation(vm.stack.Depth(), false)
	vm.cr.Set(RegC0, ContReg(ret))
	return vm.doJumpTo(cont)
}

// callExt implements spec.md §4.2's call_ext: as call, but the return
// continuation carries nargs=retArgs and the old current stack as its own
// saved stack; the new current stack is the split-top of size passArgs (or
// cont's own stack, extended from the current, if cont already has one).
func (vm *VM) callExt(cont Continuation, passArgs, retArgs int) error {
	oldStack := vm.stack
	args, err := oldStack.SplitTop(passArgs)
	if err != nil {
		return err
	}

	ret := vm.makeReturnContinuation(retArgs, true)
	ret.Stack = oldStack
	vm.cr.Set(RegC0, ContReg(ret))

	if own := cont.OwnStack(); own != nil {
		own.PushAll(args)
		vm.stack = own
	} else {
		vm.stack = NewStack()
		vm.stack.PushAll(args)
	}
	return vm.doJumpTo(cont)
}

// makeReturnContinuation captures the VM's current code and codepage, plus
// the current c0 (if set) in its savelist, into a fresh OrdCont used as a
// return address; nargs and hasNargs become that continuation's argument
// count.
func (vm *VM) makeReturnContinuation(nargs int, hasNargs bool) *OrdCont {
	ret := &OrdCont{
		Code:     vm.code,
		Codepage: vm.codepage,
		Nargs:    nargs,
		HasNargs: hasNargs,
	}
	if c0, ok := vm.cr.Get(RegC0); ok {
		ret.Save.Set(RegC0, c0)
	}
	return ret
}

// envelopeC1 wraps cont with an ArgContExt that defines c0 and c1 from the
// given savelist values (spec.md §4.2).
func envelopeC1(cont Continuation, c0, c1 RegValue) Continuation {
	var sl Savelist
	if c0.IsSet() {
		sl.Define(RegC0, c0)
	}
	if c1.IsSet() {
		sl.Define(RegC1, c1)
	}
	return &ArgContExt{Inner: cont, Save: sl}
}

// c1SaveSet propagates c1 into c0's savelist, then sets c1 to the former c0
// (spec.md §4.2). This is how TVM's SAMEALT/SAVEALT family bootstraps the
// alternate-return convention.
func (vm *VM) c1SaveSet() {
	c0, hasC0 := vm.cr.Get(RegC0)
	c1, hasC1 := vm.cr.Get(RegC1)
	if hasC0 && hasC1 {
		if oc, ok := c0.Cont.(*OrdCont); ok {
			oc.Save.Define(RegC1, c1)
		}
	}
	if hasC0 {
		vm.cr.Set(RegC1, c0)
	}
}

// extractMode selects which registers extractCC replaces with canonical
// sentinels when snapshotting the current continuation (spec.md §4.2).
type extractMode struct {
	SaveC0 bool
	SaveC1 bool
	SaveC2 bool
}

// extractCC snapshots the current code and stack into a new OrdCont,
// optionally saving c0/c1/c2 into its savelist and replacing the live
// registers with the canonical Quit0/Quit1/ExcQuit/empty sentinels (spec.md
// §4.2).
func (vm *VM) extractCC(mode extractMode, copyStack bool, nargs int, hasNargs bool) *OrdCont {
	oc := &OrdCont{
		Code:     vm.code,
		Codepage: vm.codepage,
		Nargs:    nargs,
		HasNargs: hasNargs,
	}
	if copyStack {
		oc.Stack = vm.stack.Clone()
	}
	if mode.SaveC0 {
		if c0, ok := vm.cr.Get(RegC0); ok {
			oc.Save.Set(RegC0, c0)
		}
		vm.cr.Set(RegC0, ContReg(Quit0))
	}
	if mode.SaveC1 {
		if c1, ok := vm.cr.Get(RegC1); ok {
			oc.Save.Set(RegC1, c1)
		}
		vm.cr.Set(RegC1, ContReg(Quit1))
	}
	if mode.SaveC2 {
		if c2, ok := vm.cr.Get(RegC2); ok {
			oc.Save.Set(RegC2, c2)
		}
		vm.cr.Set(RegC2, ContReg(ExcQuit))
	}
	return oc
}
