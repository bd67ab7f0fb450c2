package tvm

// popCont pops a continuation stack value.
func popCont(vm *VM) (Continuation, error) {
	v, err := vm.stack.Pop()
	if err != nil {
		return nil, err
	}
	if v.Kind != KindCont || v.Cont == nil {
		return nil, ErrTypeCheck
	}
	return v.Cont, nil
}

// opExecute implements EXECUTE: pop a continuation and call it (spec.md
// §4.2, §4.3).
func opExecute(vm *VM) error {
	cont, err := popCont(vm)
	if err != nil {
		return err
	}
	return vm.call(cont)
}

// opJmpx implements JMPX: pop a continuation and jump to it unconditionally.
func opJmpx(vm *VM) error {
	cont, err := popCont(vm)
	if err != nil {
		return err
	}
	return vm.jump(cont)
}

// opCallcc implements CALLCC: pop a continuation, extract the current
// continuation into a fresh OrdCont, push it, and call the popped
// continuation (spec.md §4.2 extract_cc).
func opCallcc(vm *VM) error {
	cont, err := popCont(vm)
	if err != nil {
		return err
	}
	cc := vm.extractCC(extractMode{SaveC0: true}, true, 0, false)
	vm.stack.Push(ContValue(cc))
	return vm.call(cont)
}

// opRet implements RET: jump to c0 (the implicit-RET opcode form).
func opRet(vm *VM) error {
	c0, ok := vm.cr.Get(RegC0)
	var cont Continuation = Quit0
	if ok && c0.Cont != nil {
		cont = c0.Cont
	}
	return vm.jump(cont)
}

// opRetargs implements RETARGS n: read n from an 8-bit immediate and jump to
// c0 carrying exactly n stack elements (spec.md §4.2 jump_ext).
func opRetargs(vm *VM) error {
	n, err := vm.code.LoadUint(8)
	if err != nil {
		return err
	}
	c0, ok := vm.cr.Get(RegC0)
	var cont Continuation = Quit0
	if ok && c0.Cont != nil {
		cont = c0.Cont
	}
	return vm.jumpExt(cont, int(n))
}

// opIfret implements IFRET: pop a flag; if true, jump to c0.
func opIfret(vm *VM) error {
	flag, err := vm.stack.Pop()
	if err != nil {
		return err
	}
	if !isTrueFlag(flag) {
		return nil
	}
	return opRet(vm)
}

// opRepeat implements REPEAT: pop count, body; build a RepeatCont whose
// "after" is the current c0, and jump to it (spec.md §3, §4.2).
func opRepeat(vm *VM) error {
	body, err := popCont(vm)
	if err != nil {
		return err
	}
	countVal, err := vm.stack.Pop()
	if err != nil {
		return err
	}
	if countVal.Kind != KindInt || !countVal.Valid || countVal.Int == nil {
		return ErrTypeCheck
	}
	after := currentC0(vm)
	rc := &RepeatCont{Body: body, After: after, Remaining: int64(countVal.Int.Uint64())}
	return vm.jump(rc)
}

// opUntil implements UNTIL: pop body; build an UntilCont whose "after" is
// the current c0, and jump to it.
func opUntil(vm *VM) error {
	body, err := popCont(vm)
	if err != nil {
		return err
	}
	after := currentC0(vm)
	return vm.jump(&UntilCont{Body: body, After: after})
}

// opWhile implements WHILE: pop body, cond; build a WhileCont whose "after"
// is the current c0, and jump to it.
func opWhile(vm *VM) error {
	body, err := popCont(vm)
	if err != nil {
		return err
	}
	cond, err := popCont(vm)
	if err != nil {
		return err
	}
	after := currentC0(vm)
	return vm.jump(&WhileCont{Cond: cond, Body: body, After: after, CheckCond: false})
}

// opAgain implements AGAIN: pop body and jump to an AgainCont wrapping it.
func opAgain(vm *VM) error {
	body, err := popCont(vm)
	if err != nil {
		return err
	}
	return vm.jump(&AgainCont{Body: body})
}

func currentC0(vm *VM) Continuation {
	if c0, ok := vm.cr.Get(RegC0); ok && c0.Cont != nil {
		return c0.Cont
	}
	return Quit0
}
