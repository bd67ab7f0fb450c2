package tvm

// regIndexFromImmediate reads a 3-bit immediate register index operand and
// validates it against the registers this core models (c0..c5, c7; c6 is
// reserved and rejected as an invalid opcode, spec.md §3).
func regIndexFromImmediate(vm *VM) (RegIndex, error) {
	raw, err := vm.code.LoadUint(3)
	if err != nil {
		return 0, err
	}
	switch raw {
	case 0, 1, 2, 3, 4, 5:
		return RegIndex(raw), nil
	case 7:
		return RegC7, nil
	default:
		return 0, errInvalidOpcode
	}
}

// opPushCtrl implements "PUSH c_i": push the value currently held in
// register i (spec.md §4.3).
func opPushCtrl(vm *VM) error {
	idx, err := regIndexFromImmediate(vm)
	if err != nil {
		return err
	}
	v, ok := vm.cr.Get(idx)
	if !ok {
		return ErrTypeCheck
	}
	if v.Cont != nil {
		vm.stack.Push(ContValue(v.Cont))
	} else {
		vm.stack.Push(v.Cell)
	}
	return nil
}

// opPopCtrl implements "POP c_i": pop the top stack value into register i.
func opPopCtrl(vm *VM) error {
	idx, err := regIndexFromImmediate(vm)
	if err != nil {
		return err
	}
	v, err := vm.stack.Pop()
	if err != nil {
		return err
	}
	if v.Kind == KindCont {
		vm.cr.Set(idx, ContReg(v.Cont))
	} else {
		vm.cr.Set(idx, CellReg(v))
	}
	return nil
}

// opSaveCtrl implements "SAVE c_i": copy the current value of register i
// into the savelist of the continuation held in c0 (used before a call that
// must restore the register on return), matching spec.md §4.2's savelist
// substrate.
func opSaveCtrl(vm *VM) error {
	idx, err := regIndexFromImmediate(vm)
	if err != nil {
		return err
	}
	v, ok := vm.cr.Get(idx)
	if !ok {
		return nil
	}
	c0, ok := vm.cr.Get(RegC0)
	if !ok || c0.Cont == nil {
		return nil
	}
	if oc, ok := c0.Cont.(*OrdCont); ok {
		oc.Save.Define(idx, v)
	}
	return nil
}

// opThrow implements THROW n: raise exception n with argument 0.
func opThrow(vm *VM) error {
	n, err := vm.code.LoadUint(11)
	if err != nil {
		return err
	}
	return &ThrowArgError{Code: int(n), Arg: IntFromInt64(0)}
}

// opThrowIf implements THROWIF n: pop a flag; if true, raise exception n.
func opThrowIf(vm *VM) error {
	n, err := vm.code.LoadUint(11)
	if err != nil {
		return err
	}
	flag, err := vm.stack.Pop()
	if err != nil {
		return err
	}
	if !isTrueFlag(flag) {
		return nil
	}
	return &ThrowArgError{Code: int(n), Arg: IntFromInt64(0)}
}

// opThrowArg implements THROWARG n: pop an explicit argument value, then
// raise exception n carrying it (spec.md §4.3, "arg defaults to 0").
func opThrowArg(vm *VM) error {
	n, err := vm.code.LoadUint(11)
	if err != nil {
		return err
	}
	arg, err := vm.stack.Pop()
	if err != nil {
		return err
	}
	return &ThrowArgError{Code: int(n), Arg: arg}
}

// opSetcp implements SETCP n: switch to the dispatch table registered for
// codepage n (spec.md §4.3).
func opSetcp(vm *VM) error {
	n, err := vm.code.LoadInt(8)
	if err != nil {
		return err
	}
	return vm.setcp(int(n))
}

// opSetcpx implements SETCPX: pop the codepage id from the stack instead of
// an immediate operand.
func opSetcpx(vm *VM) error {
	v, err := vm.stack.Pop()
	if err != nil {
		return err
	}
	if v.Kind != KindInt || !v.Valid || v.Int == nil {
		return ErrTypeCheck
	}
	return vm.setcp(int(int32(v.Int.Uint64())))
}
