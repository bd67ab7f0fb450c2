package tvm

// opDrop implements DROP: pop and discard the top value.
func opDrop(vm *VM) error {
	_, err := vm.stack.Pop()
	return err
}

// opDup implements DUP: push a copy of the top value.
func opDup(vm *VM) error {
	v, err := vm.stack.Top()
	if err != nil {
		return err
	}
	vm.stack.Push(v)
	return nil
}

// opOver implements OVER: push a copy of the second-from-top value.
func opOver(vm *VM) error {
	v, err := vm.stack.Get(1)
	if err != nil {
		return err
	}
	vm.stack.Push(v)
	return nil
}

// opSwap implements SWAP: exchange the top two values.
func opSwap(vm *VM) error {
	b, err := vm.stack.Pop()
	if err != nil {
		return err
	}
	a, err := vm.stack.Pop()
	if err != nil {
		return err
	}
	vm.stack.Push(b)
	vm.stack.Push(a)
	return nil
}

// opPushInt32 implements PUSHINT: read a 32-bit signed immediate and push
// it, the representative literal-push opcode spec.md §4.3 requires ("a
// representative, non-exhaustive list").
func opPushInt32(vm *VM) error {
	raw, err := vm.code.LoadInt(32)
	if err != nil {
		return err
	}
	vm.stack.Push(IntFromInt64(raw))
	return nil
}
