package tvm

import "github.com/tonkeeper/tvmcore/cell"

// opNewc implements NEWC: push a fresh, empty cell builder.
func opNewc(vm *VM) error {
	vm.stack.Push(BuilderValue(cell.NewBuilder()))
	return nil
}

// opEndc implements ENDC: pop a builder, finalize it into an ordinary cell,
// and push the cell.
func opEndc(vm *VM) error {
	v, err := vm.stack.Pop()
	if err != nil {
		return err
	}
	if v.Kind != KindBuilder || v.Builder == nil {
		return ErrTypeCheck
	}
	c, err := v.Builder.FinalizeOrdinary()
	if err != nil {
		return errCellUnderflowAlias
	}
	vm.stack.Push(CellValue(c))
	return nil
}

// readBitWidth reads the immediate bit-width operand of STU/STI/LDU/LDI,
// encoded as an 8-bit "n-1" field (1..256 bits).
func readBitWidth(vm *VM) (int, error) {
	raw, err := vm.code.LoadUint(8)
	if err != nil {
		return 0, err
	}
	return int(raw) + 1, nil
}

// opStu implements STU n: pop builder, value; store value as an n-bit
// unsigned big-endian integer into the builder; push the builder back.
func opStu(vm *VM) error {
	n, err := readBitWidth(vm)
	if err != nil {
		return err
	}
	bv, err := vm.stack.Pop()
	if err != nil {
		return err
	}
	if bv.Kind != KindBuilder || bv.Builder == nil {
		return ErrTypeCheck
	}
	iv, _, err := popInt(vm)
	if err != nil {
		return err
	}
	if n < 64 && iv.BitLen() > n {
		return errIntegerOutOfRange
	}
	if err := bv.Builder.StoreUint(iv.Uint64(), n); err != nil {
		return errCellUnderflowAlias
	}
	vm.stack.Push(bv)
	return nil
}

// opSti implements STI n: as STU but stores the signed two's-complement
// representation of the popped integer.
func opSti(vm *VM) error {
	n, err := readBitWidth(vm)
	if err != nil {
		return err
	}
	bv, err := vm.stack.Pop()
	if err != nil {
		return err
	}
	if bv.Kind != KindBuilder || bv.Builder == nil {
		return ErrTypeCheck
	}
	iv, neg, err := popInt(vm)
	if err != nil {
		return err
	}
	raw := int64(iv.Uint64())
	if neg {
		raw = -raw
	}
	if err := bv.Builder.StoreInt(raw, n); err != nil {
		return errCellUnderflowAlias
	}
	vm.stack.Push(bv)
	return nil
}

// opLdu implements LDU n: pop slice, load n bits as unsigned, push the
// updated slice then the value.
func opLdu(vm *VM) error {
	n, err := readBitWidth(vm)
	if err != nil {
		return err
	}
	sv, err := vm.stack.Pop()
	if err != nil {
		return err
	}
	if sv.Kind != KindSlice || sv.Slice == nil {
		return ErrTypeCheck
	}
	v, err := sv.Slice.LoadUint(n)
	if err != nil {
		return errCellUnderflowAlias
	}
	vm.stack.Push(sv)
	vm.stack.Push(IntFromInt64(int64(v)))
	return nil
}

// opLdi implements LDI n: as LDU but loads a signed integer.
func opLdi(vm *VM) error {
	n, err := readBitWidth(vm)
	if err != nil {
		return err
	}
	sv, err := vm.stack.Pop()
	if err != nil {
		return err
	}
	if sv.Kind != KindSlice || sv.Slice == nil {
		return ErrTypeCheck
	}
	v, err := sv.Slice.LoadInt(n)
	if err != nil {
		return errCellUnderflowAlias
	}
	vm.stack.Push(sv)
	vm.stack.Push(IntFromInt64(v))
	return nil
}

// opLdref implements LDREF: pop slice, consume one ref, push updated slice
// then the ref as a cell.
func opLdref(vm *VM) error {
	sv, err := vm.stack.Pop()
	if err != nil {
		return err
	}
	if sv.Kind != KindSlice || sv.Slice == nil {
		return ErrTypeCheck
	}
	ref, err := sv.Slice.LoadRef()
	if err != nil {
		return errCellUnderflowAlias
	}
	vm.stack.Push(sv)
	vm.stack.Push(CellValue(ref))
	return nil
}

// opPldref implements PLDREF: pop slice, push the preloaded ref as a cell
// without consuming it (or the slice).
func opPldref(vm *VM) error {
	sv, err := vm.stack.Pop()
	if err != nil {
		return err
	}
	if sv.Kind != KindSlice || sv.Slice == nil {
		return ErrTypeCheck
	}
	ref, err := sv.Slice.PreloadRef()
	if err != nil {
		return errCellUnderflowAlias
	}
	vm.stack.Push(CellValue(ref))
	return nil
}

// opCtos implements CTOS: pop a cell, push a slice over it, transparently
// resolving library references (spec.md §4.1, load_cell_as_slice).
func opCtos(vm *VM) error {
	cv, err := vm.stack.Pop()
	if err != nil {
		return err
	}
	if cv.Kind != KindCell || cv.Cell == nil {
		return ErrTypeCheck
	}
	s, err := cell.LoadAsSlice(cv.Cell, vm.libraries)
	if err != nil {
		return errCellUnderflowAlias
	}
	vm.stack.Push(SliceValue(s))
	return nil
}
