package tvm

import "github.com/tonkeeper/tvmcore/cell"

// Dictionaries in this core are modeled as a simple singly linked chain of
// entry cells rather than the real HashmapE Patricia-trie encoding: each
// entry cell holds an 8-bit key length n, the n-bit key, a ref to the value
// and, last, an optional ref to the previous entry; a nil root is the empty
// dictionary. This is a deliberate simplification of
// spec.md §4.3's "dictionary primitives" family (noted non-exhaustive);
// DESIGN.md records the simplification. DICTGET/DICTSET below are the representative pair the family
// exists to cover: point lookup and point insert-or-replace.

func dictGetEntry(root *cell.Cell, keyBits int, key uint64) (*cell.Cell, bool) {
	for root != nil {
		s := cell.NewSlice(root)
		entryKeyBits, err := s.LoadUint(8)
		if err != nil {
			return nil, false
		}
		entryKey, err := s.LoadUint(int(entryKeyBits))
		if err != nil {
			return nil, false
		}
		valueRef, err := s.LoadRef()
		if err != nil {
			return nil, false
		}
		if int(entryKeyBits) == keyBits && entryKey == key {
			return valueRef, true
		}
		if s.RemainingRefs() == 0 {
			return nil, false
		}
		next, err := s.LoadRef()
		if err != nil {
			return nil, false
		}
		root = next
	}
	return nil, false
}

func dictSetEntry(root *cell.Cell, keyBits int, key uint64, value *cell.Cell) (*cell.Cell, error) {
	b := cell.NewBuilder()
	if err := b.StoreUint(uint64(keyBits), 8); err != nil {
		return nil, err
	}
	if err := b.StoreUint(key, keyBits); err != nil {
		return nil, err
	}
	if err := b.StoreRef(value); err != nil {
		return nil, err
	}
	if root != nil {
		if err := b.StoreRef(root); err != nil {
			return nil, err
		}
	}
	return b.FinalizeOrdinary()
}

// opDictGet implements DICTGET: pop (dict, keyBits-immediate-already-read,
// key) and push (value-slice, -1) on hit or (0) on miss.
func opDictGet(vm *VM) error {
	keyBitsRaw, err := vm.code.LoadUint(8)
	if err != nil {
		return err
	}
	keyBits := int(keyBitsRaw)

	dictVal, err := vm.stack.Pop()
	if err != nil {
		return err
	}
	keyVal, err := vm.stack.Pop()
	if err != nil {
		return err
	}
	if keyVal.Kind != KindInt || !keyVal.Valid || keyVal.Int == nil {
		return ErrTypeCheck
	}
	var root *cell.Cell
	if dictVal.Kind == KindCell {
		root = dictVal.Cell
	} else if dictVal.Kind != KindNull {
		return ErrTypeCheck
	}
	value, ok := dictGetEntry(root, keyBits, keyVal.Int.Uint64())
	if !ok {
		pushBool(vm, false)
		return nil
	}
	vm.stack.Push(SliceValue(cell.NewSlice(value)))
	pushBool(vm, true)
	return nil
}

// opDictSet implements DICTSET: pop (dict, keyBits-immediate-already-read,
// key, value-cell) and push the new dict root cell.
func opDictSet(vm *VM) error {
	keyBitsRaw, err := vm.code.LoadUint(8)
	if err != nil {
		return err
	}
	keyBits := int(keyBitsRaw)

	dictVal, err := vm.stack.Pop()
	if err != nil {
		return err
	}
	keyVal, err := vm.stack.Pop()
	if err != nil {
		return err
	}
	valueVal, err := vm.stack.Pop()
	if err != nil {
		return err
	}
	if keyVal.Kind != KindInt || !keyVal.Valid || keyVal.Int == nil {
		return ErrTypeCheck
	}
	if valueVal.Kind != KindCell || valueVal.Cell == nil {
		return ErrTypeCheck
	}
	var root *cell.Cell
	if dictVal.Kind == KindCell {
		root = dictVal.Cell
	} else if dictVal.Kind != KindNull {
		return ErrTypeCheck
	}
	newRoot, err := dictSetEntry(root, keyBits, keyVal.Int.Uint64(), valueVal.Cell)
	if err != nil {
		return errDict
	}
	vm.stack.Push(CellValue(newRoot))
	return nil
}
