package tvm

import "github.com/holiman/uint256"

// The integer opcodes below work in TVM's bounded-precision integer domain: values must fit
// in 257 signed bits, i.e. the 256-bit magnitude uint256.Int can represent
// plus a sign bit tracked out of band in Value.IntSign (spec.md §3).

func popInt(vm *VM) (*uint256.Int, bool, error) {
	v, err := vm.stack.Pop()
	if err != nil {
		return nil, false, err
	}
	if v.Kind != KindInt || !v.Valid || v.Int == nil {
		return nil, false, ErrTypeCheck
	}
	return v.Int, v.IntSign, nil
}

func pushInt(vm *VM, v *uint256.Int, neg bool) {
	vm.stack.Push(IntValue(v, neg))
}

// opAdd implements ADD: pop b, a; push a+b, raising IntegerOverflow if the
// signed sum would not fit in the bounded integer domain.
func opAdd(vm *VM) error {
	b, bNeg, err := popInt(vm)
	if err != nil {
		return err
	}
	a, aNeg, err := popInt(vm)
	if err != nil {
		return err
	}
	sum, neg, overflow := signedAdd(a, aNeg, b, bNeg)
	if overflow {
		return errIntegerOverflow
	}
	pushInt(vm, sum, neg)
	return nil
}

// opSub implements SUB: pop b, a; push a-b.
func opSub(vm *VM) error {
	b, bNeg, err := popInt(vm)
	if err != nil {
		return err
	}
	a, aNeg, err := popInt(vm)
	if err != nil {
		return err
	}
	sum, neg, overflow := signedAdd(a, aNeg, b, !bNeg)
	if overflow {
		return errIntegerOverflow
	}
	pushInt(vm, sum, neg)
	return nil
}

// opMul implements MUL: pop b, a; push a*b, raising IntegerOverflow on a
// magnitude overflow of the 256-bit domain.
func opMul(vm *VM) error {
	b, bNeg, err := popInt(vm)
	if err != nil {
		return err
	}
	a, aNeg, err := popInt(vm)
	if err != nil {
		return err
	}
	z := new(uint256.Int)
	if z.MulOverflow(a, b) {
		return errIntegerOverflow
	}
	neg := aNeg != bNeg && !z.IsZero()
	pushInt(vm, z, neg)
	return nil
}

// opDivMod implements DIVMOD: pop b, a; push floor(a/b), a mod b. Division
// by zero raises IntegerOverflow per TON's convention of reusing that code
// for arithmetic domain errors (spec.md §6 lists no separate div-by-zero
// code).
func opDivMod(vm *VM) error {
	b, bNeg, err := popInt(vm)
	if err != nil {
		return err
	}
	a, aNeg, err := popInt(vm)
	if err != nil {
		return err
	}
	if b.IsZero() {
		return errIntegerOverflow
	}
	q := new(uint256.Int)
	r := new(uint256.Int)
	q.DivMod(a, b, r)
	if aNeg != bNeg && !r.IsZero() {
		// Round the quotient toward negative infinity.
		q.AddUint64(q, 1)
		r.Sub(b, r)
	}
	qNeg := aNeg != bNeg && !q.IsZero()
	rNeg := bNeg && !r.IsZero()
	pushInt(vm, q, qNeg)
	pushInt(vm, r, rNeg)
	return nil
}

// opEqual implements EQUAL: pop b, a; push -1 if a==b else 0.
func opEqual(vm *VM) error {
	b, bNeg, err := popInt(vm)
	if err != nil {
		return err
	}
	a, aNeg, err := popInt(vm)
	if err != nil {
		return err
	}
	eq := a.Eq(b) && aNeg == bNeg
	pushBool(vm, eq)
	return nil
}

// opLess implements LESS: pop b, a; push -1 if a<b else 0.
func opLess(vm *VM) error {
	b, bNeg, err := popInt(vm)
	if err != nil {
		return err
	}
	a, aNeg, err := popInt(vm)
	if err != nil {
		return err
	}
	pushBool(vm, signedLess(a, aNeg, b, bNeg))
	return nil
}

// opGreater implements GREATER: pop b, a; push -1 if a>b else 0.
func opGreater(vm *VM) error {
	b, bNeg, err := popInt(vm)
	if err != nil {
		return err
	}
	a, aNeg, err := popInt(vm)
	if err != nil {
		return err
	}
	pushBool(vm, signedLess(b, bNeg, a, aNeg))
	return nil
}

func pushBool(vm *VM, v bool) {
	if v {
		vm.stack.Push(IntFromInt64(-1))
	} else {
		vm.stack.Push(IntFromInt64(0))
	}
}

// signedAdd computes a+b in sign-magnitude form over uint256 magnitudes.
func signedAdd(a *uint256.Int, aNeg bool, b *uint256.Int, bNeg bool) (*uint256.Int, bool, bool) {
	z := new(uint256.Int)
	if aNeg == bNeg {
		if z.AddOverflow(a, b) {
			return nil, false, true
		}
		return z, aNeg && !z.IsZero(), false
	}
	if a.Cmp(b) >= 0 {
		z.Sub(a, b)
		return z, aNeg && !z.IsZero(), false
	}
	z.Sub(b, a)
	return z, bNeg && !z.IsZero(), false
}

// signedLess reports whether the sign-magnitude value (a, aNeg) is strictly
// less than (b, bNeg).
func signedLess(a *uint256.Int, aNeg bool, b *uint256.Int, bNeg bool) bool {
	if aNeg != bNeg {
		return aNeg && !(a.IsZero() && b.IsZero())
	}
	if aNeg {
		return a.Cmp(b) > 0
	}
	return a.Cmp(b) < 0
}
