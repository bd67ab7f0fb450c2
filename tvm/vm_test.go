package tvm

import (
	"testing"

	"github.com/tonkeeper/tvmcore/cell"
	"github.com/tonkeeper/tvmcore/gas"
)

func newTestVM(t *testing.T, code *cell.Cell) *VM {
	t.Helper()
	cr := ControlRegisters{}
	cr.Set(RegC0, ContReg(Quit0))
	cr.Set(RegC1, ContReg(Quit1))
	cr.Set(RegC2, ContReg(ExcQuit))
	cr.Set(RegC4, CellReg(CellValue(cell.Empty)))
	cr.Set(RegC5, CellReg(CellValue(cell.Empty)))
	return New(cell.NewSlice(code), 0, NewStack(), cr, Config{
		Gas:       gas.New(1_000_000, 1_000_000, 0),
		Prices:    gas.Default(),
		Registry:  NewStandardCodepageRegistry(),
	})
}

func buildCode(t *testing.T, fn func(b *cell.Builder)) *cell.Cell {
	t.Helper()
	b := cell.NewBuilder()
	fn(b)
	c, err := b.FinalizeOrdinary()
	if err != nil {
		t.Fatalf("build code: %v", err)
	}
	return c
}

func TestVM_PushIntAddProducesExpectedSumAndImplicitRet(t *testing.T) {
	code := buildCode(t, func(b *cell.Builder) {
		_ = b.StoreUint(uint64(opPushIntByte), 8)
		_ = b.StoreInt(2, 32)
		_ = b.StoreUint(uint64(opPushIntByte), 8)
		_ = b.StoreInt(3, 32)
		_ = b.StoreUint(uint64(opAddByte), 8)
	})
	vm := newTestVM(t, code)
	exit := vm.Run()
	if exit != 0 {
		t.Fatalf("exit code = %d, want 0", exit)
	}
	top, err := vm.Stack().Top()
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if top.Int.Uint64() != 5 || top.IntSign {
		t.Fatalf("got %v (neg=%v), want 5", top.Int, top.IntSign)
	}
}

func TestVM_StackUnderflowRaisesExceptionAndExits(t *testing.T) {
	code := buildCode(t, func(b *cell.Builder) {
		_ = b.StoreUint(uint64(opAddByte), 8) // ADD on an empty stack
	})
	vm := newTestVM(t, code)
	exit := vm.Run()
	if exit != int(ExcStackUnderflow) {
		t.Fatalf("exit code = %d, want %d", exit, ExcStackUnderflow)
	}
}

func TestVM_UnknownOpcodeIsInvalidOpcode(t *testing.T) {
	code := buildCode(t, func(b *cell.Builder) {
		_ = b.StoreUint(0xFF, 8)
	})
	vm := newTestVM(t, code)
	exit := vm.Run()
	if exit != int(ExcInvalidOpcode) {
		t.Fatalf("exit code = %d, want %d", exit, ExcInvalidOpcode)
	}
}

func TestVM_SecondExceptionDuringHandlingIsFatalAndPositive(t *testing.T) {
	code := buildCode(t, func(b *cell.Builder) {
		_ = b.StoreUint(uint64(opAddByte), 8)
	})
	vm := newTestVM(t, code)
	// install a c2 handler that itself fails: DICTGET type-checks its
	// dict operand, and the exception stack [arg, code] holds two
	// integers, neither of which is a valid dict/null value.
	badHandler := &OrdCont{Code: cell.NewSlice(buildCode(t, func(b *cell.Builder) {
		_ = b.StoreUint(uint64(opDictGetByte), 8)
		_ = b.StoreUint(8, 8)
	}))}
	vm.cr.Set(RegC2, ContReg(badHandler))
	exit := vm.Run()
	if exit <= 0 {
		t.Fatalf("fatal exit code must be positive, got %d", exit)
	}
}

func TestVM_CommitRequiresLevelZeroCells(t *testing.T) {
	code := buildCode(t, func(b *cell.Builder) {
		// RET immediately; commit discipline runs against whatever c4/c5
		// the caller pre-populated.
		_ = b.StoreUint(uint64(opRetByte), 8)
	})
	vm := newTestVM(t, code)
	vm.cr.Set(RegC4, CellReg(CellValue(cell.Empty)))
	vm.cr.Set(RegC5, CellReg(CellValue(cell.Empty)))
	exit := vm.Run()
	if exit != 0 {
		t.Fatalf("exit code = %d, want 0", exit)
	}
	committed := vm.Committed()
	if committed == nil {
		t.Fatalf("expected a committed state")
	}
	if committed.Data != cell.Empty || committed.Actions != cell.Empty {
		t.Fatalf("committed cells do not match c4/c5")
	}
}

func TestVM_SetcpUnknownCodepageIsInvalidOpcode(t *testing.T) {
	code := buildCode(t, func(b *cell.Builder) {
		_ = b.StoreUint(uint64(opSetcpByte), 8)
		_ = b.StoreInt(7, 8)
	})
	vm := newTestVM(t, code)
	exit := vm.Run()
	if exit != int(ExcInvalidOpcode) {
		t.Fatalf("exit code = %d, want %d", exit, ExcInvalidOpcode)
	}
}
