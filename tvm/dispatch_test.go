package tvm

import "testing"

func noopHandler(vm *VM) error { return nil }

func TestDispatchTable_LookupReturnsRegisteredHandlerAndPrice(t *testing.T) {
	d := NewDispatchTable()
	d.Register(0x10, "ADD", 18, noopHandler)

	fn, price, ok := d.Lookup(0x10)
	if !ok {
		t.Fatalf("Lookup(0x10) missing, want registered")
	}
	if price != 18 {
		t.Fatalf("price = %d, want 18", price)
	}
	if fn == nil {
		t.Fatalf("handler is nil")
	}
}

func TestDispatchTable_LookupUnregisteredOpcodeMisses(t *testing.T) {
	d := NewDispatchTable()
	if _, _, ok := d.Lookup(0xFF); ok {
		t.Fatalf("Lookup(0xFF) hit, want miss on an empty table")
	}
}

func TestDispatchTable_OpcodesAreSortedAscending(t *testing.T) {
	d := NewDispatchTable()
	d.Register(0x30, "X", 1, noopHandler)
	d.Register(0x01, "A", 1, noopHandler)
	d.Register(0x10, "M", 1, noopHandler)

	ops := d.Opcodes()
	want := []byte{0x01, 0x10, 0x30}
	if len(ops) != len(want) {
		t.Fatalf("Opcodes() = %v, want %v", ops, want)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Fatalf("Opcodes() = %v, want %v", ops, want)
		}
	}
}

func TestDispatchTable_RegisterOverwritesExistingOpcode(t *testing.T) {
	d := NewDispatchTable()
	d.Register(0x10, "ADD", 18, noopHandler)
	d.Register(0x10, "ADD2", 99, noopHandler)

	_, price, ok := d.Lookup(0x10)
	if !ok || price != 99 {
		t.Fatalf("re-registering 0x10 did not take effect, price = %d", price)
	}
}

func TestCodepageRegistry_GetReturnsRegisteredTable(t *testing.T) {
	r := NewCodepageRegistry()
	table := NewDispatchTable()
	table.Register(0x01, "A", 1, noopHandler)
	r.Register(0, table)

	got, ok := r.Get(0)
	if !ok || got != table {
		t.Fatalf("Get(0) did not return the registered table")
	}
}

func TestCodepageRegistry_GetUnregisteredCodepageMisses(t *testing.T) {
	r := NewCodepageRegistry()
	if _, ok := r.Get(7); ok {
		t.Fatalf("Get(7) hit, want miss on an empty registry")
	}
}

func TestStandardCodepageRegistry_OnlyCodepageZeroIsRegistered(t *testing.T) {
	r := NewStandardCodepageRegistry()
	if _, ok := r.Get(0); !ok {
		t.Fatalf("standard registry missing codepage 0")
	}
	if _, ok := r.Get(1); ok {
		t.Fatalf("standard registry has codepage 1, want only codepage 0")
	}
}

func TestStandardDispatchTable_CoversTheDocumentedOpcodeFamilies(t *testing.T) {
	table := NewStandardDispatchTable()
	for _, op := range []byte{
		opPushIntByte, opDropByte, opDupByte, opOverByte, opSwapByte,
		opAddByte, opSubByte, opMulByte, opDivModByte, opEqualByte, opLessByte, opGreaterByte,
		opNewcByte, opEndcByte, opStuByte, opStiByte, opLduByte, opLdiByte, opLdrefByte, opPldrefByte, opCtosByte,
		opExecuteByte, opJmpxByte, opCallccByte, opRetByte, opRetargsByte, opIfretByte,
		opRepeatByte, opUntilByte, opWhileByte, opAgainByte,
		opPushCtrlByte, opPopCtrlByte, opSaveCtrlByte,
		opThrowByte, opThrowIfByte, opThrowArgByte,
		opSetcpByte, opSetcpxByte,
		opDictGetByte, opDictSetByte,
	} {
		if _, _, ok := table.Lookup(op); !ok {
			t.Fatalf("standard dispatch table missing opcode 0x%02x", op)
		}
	}
}
