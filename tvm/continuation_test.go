package tvm

import (
	"testing"

	"github.com/tonkeeper/tvmcore/cell"
)

func emptyTestVM(t *testing.T) *VM {
	t.Helper()
	return newTestVM(t, buildCode(t, func(b *cell.Builder) {}))
}

func TestRepeatCont_TrampolineCountsDownAndSetsC0ToNextIteration(t *testing.T) {
	vm := emptyTestVM(t)
	after := Quit1
	body := &QuitCont{ExitCode: 42}
	rc := &RepeatCont{Body: body, After: after, Remaining: 3}

	next, err := rc.trampoline(vm)
	if err != nil {
		t.Fatalf("trampoline: %v", err)
	}
	if next != body {
		t.Fatalf("trampoline returned %v, want body", next)
	}
	c0, ok := vm.cr.Get(RegC0)
	if !ok {
		t.Fatalf("c0 not set after RepeatCont trampoline")
	}
	nrc, ok := c0.Cont.(*RepeatCont)
	if !ok || nrc.Remaining != 2 {
		t.Fatalf("c0 = %v, want a RepeatCont with Remaining=2", c0.Cont)
	}
}

func TestRepeatCont_TrampolineAtZeroRemainingReturnsAfterWithoutTouchingC0(t *testing.T) {
	vm := emptyTestVM(t)
	vm.cr.Set(RegC0, ContReg(Quit0))
	after := &QuitCont{ExitCode: 7}
	rc := &RepeatCont{Body: Quit1, After: after, Remaining: 0}

	next, err := rc.trampoline(vm)
	if err != nil {
		t.Fatalf("trampoline: %v", err)
	}
	if next != after {
		t.Fatalf("trampoline returned %v, want after", next)
	}
	c0, _ := vm.cr.Get(RegC0)
	if c0.Cont != Quit0 {
		t.Fatalf("exhausted RepeatCont touched c0, got %v", c0.Cont)
	}
}

func TestUntilCont_TrampolineTrueFlagGoesToAfter(t *testing.T) {
	vm := emptyTestVM(t)
	vm.stack.Push(IntFromInt64(1))
	after := &QuitCont{ExitCode: 9}
	uc := &UntilCont{Body: Quit1, After: after}

	next, err := uc.trampoline(vm)
	if err != nil {
		t.Fatalf("trampoline: %v", err)
	}
	if next != after {
		t.Fatalf("true flag: trampoline returned %v, want after", next)
	}
}

func TestUntilCont_TrampolineFalseFlagRepeatsAndSetsC0ToSelf(t *testing.T) {
	vm := emptyTestVM(t)
	vm.stack.Push(IntFromInt64(0))
	uc := &UntilCont{Body: Quit1, After: Quit0}

	next, err := uc.trampoline(vm)
	if err != nil {
		t.Fatalf("trampoline: %v", err)
	}
	if next != uc.Body {
		t.Fatalf("false flag: trampoline returned %v, want body", next)
	}
	c0, ok := vm.cr.Get(RegC0)
	if !ok || c0.Cont != uc {
		t.Fatalf("c0 = %v, want the UntilCont itself", c0.Cont)
	}
}

func TestUntilCont_TrampolinePropagatesStackUnderflow(t *testing.T) {
	vm := emptyTestVM(t)
	uc := &UntilCont{Body: Quit1, After: Quit0}
	if _, err := uc.trampoline(vm); err != ErrStackUnderflow {
		t.Fatalf("trampoline on empty stack = %v, want ErrStackUnderflow", err)
	}
}

func TestWhileCont_TrampolineRunsCondThenBodyThenCondAgain(t *testing.T) {
	vm := emptyTestVM(t)
	cond := Quit0
	body := Quit1
	after := &QuitCont{ExitCode: 5}
	wc := &WhileCont{Cond: cond, Body: body, After: after, CheckCond: false}

	// First hop: not yet checked condition, so trampoline hands back Cond
	// and arms c0 to check the result next time.
	next, err := wc.trampoline(vm)
	if err != nil {
		t.Fatalf("trampoline: %v", err)
	}
	if next != cond {
		t.Fatalf("CheckCond=false: returned %v, want cond", next)
	}
	c0, ok := vm.cr.Get(RegC0)
	if !ok {
		t.Fatalf("c0 not armed after first hop")
	}
	armed, ok := c0.Cont.(*WhileCont)
	if !ok || !armed.CheckCond {
		t.Fatalf("c0 = %v, want a WhileCont with CheckCond=true", c0.Cont)
	}

	// Second hop: condition true, runs body and re-arms for the next cond
	// check.
	vm.stack.Push(IntFromInt64(1))
	next, err = armed.trampoline(vm)
	if err != nil {
		t.Fatalf("trampoline: %v", err)
	}
	if next != body {
		t.Fatalf("CheckCond=true, flag true: returned %v, want body", next)
	}
	c0, _ = vm.cr.Get(RegC0)
	rearmed, ok := c0.Cont.(*WhileCont)
	if !ok || rearmed.CheckCond {
		t.Fatalf("c0 after body-hop = %v, want CheckCond=false", c0.Cont)
	}
}

func TestWhileCont_TrampolineFalseConditionGoesToAfter(t *testing.T) {
	vm := emptyTestVM(t)
	after := &QuitCont{ExitCode: 5}
	wc := &WhileCont{Cond: Quit0, Body: Quit1, After: after, CheckCond: true}
	vm.stack.Push(IntFromInt64(0))

	next, err := wc.trampoline(vm)
	if err != nil {
		t.Fatalf("trampoline: %v", err)
	}
	if next != after {
		t.Fatalf("false condition: returned %v, want after", next)
	}
}

func TestAgainCont_TrampolineAlwaysSetsC0ToSelfAndReturnsBody(t *testing.T) {
	vm := emptyTestVM(t)
	ac := &AgainCont{Body: Quit1}

	next, err := ac.trampoline(vm)
	if err != nil {
		t.Fatalf("trampoline: %v", err)
	}
	if next != ac.Body {
		t.Fatalf("returned %v, want body", next)
	}
	c0, ok := vm.cr.Get(RegC0)
	if !ok || c0.Cont != ac {
		t.Fatalf("c0 = %v, want the AgainCont itself", c0.Cont)
	}
}

func TestArgContExt_TrampolineMergesSaveThenReturnsInner(t *testing.T) {
	vm := emptyTestVM(t)
	var sl Savelist
	sl.Set(RegC1, ContReg(Quit1))
	ext := &ArgContExt{Inner: Quit0, Save: sl}

	next, err := ext.trampoline(vm)
	if err != nil {
		t.Fatalf("trampoline: %v", err)
	}
	if next != ext.Inner {
		t.Fatalf("returned %v, want Inner", next)
	}
	c1, ok := vm.cr.Get(RegC1)
	if !ok || c1.Cont != Quit1 {
		t.Fatalf("Save was not merged into c1, got %v", c1.Cont)
	}
}

func TestEnvelopeC1_OnlyDefinesSetRegisters(t *testing.T) {
	cont := envelopeC1(Quit0, ContReg(Quit1), RegValue{})
	ext, ok := cont.(*ArgContExt)
	if !ok {
		t.Fatalf("envelopeC1 did not return an ArgContExt")
	}
	if _, ok := ext.Save.Get(RegC0); !ok {
		t.Fatalf("envelopeC1 did not define c0")
	}
	if _, ok := ext.Save.Get(RegC1); ok {
		t.Fatalf("envelopeC1 defined c1 from an unset RegValue")
	}
	if ext.Inner != Quit0 {
		t.Fatalf("envelopeC1 wrapped the wrong continuation")
	}
}

func TestVM_C1SaveSetPropagatesC1IntoC0sSavelistThenSwaps(t *testing.T) {
	vm := emptyTestVM(t)
	oc := &OrdCont{Code: cell.NewSlice(cell.Empty)}
	vm.cr.Set(RegC0, ContReg(oc))
	vm.cr.Set(RegC1, ContReg(Quit1))

	vm.c1SaveSet()

	saved, ok := oc.Save.Get(RegC1)
	if !ok || saved.Cont != Quit1 {
		t.Fatalf("c1SaveSet did not save the old c1 into c0's savelist")
	}
	c1, ok := vm.cr.Get(RegC1)
	if !ok || c1.Cont != oc {
		t.Fatalf("c1SaveSet did not move the old c0 into c1, got %v", c1.Cont)
	}
}

func TestIsTrueFlag(t *testing.T) {
	if isTrueFlag(IntFromInt64(0)) {
		t.Fatalf("zero int reported true")
	}
	if !isTrueFlag(IntFromInt64(-1)) {
		t.Fatalf("nonzero int reported false")
	}
	if isTrueFlag(Null()) {
		t.Fatalf("Null reported true")
	}
	if isTrueFlag(NaN()) {
		t.Fatalf("NaN reported true")
	}
}
