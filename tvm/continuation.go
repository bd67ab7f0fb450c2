package tvm

import "github.com/tonkeeper/tvmcore/cell"

// Continuation is the common interface over spec.md §3's eight continuation
// variants: a polymorphic "jump-to, carry-control-data" capability set. All
// continuations are reference-counted in the reference implementation; in
// Go that is simply ordinary garbage collection over shared pointers, since
// the DAG of continuations is acyclic (spec.md §9).
type Continuation interface {
	// SaveList returns the continuation's attached savelist, or nil.
	SaveList() *Savelist
	// NArgs returns the continuation's declared argument count and whether
	// it is set at all (spec.md §3: "a continuation with a saved stack MUST
	// carry nargs or None consistently").
	NArgs() (int, bool)
	// OwnStack returns the continuation's own saved stack, or nil.
	OwnStack() *Stack

	// trampoline executes one hop of this continuation's jump-to-next logic
	// against vm, returning the next continuation to jump to. Returning
	// (nil, nil) means this hop is terminal: either an OrdCont installed its
	// code as the VM's current code slice, or a Quit/ExcQuit continuation
	// set vm's exit status.
	trampoline(vm *VM) (Continuation, error)
}

// OrdCont is the ordinary continuation: a code slice plus optional saved
// stack, saved control registers, codepage id, and nargs (spec.md §3).
type OrdCont struct {
	Code     cell.Slice
	Stack    *Stack // optional saved stack
	Save     Savelist
	Codepage int
	Nargs    int
	HasNargs bool
}

func (c *OrdCont) SaveList() *Savelist   { return &c.Save }
func (c *OrdCont) OwnStack() *Stack      { return c.Stack }
func (c *OrdCont) NArgs() (int, bool)    { return c.Nargs, c.HasNargs }

func (c *OrdCont) trampoline(vm *VM) (Continuation, error) {
	vm.installCode(c.Code, c.Codepage)
	c.Save.Merge(&vm.cr)
	return nil, nil
}

// QuitCont is the terminal continuation carrying an exit code (spec.md §3).
type QuitCont struct {
	ExitCode int
}

func (c *QuitCont) SaveList() *Savelist { return nil }
func (c *QuitCont) OwnStack() *Stack    { return nil }
func (c *QuitCont) NArgs() (int, bool)  { return 0, false }

func (c *QuitCont) trampoline(vm *VM) (Continuation, error) {
	vm.exitCode = c.ExitCode
	vm.exited = true
	return nil, nil
}

// Quit0/Quit1 are the canonical success/alt-success sentinel continuations,
// immutable process-wide singletons (spec.md §9).
var (
	Quit0 Continuation = &QuitCont{ExitCode: 0}
	Quit1 Continuation = &QuitCont{ExitCode: 1}
)

// ExcQuitCont is the sentinel default exception handler (c2): when invoked
// it pops [arg, code] from the stack and exits with code (spec.md §3, §4.3).
type ExcQuitCont struct{}

func (c *ExcQuitCont) SaveList() *Savelist { return nil }
func (c *ExcQuitCont) OwnStack() *Stack    { return nil }
func (c *ExcQuitCont) NArgs() (int, bool)  { return 0, false }

func (c *ExcQuitCont) trampoline(vm *VM) (Continuation, error) {
	codeVal, err := vm.stack.Pop()
	if err != nil {
		vm.exitCode = int(ExcUnknown)
		vm.exited = true
		return nil, nil
	}
	_, _ = vm.stack.Pop() // discard arg
	code := 0
	if codeVal.Kind == KindInt && codeVal.Valid && codeVal.Int != nil {
		code = int(codeVal.Int.Uint64())
	}
	vm.exitCode = code
	vm.exited = true
	return nil, nil
}

// ExcQuit is the canonical immutable exception-quit singleton (spec.md §9).
var ExcQuit Continuation = &ExcQuitCont{}

// RepeatCont implements the REPEAT loop primitive: run body remaining
// times, then jump to after (spec.md §3, §4.2).
type RepeatCont struct {
	Body      Continuation
	After     Continuation
	Remaining int64
}

func (c *RepeatCont) SaveList() *Savelist { return nil }
func (c *RepeatCont) OwnStack() *Stack    { return nil }
func (c *RepeatCont) NArgs() (int, bool)  { return 0, false }

func (c *RepeatCont) trampoline(vm *VM) (Continuation, error) {
	if c.Remaining <= 0 {
		return c.After, nil
	}
	next := &RepeatCont{Body: c.Body, After: c.After, Remaining: c.Remaining - 1}
	vm.cr.Set(RegC0, ContReg(next))
	return c.Body, nil
}

// UntilCont implements the UNTIL loop primitive: run body; body's return
// pops a flag; zero => repeat, nonzero => jump to after (spec.md §3, §4.2).
type UntilCont struct {
	Body  Continuation
	After Continuation
}

func (c *UntilCont) SaveList() *Savelist { return nil }
func (c *UntilCont) OwnStack() *Stack    { return nil }
func (c *UntilCont) NArgs() (int, bool)  { return 0, false }

func (c *UntilCont) trampoline(vm *VM) (Continuation, error) {
	flag, err := vm.stack.Pop()
	if err != nil {
		return nil, err
	}
	if isTrueFlag(flag) {
		return c.After, nil
	}
	vm.cr.Set(RegC0, ContReg(c))
	return c.Body, nil
}

// WhileCont implements the WHILE loop primitive, alternating between the
// condition continuation and the body continuation. checkCond distinguishes
// which phase just finished: true means cond just ran and its result is on
// the stack; false means body just ran and cond should run next.
type WhileCont struct {
	Cond      Continuation
	Body      Continuation
	After     Continuation
	CheckCond bool
}

func (c *WhileCont) SaveList() *Savelist { return nil }
func (c *WhileCont) OwnStack() *Stack    { return nil }
func (c *WhileCont) NArgs() (int, bool)  { return 0, false }

func (c *WhileCont) trampoline(vm *VM) (Continuation, error) {
	if !c.CheckCond {
		vm.cr.Set(RegC0, ContReg(&WhileCont{Cond: c.Cond, Body: c.Body, After: c.After, CheckCond: true}))
		return c.Cond, nil
	}
	flag, err := vm.stack.Pop()
	if err != nil {
		return nil, err
	}
	if !isTrueFlag(flag) {
		return c.After, nil
	}
	vm.cr.Set(RegC0, ContReg(&WhileCont{Cond: c.Cond, Body: c.Body, After: c.After, CheckCond: false}))
	return c.Body, nil
}

// AgainCont implements the AGAIN loop primitive: body runs forever until an
// explicit jump elsewhere replaces c0 (spec.md §3, §4.2).
type AgainCont struct {
	Body Continuation
}

func (c *AgainCont) SaveList() *Savelist { return nil }
func (c *AgainCont) OwnStack() *Stack    { return nil }
func (c *AgainCont) NArgs() (int, bool)  { return 0, false }

func (c *AgainCont) trampoline(vm *VM) (Continuation, error) {
	vm.cr.Set(RegC0, ContReg(c))
	return c.Body, nil
}

// ArgContExt wraps an inner continuation with additional saved control data
// that must be merged into the current registers before jumping to inner
// (spec.md §3, §4.2 envelope_c1).
type ArgContExt struct {
	Inner Continuation
	Save  Savelist
}

func (c *ArgContExt) SaveList() *Savelist    { return &c.Save }
func (c *ArgContExt) OwnStack() *Stack       { return c.Inner.OwnStack() }
func (c *ArgContExt) NArgs() (int, bool)     { return c.Inner.NArgs() }

func (c *ArgContExt) trampoline(vm *VM) (Continuation, error) {
	c.Save.Merge(&vm.cr)
	return c.Inner, nil
}

// isTrueFlag reports whether a popped stack value represents a "true"
// looping condition: any nonzero, valid integer.
func isTrueFlag(v Value) bool {
	return v.Kind == KindInt && v.Valid && v.Int != nil && !v.Int.IsZero()
}
