package tvm

import (
	"sort"

	"golang.org/x/exp/maps"
)

// OpHandler executes one opcode against vm, consuming any immediate
// operands it needs directly from vm.code. It returns an error that step()
// converts into a VM exception.
type OpHandler func(vm *VM) error

// DispatchTable is the static, per-codepage prefix structure spec.md §4.3
// describes: a byte-opcode keyed table of handlers plus their static gas
// prices, built once at codepage-registration time and never mutated
// afterwards (spec.md §9, "a static, immutable dispatch table per
// codepage").
type DispatchTable struct {
	handlers map[byte]OpHandler
	prices   map[byte]int64
	names    map[byte]string
}

// NewDispatchTable returns an empty dispatch table; opcodes are added with
// Register.
func NewDispatchTable() *DispatchTable {
	return &DispatchTable{
		handlers: make(map[byte]OpHandler),
		prices:   make(map[byte]int64),
		names:    make(map[byte]string),
	}
}

// Register adds an opcode with its static gas price and handler.
func (d *DispatchTable) Register(op byte, name string, price int64, fn OpHandler) {
	d.handlers[op] = fn
	d.prices[op] = price
	d.names[op] = name
}

// Lookup returns the handler and static price registered for op.
func (d *DispatchTable) Lookup(op byte) (OpHandler, int64, bool) {
	fn, ok := d.handlers[op]
	if !ok {
		return nil, 0, false
	}
	return fn, d.prices[op], true
}

// Opcodes returns the registered opcode bytes in ascending order.
func (d *DispatchTable) Opcodes() []byte {
	keys := maps.Keys(d.handlers)
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// CodepageRegistry maps codepage ids to their immutable DispatchTable,
// mirroring the teacher's per-revision static gas-price tables (spec.md
// §4.3, "SETCP(n) loads a new static dispatch table; unknown n raises
// invalid-opcode").
type CodepageRegistry struct {
	tables map[int]*DispatchTable
}

// NewCodepageRegistry returns a registry with no codepages registered.
func NewCodepageRegistry() *CodepageRegistry {
	return &CodepageRegistry{tables: make(map[int]*DispatchTable)}
}

// Register installs table as codepage id's dispatch table.
func (r *CodepageRegistry) Register(id int, table *DispatchTable) {
	r.tables[id] = table
}

// Get returns the dispatch table for codepage id, if registered.
func (r *CodepageRegistry) Get(id int) (*DispatchTable, bool) {
	t, ok := r.tables[id]
	return t, ok
}
