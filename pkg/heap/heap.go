// Package heap implements the value heap described in spec.md §3/§4.2:
// the single owned resource — interned strings plus the global
// variable table — that is threaded by value through compile, execute,
// and successive REPL turns. It generalizes the teacher's
// runtime.Environment (runtime/enviroment.go), which resolves globals
// by walking a name-keyed map on every lookup, into the spec's
// append-only name↔index table so the VM's hot path never hashes a
// string per global access.
package heap

import (
	"golang.org/x/exp/slices"

	"github.com/dami-lang/goclox/pkg/value"
)

// GlobalIndex is the dense 16-bit id assigned to a global variable
// name at first mention (spec.md's GvIdx).
type GlobalIndex uint16

// Heap owns interned strings and the global-variable table. It
// outlives individual compile/execute turns; the zero value is not
// usable, use New.
type Heap struct {
	strings map[string]*value.InternedString

	indexByName map[string]GlobalIndex
	names       []string // names[idx] == the name registered for idx
	values      []value.Value
	defined     []bool
}

// New constructs an empty heap, ready to be shared across a whole REPL
// session or a single compile/execute turn.
func New() *Heap {
	return &Heap{
		strings:     make(map[string]*value.InternedString),
		indexByName: make(map[string]GlobalIndex),
	}
}

// Intern returns the ref for bytes, creating and storing one on first
// sight. Two calls with byte-equal content always return the same
// pointer, so Value equality for strings can be — and is — plain
// pointer comparison (pkg/value.Value.Equal).
func (h *Heap) Intern(bytes string) *value.InternedString {
	if ref, ok := h.strings[bytes]; ok {
		return ref
	}
	ref := &value.InternedString{Bytes: bytes}
	h.strings[bytes] = ref
	return ref
}

// DeclareGlobal assigns name a fresh index on first call; later calls
// for the same name are idempotent and return the index already
// assigned. Indices are append-only and stable for the heap's life.
func (h *Heap) DeclareGlobal(name string) GlobalIndex {
	if idx, ok := h.indexByName[name]; ok {
		return idx
	}
	idx := GlobalIndex(len(h.names))
	h.indexByName[name] = idx
	h.names = append(h.names, name)
	h.values = slices.Grow(h.values, 1)
	h.values = append(h.values, value.Nil)
	h.defined = append(h.defined, false)
	return idx
}

// NameOf returns the name registered for idx, for diagnostics such as
// "Undefined variable <name>". Panics if idx was never declared — a
// compiler or VM bug, not a user-facing condition.
func (h *Heap) NameOf(idx GlobalIndex) string {
	return h.names[idx]
}

// GetGlobal returns the value stored at idx and whether it has ever
// been set via SetGlobal/define. A declared-but-undefined global
// (e.g. referenced before its `var` statement ran) reports ok == false.
func (h *Heap) GetGlobal(idx GlobalIndex) (value.Value, bool) {
	if int(idx) >= len(h.defined) || !h.defined[idx] {
		return value.Nil, false
	}
	return h.values[idx], true
}

// SetGlobal stores v at idx, growing the backing array on demand, and
// marks idx as defined. Used for both `var` definition (OP_DEFINE_GLOBAL)
// and assignment (OP_SET_GLOBAL) — the distinction between "must already
// exist" and "may create" is the VM's, not the heap's.
func (h *Heap) SetGlobal(idx GlobalIndex, v value.Value) {
	for int(idx) >= len(h.values) {
		h.values = append(h.values, value.Nil)
		h.defined = append(h.defined, false)
	}
	h.values[idx] = v
	h.defined[idx] = true
}

// IsDeclared reports whether idx was assigned by a prior DeclareGlobal
// call (as opposed to merely being in range).
func (h *Heap) IsDeclared(idx GlobalIndex) bool {
	return int(idx) < len(h.names)
}
