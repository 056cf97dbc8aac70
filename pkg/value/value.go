// Package value defines the tagged Value variant executed by pkg/vm
// and produced by pkg/compiler, in the spirit of the teacher's
// RuntimeVal interface hierarchy (runtime/value.go) but as a single
// closed sum rather than an interface with one implementation per
// case — spec.md calls for a tagged variant, not a class hierarchy,
// so dispatch is a switch over Kind instead of a type switch.
package value

import "strconv"

// Kind tags the variant held by a Value.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// InternedString is an immutable string owned by a value heap
// (pkg/heap). Two Values holding the same *InternedString pointer are
// guaranteed to hold byte-equal contents, and — because a heap only
// ever hands out one *InternedString per distinct content — the
// converse holds too: equal bytes always share one pointer.
type InternedString struct {
	Bytes string
}

// Value is a tagged union over nil, bool, number, and string-ref.
type Value struct {
	kind    Kind
	num     float64
	boolean bool
	str     *InternedString
}

// Nil is the singular nil value.
var Nil = Value{kind: KindNil}

// Bool constructs a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, boolean: b} }

// Number constructs a numeric Value.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// String constructs a Value borrowing the given interned string.
func String(ref *InternedString) Value { return Value{kind: KindString, str: ref} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNil() bool    { return v.kind == KindNil }
func (v Value) IsBool() bool   { return v.kind == KindBool }
func (v Value) IsNumber() bool { return v.kind == KindNumber }
func (v Value) IsString() bool { return v.kind == KindString }

// AsBool panics if v is not a boolean; callers must check IsBool
// first, exactly as the teacher's type-switched RuntimeVal accesses
// do via a failed assertion.
func (v Value) AsBool() bool {
	if v.kind != KindBool {
		panic(&BadTypeAccess{Expected: KindBool.String(), Actual: v.TypeName()})
	}
	return v.boolean
}

func (v Value) AsNumber() float64 { return v.num }

func (v Value) AsString() *InternedString { return v.str }

// TypeName names v's kind for BadTypeAccess diagnostics.
func (v Value) TypeName() string { return v.kind.String() }

// Falsy implements the falsiness rule: only `false` is falsy; `nil`,
// numbers, and strings are never falsy. Unlike canonical Lox (and the
// teacher's own `falsey`), `nil` is not falsy here.
func (v Value) Falsy() bool {
	return v.kind == KindBool && !v.boolean
}

// Equal implements spec.md §3's equality rules: same-kind compares
// componentwise, cross-kind is always false, and string equality is
// ref identity (guaranteed by interning in pkg/heap).
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNil:
		return true
	case KindBool:
		return v.boolean == other.boolean
	case KindNumber:
		return v.num == other.num
	case KindString:
		return v.str == other.str
	default:
		return false
	}
}

// String renders v the way OP_PRINT does: numbers in default decimal
// form, booleans as true/false, nil as nil, strings as their raw
// bytes (no quoting — this is program output, not a debug repr).
func (v Value) String() string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindBool:
		if v.boolean {
			return "true"
		}
		return "false"
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindString:
		return v.str.Bytes
	default:
		return "?"
	}
}

// BadTypeAccess reports a runtime operand-type mismatch, per spec.md §3.
type BadTypeAccess struct {
	Expected string
	Actual   string
}

func (e *BadTypeAccess) Error() string {
	return "expected " + e.Expected + ", got " + e.Actual
}
