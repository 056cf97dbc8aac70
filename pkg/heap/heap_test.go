package heap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dami-lang/goclox/pkg/value"
)

func TestInternDedupesByContent(t *testing.T) {
	h := New()
	a := h.Intern("foobar")
	b := h.Intern("foobar")
	assert.Same(t, a, b)
}

func TestInternDistinctContentDistinctRefs(t *testing.T) {
	h := New()
	a := h.Intern("foo")
	b := h.Intern("bar")
	assert.NotSame(t, a, b)
}

func TestDeclareGlobalIdempotent(t *testing.T) {
	h := New()
	a := h.DeclareGlobal("x")
	b := h.DeclareGlobal("x")
	assert.Equal(t, a, b)
}

func TestDeclareGlobalAppendOnly(t *testing.T) {
	h := New()
	a := h.DeclareGlobal("a")
	b := h.DeclareGlobal("b")
	assert.NotEqual(t, a, b)
	assert.Equal(t, "a", h.NameOf(a))
	assert.Equal(t, "b", h.NameOf(b))
}

func TestGetSetGlobal(t *testing.T) {
	h := New()
	idx := h.DeclareGlobal("x")
	_, ok := h.GetGlobal(idx)
	assert.False(t, ok, "undefined global reports not-ok")

	h.SetGlobal(idx, value.Number(42))
	v, ok := h.GetGlobal(idx)
	assert.True(t, ok)
	assert.Equal(t, value.Number(42), v)
}

func TestGlobalIndexStableAcrossManyDeclarations(t *testing.T) {
	h := New()
	first := h.DeclareGlobal("first")
	for i := 0; i < 100; i++ {
		h.DeclareGlobal("filler")
	}
	assert.Equal(t, first, h.DeclareGlobal("first"))
}
