package bytecode

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dami-lang/goclox/pkg/heap"
	"github.com/dami-lang/goclox/pkg/value"
)

func TestCodeAndLinesStayInLockstep(t *testing.T) {
	c := NewChunk()
	c.Emit(OpNil, 1)
	c.EmitOperand(OpConstant, 0, 2)
	c.Emit(OpReturn, 3)
	assert.Equal(t, len(c.Code), len(c.Lines))
}

func TestAddConstantDedupesScalars(t *testing.T) {
	c := NewChunk()
	a := c.AddConstant(value.Number(1))
	b := c.AddConstant(value.Number(1))
	assert.Equal(t, a, b)

	tA := c.AddConstant(value.Bool(true))
	tB := c.AddConstant(value.Bool(true))
	assert.Equal(t, tA, tB)
}

func TestAddConstantDistinctValuesDistinctIndices(t *testing.T) {
	c := NewChunk()
	a := c.AddConstant(value.Number(1))
	b := c.AddConstant(value.Number(2))
	assert.NotEqual(t, a, b)
}

func TestDisassembleRendersGlobalName(t *testing.T) {
	h := heap.New()
	idx := h.DeclareGlobal("x")

	c := NewChunk()
	c.EmitOperand(OpGetGlobal, int(idx), 1)
	c.Emit(OpReturn, 1)

	out := Disassemble(c, h, "test")
	assert.Contains(t, out, "OP_GET_GLOBAL")
	assert.Contains(t, out, "'x'")
}
