package compiler

import (
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dami-lang/goclox/pkg/bytecode"
	"github.com/dami-lang/goclox/pkg/heap"
)

func opcodes(c *bytecode.Chunk) []bytecode.OpCode {
	ops := make([]bytecode.OpCode, len(c.Code))
	for i, instr := range c.Code {
		ops[i] = instr.Op
	}
	return ops
}

func TestArithmeticPrecedence(t *testing.T) {
	h := heap.New()
	chunk, err := Compile("print 1 + 2 * 3;", h, nil)
	require.NoError(t, err)
	assert.Equal(t, []bytecode.OpCode{
		bytecode.OpConstant, bytecode.OpConstant, bytecode.OpConstant,
		bytecode.OpMultiply, bytecode.OpAdd, bytecode.OpPrint, bytecode.OpReturn,
	}, opcodes(chunk))
}

func TestComparisonOperatorsExpandToTwoOpcodes(t *testing.T) {
	h := heap.New()
	chunk, err := Compile("1 <= 2;", h, nil)
	require.NoError(t, err)
	assert.Equal(t, []bytecode.OpCode{
		bytecode.OpConstant, bytecode.OpConstant,
		bytecode.OpGreater, bytecode.OpNot, bytecode.OpPop, bytecode.OpReturn,
	}, opcodes(chunk))
}

func TestVarDeclarationEmitsDefineGlobal(t *testing.T) {
	h := heap.New()
	chunk, err := Compile("var x = 10;", h, nil)
	require.NoError(t, err)
	assert.Equal(t, []bytecode.OpCode{
		bytecode.OpConstant, bytecode.OpDefineGlobal, bytecode.OpReturn,
	}, opcodes(chunk))
}

func TestVarDeclarationWithoutInitializerEmitsNil(t *testing.T) {
	h := heap.New()
	chunk, err := Compile("var x;", h, nil)
	require.NoError(t, err)
	assert.Equal(t, []bytecode.OpCode{
		bytecode.OpNil, bytecode.OpDefineGlobal, bytecode.OpReturn,
	}, opcodes(chunk))
}

func TestAssignmentEmitsSetGlobalAndLeavesValueOnStack(t *testing.T) {
	h := heap.New()
	chunk, err := Compile("x = 5;", h, nil)
	require.NoError(t, err)
	assert.Equal(t, []bytecode.OpCode{
		bytecode.OpConstant, bytecode.OpSetGlobal, bytecode.OpPop, bytecode.OpReturn,
	}, opcodes(chunk))
}

func TestStringLiteralInternsIntoHeap(t *testing.T) {
	h := heap.New()
	chunk, err := Compile(`print "foobar";`, h, nil)
	require.NoError(t, err)
	a := h.Intern("foobar")
	b := h.Intern("foobar")
	assert.Same(t, a, b)
	assert.Same(t, a, chunk.Constants[0].AsString())
}

func TestInvalidAssignmentTarget(t *testing.T) {
	h := heap.New()
	_, err := Compile("a + b = c;", h, nil)
	require.Error(t, err)
	merr, ok := err.(*multierror.Error)
	require.True(t, ok)
	found := false
	for _, e := range merr.Errors {
		if ce, ok := e.(*CompileError); ok && ce.Message == "Invalid assignment target." {
			found = true
		}
	}
	assert.True(t, found, "expected an Invalid assignment target error, got: %v", err)
}

func TestCompileRecoversAndReportsMultipleErrors(t *testing.T) {
	h := heap.New()
	_, err := Compile("var ; var y = ; print y;", h, nil)
	require.Error(t, err)
	merr, ok := err.(*multierror.Error)
	require.True(t, ok)
	assert.GreaterOrEqual(t, len(merr.Errors), 2)
}

func TestMissingSemicolonIsCompileError(t *testing.T) {
	h := heap.New()
	_, err := Compile("print 1", h, nil)
	require.Error(t, err)
}

func TestExpressionStatementEmitsPop(t *testing.T) {
	h := heap.New()
	chunk, err := Compile("1 + 1;", h, nil)
	require.NoError(t, err)
	last := chunk.Code[len(chunk.Code)-2] // before OP_RETURN
	assert.Equal(t, bytecode.OpPop, last.Op)
}
