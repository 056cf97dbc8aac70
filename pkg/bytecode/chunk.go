package bytecode

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/dami-lang/goclox/pkg/value"
)

// Instruction is one opcode plus its (possibly absent) operand.
// Operand is a ConstIdx for OpConstant, a GvIdx for the three global
// opcodes, and unused otherwise.
type Instruction struct {
	Op      OpCode
	Operand int
}

// Chunk is the compiled artifact: instruction stream, constant pool,
// and per-instruction line map. len(Code) == len(Lines) always — see
// spec.md invariant 1, enforced by construction since the only way to
// append is Emit.
type Chunk struct {
	Code      []Instruction
	Lines     []int
	Constants []value.Value

	constDedup map[string]int // cache for cheap constant reuse, teacher's runtime.Chunk.constMap
}

// NewChunk returns an empty chunk ready for compilation.
func NewChunk() *Chunk {
	return &Chunk{
		Code:       make([]Instruction, 0, 64),
		Lines:      make([]int, 0, 64),
		Constants:  make([]value.Value, 0, 16),
		constDedup: make(map[string]int),
	}
}

// Emit appends an operand-less instruction and returns its offset.
func (c *Chunk) Emit(op OpCode, line int) int {
	return c.emit(op, 0, line)
}

// EmitOperand appends an instruction carrying operand and returns its
// offset (used for OpConstant/OpDefineGlobal/OpGetGlobal/OpSetGlobal,
// and for backpatchable placeholders).
func (c *Chunk) EmitOperand(op OpCode, operand int, line int) int {
	return c.emit(op, operand, line)
}

func (c *Chunk) emit(op OpCode, operand int, line int) int {
	ip := len(c.Code)
	c.Code = append(c.Code, Instruction{Op: op, Operand: operand})
	c.Lines = append(c.Lines, line)
	return ip
}

// AddConstant appends v to the constant pool and returns its index,
// deduplicating cheap scalar constants the way the teacher's
// Chunk.addConst does — correctness never depends on this, it is a
// size optimization only (spec.md §4.3 makes dedup optional).
func (c *Chunk) AddConstant(v value.Value) int {
	if key, ok := dedupKey(v); ok {
		if idx, exists := c.constDedup[key]; exists {
			return idx
		}
		idx := len(c.Constants)
		c.Constants = slices.Grow(c.Constants, 1)
		c.Constants = append(c.Constants, v)
		c.constDedup[key] = idx
		return idx
	}
	idx := len(c.Constants)
	c.Constants = append(c.Constants, v)
	return idx
}

func dedupKey(v value.Value) (string, bool) {
	switch v.Kind() {
	case value.KindNumber:
		return fmt.Sprintf("num:%v", v.AsNumber()), true
	case value.KindBool:
		return fmt.Sprintf("bool:%v", v.AsBool()), true
	case value.KindNil:
		return "nil", true
	default:
		// String constants are not deduplicated here: the interner in
		// pkg/heap already guarantees identical string-refs, so a second
		// AddConstant call with an equal-content ref is cheap to add and
		// keeping dedup scoped to scalars keeps this cache simple.
		return "", false
	}
}
