package bytecode

import (
	"fmt"
	"strings"

	"github.com/dami-lang/goclox/pkg/heap"
)

// NameLookup resolves a global index to its diagnostic name; pkg/heap.Heap
// satisfies this via its NameOf method. A separate interface keeps this
// package from depending on pkg/heap for anything but this one call.
type NameLookup interface {
	NameOf(idx heap.GlobalIndex) string
}

// Disassemble renders one line per instruction in the column form
// spec.md §4.5 specifies: "offset(4d) | line(4d) | mnemonic [operand]".
// Constant operands are rendered with their pool value; global-variable
// operands are resolved to their declared name via names.
func Disassemble(c *Chunk, names NameLookup, title string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "== %s ==\n", title)
	for offset := range c.Code {
		b.WriteString(DisassembleInstruction(c, names, offset))
		b.WriteByte('\n')
	}
	return b.String()
}

// DisassembleInstruction renders the single instruction at offset.
func DisassembleInstruction(c *Chunk, names NameLookup, offset int) string {
	instr := c.Code[offset]
	line := c.Lines[offset]
	prefix := fmt.Sprintf("%04d | %4d | %s", offset, line, instr.Op)

	if !instr.Op.hasOperand() {
		return prefix
	}

	switch instr.Op {
	case OpConstant:
		operand := instr.Operand
		var repr string
		if operand >= 0 && operand < len(c.Constants) {
			repr = c.Constants[operand].String()
		} else {
			repr = "<out of range>"
		}
		return fmt.Sprintf("%s %d '%s'", prefix, operand, repr)
	case OpDefineGlobal, OpGetGlobal, OpSetGlobal:
		name := "<unknown>"
		if names != nil {
			name = names.NameOf(heap.GlobalIndex(instr.Operand))
		}
		return fmt.Sprintf("%s %d '%s'", prefix, instr.Operand, name)
	default:
		return fmt.Sprintf("%s %d", prefix, instr.Operand)
	}
}
