// Package vm implements the stack-based bytecode interpreter described
// in spec.md §4.5. It generalizes the teacher's runtime.Interpreter
// (runtime/interpreter.go), a recursive tree-walker dispatching on
// ast.Node via a type switch, into a flat fetch-decode-execute loop
// over a pkg/bytecode.Chunk — the same opcode-driven shape as the
// teacher's own runtime/vm.go, but restricted to spec.md's closed
// opcode set (no OP_CALL, no OP_JUMP: this spec has no control flow,
// functions, or closures).
package vm

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/dami-lang/goclox/pkg/bytecode"
	"github.com/dami-lang/goclox/pkg/heap"
	"github.com/dami-lang/goclox/pkg/value"
)

const initialStackCapacity = 1024

// RuntimeError reports a failure raised while executing a chunk: the
// source line it happened on (resolved via Chunk.Lines) and a message,
// per spec.md §4.5/§7 ("line <N>: <message>").
type RuntimeError struct {
	Line    int
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// VM is a stack machine that executes one Chunk at a time against a
// shared Heap. A VM has no state of its own beyond its operand stack,
// so the same VM can run many chunks back to back (successive REPL
// turns) as long as the Heap passed to Run is the one the chunk was
// compiled against.
type VM struct {
	stack []value.Value
	log   *logrus.Logger
}

// New returns a VM with its operand stack pre-grown to
// initialStackCapacity, per spec.md §4.5 ("stack starts around 1024
// slots and grows as needed").
func New(log *logrus.Logger) *VM {
	return &VM{
		stack: make([]value.Value, 0, initialStackCapacity),
		log:   log,
	}
}

// Run executes chunk against h, printing any OP_PRINT output to w.
// It returns the first RuntimeError encountered, if any; execution
// stops at the first error, matching spec.md's "a runtime error halts
// the current chunk immediately" invariant.
func (vm *VM) Run(chunk *bytecode.Chunk, h *heap.Heap, w writer) error {
	vm.stack = vm.stack[:0]

	if vm.log != nil {
		vm.log.Debug(bytecode.Disassemble(chunk, h, "run"))
	}

	for ip := 0; ip < len(chunk.Code); ip++ {
		instr := chunk.Code[ip]
		line := chunk.Lines[ip]

		switch instr.Op {
		case bytecode.OpConstant:
			vm.push(chunk.Constants[instr.Operand])

		case bytecode.OpNil:
			vm.push(value.Nil)
		case bytecode.OpTrue:
			vm.push(value.Bool(true))
		case bytecode.OpFalse:
			vm.push(value.Bool(false))

		case bytecode.OpPop:
			vm.pop()

		case bytecode.OpDefineGlobal:
			v := vm.pop()
			h.SetGlobal(heap.GlobalIndex(instr.Operand), v)

		case bytecode.OpGetGlobal:
			idx := heap.GlobalIndex(instr.Operand)
			v, ok := h.GetGlobal(idx)
			if !ok {
				return &RuntimeError{Line: line, Message: fmt.Sprintf("Undefined variable %s.", h.NameOf(idx))}
			}
			vm.push(v)

		case bytecode.OpSetGlobal:
			idx := heap.GlobalIndex(instr.Operand)
			if _, ok := h.GetGlobal(idx); !ok {
				return &RuntimeError{Line: line, Message: fmt.Sprintf("Undefined variable %s.", h.NameOf(idx))}
			}
			h.SetGlobal(idx, vm.peek(0))

		case bytecode.OpEqual:
			b, a := vm.pop(), vm.pop()
			vm.push(value.Bool(a.Equal(b)))

		case bytecode.OpGreater:
			if err := vm.numericBinary(line, func(a, b float64) value.Value { return value.Bool(a > b) }); err != nil {
				return err
			}
		case bytecode.OpLess:
			if err := vm.numericBinary(line, func(a, b float64) value.Value { return value.Bool(a < b) }); err != nil {
				return err
			}

		case bytecode.OpAdd:
			if err := vm.add(line, h); err != nil {
				return err
			}
		case bytecode.OpSubtract:
			if err := vm.numericBinary(line, func(a, b float64) value.Value { return value.Number(a - b) }); err != nil {
				return err
			}
		case bytecode.OpMultiply:
			if err := vm.numericBinary(line, func(a, b float64) value.Value { return value.Number(a * b) }); err != nil {
				return err
			}
		case bytecode.OpDivide:
			if err := vm.numericBinary(line, func(a, b float64) value.Value { return value.Number(a / b) }); err != nil {
				return err
			}

		case bytecode.OpNot:
			v := vm.pop()
			vm.push(value.Bool(v.Falsy()))

		case bytecode.OpNegate:
			v := vm.pop()
			if !v.IsNumber() {
				return &RuntimeError{Line: line, Message: "Operand must be a number."}
			}
			vm.push(value.Number(-v.AsNumber()))

		case bytecode.OpPrint:
			v := vm.pop()
			fmt.Fprintln(w, v.String())

		case bytecode.OpReturn:
			return nil

		default:
			return &RuntimeError{Line: line, Message: fmt.Sprintf("Unknown opcode %s.", instr.Op)}
		}
	}
	return nil
}

// writer is the narrow io.Writer slice Run needs for OP_PRINT, kept
// local so this package does not have to import io just for the one
// method it uses.
type writer interface {
	Write(p []byte) (n int, err error)
}

func (vm *VM) push(v value.Value) { vm.stack = append(vm.stack, v) }

func (vm *VM) pop() value.Value {
	n := len(vm.stack) - 1
	v := vm.stack[n]
	vm.stack = vm.stack[:n]
	return v
}

func (vm *VM) peek(distance int) value.Value {
	return vm.stack[len(vm.stack)-1-distance]
}

// add implements OP_ADD's dual number/string path: spec.md §4.5 allows
// `+` between two numbers or two strings, and it is the only binary
// operator with this overload.
func (vm *VM) add(line int, h *heap.Heap) error {
	b, a := vm.pop(), vm.pop()
	switch {
	case a.IsNumber() && b.IsNumber():
		vm.push(value.Number(a.AsNumber() + b.AsNumber()))
		return nil
	case a.IsString() && b.IsString():
		ref := h.Intern(a.AsString().Bytes + b.AsString().Bytes)
		vm.push(value.String(ref))
		return nil
	default:
		return &RuntimeError{Line: line, Message: "Operands must be numbers or strings."}
	}
}

// numericBinary implements the shared "pop two numbers, push result"
// shape used by -, *, /, <, > — operands are popped right-then-left so
// op(a, b) sees them in source order (spec.md §4.5's operand order
// note).
func (vm *VM) numericBinary(line int, op func(a, b float64) value.Value) error {
	b, a := vm.pop(), vm.pop()
	if !a.IsNumber() || !b.IsNumber() {
		return &RuntimeError{Line: line, Message: "Operands must be numbers."}
	}
	vm.push(op(a.AsNumber(), b.AsNumber()))
	return nil
}
