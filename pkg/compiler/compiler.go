// Package compiler implements the single-pass, tree-free Pratt
// compiler described in spec.md §4.4: it drives a pkg/scanner.Scanner
// token by token and emits a pkg/bytecode.Chunk directly, with no
// intermediate AST. It generalizes the teacher's two-stage
// parser→compiler pipeline (parser/parser.go builds an *ast.Program,
// runtime/compiler.go walks it) into the one-pass shape spec.md calls
// for, and adopts the rule-table/error-log structure of
// rami3l/golox's vm.Parser (see SPEC_FULL.md's domain-stack table) —
// the one example in the retrieval pack that is itself a clox-style
// bytecode compiler.
package compiler

import (
	"fmt"
	"strconv"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/dami-lang/goclox/pkg/bytecode"
	"github.com/dami-lang/goclox/pkg/heap"
	"github.com/dami-lang/goclox/pkg/scanner"
	"github.com/dami-lang/goclox/pkg/token"
	"github.com/dami-lang/goclox/pkg/value"
)

// CompileError is one entry in the compiler's error log (spec.md §7).
type CompileError struct {
	Line    int
	Where   string // "at end", "at '<lexeme>'", or "" for a scan error
	Message string
}

func (e *CompileError) Error() string {
	if e.Where == "" {
		return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("[line %d] Error %s: %s", e.Line, e.Where, e.Message)
}

// Compiler holds the parse state described in spec.md §4.4: two
// lookahead tokens, panic-mode flag, and an accumulating error log.
type Compiler struct {
	scanner *scanner.Scanner
	heap    *heap.Heap
	chunk   *bytecode.Chunk
	log     *logrus.Logger

	previous, current token.Token
	hadError          bool
	panicMode         bool
	errors            *multierror.Error
}

// Compile compiles source into a Chunk against the given heap (which
// may already hold globals and interned strings from prior REPL
// turns). On any compile error, it returns a nil chunk and the
// accumulated *multierror.Error; the heap is never mutated in a way
// that needs to be rolled back — declaring a global or interning a
// string is harmless even if the surrounding statement fails to
// compile, matching spec.md's "heap handle is returned in both cases".
func Compile(source string, h *heap.Heap, log *logrus.Logger) (*bytecode.Chunk, error) {
	c := &Compiler{
		scanner: scanner.New(source),
		heap:    h,
		chunk:   bytecode.NewChunk(),
		log:     log,
	}

	c.advance()
	for !c.check(token.EOF) {
		c.declaration()
	}
	c.emitReturn()

	if c.log != nil {
		c.log.Debug(bytecode.Disassemble(c.chunk, c.heap, "compile"))
	}

	if c.errors.ErrorOrNil() != nil {
		return nil, c.errors.ErrorOrNil()
	}
	return c.chunk, nil
}

/* token stream */

func (c *Compiler) advance() {
	c.previous = c.current
	for {
		c.current = c.scanner.NextToken()
		if c.current.Kind != token.Error {
			break
		}
		c.errorAtCurrent(c.current.Lexeme)
	}
}

func (c *Compiler) check(kind token.Kind) bool { return c.current.Kind == kind }

func (c *Compiler) match(kind token.Kind) bool {
	if !c.check(kind) {
		return false
	}
	c.advance()
	return true
}

func (c *Compiler) consume(kind token.Kind, message string) {
	if c.current.Kind == kind {
		c.advance()
		return
	}
	c.errorAtCurrent(message)
}

/* declarations & statements — spec.md §4.4 */

func (c *Compiler) declaration() {
	if c.match(token.Var) {
		c.varDeclaration()
	} else {
		c.statement()
	}
	if c.panicMode {
		c.synchronize()
	}
}

func (c *Compiler) varDeclaration() {
	nameTok := c.current
	gotName := c.check(token.Identifier)
	c.consume(token.Identifier, "Expect variable name.")

	var idx heap.GlobalIndex
	if gotName {
		idx = c.heap.DeclareGlobal(nameTok.Lexeme)
	}

	if c.match(token.Equal) {
		c.expression()
	} else {
		c.chunk.Emit(bytecode.OpNil, nameTok.Line)
	}
	c.consume(token.Semicolon, "Expect ';' after variable declaration.")
	if gotName {
		c.chunk.EmitOperand(bytecode.OpDefineGlobal, int(idx), nameTok.Line)
	} else {
		c.chunk.Emit(bytecode.OpPop, nameTok.Line)
	}
}

func (c *Compiler) statement() {
	if c.match(token.Print) {
		c.printStatement()
	} else {
		c.expressionStatement()
	}
}

func (c *Compiler) printStatement() {
	c.expression()
	c.consume(token.Semicolon, "Expect ';' after value.")
	c.chunk.Emit(bytecode.OpPrint, c.previous.Line)
}

func (c *Compiler) expressionStatement() {
	c.expression()
	c.consume(token.Semicolon, "Expect ';' after expression.")
	c.chunk.Emit(bytecode.OpPop, c.previous.Line)
}

func (c *Compiler) expression() { c.parsePrecedence(PrecAssignment) }

/* Pratt climbing — spec.md §4.4 "parse_precedence" */

func (c *Compiler) parsePrecedence(prec Precedence) {
	c.advance()
	prefix := ruleFor(c.previous.Kind).prefix
	if prefix == nil {
		c.errorAtPrevious("Expect expression.")
		return
	}

	canAssign := prec <= PrecAssignment
	prefix(c, canAssign)

	for prec <= ruleFor(c.current.Kind).precedence {
		c.advance()
		infix := ruleFor(c.previous.Kind).infix
		infix(c, canAssign)
	}

	if canAssign && c.match(token.Equal) {
		c.errorAtPrevious("Invalid assignment target.")
	}
}

/* prefix/infix handlers — spec.md §4.4 */

func (c *Compiler) grouping(_ bool) {
	c.expression()
	c.consume(token.RightParen, "Expect ')' after expression.")
}

func (c *Compiler) unary(_ bool) {
	op := c.previous.Kind
	line := c.previous.Line
	c.parsePrecedence(PrecUnary)
	switch op {
	case token.Minus:
		c.chunk.Emit(bytecode.OpNegate, line)
	case token.Bang:
		c.chunk.Emit(bytecode.OpNot, line)
	}
}

func (c *Compiler) binary(_ bool) {
	op := c.previous.Kind
	line := c.previous.Line
	rule := ruleFor(op)
	// Recurse at rule.precedence+1 so same-precedence operators nest
	// left-associatively (spec.md Design Notes / Open Question 2).
	c.parsePrecedence(rule.precedence + 1)

	switch op {
	case token.Plus:
		c.chunk.Emit(bytecode.OpAdd, line)
	case token.Minus:
		c.chunk.Emit(bytecode.OpSubtract, line)
	case token.Star:
		c.chunk.Emit(bytecode.OpMultiply, line)
	case token.Slash:
		c.chunk.Emit(bytecode.OpDivide, line)
	case token.EqualEqual:
		c.chunk.Emit(bytecode.OpEqual, line)
	case token.BangEqual:
		c.chunk.Emit(bytecode.OpEqual, line)
		c.chunk.Emit(bytecode.OpNot, line)
	case token.Less:
		c.chunk.Emit(bytecode.OpLess, line)
	case token.LessEqual:
		c.chunk.Emit(bytecode.OpGreater, line)
		c.chunk.Emit(bytecode.OpNot, line)
	case token.Greater:
		c.chunk.Emit(bytecode.OpGreater, line)
	case token.GreaterEqual:
		c.chunk.Emit(bytecode.OpLess, line)
		c.chunk.Emit(bytecode.OpNot, line)
	}
}

func (c *Compiler) numberLiteral(_ bool) {
	n, err := strconv.ParseFloat(c.previous.Lexeme, 64)
	if err != nil {
		c.errorAtPrevious("Invalid number literal.")
		return
	}
	idx := c.chunk.AddConstant(value.Number(n))
	c.chunk.EmitOperand(bytecode.OpConstant, idx, c.previous.Line)
}

func (c *Compiler) stringLiteral(_ bool) {
	ref := c.heap.Intern(c.previous.Lexeme)
	idx := c.chunk.AddConstant(value.String(ref))
	c.chunk.EmitOperand(bytecode.OpConstant, idx, c.previous.Line)
}

func (c *Compiler) literal(_ bool) {
	line := c.previous.Line
	switch c.previous.Kind {
	case token.False:
		c.chunk.Emit(bytecode.OpFalse, line)
	case token.True:
		c.chunk.Emit(bytecode.OpTrue, line)
	case token.Nil:
		c.chunk.Emit(bytecode.OpNil, line)
	}
}

func (c *Compiler) variable(canAssign bool) { c.namedVariable(c.previous, canAssign) }

func (c *Compiler) namedVariable(name token.Token, canAssign bool) {
	idx := c.heap.DeclareGlobal(name.Lexeme)
	if canAssign && c.match(token.Equal) {
		c.expression()
		c.chunk.EmitOperand(bytecode.OpSetGlobal, int(idx), name.Line)
	} else {
		c.chunk.EmitOperand(bytecode.OpGetGlobal, int(idx), name.Line)
	}
}

func (c *Compiler) emitReturn() {
	c.chunk.Emit(bytecode.OpReturn, c.previous.Line)
}

/* error reporting & synchronize — spec.md §4.4, §7 */

func (c *Compiler) errorAtCurrent(message string) { c.errorAt(c.current, message) }
func (c *Compiler) errorAtPrevious(message string) { c.errorAt(c.previous, message) }

func (c *Compiler) errorAt(tok token.Token, message string) {
	if c.panicMode {
		return
	}
	c.panicMode = true
	c.hadError = true

	entry := &CompileError{Line: tok.Line, Message: message}
	switch tok.Kind {
	case token.EOF:
		entry.Where = "at end"
	case token.Error:
		entry.Where = ""
	default:
		entry.Where = fmt.Sprintf("at '%s'", tok.Lexeme)
	}
	c.errors = multierror.Append(c.errors, entry)

	if c.log != nil {
		c.log.Debugln(entry.Error())
	}
}

func (c *Compiler) synchronize() {
	c.panicMode = false
	for !c.check(token.EOF) {
		if c.previous.Kind == token.Semicolon {
			return
		}
		switch c.current.Kind {
		case token.Class, token.Fun, token.Var, token.For,
			token.If, token.While, token.Print, token.Return:
			return
		}
		c.advance()
	}
}
