// Package scanner turns source text into a stream of tokens, one at a
// time, in the style of the teacher's lexer.Tokenize but pulled rather
// than produced eagerly: pkg/compiler calls NextToken as it needs more
// lookahead, exactly as spec.md's scanner contract requires.
package scanner

import (
	"unicode"
	"unicode/utf8"

	"github.com/dami-lang/goclox/pkg/token"
)

// Scanner produces tokens on demand from a source string.
type Scanner struct {
	src     string
	start   int // start of the lexeme currently being scanned
	current int // next rune to consume
	line    int
}

// New constructs a Scanner over the given source text.
func New(src string) *Scanner {
	return &Scanner{src: src, line: 1}
}

// NextToken returns the next token and advances the scanner. At end of
// input it returns an EOF token indefinitely.
func (s *Scanner) NextToken() token.Token {
	s.skipWhitespace()
	s.start = s.current

	if s.atEnd() {
		return s.make(token.EOF)
	}

	c := s.advance()

	if isAlpha(c) {
		return s.identifier()
	}
	if isDigit(c) {
		return s.number()
	}

	switch c {
	case '(':
		return s.make(token.LeftParen)
	case ')':
		return s.make(token.RightParen)
	case '{':
		return s.make(token.LeftBrace)
	case '}':
		return s.make(token.RightBrace)
	case ',':
		return s.make(token.Comma)
	case '.':
		return s.make(token.Dot)
	case '-':
		return s.make(token.Minus)
	case '+':
		return s.make(token.Plus)
	case ';':
		return s.make(token.Semicolon)
	case '*':
		return s.make(token.Star)
	case '/':
		return s.make(token.Slash)
	case '!':
		return s.make(s.selectTwo('=', token.BangEqual, token.Bang))
	case '=':
		return s.make(s.selectTwo('=', token.EqualEqual, token.Equal))
	case '<':
		return s.make(s.selectTwo('=', token.LessEqual, token.Less))
	case '>':
		return s.make(s.selectTwo('=', token.GreaterEqual, token.Greater))
	case '"':
		return s.string()
	}

	return s.errorToken("Unexpected character")
}

func (s *Scanner) atEnd() bool { return s.current >= len(s.src) }

func (s *Scanner) advance() rune {
	r, size := utf8.DecodeRuneInString(s.src[s.current:])
	s.current += size
	return r
}

func (s *Scanner) peek() rune {
	if s.atEnd() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s.src[s.current:])
	return r
}

func (s *Scanner) peekNext() rune {
	if s.atEnd() {
		return 0
	}
	_, size := utf8.DecodeRuneInString(s.src[s.current:])
	if s.current+size >= len(s.src) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s.src[s.current+size:])
	return r
}

func (s *Scanner) match(want rune) bool {
	if s.peek() != want {
		return false
	}
	s.advance()
	return true
}

// selectTwo consumes a trailing '=' if present and returns the
// corresponding two-character kind, else the one-character kind.
func (s *Scanner) selectTwo(second rune, twoKind, oneKind token.Kind) token.Kind {
	if s.match(second) {
		return twoKind
	}
	return oneKind
}

func (s *Scanner) skipWhitespace() {
	for {
		switch s.peek() {
		case ' ', '\r', '\t':
			s.advance()
		case '\n':
			s.line++
			s.advance()
		case '/':
			if s.peekNext() == '/' {
				for s.peek() != '\n' && !s.atEnd() {
					s.advance()
				}
			} else {
				return
			}
		default:
			return
		}
	}
}

func (s *Scanner) string() token.Token {
	for s.peek() != '"' && !s.atEnd() {
		if s.peek() == '\n' {
			s.line++
		}
		s.advance()
	}
	if s.atEnd() {
		return s.errorToken("Unterminated string")
	}
	s.advance() // closing quote
	// Lexeme excludes the surrounding quotes.
	lexeme := s.src[s.start+1 : s.current-1]
	return token.Token{Kind: token.String, Lexeme: lexeme, Line: s.line}
}

func (s *Scanner) number() token.Token {
	for isDigit(s.peek()) {
		s.advance()
	}
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance() // '.'
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	return s.make(token.Number)
}

func (s *Scanner) identifier() token.Token {
	for isAlpha(s.peek()) || isDigit(s.peek()) {
		s.advance()
	}
	lexeme := s.src[s.start:s.current]
	if kind, ok := token.Keywords[lexeme]; ok {
		return token.Token{Kind: kind, Lexeme: lexeme, Line: s.line}
	}
	return s.make(token.Identifier)
}

func (s *Scanner) make(kind token.Kind) token.Token {
	return token.Token{Kind: kind, Lexeme: s.src[s.start:s.current], Line: s.line}
}

func (s *Scanner) errorToken(message string) token.Token {
	return token.Token{Kind: token.Error, Lexeme: message, Line: s.line}
}

func isAlpha(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isDigit(r rune) bool {
	return unicode.IsDigit(r) && r >= '0' && r <= '9'
}
