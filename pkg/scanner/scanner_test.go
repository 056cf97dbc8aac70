package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dami-lang/goclox/pkg/token"
)

func collect(src string) []token.Token {
	s := New(src)
	var toks []token.Token
	for {
		tok := s.NextToken()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func TestPunctuatorsAndOperators(t *testing.T) {
	toks := collect("(){},.-+;*/! != = == < <= > >=")
	assert.Equal(t, []token.Kind{
		token.LeftParen, token.RightParen, token.LeftBrace, token.RightBrace,
		token.Comma, token.Dot, token.Minus, token.Plus, token.Semicolon,
		token.Star, token.Slash, token.Bang, token.BangEqual, token.Equal,
		token.EqualEqual, token.Less, token.LessEqual, token.Greater,
		token.GreaterEqual, token.EOF,
	}, kinds(toks))
}

func TestStringLiteral(t *testing.T) {
	toks := collect(`"foobar"`)
	require := toks[0]
	assert.Equal(t, token.String, require.Kind)
	assert.Equal(t, "foobar", require.Lexeme)
}

func TestUnterminatedString(t *testing.T) {
	toks := collect(`"abc`)
	assert.Equal(t, token.Error, toks[0].Kind)
	assert.Equal(t, "Unterminated string", toks[0].Lexeme)
}

func TestNumbers(t *testing.T) {
	toks := collect("123 4.56 7.")
	assert.Equal(t, "123", toks[0].Lexeme)
	assert.Equal(t, "4.56", toks[1].Lexeme)
	// no leading/trailing-only dot digits: "7" then "." then no digit after
	assert.Equal(t, "7", toks[2].Lexeme)
	assert.Equal(t, token.Dot, toks[3].Kind)
}

func TestIdentifiersAndKeywords(t *testing.T) {
	toks := collect("var x = foo and true nil print")
	assert.Equal(t, []token.Kind{
		token.Var, token.Identifier, token.Equal, token.Identifier,
		token.And, token.True, token.Nil, token.Print, token.EOF,
	}, kinds(toks))
}

func TestCommentsAndNewlinesTrackLine(t *testing.T) {
	s := New("1 // a comment\n2")
	first := s.NextToken()
	second := s.NextToken()
	assert.Equal(t, 1, first.Line)
	assert.Equal(t, 2, second.Line)
}

func TestEOFIsIdempotent(t *testing.T) {
	s := New("")
	a := s.NextToken()
	b := s.NextToken()
	assert.Equal(t, token.EOF, a.Kind)
	assert.Equal(t, token.EOF, b.Kind)
}

func TestStringSpanningLinesIncrementsLine(t *testing.T) {
	s := New("\"a\nb\"")
	tok := s.NextToken()
	assert.Equal(t, token.String, tok.Kind)
	assert.Equal(t, "a\nb", tok.Lexeme)
	assert.Equal(t, 2, tok.Line)
}
