// Package token defines the lexical token kinds produced by pkg/scanner
// and consumed by pkg/compiler.
package token

// Kind identifies the lexical category of a Token.
type Kind int

const (
	// Single-character punctuators.
	LeftParen Kind = iota
	RightParen
	LeftBrace
	RightBrace
	Comma
	Dot
	Minus
	Plus
	Semicolon
	Slash
	Star

	// One or two character punctuators.
	Bang
	BangEqual
	Equal
	EqualEqual
	Greater
	GreaterEqual
	Less
	LessEqual

	// Literals.
	Identifier
	String
	Number

	// Keywords.
	And
	Class
	Else
	False
	For
	Fun
	If
	Nil
	Or
	Print
	Return
	Super
	This
	True
	Var
	While

	Error
	EOF
)

var names = map[Kind]string{
	LeftParen: "(", RightParen: ")", LeftBrace: "{", RightBrace: "}",
	Comma: ",", Dot: ".", Minus: "-", Plus: "+", Semicolon: ";", Slash: "/", Star: "*",
	Bang: "!", BangEqual: "!=", Equal: "=", EqualEqual: "==",
	Greater: ">", GreaterEqual: ">=", Less: "<", LessEqual: "<=",
	Identifier: "identifier", String: "string", Number: "number",
	And: "and", Class: "class", Else: "else", False: "false", For: "for",
	Fun: "fun", If: "if", Nil: "nil", Or: "or", Print: "print",
	Return: "return", Super: "super", This: "this", True: "true",
	Var: "var", While: "while", Error: "error", EOF: "eof",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return "unknown"
}

// Keywords maps reserved identifier spellings to their keyword Kind.
var Keywords = map[string]Kind{
	"and": And, "class": Class, "else": Else, "false": False,
	"for": For, "fun": Fun, "if": If, "nil": Nil, "or": Or,
	"print": Print, "return": Return, "super": Super, "this": This,
	"true": True, "var": Var, "while": While,
}

// Token is a single lexeme with its source position.
type Token struct {
	Kind   Kind
	Lexeme string // view into the source, or the error message for Kind == Error
	Line   int
}

func (t Token) String() string {
	if t.Kind == Identifier || t.Kind == String || t.Kind == Number {
		return t.Lexeme
	}
	return t.Kind.String()
}
