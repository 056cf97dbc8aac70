package compiler

import "github.com/dami-lang/goclox/pkg/token"

// parseFn is a prefix or infix handler, dispatched from the rule
// table below. Per spec.md's Design Notes ("Pratt table as data, not
// methods"), handlers are plain method values stored in a fixed array
// indexed by token.Kind — there is no dynamic dispatch through an
// interface, matching the closed, enumerable set of grammar
// productions this language has.
type parseFn func(c *Compiler, canAssign bool)

type parseRule struct {
	prefix, infix parseFn
	precedence    Precedence
}

// rules is indexed by token.Kind. Every row not explicitly set below
// defaults to {nil, nil, PrecNone} — "no prefix, no infix, not an
// operator" — which is exactly correct for punctuation and keywords
// that only ever appear where a dedicated statement parser expects
// them (';', '{', 'var', 'print', ...).
var rules = buildRules()

func buildRules() [token.EOF + 1]parseRule {
	var r [token.EOF + 1]parseRule

	r[token.LeftParen] = parseRule{(*Compiler).grouping, nil, PrecNone}
	r[token.Minus] = parseRule{(*Compiler).unary, (*Compiler).binary, PrecTerm}
	r[token.Plus] = parseRule{nil, (*Compiler).binary, PrecTerm}
	r[token.Slash] = parseRule{nil, (*Compiler).binary, PrecFactor}
	r[token.Star] = parseRule{nil, (*Compiler).binary, PrecFactor}
	r[token.Bang] = parseRule{(*Compiler).unary, nil, PrecNone}
	r[token.BangEqual] = parseRule{nil, (*Compiler).binary, PrecEquality}
	r[token.EqualEqual] = parseRule{nil, (*Compiler).binary, PrecEquality}
	r[token.Greater] = parseRule{nil, (*Compiler).binary, PrecComparison}
	r[token.GreaterEqual] = parseRule{nil, (*Compiler).binary, PrecComparison}
	r[token.Less] = parseRule{nil, (*Compiler).binary, PrecComparison}
	r[token.LessEqual] = parseRule{nil, (*Compiler).binary, PrecComparison}
	r[token.Identifier] = parseRule{(*Compiler).variable, nil, PrecNone}
	r[token.String] = parseRule{(*Compiler).stringLiteral, nil, PrecNone}
	r[token.Number] = parseRule{(*Compiler).numberLiteral, nil, PrecNone}
	r[token.False] = parseRule{(*Compiler).literal, nil, PrecNone}
	r[token.True] = parseRule{(*Compiler).literal, nil, PrecNone}
	r[token.Nil] = parseRule{(*Compiler).literal, nil, PrecNone}

	return r
}

func ruleFor(kind token.Kind) parseRule {
	if int(kind) < 0 || int(kind) >= len(rules) {
		return parseRule{}
	}
	return rules[kind]
}
