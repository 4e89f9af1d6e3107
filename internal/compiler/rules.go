package compiler

import "loxvm/internal/token"

// parseFn is one cell of the Pratt table: a prefix or infix handler.
// canAssign tells an infix/prefix handler for a bare name whether `=` may
// follow (it may not inside a sub-expression parsed above assignment
// precedence, e.g. the right side of `+`).
type parseFn func(p *parser, canAssign bool)

type parseRule struct {
	prefix     parseFn
	infix      parseFn
	precedence precedence
}

var rules map[token.Kind]parseRule

func init() {
	rules = map[token.Kind]parseRule{
		token.LeftParen:    {prefix: grouping, infix: call, precedence: precCall},
		token.Dot:          {infix: dot, precedence: precCall},
		token.Minus:        {prefix: unary, infix: binary, precedence: precTerm},
		token.Plus:         {infix: binary, precedence: precTerm},
		token.Slash:        {infix: binary, precedence: precFactor},
		token.Star:         {infix: binary, precedence: precFactor},
		token.Bang:         {prefix: unary},
		token.BangEqual:    {infix: binary, precedence: precEquality},
		token.EqualEqual:   {infix: binary, precedence: precEquality},
		token.Greater:      {infix: binary, precedence: precComparison},
		token.GreaterEqual: {infix: binary, precedence: precComparison},
		token.Less:         {infix: binary, precedence: precComparison},
		token.LessEqual:    {infix: binary, precedence: precComparison},
		token.Ident:        {prefix: variable},
		token.String:       {prefix: stringLiteral},
		token.Number:       {prefix: number},
		token.KwAnd:        {infix: and_, precedence: precAnd},
		token.KwOr:         {infix: or_, precedence: precOr},
		token.KwFalse:      {prefix: literal},
		token.KwNil:        {prefix: literal},
		token.KwTrue:       {prefix: literal},
		token.KwThis:       {prefix: this_},
		token.KwSuper:      {prefix: super_},
	}
}

func ruleFor(k token.Kind) parseRule {
	return rules[k]
}

// parsePrecedence is the Pratt parser's core loop: consume one token, run
// its prefix handler, then keep consuming infix operators whose precedence
// is at least minPrec.
func (p *parser) parsePrecedence(minPrec precedence) {
	p.advance()
	prefix := ruleFor(p.previous.Kind).prefix
	if prefix == nil {
		p.errorAtPrevious("Expect expression.")
		return
	}
	canAssign := minPrec <= precAssignment
	prefix(p, canAssign)

	for minPrec <= ruleFor(p.current.Kind).precedence {
		p.advance()
		infix := ruleFor(p.previous.Kind).infix
		infix(p, canAssign)
	}

	if !canAssign && p.check(token.Equal) {
		p.advance()
		p.errorAtPrevious("Invalid assignment target.")
	}
}

func (p *parser) expression() {
	p.parsePrecedence(precAssignment)
}
