package compiler

import (
	"strconv"

	"loxvm/internal/bytecode"
	"loxvm/internal/token"
	"loxvm/internal/value"
)

func number(p *parser, _ bool) {
	n, err := strconv.ParseFloat(p.previous.Text, 64)
	if err != nil {
		p.errorAtPrevious("Invalid number literal.")
		return
	}
	p.emitConstant(value.Number(n))
}

func stringLiteral(p *parser, _ bool) {
	handle := p.heap.InternString(p.previous.Text)
	p.emitConstant(value.Obj(handle))
}

func literal(p *parser, _ bool) {
	switch p.previous.Kind {
	case token.KwFalse:
		p.emitOp(bytecode.OpFalse)
	case token.KwTrue:
		p.emitOp(bytecode.OpTrue)
	case token.KwNil:
		p.emitOp(bytecode.OpNil)
	}
}

func grouping(p *parser, _ bool) {
	p.expression()
	p.consume(token.RightParen, "Expect ')' after expression.")
}

func unary(p *parser, _ bool) {
	op := p.previous.Kind
	p.parsePrecedence(precUnary)
	switch op {
	case token.Minus:
		p.emitOp(bytecode.OpNegate)
	case token.Bang:
		p.emitOp(bytecode.OpNot)
	}
}

func binary(p *parser, _ bool) {
	op := p.previous.Kind
	rule := ruleFor(op)
	p.parsePrecedence(rule.precedence + 1)
	switch op {
	case token.Plus:
		p.emitOp(bytecode.OpAdd)
	case token.Minus:
		p.emitOp(bytecode.OpSubtract)
	case token.Star:
		p.emitOp(bytecode.OpMultiply)
	case token.Slash:
		p.emitOp(bytecode.OpDivide)
	case token.EqualEqual:
		p.emitOp(bytecode.OpEqual)
	case token.BangEqual:
		p.emitOp(bytecode.OpEqual)
		p.emitOp(bytecode.OpNot)
	case token.Greater:
		p.emitOp(bytecode.OpGreater)
	case token.GreaterEqual:
		p.emitOp(bytecode.OpLess)
		p.emitOp(bytecode.OpNot)
	case token.Less:
		p.emitOp(bytecode.OpLess)
	case token.LessEqual:
		p.emitOp(bytecode.OpGreater)
		p.emitOp(bytecode.OpNot)
	}
}

// and_ short-circuits: if the left operand is falsey, jump over the right
// operand, leaving the falsey value on the stack as the expression's
// result.
func and_(p *parser, _ bool) {
	endJump := p.emitJump(bytecode.OpJumpIfFalse)
	p.emitOp(bytecode.OpPop)
	p.parsePrecedence(precAnd)
	p.patchJump(endJump)
}

// or_ short-circuits the other way: if the left operand is truthy, skip the
// right operand.
func or_(p *parser, _ bool) {
	elseJump := p.emitJump(bytecode.OpJumpIfFalse)
	endJump := p.emitJump(bytecode.OpJump)
	p.patchJump(elseJump)
	p.emitOp(bytecode.OpPop)
	p.parsePrecedence(precOr)
	p.patchJump(endJump)
}

func call(p *parser, _ bool) {
	argc := p.argumentList()
	p.emitBytes(bytecode.OpCall, argc)
}

// argumentList parses a parenthesized, comma-separated argument list,
// leaving each argument's value pushed in order; returns the count.
func (p *parser) argumentList() byte {
	var argc int
	if !p.check(token.RightParen) {
		for {
			p.expression()
			if argc == 255 {
				p.errorAtPrevious("Can't have more than 255 arguments.")
			}
			argc++
			if !p.match(token.Comma) {
				break
			}
		}
	}
	p.consume(token.RightParen, "Expect ')' after arguments.")
	return byte(argc)
}

func dot(p *parser, canAssign bool) {
	p.consume(token.Ident, "Expect property name after '.'.")
	name := p.identifierConstant(p.previous.Text)

	switch {
	case canAssign && p.match(token.Equal):
		p.expression()
		p.emitBytes(bytecode.OpSetProperty, name)
	case p.match(token.LeftParen):
		argc := p.argumentList()
		p.emitBytes(bytecode.OpInvoke, name)
		p.emitByte(argc)
	default:
		p.emitBytes(bytecode.OpGetProperty, name)
	}
}

func this_(p *parser, _ bool) {
	if p.class == nil {
		p.errorAtPrevious("Can't use 'this' outside of a class.")
		return
	}
	variable(p, false)
}

// super_ compiles `super.method` and the fused `super.method(args)` form.
func super_(p *parser, _ bool) {
	if p.class == nil {
		p.errorAtPrevious("Can't use 'super' outside of a class.")
	} else if !p.class.hasSuperclass {
		p.errorAtPrevious("Can't use 'super' in a class with no superclass.")
	}

	p.consume(token.Dot, "Expect '.' after 'super'.")
	p.consume(token.Ident, "Expect superclass method name.")
	name := p.identifierConstant(p.previous.Text)

	p.namedVariableByName("this")
	if p.match(token.LeftParen) {
		argc := p.argumentList()
		p.namedVariableByName("super")
		p.emitBytes(bytecode.OpSuperInvoke, name)
		p.emitByte(argc)
	} else {
		p.namedVariableByName("super")
		p.emitBytes(bytecode.OpGetSuper, name)
	}
}
