package compiler

import (
	"loxvm/internal/bytecode"
	"loxvm/internal/token"
	"loxvm/internal/value"
)

// declaration compiles one top-level-or-block item: a var/fun/class
// declaration, or a plain statement. It synchronizes to the next
// statement boundary on error so one mistake doesn't cascade.
func (p *parser) declaration() {
	switch {
	case p.match(token.KwClass):
		p.classDeclaration()
	case p.match(token.KwFun):
		p.funDeclaration()
	case p.match(token.KwVar):
		p.varDeclaration()
	default:
		p.statement()
	}
	if p.panicMode {
		p.synchronize()
	}
}

func (p *parser) statement() {
	switch {
	case p.match(token.KwPrint):
		p.printStatement()
	case p.match(token.KwIf):
		p.ifStatement()
	case p.match(token.KwWhile):
		p.whileStatement()
	case p.match(token.KwFor):
		p.forStatement()
	case p.match(token.KwReturn):
		p.returnStatement()
	case p.match(token.LeftBrace):
		p.beginScope()
		p.block()
		p.endScope()
	default:
		p.expressionStatement()
	}
}

func (p *parser) block() {
	for !p.check(token.RightBrace) && !p.check(token.EOF) {
		p.declaration()
	}
	p.consume(token.RightBrace, "Expect '}' after block.")
}

func (p *parser) varDeclaration() {
	name := p.parseVariable("Expect variable name.")
	if p.match(token.Equal) {
		p.expression()
	} else {
		p.emitOp(bytecode.OpNil)
	}
	p.consume(token.Semicolon, "Expect ';' after variable declaration.")
	p.defineVariable(name)
}

func (p *parser) expressionStatement() {
	p.expression()
	p.consume(token.Semicolon, "Expect ';' after expression.")
	p.emitOp(bytecode.OpPop)
}

func (p *parser) printStatement() {
	p.expression()
	p.consume(token.Semicolon, "Expect ';' after value.")
	p.emitOp(bytecode.OpPrint)
}

func (p *parser) returnStatement() {
	if p.cc.fnType == typeScript {
		p.errorAtPrevious("Can't return from top-level code.")
	}
	if p.match(token.Semicolon) {
		p.emitReturn()
		return
	}
	if p.cc.fnType == typeInitializer {
		p.errorAtPrevious("Can't return a value from an initializer.")
	}
	p.expression()
	p.consume(token.Semicolon, "Expect ';' after return value.")
	p.emitOp(bytecode.OpReturn)
}

func (p *parser) ifStatement() {
	p.consume(token.LeftParen, "Expect '(' after 'if'.")
	p.expression()
	p.consume(token.RightParen, "Expect ')' after condition.")

	thenJump := p.emitJump(bytecode.OpJumpIfFalse)
	p.emitOp(bytecode.OpPop)
	p.statement()

	elseJump := p.emitJump(bytecode.OpJump)
	p.patchJump(thenJump)
	p.emitOp(bytecode.OpPop)

	if p.match(token.KwElse) {
		p.statement()
	}
	p.patchJump(elseJump)
}

func (p *parser) whileStatement() {
	loopStart := len(p.chunk().Code)
	p.consume(token.LeftParen, "Expect '(' after 'while'.")
	p.expression()
	p.consume(token.RightParen, "Expect ')' after condition.")

	exitJump := p.emitJump(bytecode.OpJumpIfFalse)
	p.emitOp(bytecode.OpPop)
	p.statement()
	p.emitLoop(loopStart)

	p.patchJump(exitJump)
	p.emitOp(bytecode.OpPop)
}

// forStatement desugars all three (optional) clauses into the equivalent
// while-loop shape: initializer; loop: [condition-check-and-exit];
// body; increment (compiled out-of-line and the loop rewired so the
// condition is re-tested every iteration).
func (p *parser) forStatement() {
	p.beginScope()
	p.consume(token.LeftParen, "Expect '(' after 'for'.")

	switch {
	case p.match(token.Semicolon):
		// no initializer
	case p.match(token.KwVar):
		p.varDeclaration()
	default:
		p.expressionStatement()
	}

	loopStart := len(p.chunk().Code)
	exitJump := -1
	if !p.match(token.Semicolon) {
		p.expression()
		p.consume(token.Semicolon, "Expect ';' after loop condition.")
		exitJump = p.emitJump(bytecode.OpJumpIfFalse)
		p.emitOp(bytecode.OpPop)
	}

	if !p.match(token.RightParen) {
		bodyJump := p.emitJump(bytecode.OpJump)
		incrementStart := len(p.chunk().Code)
		p.expression()
		p.emitOp(bytecode.OpPop)
		p.consume(token.RightParen, "Expect ')' after for clauses.")

		p.emitLoop(loopStart)
		loopStart = incrementStart
		p.patchJump(bodyJump)
	}

	p.statement()
	p.emitLoop(loopStart)

	if exitJump != -1 {
		p.patchJump(exitJump)
		p.emitOp(bytecode.OpPop)
	}
	p.endScope()
}

func (p *parser) funDeclaration() {
	name := p.parseVariable("Expect function name.")
	p.markInitialized()
	p.function(typeFunction, name)
	p.defineVariable(name)
}

// function compiles one function body (shared by `fun` declarations and
// methods): push a new Compiler, parse the parameter list as locals, then
// the block body, and emit CLOSURE to turn the finished Function into a
// runtime value capturing whatever upvalues it resolved.
func (p *parser) function(ft funcType, name string) {
	p.cc = newCompiler(p.cc, ft, p.heap.NewFunction())
	fnObj := p.heap.Get(p.cc.fn)
	fnObj.Name = p.heap.InternString(name)

	p.beginScope()
	p.consume(token.LeftParen, "Expect '(' after function name.")
	if !p.check(token.RightParen) {
		for {
			fnObj.Arity++
			if fnObj.Arity > 255 {
				p.errorAtCurrent("Can't have more than 255 parameters.")
			}
			paramName := p.parseVariable("Expect parameter name.")
			p.defineVariable(paramName)
			if !p.match(token.Comma) {
				break
			}
		}
	}
	p.consume(token.RightParen, "Expect ')' after parameters.")
	p.consume(token.LeftBrace, "Expect '{' before function body.")
	p.block()

	compiled := p.cc
	p.endCompiler()

	idx, err := p.chunk().AddConstant(value.Obj(compiled.fn))
	if err != nil {
		p.errorAtPrevious(err.Error())
		return
	}
	// The upvalue count follows the function-constant operand explicitly:
	// unlike a C VM, which can follow the function pointer in the constant
	// pool straight to its upvalueCount field, bytecode.Chunk can't import
	// object.Object (object already imports bytecode), so the disassembler
	// needs the count in the instruction stream rather than a pointer chase.
	p.emitBytes(bytecode.OpClosure, idx)
	p.emitByte(byte(len(compiled.upvalues)))
	for _, u := range compiled.upvalues {
		p.emitByte(boolByte(u.isLocal))
		p.emitByte(u.index)
	}
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
