package compiler

import (
	"loxvm/internal/bytecode"
	"loxvm/internal/token"
)

// classDeclaration compiles `class Name [< Superclass] { methods... }`:
// CLASS defines the binding, an optional INHERIT copies the superclass's
// method table, each method body compiles as a function, and METHOD binds
// the finished closure onto the class.
func (p *parser) classDeclaration() {
	p.consume(token.Ident, "Expect class name.")
	className := p.previous.Text
	nameConst := p.identifierConstant(className)
	p.declareVariable()

	p.emitBytes(bytecode.OpClass, nameConst)
	p.defineVariable(className)

	cc := &classCompiler{enclosing: p.class}
	p.class = cc

	if p.match(token.Less) {
		p.consume(token.Ident, "Expect superclass name.")
		superName := p.previous
		if superName.Text == className {
			p.errorAtPrevious("A class can't inherit from itself.")
		}

		p.beginScope()
		p.addLocal("super")
		p.markInitialized()

		p.namedVariable(superName, false)
		p.namedVariableByName(className)
		p.emitOp(bytecode.OpInherit)
		cc.hasSuperclass = true
	}

	p.namedVariableByName(className)
	p.consume(token.LeftBrace, "Expect '{' before class body.")
	for !p.check(token.RightBrace) && !p.check(token.EOF) {
		p.method()
	}
	p.consume(token.RightBrace, "Expect '}' after class body.")
	p.emitOp(bytecode.OpPop) // pop the class itself, pushed by namedVariableByName above

	if cc.hasSuperclass {
		p.endScope()
	}
	p.class = cc.enclosing
}

func (p *parser) method() {
	p.consume(token.Ident, "Expect method name.")
	name := p.previous.Text
	nameConst := p.identifierConstant(name)

	ft := typeMethod
	if name == "init" {
		ft = typeInitializer
	}
	p.function(ft, name)
	p.emitBytes(bytecode.OpMethod, nameConst)
}
