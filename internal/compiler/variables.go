package compiler

import (
	"loxvm/internal/bytecode"
	"loxvm/internal/token"
)

func variable(p *parser, canAssign bool) {
	p.namedVariable(p.previous, canAssign)
}

// namedVariable resolves name against locals, then upvalues, then falls
// back to a global, and emits the matching get/set opcode pair depending
// on whether an assignment follows.
func (p *parser) namedVariable(name token.Token, canAssign bool) {
	var getOp, setOp bytecode.OpCode
	var arg byte

	if slot := p.cc.resolveLocal(name.Text); slot != -1 {
		if p.cc.locals[slot].depth == uninitializedDepth {
			p.errorAtPrevious("Can't read local variable in its own initializer.")
		}
		getOp, setOp = bytecode.OpGetLocal, bytecode.OpSetLocal
		arg = byte(slot)
	} else if up := p.resolveUpvalue(p.cc, name.Text); up != -1 {
		getOp, setOp = bytecode.OpGetUpvalue, bytecode.OpSetUpvalue
		arg = byte(up)
	} else {
		getOp, setOp = bytecode.OpGetGlobal, bytecode.OpSetGlobal
		arg = p.identifierConstant(name.Text)
	}

	if canAssign && p.match(token.Equal) {
		p.expression()
		p.emitBytes(setOp, arg)
	} else {
		p.emitBytes(getOp, arg)
	}
}

// namedVariableByName looks up a synthetic identifier (the implicit "this"
// or "super" locals) that never passed through the scanner as a real token.
func (p *parser) namedVariableByName(name string) {
	p.namedVariable(token.Token{Kind: token.Ident, Text: name, Line: p.previous.Line}, false)
}

// declareVariable registers the identifier in p.previous as a new local in
// the current scope (global scope does nothing here; globals are resolved
// dynamically by name at runtime). Redeclaring a name already local to the
// exact same scope is an error.
func (p *parser) declareVariable() {
	if p.cc.scopeDepth == 0 {
		return
	}
	name := p.previous.Text
	for i := len(p.cc.locals) - 1; i >= 0; i-- {
		l := p.cc.locals[i]
		if l.depth != -1 && l.depth < p.cc.scopeDepth {
			break
		}
		if l.name == name {
			p.errorAtPrevious("Already a variable with this name in this scope.")
		}
	}
	p.addLocal(name)
}

func (p *parser) addLocal(name string) {
	if len(p.cc.locals) >= maxLocals {
		p.errorAtPrevious("Too many local variables in function.")
		return
	}
	p.cc.locals = append(p.cc.locals, local{name: name, depth: uninitializedDepth})
}

// parseVariable consumes an identifier and declares it, returning its text
// for global-scope callers that still need the name to emit a constant.
func (p *parser) parseVariable(message string) string {
	p.consume(token.Ident, message)
	p.declareVariable()
	return p.previous.Text
}

// markInitialized flips the most recently declared local from
// "uninitialized" to usable, at the current scope depth.
func (p *parser) markInitialized() {
	if p.cc.scopeDepth == 0 {
		return
	}
	p.cc.locals[len(p.cc.locals)-1].depth = p.cc.scopeDepth
}

// defineVariable finishes a `var` declaration: at global scope it emits
// DEFINE_GLOBAL; at local scope the value is already sitting in the new
// local's stack slot, so only markInitialized is needed.
func (p *parser) defineVariable(name string) {
	if p.cc.scopeDepth > 0 {
		p.markInitialized()
		return
	}
	idx := p.identifierConstant(name)
	p.emitBytes(bytecode.OpDefineGlobal, idx)
}

func (p *parser) beginScope() {
	p.cc.scopeDepth++
}

// endScope pops every local declared in the scope being left, emitting
// CLOSE_UPVALUE for ones captured by a nested closure and POP otherwise.
func (p *parser) endScope() {
	p.cc.scopeDepth--
	for len(p.cc.locals) > 0 && p.cc.locals[len(p.cc.locals)-1].depth > p.cc.scopeDepth {
		last := p.cc.locals[len(p.cc.locals)-1]
		if last.isCaptured {
			p.emitOp(bytecode.OpCloseUpvalue)
		} else {
			p.emitOp(bytecode.OpPop)
		}
		p.cc.locals = p.cc.locals[:len(p.cc.locals)-1]
	}
}
