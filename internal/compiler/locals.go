package compiler

import "loxvm/internal/value"

// funcType distinguishes the four shapes of compiled function body: the
// implicit top-level script, an ordinary `fun` declaration, a class method,
// and a class initializer (`init`), which differs only in what RETURN with
// no operand produces and in forbidding `return <expr>`.
type funcType uint8

const (
	typeScript funcType = iota
	typeFunction
	typeMethod
	typeInitializer
)

const (
	maxLocals   = 256
	maxUpvalues = 256
)

// uninitializedDepth marks a local that has been declared but whose
// initializer has not yet run; reading it in that state is a compile error.
const uninitializedDepth = -1

type local struct {
	name       string
	depth      int
	isCaptured bool
}

type upvalueRef struct {
	index   byte
	isLocal bool
}

// Compiler holds one function's compile-time state. Each nested function
// literal pushes a new Compiler pointing at its enclosing one; the chain is
// walked both for upvalue resolution and, via roots.go, as a GC root set
// while compilation is in progress.
type Compiler struct {
	enclosing *Compiler
	fn        value.Handle
	fnType    funcType

	locals     []local
	scopeDepth int
	upvalues   []upvalueRef
}

func newCompiler(enclosing *Compiler, ft funcType, fn value.Handle) *Compiler {
	c := &Compiler{enclosing: enclosing, fn: fn, fnType: ft}
	// Slot 0 is reserved for the callee itself; methods and initializers
	// name it "this" so namedVariable resolves bare `this` to it.
	slot0 := ""
	if ft == typeMethod || ft == typeInitializer {
		slot0 = "this"
	}
	c.locals = append(c.locals, local{name: slot0, depth: 0})
	return c
}

// resolveLocal scans c's locals from the top (most recently declared) down,
// returning its slot index, or -1 if name isn't a local in this function.
func (c *Compiler) resolveLocal(name string) int {
	for i := len(c.locals) - 1; i >= 0; i-- {
		if c.locals[i].name == name {
			return i
		}
	}
	return -1
}

// addUpvalue records that c closes over index (a slot in the enclosing
// function's locals, if isLocal, or an upvalue index of the enclosing
// function otherwise), deduplicating against any upvalue c already
// captures for the same source. Reports "Too many closure variables in
// function." past maxUpvalues, mirroring the 256-local limit.
func (p *parser) addUpvalue(c *Compiler, index byte, isLocal bool) int {
	for i, u := range c.upvalues {
		if u.index == index && u.isLocal == isLocal {
			return i
		}
	}
	if len(c.upvalues) >= maxUpvalues {
		p.errorAtPrevious("Too many closure variables in function.")
		return 0
	}
	c.upvalues = append(c.upvalues, upvalueRef{index: index, isLocal: isLocal})
	return len(c.upvalues) - 1
}

// resolveUpvalue recursively asks c's enclosing compiler for name, either as
// one of its locals (marking it captured so the VM knows to close it on
// scope exit) or as one of its own upvalues, threading the capture down
// through every intervening function. Returns -1 if name is not found in
// any enclosing scope (so the caller should fall back to a global).
func (p *parser) resolveUpvalue(c *Compiler, name string) int {
	if c.enclosing == nil {
		return -1
	}
	if slot := c.enclosing.resolveLocal(name); slot != -1 {
		c.enclosing.locals[slot].isCaptured = true
		return p.addUpvalue(c, byte(slot), true)
	}
	if up := p.resolveUpvalue(c.enclosing, name); up != -1 {
		return p.addUpvalue(c, byte(up), false)
	}
	return -1
}
