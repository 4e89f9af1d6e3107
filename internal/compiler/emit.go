package compiler

import (
	"fortio.org/safecast"

	"loxvm/internal/bytecode"
	"loxvm/internal/value"
)

func (p *parser) chunk() *bytecode.Chunk {
	return p.heap.Get(p.cc.fn).Chunk
}

func (p *parser) emitByte(b byte) {
	p.chunk().Write(b, p.previous.Line)
}

func (p *parser) emitOp(op bytecode.OpCode) {
	p.chunk().WriteOp(op, p.previous.Line)
}

func (p *parser) emitBytes(op bytecode.OpCode, operand byte) {
	p.emitOp(op)
	p.emitByte(operand)
}

// emitConstant appends v to the current chunk's constant pool and emits
// CONSTANT <idx>; exceeding 256 constants is reported as a compile error.
func (p *parser) emitConstant(v value.Value) {
	idx, err := p.chunk().AddConstant(v)
	if err != nil {
		p.errorAtPrevious(err.Error())
		return
	}
	p.emitBytes(bytecode.OpConstant, idx)
}

// emitJump writes op followed by a two-byte placeholder and returns the
// placeholder's offset, to be filled in later by patchJump.
func (p *parser) emitJump(op bytecode.OpCode) int {
	p.emitOp(op)
	p.emitByte(0xff)
	p.emitByte(0xff)
	return len(p.chunk().Code) - 2
}

// patchJump fills in the two-byte placeholder at offset with the distance
// from just past the placeholder to the current end of the chunk.
func (p *parser) patchJump(offset int) {
	jump := len(p.chunk().Code) - offset - 2
	hi, lo, err := splitU16(jump)
	if err != nil {
		p.errorAtPrevious("Too much code to jump over.")
		return
	}
	code := p.chunk().Code
	code[offset] = hi
	code[offset+1] = lo
}

// emitLoop emits a backward LOOP jump from the current position to
// loopStart.
func (p *parser) emitLoop(loopStart int) {
	p.emitOp(bytecode.OpLoop)
	offset := len(p.chunk().Code) - loopStart + 2
	hi, lo, err := splitU16(offset)
	if err != nil {
		p.errorAtPrevious("Loop body too large.")
		return
	}
	p.emitByte(hi)
	p.emitByte(lo)
}

func splitU16(n int) (hi, lo byte, err error) {
	u, err := safecast.Conv[uint16](n)
	if err != nil {
		return 0, 0, err
	}
	return byte(u >> 8), byte(u & 0xff), nil
}

// emitReturn emits the implicit return every function body falls through
// to: `this` for initializers (so `var o = Foo();` yields the instance, not
// nil), nil for everything else.
func (p *parser) emitReturn() {
	if p.cc.fnType == typeInitializer {
		p.emitBytes(bytecode.OpGetLocal, 0)
	} else {
		p.emitOp(bytecode.OpNil)
	}
	p.emitOp(bytecode.OpReturn)
}

// identifierConstant interns name and appends it to the current chunk's
// constant pool as a String value, returning its index.
func (p *parser) identifierConstant(name string) byte {
	handle := p.heap.InternString(name)
	idx, err := p.chunk().AddConstant(value.Obj(handle))
	if err != nil {
		p.errorAtPrevious(err.Error())
		return 0
	}
	return idx
}

// endCompiler emits the trailing implicit return, finalizes the current
// function's Object fields, pops the compiler stack, and returns the
// just-finished function's handle.
func (p *parser) endCompiler() value.Handle {
	p.emitReturn()
	fnHandle := p.cc.fn
	obj := p.heap.Get(fnHandle)
	obj.UpvalueCount = len(p.cc.upvalues)
	p.cc = p.cc.enclosing
	return fnHandle
}
