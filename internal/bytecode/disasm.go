package bytecode

import (
	"fmt"
	"strings"
)

// Disassemble renders an entire chunk as a readable listing, one
// instruction per line. Like the VM's dispatch loop, it must agree with the
// compiler on every opcode's operand widths, so adding an opcode means
// updating disassembleInstr too.
func Disassemble(c *Chunk, name string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "== %s ==\n", name)
	for offset := 0; offset < len(c.Code); {
		offset = disassembleInstr(&b, c, offset)
	}
	return b.String()
}

func disassembleInstr(b *strings.Builder, c *Chunk, offset int) int {
	line := c.LineAt(offset)
	fmt.Fprintf(b, "%04d %4d ", offset, line)
	op := OpCode(c.Code[offset])
	switch op {
	case OpConstant, OpGetGlobal, OpSetGlobal, OpDefineGlobal, OpClass, OpMethod:
		return constantInstr(b, c, op, offset)
	case OpGetProperty, OpSetProperty, OpGetSuper:
		return constantInstr(b, c, op, offset)
	case OpGetLocal, OpSetLocal, OpGetUpvalue, OpSetUpvalue, OpCall:
		return byteInstr(b, c, op, offset)
	case OpInvoke, OpSuperInvoke:
		return invokeInstr(b, c, op, offset)
	case OpJump, OpJumpIfFalse, OpLoop:
		return jumpInstr(b, c, op, offset)
	case OpClosure:
		return closureInstr(b, c, offset)
	default:
		fmt.Fprintf(b, "%s\n", op)
		return offset + 1
	}
}

func constantInstr(b *strings.Builder, c *Chunk, op OpCode, offset int) int {
	idx := c.Code[offset+1]
	fmt.Fprintf(b, "%-18s %4d\n", op, idx)
	return offset + 2
}

func byteInstr(b *strings.Builder, c *Chunk, op OpCode, offset int) int {
	slot := c.Code[offset+1]
	fmt.Fprintf(b, "%-18s %4d\n", op, slot)
	return offset + 2
}

func invokeInstr(b *strings.Builder, c *Chunk, op OpCode, offset int) int {
	nameIdx := c.Code[offset+1]
	argc := c.Code[offset+2]
	fmt.Fprintf(b, "%-18s %4d (%d args)\n", op, nameIdx, argc)
	return offset + 3
}

func jumpInstr(b *strings.Builder, c *Chunk, op OpCode, offset int) int {
	jump := int(c.Code[offset+1])<<8 | int(c.Code[offset+2])
	target := offset + 3
	if op == OpLoop {
		target -= jump
	} else {
		target += jump
	}
	fmt.Fprintf(b, "%-18s %4d -> %d\n", op, offset, target)
	return offset + 3
}

func closureInstr(b *strings.Builder, c *Chunk, offset int) int {
	idx := c.Code[offset+1]
	upvalueCount := c.Code[offset+2]
	fmt.Fprintf(b, "%-18s %4d (%d upvalues)\n", OpClosure, idx, upvalueCount)
	offset += 3
	for i := byte(0); i < upvalueCount; i++ {
		isLocal := c.Code[offset]
		index := c.Code[offset+1]
		kind := "upvalue"
		if isLocal != 0 {
			kind = "local"
		}
		fmt.Fprintf(b, "%04d      |                     %s %d\n", offset, kind, index)
		offset += 2
	}
	return offset
}
