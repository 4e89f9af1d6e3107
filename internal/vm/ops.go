package vm

import (
	"loxvm/internal/bytecode"
	"loxvm/internal/object"
	"loxvm/internal/value"
)

// binaryNumeric implements the five ops that only ever accept numbers:
// SUBTRACT, MULTIPLY, DIVIDE, GREATER and LESS (EQUAL handles every kind
// via value.Equal and ADD handles the number-or-string overload
// separately in add()).
func (vm *VM) binaryNumeric(op bytecode.OpCode) error {
	b, a := vm.peek(0), vm.peek(1)
	if !a.IsNumber() || !b.IsNumber() {
		return vm.runtimeErrorf("Operands must be numbers.")
	}
	vm.pop()
	vm.pop()
	x, y := a.AsNumber(), b.AsNumber()
	switch op {
	case bytecode.OpSubtract:
		vm.push(value.Number(x - y))
	case bytecode.OpMultiply:
		vm.push(value.Number(x * y))
	case bytecode.OpDivide:
		vm.push(value.Number(x / y))
	case bytecode.OpGreater:
		vm.push(value.Bool(x > y))
	case bytecode.OpLess:
		vm.push(value.Bool(x < y))
	}
	return nil
}

// add implements ADD's two-overload rule: number+number or string+string.
// Both operands are peeked, not popped, until after any allocation
// Concatenate performs, so a GC triggered mid-call still sees them as
// roots on the value stack.
func (vm *VM) add() error {
	b, a := vm.peek(0), vm.peek(1)
	switch {
	case a.IsNumber() && b.IsNumber():
		vm.pop()
		vm.pop()
		vm.push(value.Number(a.AsNumber() + b.AsNumber()))
	case vm.isString(a) && vm.isString(b):
		result := vm.heap.Concatenate(a.AsHandle(), b.AsHandle())
		vm.pop()
		vm.pop()
		vm.push(value.Obj(result))
	default:
		return vm.runtimeErrorf("Operands must be two numbers or two strings.")
	}
	return nil
}

func (vm *VM) isString(v value.Value) bool {
	return v.IsObj() && vm.heap.Get(v.AsHandle()).Kind == object.KindString
}
