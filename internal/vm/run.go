package vm

import (
	"fmt"

	"loxvm/internal/bytecode"
	"loxvm/internal/object"
	"loxvm/internal/value"
)

// Run wraps fn (the implicit top-level script Function the compiler
// returns) in a zero-upvalue Closure, pushes the initial call frame, and
// executes the dispatch loop to completion or until a runtime error.
func (vm *VM) Run(fn value.Handle) error {
	vm.push(value.Obj(fn)) // rooted while the closure is allocated
	closureHandle := vm.heap.NewClosure(fn, 0)
	vm.pop()
	vm.push(value.Obj(closureHandle))
	if err := vm.call(closureHandle, 0); err != nil {
		return err
	}
	return vm.dispatch()
}

func readByte(frame *callFrame, chunk *bytecode.Chunk) byte {
	b := chunk.Code[frame.ip]
	frame.ip++
	return b
}

func readU16(frame *callFrame, chunk *bytecode.Chunk) int {
	hi := chunk.Code[frame.ip]
	lo := chunk.Code[frame.ip+1]
	frame.ip += 2
	return int(hi)<<8 | int(lo)
}

func readConstant(frame *callFrame, chunk *bytecode.Chunk) value.Value {
	return chunk.Constants[readByte(frame, chunk)]
}

// dispatch is the VM's fetch-decode-execute loop: the frame and chunk
// pointers are refreshed at the top of every iteration since CALL and
// RETURN both change which frame is current and may reallocate the
// frames slice, invalidating any pointer held from a previous iteration.
func (vm *VM) dispatch() error {
	for {
		frame := vm.currentFrame()
		closure := vm.heap.Get(frame.closure)
		fnObj := vm.heap.Get(closure.Function)
		chunk := fnObj.Chunk

		op := bytecode.OpCode(readByte(frame, chunk))
		switch op {
		case bytecode.OpConstant:
			vm.push(readConstant(frame, chunk))
		case bytecode.OpNil:
			vm.push(value.Nil())
		case bytecode.OpTrue:
			vm.push(value.Bool(true))
		case bytecode.OpFalse:
			vm.push(value.Bool(false))
		case bytecode.OpPop:
			vm.pop()

		case bytecode.OpGetLocal:
			slot := readByte(frame, chunk)
			vm.push(vm.stack[frame.slots+int(slot)])
		case bytecode.OpSetLocal:
			slot := readByte(frame, chunk)
			vm.stack[frame.slots+int(slot)] = vm.peek(0)

		case bytecode.OpGetGlobal:
			nameHandle := readConstant(frame, chunk).AsHandle()
			v, ok := vm.globals[nameHandle]
			if !ok {
				return vm.runtimeErrorf("Undefined variable '%s'.", vm.heap.Get(nameHandle).Str)
			}
			vm.push(v)
		case bytecode.OpSetGlobal:
			nameHandle := readConstant(frame, chunk).AsHandle()
			if _, ok := vm.globals[nameHandle]; !ok {
				return vm.runtimeErrorf("Undefined variable '%s'.", vm.heap.Get(nameHandle).Str)
			}
			vm.globals[nameHandle] = vm.peek(0)
		case bytecode.OpDefineGlobal:
			nameHandle := readConstant(frame, chunk).AsHandle()
			vm.globals[nameHandle] = vm.pop()

		case bytecode.OpGetUpvalue:
			slot := readByte(frame, chunk)
			vm.push(vm.upvalueValue(closure.Upvalues[slot]))
		case bytecode.OpSetUpvalue:
			slot := readByte(frame, chunk)
			vm.setUpvalueValue(closure.Upvalues[slot], vm.peek(0))

		case bytecode.OpGetProperty:
			nameHandle := readConstant(frame, chunk).AsHandle()
			if err := vm.getProperty(nameHandle); err != nil {
				return err
			}
		case bytecode.OpSetProperty:
			nameHandle := readConstant(frame, chunk).AsHandle()
			if err := vm.setProperty(nameHandle); err != nil {
				return err
			}
		case bytecode.OpGetSuper:
			nameHandle := readConstant(frame, chunk).AsHandle()
			if err := vm.getSuper(nameHandle); err != nil {
				return err
			}

		case bytecode.OpEqual:
			b, a := vm.pop(), vm.pop()
			vm.push(value.Bool(value.Equal(a, b)))
		case bytecode.OpGreater, bytecode.OpLess, bytecode.OpSubtract, bytecode.OpMultiply, bytecode.OpDivide:
			if err := vm.binaryNumeric(op); err != nil {
				return err
			}
		case bytecode.OpAdd:
			if err := vm.add(); err != nil {
				return err
			}
		case bytecode.OpNot:
			vm.push(value.Bool(!value.Truthy(vm.pop())))
		case bytecode.OpNegate:
			v := vm.peek(0)
			if !v.IsNumber() {
				return vm.runtimeErrorf("Operand must be a number.")
			}
			vm.pop()
			vm.push(value.Number(-v.AsNumber()))

		case bytecode.OpPrint:
			v := vm.pop()
			fmt.Fprintln(vm.Stdout, vm.stringify(v))

		case bytecode.OpJump:
			offset := readU16(frame, chunk)
			frame.ip += offset
		case bytecode.OpJumpIfFalse:
			offset := readU16(frame, chunk)
			if !value.Truthy(vm.peek(0)) {
				frame.ip += offset
			}
		case bytecode.OpLoop:
			offset := readU16(frame, chunk)
			frame.ip -= offset

		case bytecode.OpCall:
			argc := int(readByte(frame, chunk))
			if err := vm.callValue(vm.peek(argc), argc); err != nil {
				return err
			}
		case bytecode.OpInvoke:
			nameHandle := readConstant(frame, chunk).AsHandle()
			argc := int(readByte(frame, chunk))
			if err := vm.invoke(nameHandle, argc); err != nil {
				return err
			}
		case bytecode.OpSuperInvoke:
			nameHandle := readConstant(frame, chunk).AsHandle()
			argc := int(readByte(frame, chunk))
			if err := vm.superInvoke(nameHandle, argc); err != nil {
				return err
			}

		case bytecode.OpClosure:
			if err := vm.makeClosure(frame, chunk); err != nil {
				return err
			}
		case bytecode.OpCloseUpvalue:
			vm.closeUpvalues(len(vm.stack) - 1)
			vm.pop()
		case bytecode.OpReturn:
			if vm.doReturn(frame) {
				return nil
			}

		case bytecode.OpClass:
			nameHandle := readConstant(frame, chunk).AsHandle()
			vm.push(value.Obj(vm.heap.NewClass(nameHandle)))
		case bytecode.OpInherit:
			if err := vm.inherit(); err != nil {
				return err
			}
		case bytecode.OpMethod:
			nameHandle := readConstant(frame, chunk).AsHandle()
			vm.bindMethodToClass(nameHandle)

		default:
			return vm.runtimeErrorf("Unknown opcode %d.", byte(op))
		}
	}
}

// makeClosure reads the function constant, then the explicit upvalue
// count this VM's compiler emits right after it (see statements.go's
// function() for why: bytecode can't import object to follow the
// function pointer's own UpvalueCount field the way a C VM would), then
// the N {isLocal, index} capture pairs.
func (vm *VM) makeClosure(frame *callFrame, chunk *bytecode.Chunk) error {
	fnHandle := readConstant(frame, chunk).AsHandle()
	upvalueCount := int(readByte(frame, chunk))

	closureHandle := vm.heap.NewClosure(fnHandle, upvalueCount)
	vm.push(value.Obj(closureHandle)) // reachable before any further allocation

	closureObj := vm.heap.Get(closureHandle)
	enclosing := vm.heap.Get(frame.closure)
	for i := 0; i < upvalueCount; i++ {
		isLocal := readByte(frame, chunk)
		index := readByte(frame, chunk)
		if isLocal != 0 {
			closureObj.Upvalues[i] = vm.captureUpvalue(frame.slots + int(index))
		} else {
			closureObj.Upvalues[i] = enclosing.Upvalues[index]
		}
	}
	return nil
}

// doReturn pops the return value, closes every upvalue the returning
// frame owned, and pops the frame. It reports whether execution is
// finished (the top-level script frame just returned).
func (vm *VM) doReturn(frame *callFrame) bool {
	result := vm.pop()
	slotsBase := frame.slots
	vm.closeUpvalues(slotsBase)
	vm.frames = vm.frames[:len(vm.frames)-1]
	if len(vm.frames) == 0 {
		vm.pop() // the script's own closure
		return true
	}
	vm.stack = vm.stack[:slotsBase]
	vm.push(result)
	return false
}

func (vm *VM) inherit() error {
	superVal := vm.peek(1)
	if !superVal.IsObj() || vm.heap.Get(superVal.AsHandle()).Kind != object.KindClass {
		return vm.runtimeErrorf("Superclass must be a class.")
	}
	superObj := vm.heap.Get(superVal.AsHandle())
	subObj := vm.heap.Get(vm.peek(0).AsHandle())
	for nameHandle, method := range superObj.Methods {
		subObj.Methods[nameHandle] = method
	}
	vm.pop() // the subclass; the superclass stays for the "super" local
	return nil
}

func (vm *VM) bindMethodToClass(nameHandle value.Handle) {
	method := vm.pop()
	classObj := vm.heap.Get(vm.peek(0).AsHandle())
	classObj.Methods[nameHandle] = method
}
