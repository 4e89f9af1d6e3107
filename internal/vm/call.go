package vm

import (
	"fmt"

	"loxvm/internal/object"
	"loxvm/internal/value"
)

// callValue dispatches on the callee's object kind:
// a Closure pushes a new frame, a Native runs synchronously and collapses
// its argc+1 stack slots into one return value, a Class instantiates
// (running init if the class defines one), a BoundMethod rewrites its own
// slot to the bound receiver and calls through to the method.
func (vm *VM) callValue(callee value.Value, argc int) error {
	if !callee.IsObj() {
		return vm.runtimeErrorf("Can only call functions and classes.")
	}
	obj := vm.heap.Get(callee.AsHandle())
	switch obj.Kind {
	case object.KindClosure:
		return vm.call(callee.AsHandle(), argc)
	case object.KindNative:
		args := make([]value.Value, argc)
		copy(args, vm.stack[len(vm.stack)-argc:])
		result, err := obj.Native(args)
		if err != nil {
			return vm.runtimeErrorf(err.Error())
		}
		vm.stack = vm.stack[:len(vm.stack)-argc-1]
		vm.push(result)
		return nil
	case object.KindClass:
		instance := vm.heap.NewInstance(callee.AsHandle())
		vm.stack[len(vm.stack)-argc-1] = value.Obj(instance)
		if initializer, ok := obj.Methods[vm.initString]; ok {
			return vm.call(initializer.AsHandle(), argc)
		}
		if argc != 0 {
			return vm.runtimeErrorf("Expected 0 arguments but got %d.", argc)
		}
		return nil
	case object.KindBoundMethod:
		vm.stack[len(vm.stack)-argc-1] = obj.Receiver
		return vm.call(obj.Method.AsHandle(), argc)
	default:
		return vm.runtimeErrorf("Can only call functions and classes.")
	}
}

// call pushes a new frame over closureHandle, checking arity and the
// call-depth limit first.
func (vm *VM) call(closureHandle value.Handle, argc int) error {
	closure := vm.heap.Get(closureHandle)
	fn := vm.heap.Get(closure.Function)
	if argc != fn.Arity {
		return vm.runtimeErrorf("Expected %d arguments but got %d.", fn.Arity, argc)
	}
	if len(vm.frames) == maxFrames {
		return vm.runtimeErrorf("Stack overflow.")
	}
	vm.frames = append(vm.frames, callFrame{
		closure: closureHandle,
		ip:      0,
		slots:   len(vm.stack) - argc - 1,
	})
	return nil
}

// captureUpvalue returns the open Upvalue aliasing stackPos, reusing an
// existing one if a prior closure already captured that slot, otherwise
// allocating a new one and inserting it into openUpvalues so the list stays
// sorted by strictly decreasing StackPos (matching clox's linked-list
// insertion order, here as a slice).
func (vm *VM) captureUpvalue(stackPos int) value.Handle {
	idx := 0
	for idx < len(vm.openUpvalues) {
		obj := vm.heap.Get(vm.openUpvalues[idx])
		if obj.StackPos == stackPos {
			return vm.openUpvalues[idx]
		}
		if obj.StackPos < stackPos {
			break
		}
		idx++
	}
	created := vm.heap.NewOpenUpvalue(stackPos)
	vm.openUpvalues = append(vm.openUpvalues, 0)
	copy(vm.openUpvalues[idx+1:], vm.openUpvalues[idx:])
	vm.openUpvalues[idx] = created
	return created
}

// closeUpvalues closes every open upvalue whose StackPos is at or above
// boundary: its current stack value is copied into the upvalue's own
// storage and it is unlinked from the open list. Called on scope exit
// (CLOSE_UPVALUE) and on function return, so a closure's captured
// variables keep working after the stack slot they aliased is reused.
func (vm *VM) closeUpvalues(boundary int) {
	for len(vm.openUpvalues) > 0 {
		handle := vm.openUpvalues[0]
		obj := vm.heap.Get(handle)
		if obj.StackPos < boundary {
			break
		}
		obj.Closed = vm.stack[obj.StackPos]
		obj.IsClosed = true
		vm.openUpvalues = vm.openUpvalues[1:]
	}
}

func (vm *VM) upvalueValue(h value.Handle) value.Value {
	obj := vm.heap.Get(h)
	if obj.IsClosed {
		return obj.Closed
	}
	return vm.stack[obj.StackPos]
}

func (vm *VM) setUpvalueValue(h value.Handle, v value.Value) {
	obj := vm.heap.Get(h)
	if obj.IsClosed {
		obj.Closed = v
	} else {
		vm.stack[obj.StackPos] = v
	}
}

// runtimeErrorf builds a RuntimeError carrying a frame-by-frame trace
// (innermost first) and resets the VM's stack and frames, since a runtime
// error unwinds the whole execution rather than being caught.
func (vm *VM) runtimeErrorf(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	trace := make([]string, 0, len(vm.frames))
	for i := len(vm.frames) - 1; i >= 0; i-- {
		f := vm.frames[i]
		closure := vm.heap.Get(f.closure)
		fn := vm.heap.Get(closure.Function)
		name := "script"
		if fn.Name != 0 {
			name = vm.heap.Get(fn.Name).Str
		}
		line := fn.Chunk.LineAt(f.ip - 1)
		trace = append(trace, fmt.Sprintf("[line %d] in %s", line, name))
	}
	vm.stack = vm.stack[:0]
	vm.frames = vm.frames[:0]
	vm.openUpvalues = nil
	return &RuntimeError{Message: msg, Trace: trace}
}
