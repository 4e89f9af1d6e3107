// Package vm executes the bytecode internal/compiler emits: a fixed-depth
// call-frame stack, a growable value stack, a globals table, and the
// open-upvalue list, dispatched by a switch-on-opcode loop in run.go. The
// VM is the heap's RootSource while it runs (roots.go).
package vm

import (
	"io"
	"os"
	"time"

	"loxvm/internal/heap"
	"loxvm/internal/object"
	"loxvm/internal/value"
)

// VM holds all mutable interpreter state for one script execution.
type VM struct {
	heap   *heap.Heap
	stack  []value.Value
	frames []callFrame

	globals      map[value.Handle]value.Value
	openUpvalues []value.Handle // kept sorted by strictly decreasing StackPos

	initString value.Handle
	start      time.Time

	// Stdout is where the PRINT opcode writes; cmd/lox points it at the
	// process's real stdout, tests point it at a bytes.Buffer.
	Stdout io.Writer
}

// New constructs a VM over h, installs it as h's root source, interns the
// "init" sentinel method name, and registers the default clock() native.
func New(h *heap.Heap) *VM {
	vm := &VM{
		heap:    h,
		stack:   make([]value.Value, 0, maxFrames*256),
		frames:  make([]callFrame, 0, maxFrames),
		globals: make(map[value.Handle]value.Value),
		start:   time.Now(),
		Stdout:  os.Stdout,
	}
	h.SetRoots(vm)
	vm.initString = h.InternString("init")
	vm.DefineNative("clock", vm.clockNative)
	return vm
}

// DefineNative installs fn as a global callable bound to name, the same
// mechanism a `var` declaration would use — natives live in the globals
// table, not a separate namespace.
func (vm *VM) DefineNative(name string, fn object.NativeFn) {
	nativeHandle := vm.heap.NewNative(fn)
	vm.push(value.Obj(nativeHandle)) // rooted while the name is interned
	nameHandle := vm.heap.InternString(name)
	vm.globals[nameHandle] = value.Obj(nativeHandle)
	vm.pop()
}

func (vm *VM) clockNative(args []value.Value) (value.Value, error) {
	return value.Number(time.Since(vm.start).Seconds()), nil
}

func (vm *VM) push(v value.Value) {
	vm.stack = append(vm.stack, v)
}

func (vm *VM) pop() value.Value {
	top := len(vm.stack) - 1
	v := vm.stack[top]
	vm.stack = vm.stack[:top]
	return v
}

func (vm *VM) peek(distance int) value.Value {
	return vm.stack[len(vm.stack)-1-distance]
}

func (vm *VM) currentFrame() *callFrame {
	return &vm.frames[len(vm.frames)-1]
}
