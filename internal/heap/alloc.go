package heap

import (
	"loxvm/internal/bytecode"
	"loxvm/internal/object"
	"loxvm/internal/value"
)

// InternString returns the canonical Handle for s, allocating a new String
// object the first time s is seen and reusing it afterward. Go strings are
// already immutable, so the spec's "copy" (duplicate a borrowed buffer) and
// "take" (adopt an owned buffer) constructors collapse into this one
// function — there is no borrowed-vs-owned distinction left to preserve.
func (h *Heap) InternString(s string) value.Handle {
	if existing, ok := h.strings[s]; ok {
		return existing
	}
	handle, obj := h.allocate(object.KindString, stringOverhead+len(s))
	obj.Str = s
	obj.Hash = object.HashString(s)
	h.strings[s] = handle
	return handle
}

// NewFunction allocates an (initially empty) Function object with a fresh
// Chunk. The caller fills in Arity, UpvalueCount and Name, and the compiler
// grows the Chunk incrementally. Size is charged once, up front, as
// functionSize; the Chunk's later growth is not metered against
// bytesAllocated.
func (h *Heap) NewFunction() value.Handle {
	handle, obj := h.allocate(object.KindFunction, functionSize)
	obj.Chunk = bytecode.NewChunk()
	return handle
}

// NewClosure wraps fn in a Closure with a fixed-size upvalue array sized to
// the function's declared upvalue count.
func (h *Heap) NewClosure(fn value.Handle, upvalueCount int) value.Handle {
	handle, obj := h.allocate(object.KindClosure, closureOverhead+4*upvalueCount)
	obj.Function = fn
	obj.Upvalues = make([]value.Handle, upvalueCount)
	return handle
}

// NewOpenUpvalue allocates an Upvalue aliasing stackPos in the VM's value
// stack.
func (h *Heap) NewOpenUpvalue(stackPos int) value.Handle {
	handle, obj := h.allocate(object.KindUpvalue, upvalueSize)
	obj.StackPos = stackPos
	return handle
}

// NewNative allocates a Native object wrapping fn.
func (h *Heap) NewNative(fn object.NativeFn) value.Handle {
	handle, obj := h.allocate(object.KindNative, nativeSize)
	obj.Native = fn
	return handle
}

// NewClass allocates a Class with the given (already-interned) name and an
// empty method table.
func (h *Heap) NewClass(name value.Handle) value.Handle {
	handle, obj := h.allocate(object.KindClass, classOverhead)
	obj.ClassName = name
	obj.Methods = make(map[value.Handle]value.Value)
	return handle
}

// NewInstance allocates an Instance of class with an empty field table.
func (h *Heap) NewInstance(class value.Handle) value.Handle {
	handle, obj := h.allocate(object.KindInstance, instanceSize)
	obj.Class = class
	obj.Fields = make(map[value.Handle]value.Value)
	return handle
}

// NewBoundMethod allocates a BoundMethod pairing receiver with method (a
// Closure value).
func (h *Heap) NewBoundMethod(receiver, method value.Value) value.Handle {
	handle, obj := h.allocate(object.KindBoundMethod, boundMethodSize)
	obj.Receiver = receiver
	obj.Method = method
	return handle
}

// Concatenate allocates a fresh String holding a's bytes followed by b's,
// interning the result. Both a and b must remain reachable from the
// caller's roots for the duration of this call, per the heap's safety rule
// — the VM's ADD handler peeks rather than pops until after this returns.
func (h *Heap) Concatenate(aHandle, bHandle value.Handle) value.Handle {
	a := h.Get(aHandle)
	b := h.Get(bHandle)
	return h.InternString(a.Str + b.Str)
}
