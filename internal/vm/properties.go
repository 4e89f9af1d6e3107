package vm

import (
	"loxvm/internal/object"
	"loxvm/internal/value"
)

// getProperty implements GET_PROPERTY: an Instance's field table is
// checked first, then its class's method table (binding a BoundMethod so
// the receiver travels with the method even after it's read off as a
// plain value, e.g. `var m = obj.method; m();`).
func (vm *VM) getProperty(nameHandle value.Handle) error {
	receiver := vm.peek(0)
	instObj, err := vm.asInstance(receiver, "Only instances have properties.")
	if err != nil {
		return err
	}
	if v, ok := instObj.Fields[nameHandle]; ok {
		vm.pop()
		vm.push(v)
		return nil
	}
	return vm.bindMethod(instObj.Class, nameHandle)
}

// bindMethod looks up name on classHandle's method table and, on success,
// replaces the receiver sitting on top of the stack with a BoundMethod
// pairing it with the resolved method.
func (vm *VM) bindMethod(classHandle value.Handle, nameHandle value.Handle) error {
	classObj := vm.heap.Get(classHandle)
	method, ok := classObj.Methods[nameHandle]
	if !ok {
		return vm.runtimeErrorf("Undefined property '%s'.", vm.heap.Get(nameHandle).Str)
	}
	receiver := vm.peek(0) // stays on the stack until the allocation is done
	bound := vm.heap.NewBoundMethod(receiver, method)
	vm.pop()
	vm.push(value.Obj(bound))
	return nil
}

func (vm *VM) setProperty(nameHandle value.Handle) error {
	receiver := vm.peek(1)
	instObj, err := vm.asInstance(receiver, "Only instances have fields.")
	if err != nil {
		return err
	}
	instObj.Fields[nameHandle] = vm.peek(0)
	v := vm.pop()
	vm.pop()
	vm.push(v)
	return nil
}

// invoke fuses a property lookup with an immediate call, skipping the
// BoundMethod allocation in the common `obj.method(args)` case. A field
// holding a callable still works — it's looked up and called the same way
// a plain call would — before falling through to the class method table.
func (vm *VM) invoke(nameHandle value.Handle, argc int) error {
	receiver := vm.peek(argc)
	instObj, err := vm.asInstance(receiver, "Only instances have methods.")
	if err != nil {
		return err
	}
	if v, ok := instObj.Fields[nameHandle]; ok {
		vm.stack[len(vm.stack)-argc-1] = v
		return vm.callValue(v, argc)
	}
	return vm.invokeFromClass(instObj.Class, nameHandle, argc)
}

func (vm *VM) invokeFromClass(classHandle value.Handle, nameHandle value.Handle, argc int) error {
	classObj := vm.heap.Get(classHandle)
	method, ok := classObj.Methods[nameHandle]
	if !ok {
		return vm.runtimeErrorf("Undefined property '%s'.", vm.heap.Get(nameHandle).Str)
	}
	return vm.call(method.AsHandle(), argc)
}

// getSuper implements GET_SUPER: the superclass value is popped off the
// stack (it was pushed there by the compiler's synthetic "super" local),
// and the bound method is resolved against it rather than the receiver's
// own (possibly overriding) class.
func (vm *VM) getSuper(nameHandle value.Handle) error {
	superclass := vm.pop()
	return vm.bindMethod(superclass.AsHandle(), nameHandle)
}

// superInvoke is GET_SUPER fused with a call, skipping field lookup
// entirely — `super.m()` always means the class method, never a field.
func (vm *VM) superInvoke(nameHandle value.Handle, argc int) error {
	superclass := vm.pop()
	return vm.invokeFromClass(superclass.AsHandle(), nameHandle, argc)
}

func (vm *VM) asInstance(v value.Value, errMsg string) (*object.Object, error) {
	if !v.IsObj() {
		return nil, vm.runtimeErrorf(errMsg)
	}
	obj := vm.heap.Get(v.AsHandle())
	if obj.Kind != object.KindInstance {
		return nil, vm.runtimeErrorf(errMsg)
	}
	return obj, nil
}
