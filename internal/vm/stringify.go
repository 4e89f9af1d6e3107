package vm

import (
	"fmt"
	"strconv"

	"loxvm/internal/object"
	"loxvm/internal/value"
)

// stringify renders a Value the way PRINT and the str() native both need:
// numbers via the shortest round-tripping decimal form, objects
// via their kind-specific textual form.
func (vm *VM) stringify(v value.Value) string {
	switch v.Kind() {
	case value.KindNil:
		return "nil"
	case value.KindBool:
		if v.AsBool() {
			return "true"
		}
		return "false"
	case value.KindNumber:
		return strconv.FormatFloat(v.AsNumber(), 'g', -1, 64)
	case value.KindObj:
		return vm.stringifyObject(v.AsHandle())
	default:
		return ""
	}
}

func (vm *VM) stringifyObject(h value.Handle) string {
	obj := vm.heap.Get(h)
	switch obj.Kind {
	case object.KindString:
		return obj.Str
	case object.KindFunction:
		if obj.Name == 0 {
			return "<script>"
		}
		return fmt.Sprintf("<fn %s>", vm.heap.Get(obj.Name).Str)
	case object.KindClosure:
		return vm.stringifyObject(obj.Function)
	case object.KindNative:
		return "<native fn>"
	case object.KindClass:
		return vm.heap.Get(obj.ClassName).Str
	case object.KindInstance:
		classObj := vm.heap.Get(obj.Class)
		return vm.heap.Get(classObj.ClassName).Str + " instance"
	case object.KindBoundMethod:
		return vm.stringifyObject(obj.Method.AsHandle())
	default:
		return ""
	}
}
