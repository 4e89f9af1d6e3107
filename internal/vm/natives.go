package vm

import (
	"fmt"

	"loxvm/internal/value"
)

// StrNative turns any value into its printed form as a Lox string,
// without going through PRINT — useful for string-building a message
// before printing or concatenating it. Not registered by default; a host
// opts in with vm.DefineNative("str", vm.StrNative).
func (vm *VM) StrNative(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Nil(), fmt.Errorf("str() takes exactly 1 argument (%d given)", len(args))
	}
	return value.Obj(vm.heap.InternString(vm.stringify(args[0]))), nil
}
