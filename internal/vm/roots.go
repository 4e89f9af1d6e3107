package vm

import (
	"loxvm/internal/heap"
)

// MarkRoots implements heap.RootSource: every slot on the value stack,
// every active frame's closure, every open upvalue, both the keys and
// values of the globals table, and the interned "init" string.
func (vm *VM) MarkRoots(h *heap.Heap) {
	for _, v := range vm.stack {
		h.MarkValue(v)
	}
	for _, f := range vm.frames {
		h.Mark(f.closure)
	}
	for _, u := range vm.openUpvalues {
		h.Mark(u)
	}
	for name, v := range vm.globals {
		h.Mark(name)
		h.MarkValue(v)
	}
	h.Mark(vm.initString)
}
