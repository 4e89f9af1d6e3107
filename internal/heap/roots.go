package heap

import "loxvm/internal/value"

// MarkValue marks v's underlying object if v holds one; numbers, booleans
// and nil carry no heap reference and are no-ops.
func (h *Heap) MarkValue(v value.Value) {
	if v.IsObj() {
		h.Mark(v.AsHandle())
	}
}
