package heap

import (
	"loxvm/internal/object"
	"loxvm/internal/value"
)

// Collect runs one full, stop-the-world mark-sweep cycle: ask Roots for
// every root, trace until the gray worklist is empty, drop now-unreachable
// entries from the string intern table (a weak map), then sweep every
// object that stayed unmarked.
func (h *Heap) Collect() {
	if h.Roots == nil {
		return
	}
	h.log("-- gc begin")

	h.Roots.MarkRoots(h)
	for len(h.gray) > 0 {
		handle := h.gray[len(h.gray)-1]
		h.gray = h.gray[:len(h.gray)-1]
		h.blacken(handle)
	}

	h.sweepIntern()
	h.sweep()

	h.nextGC = h.bytesAllocated * 2
	if h.nextGC < initialNextGC {
		h.nextGC = initialNextGC
	}
	h.log("-- gc end")
}

// Mark roots a handle: an already-marked or invalid handle is a no-op
// (marking is idempotent), otherwise the object is flagged and pushed to
// the gray worklist for blacken to process later.
func (h *Heap) Mark(handle value.Handle) {
	if handle == 0 {
		return
	}
	obj := h.objs[handle]
	if obj == nil || obj.Marked {
		return
	}
	obj.Marked = true
	h.gray = append(h.gray, handle)
}

// blacken marks every object a live object directly references.
func (h *Heap) blacken(handle value.Handle) {
	obj := h.objs[handle]
	if obj == nil {
		return
	}
	switch obj.Kind {
	case object.KindFunction:
		h.Mark(obj.Name)
		if obj.Chunk != nil {
			for _, c := range obj.Chunk.Constants {
				h.MarkValue(c)
			}
		}
	case object.KindClosure:
		h.Mark(obj.Function)
		for _, u := range obj.Upvalues {
			h.Mark(u)
		}
	case object.KindUpvalue:
		if obj.IsClosed {
			h.MarkValue(obj.Closed)
		}
	case object.KindClass:
		h.Mark(obj.ClassName)
		for nameHandle, method := range obj.Methods {
			h.Mark(nameHandle)
			h.MarkValue(method)
		}
	case object.KindInstance:
		h.Mark(obj.Class)
		for nameHandle, field := range obj.Fields {
			h.Mark(nameHandle)
			h.MarkValue(field)
		}
	case object.KindBoundMethod:
		h.MarkValue(obj.Receiver)
		h.MarkValue(obj.Method)
	case object.KindString, object.KindNative:
		// leaf objects: nothing further to trace.
	}
}

// sweepIntern drops any intern-table entry whose key string is no longer
// marked; the intern table holds only weak references.
func (h *Heap) sweepIntern() {
	for s, handle := range h.strings {
		obj := h.objs[handle]
		if obj == nil || !obj.Marked {
			delete(h.strings, s)
		}
	}
}

// sweep frees every unmarked object and clears the mark bit on survivors,
// refunding their size to bytesAllocated as they go.
func (h *Heap) sweep() {
	for handle, obj := range h.objs {
		if obj.Marked {
			obj.Marked = false
			continue
		}
		h.bytesAllocated -= obj.Size
		delete(h.objs, handle)
	}
}
