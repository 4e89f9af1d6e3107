// Package heap is the VM's managed allocator and collector: every object.Object
// is created and destroyed here, string interning lives here, and the
// mark-sweep collector in mark.go runs interleaved with allocation exactly
// as section 4.5 of the design describes.
//
// Objects are kept in a handle-indexed map rather than an intrusive pointer
// list; this is the arena/index-as-handle re-architecture the design notes
// call out as preferable once a language without manual pointer ownership
// is involved (Go's own GC already owns the *Object values, so our
// mark-sweep only needs to own the lifetime of the logical Lox object, not
// its backing memory). Sweep still performs a full linear pass over every
// live allocation, preserving the invariant the intrusive list existed to
// provide.
package heap

import (
	"loxvm/internal/object"
	"loxvm/internal/value"
)

// RootSource is implemented by the VM (and, during compilation, by the
// compiler chain) so the collector can ask for every root without the heap
// package needing to import either.
type RootSource interface {
	MarkRoots(h *Heap)
}

// Heap owns every heap-allocated object, the string intern table, and the
// collector's bookkeeping.
type Heap struct {
	objs    map[value.Handle]*object.Object
	next    value.Handle
	strings map[string]value.Handle

	bytesAllocated int
	nextGC         int
	gray           []value.Handle

	Roots    RootSource
	StressGC bool
	OnLog    func(string)
}

const initialNextGC = 1 << 20 // 1 MiB, matching clox's default threshold

// New returns an empty heap. Roots must be set (via SetRoots) before the
// first collection, normally by the VM that owns it.
func New() *Heap {
	return &Heap{
		objs:    make(map[value.Handle]*object.Object),
		strings: make(map[string]value.Handle),
		next:    0,
		nextGC:  initialNextGC,
	}
}

// SetRoots installs the root provider. The VM installs itself when it is
// constructed; compiler.Compile installs the compiler chain for the length
// of one compile and then restores the previous provider.
func (h *Heap) SetRoots(r RootSource) {
	h.Roots = r
}

// Get resolves a handle to its object, or nil if the handle is invalid or
// already freed. Handle 0 always resolves to nil.
func (h *Heap) Get(handle value.Handle) *object.Object {
	if handle == 0 {
		return nil
	}
	return h.objs[handle]
}

// BytesAllocated reports current accounted heap usage, mainly for tests
// and diagnostics.
func (h *Heap) BytesAllocated() int {
	return h.bytesAllocated
}

// StringsSnapshot returns a copy of the intern table, for tests asserting
// on collection behavior without exposing the live map to mutation.
func (h *Heap) StringsSnapshot() map[string]value.Handle {
	out := make(map[string]value.Handle, len(h.strings))
	for s, handle := range h.strings {
		out[s] = handle
	}
	return out
}

// allocate charges size bytes against the budget, runs a collection first
// if that charge would cross nextGC (or stress-GC is forced), then mints a
// fresh handle for a new, empty Object of the given kind. The caller fills
// in the kind-specific fields and must make the result reachable from a
// root (typically by pushing it to the VM's value stack) before any further
// allocation, per the heap's safety rule.
func (h *Heap) allocate(kind object.Kind, size int) (value.Handle, *object.Object) {
	h.bytesAllocated += size
	if h.bytesAllocated > h.nextGC || h.StressGC {
		h.Collect()
	}
	h.next++
	obj := &object.Object{Kind: kind, Size: size}
	h.objs[h.next] = obj
	return h.next, obj
}

func (h *Heap) log(msg string) {
	if h.OnLog != nil {
		h.OnLog(msg)
	}
}
