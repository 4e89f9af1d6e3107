package heap_test

import (
	"strconv"
	"testing"

	"loxvm/internal/heap"
	"loxvm/internal/value"
)

// stubRoots lets tests control exactly what the collector considers live.
type stubRoots struct {
	live []value.Value
}

func (r *stubRoots) MarkRoots(h *heap.Heap) {
	for _, v := range r.live {
		h.MarkValue(v)
	}
}

func TestInternString_SameContentSameHandle(t *testing.T) {
	h := heap.New()
	a := h.InternString("hello")
	b := h.InternString("hello")
	if a != b {
		t.Fatalf("InternString(\"hello\") returned different handles: %v vs %v", a, b)
	}
	c := h.InternString("world")
	if a == c {
		t.Fatalf("distinct content got the same handle")
	}
}

func TestCollect_FreesUnreachableObjects(t *testing.T) {
	h := heap.New()
	roots := &stubRoots{}
	h.SetRoots(roots)

	kept := h.InternString("kept")
	_ = h.InternString("garbage")
	roots.live = []value.Value{value.Obj(kept)}

	h.Collect()

	if h.Get(kept) == nil {
		t.Fatal("reachable string was freed")
	}
	if len(h.StringsSnapshot()) != 1 {
		t.Fatalf("intern table should have dropped the unreachable entry, has %d", len(h.StringsSnapshot()))
	}
}

func TestCollect_IsIdempotent(t *testing.T) {
	h := heap.New()
	roots := &stubRoots{}
	h.SetRoots(roots)
	h.InternString("temporary")

	h.Collect()
	freedAfterFirst := h.BytesAllocated()
	h.Collect()
	if h.BytesAllocated() != freedAfterFirst {
		t.Fatalf("second collection freed more: %d -> %d", freedAfterFirst, h.BytesAllocated())
	}
}

func TestStressAllocation_ReturnsToBaseline(t *testing.T) {
	h := heap.New()
	roots := &stubRoots{}
	h.SetRoots(roots)
	h.StressGC = true

	base := h.BytesAllocated()
	for i := 0; i < 10000; i++ {
		h.InternString("temp-" + strconv.Itoa(i))
	}
	h.Collect()

	if got := h.BytesAllocated(); got != base {
		t.Fatalf("bytesAllocated after stress loop = %d, want back to baseline %d", got, base)
	}
}
