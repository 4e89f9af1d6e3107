package value

// Handle is a stable reference to a heap-allocated object, owned by the
// heap/GC package. Handle(0) is never issued and is used as an invalid
// sentinel.
type Handle uint32
