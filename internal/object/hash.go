package object

import "hash/fnv"

// HashString computes the FNV-1a 32-bit hash the spec requires every
// String object to carry precomputed.
func HashString(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}
