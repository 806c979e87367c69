// Package encoding estimates the varint-delta size of sorted uint16
// sequences. It is used internally by internal/index to size-estimate the
// positional directory (the set of distinct offsets carrying bitmaps for a
// given byte) for Handle.Stats — entirely in memory, never to a file or
// network: index persistence is out of scope for this engine.
package encoding

// EncodedSize returns the byte length a delta-varint encoding of values
// would occupy — the first value stored verbatim (2 bytes) and each
// subsequent value as a varint-encoded delta from its predecessor — without
// allocating the encoded buffer, for use in memory-footprint estimates.
// Callers are responsible for passing already-sorted input; EncodedSize
// does not sort or deduplicate.
func EncodedSize(values []uint16) int {
	if len(values) == 0 {
		return 0
	}
	size := 2
	prev := values[0]
	for _, v := range values[1:] {
		size += varintSize(uint64(v - prev))
		prev = v
	}
	return size
}

func varintSize(value uint64) int {
	n := 1
	for value >= 0x80 {
		value >>= 7
		n++
	}
	return n
}
