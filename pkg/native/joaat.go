package native

// Joaat computes the engine's model-name hash (Jenkins one-at-a-time over the
// lower-cased name). It matches GET_HASH_KEY without a native round-trip.
func Joaat(name string) uint32 {
	var h uint32
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		h += uint32(c)
		h += h << 10
		h ^= h >> 6
	}
	h += h << 3
	h ^= h >> 11
	h += h << 15
	return h
}
