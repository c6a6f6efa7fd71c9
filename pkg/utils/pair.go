package utils

// OrderedPair returns the two ids with the smaller first, so that (a, b) and
// (b, a) map to the same key.
func OrderedPair(a, b uint) (uint, uint) {
	if a > b {
		return b, a
	}
	return a, b
}
