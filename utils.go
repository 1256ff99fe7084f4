package citylayout

// clampint returns v limited to [lo, hi]
func clampint(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
