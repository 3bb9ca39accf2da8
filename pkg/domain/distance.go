package domain

// CircularDistance is the number of pins between a and b walking the shorter
// way around a board of pinCount pins.
func CircularDistance(a, b, pinCount int) int {
	if pinCount <= 0 {
		return 0
	}
	forward := mod(a-b, pinCount)
	backward := mod(b-a, pinCount)
	return min(forward, backward)
}

func mod(v, m int) int {
	r := v % m
	if r < 0 {
		r += m
	}
	return r
}
