package gamemath

import "math"

// Sign returns -1, 0 or 1 matching the sign of v.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// NormalizeDirection scales (x, y) so diagonal input moves no faster than a
// single axis. A zero vector is returned unchanged.
func NormalizeDirection(x, y float64) (float64, float64) {
	l := math.Hypot(x, y)
	if l <= 1 {
		return x, y
	}
	return x / l, y / l
}
