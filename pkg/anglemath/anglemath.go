// Package anglemath provides angle normalization and phase unwrapping helpers.
package anglemath

import "math"

// Normalize reduces an angle into the principal range (-pi, pi].
func Normalize(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// Diff returns the shortest signed angular distance from a to b, in (-pi, pi].
func Diff(a, b float64) float64 {
	d := math.Mod(b-a+math.Pi, 2*math.Pi)
	if d <= 0 {
		d += 2 * math.Pi
	}
	return d - math.Pi
}

// Unwrap returns the unwrapped value of raw given the previous sample's
// already-unwrapped value. The result is within pi of prev and differs from
// raw only by a multiple of 2*pi.
func Unwrap(prev, raw float64) float64 {
	return prev - Diff(raw, Normalize(prev))
}

// UnwrapSlice unwraps a wrapped phase sequence left to right, seeded by the
// first raw sample taken as-is. Returns a new slice; the input is not
// modified. An empty or single-element input is returned as a copy.
func UnwrapSlice(ys []float64) []float64 {
	out := make([]float64, len(ys))
	if len(ys) == 0 {
		return out
	}
	out[0] = ys[0]
	for i := 1; i < len(ys); i++ {
		out[i] = Unwrap(out[i-1], ys[i])
	}
	return out
}
