package dataset

// Downsample decimates samples down to at most maxPoints for display.
// Destination-based: reuses dst if it has sufficient capacity, otherwise
// allocates. Returns the destination slice. If len(samples) <= maxPoints, all
// samples are copied through unchanged.
func Downsample(dst []Sample, samples []Sample, maxPoints int) []Sample {
	if maxPoints <= 0 || len(samples) <= maxPoints {
		if cap(dst) >= len(samples) {
			dst = dst[:len(samples)]
			copy(dst, samples)
			return dst
		}
		out := make([]Sample, len(samples))
		copy(out, samples)
		return out
	}

	if cap(dst) >= maxPoints {
		dst = dst[:0]
	} else {
		dst = make([]Sample, 0, maxPoints)
	}

	step := float64(len(samples)) / float64(maxPoints)
	for i := 0; i < maxPoints; i++ {
		idx := int(float64(i) * step)
		if idx < len(samples) {
			dst = append(dst, samples[idx])
		}
	}

	return dst
}
