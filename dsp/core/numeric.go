package core

import "math"

const defaultEps = 1e-12

// NearlyEqual reports whether a and b agree to within eps, absolutely for
// small values and relatively otherwise. A non-positive eps falls back to
// 1e-12.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEps
	}
	d := math.Abs(a - b)
	if d <= eps {
		return true
	}
	scale := math.Max(math.Abs(a), math.Abs(b))
	return scale > 0 && d/scale <= eps
}

// DBToLinear converts a level in dB to linear amplitude, 20*log10
// convention.
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to a level in dB, 20*log10
// convention. Zero maps to -Inf and negative amplitudes to NaN.
func LinearToDB(linear float64) float64 {
	switch {
	case linear < 0:
		return math.NaN()
	case linear == 0:
		return math.Inf(-1)
	}
	return 20 * math.Log10(linear)
}
