package normal

import "math"

// CDF returns the standard normal cumulative distribution function at z:
// the probability that a standard normal variate is <= z.
func CDF(z float64) float64 {
	return 0.5 * (1 + math.Erf(z/math.Sqrt2))
}

// Quantile returns the standard normal quantile (inverse CDF) at p.
//
// Quantile(0) is -Inf, Quantile(1) is +Inf, and p outside [0, 1] yields NaN,
// following the conventions of the math package.
func Quantile(p float64) float64 {
	switch {
	case p < 0 || p > 1 || math.IsNaN(p):
		return math.NaN()
	case p == 0:
		return math.Inf(-1)
	case p == 1:
		return math.Inf(1)
	}

	return math.Sqrt2 * math.Erfinv(2*p-1)
}

// ZScore returns the z value that brackets the given two-sided confidence
// level: a standard normal variate falls within [-z, +z] with probability
// confidence. ZScore(0.95) is the familiar 1.96.
//
// Meaningful levels lie in [0, 1). ZScore(1) is +Inf and levels outside
// [-1, 1] yield NaN; callers that need a hard failure validate the level
// themselves.
func ZScore(confidence float64) float64 {
	return Quantile((1 + confidence) / 2)
}
