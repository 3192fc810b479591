package design

import (
	"math"

	"github.com/cwbudde/algo-envelope/dsp/filter/biquad"
)

// maxFlatQ is the quality factor of a maximally flat second-order
// stage, the highest Q with no passband peaking.
const maxFlatQ = 1 / math.Sqrt2

// Lowpass designs a single lowpass biquad with cutoff freq (Hz) and
// quality factor q. Invalid parameters yield zero coefficients.
func Lowpass(freq, q, sampleRate float64) biquad.Coefficients {
	w, ok := radianFreq(freq, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	cw := math.Cos(w)
	alpha := math.Sin(w) / (2 * clampQ(q))

	return normalize(
		(1-cw)/2, 1-cw, (1-cw)/2,
		1+alpha, -2*cw, 1-alpha,
	)
}

// Highpass designs a single highpass biquad with cutoff freq (Hz) and
// quality factor q. Invalid parameters yield zero coefficients.
func Highpass(freq, q, sampleRate float64) biquad.Coefficients {
	w, ok := radianFreq(freq, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	cw := math.Cos(w)
	alpha := math.Sin(w) / (2 * clampQ(q))

	return normalize(
		(1+cw)/2, -(1+cw), (1+cw)/2,
		1+alpha, -2*cw, 1-alpha,
	)
}

// radianFreq converts freq to the normalized angular frequency. It
// reports false when freq or sampleRate cannot yield a usable design,
// including cutoffs at or above Nyquist.
func radianFreq(freq, sampleRate float64) (float64, bool) {
	if math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) || sampleRate <= 0 {
		return 0, false
	}
	if math.IsNaN(freq) || math.IsInf(freq, 0) || freq <= 0 || freq >= sampleRate/2 {
		return 0, false
	}

	w := 2 * math.Pi * freq / sampleRate
	return w, true
}

// clampQ substitutes the Butterworth default for unusable quality factors.
func clampQ(q float64) float64 {
	if math.IsNaN(q) || math.IsInf(q, 0) || q <= 0 {
		return maxFlatQ
	}

	return q
}

// normalize divides through by d0 so the stored denominator leads with 1.
func normalize(n0, n1, n2, d0, d1, d2 float64) biquad.Coefficients {
	if math.IsNaN(d0) || math.IsInf(d0, 0) || d0 == 0 {
		return biquad.Coefficients{}
	}

	return biquad.Coefficients{
		B0: n0 / d0,
		B1: n1 / d0,
		B2: n2 / d0,
		A1: d1 / d0,
		A2: d2 / d0,
	}
}
