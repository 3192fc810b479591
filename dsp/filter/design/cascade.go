package design

import (
	"math"

	"github.com/cwbudde/algo-envelope/dsp/filter/biquad"
)

// ButterworthLP designs a lowpass Butterworth of the given order as a
// list of sections, highest-Q biquad first. Odd orders end in a
// first-order section (B2 = A2 = 0).
func ButterworthLP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	if order <= 0 {
		return nil
	}
	secs := make([]biquad.Coefficients, 0, (order+1)/2)

	for i := order/2 - 1; i >= 0; i-- {
		secs = append(secs, Lowpass(freq, sectionQ(order, i), sampleRate))
	}
	if order%2 == 1 {
		secs = append(secs, firstOrderButterworth(freq, sampleRate, false))
	}
	return secs
}

// ButterworthHP designs a highpass Butterworth of the given order,
// mirroring ButterworthLP.
func ButterworthHP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	if order <= 0 {
		return nil
	}
	secs := make([]biquad.Coefficients, 0, (order+1)/2)

	for i := order/2 - 1; i >= 0; i-- {
		secs = append(secs, Highpass(freq, sectionQ(order, i), sampleRate))
	}
	if order%2 == 1 {
		secs = append(secs, firstOrderButterworth(freq, sampleRate, true))
	}
	return secs
}

// ButterworthBand designs a bandpass cascade: a highpass Butterworth at
// low followed by a lowpass Butterworth at high, each of the given order,
// so the full cascade has order 2*order. Separate corners keep each band
// edge an independent -3 dB point, which suits wide analysis bands like
// 1-10 kHz far better than a single resonant bandpass.
func ButterworthBand(low, high float64, order int, sampleRate float64) []biquad.Coefficients {
	hp := ButterworthHP(low, order, sampleRate)
	lp := ButterworthLP(high, order, sampleRate)
	if hp == nil || lp == nil {
		return nil
	}
	return append(hp, lp...)
}

// sectionQ returns the quality factor of biquad number index in a
// Butterworth factorization: 1/(2*sin(ang)) with the pole angle
// ang = pi*(2*index+1)/(2*order).
func sectionQ(order, index int) float64 {
	ang := math.Pi * float64(2*index+1) / (2 * float64(order))

	sin := math.Sin(ang)
	if sin == 0 {
		return maxFlatQ
	}

	return 1 / (2 * sin)
}

// firstOrderButterworth designs the first-order tail section of an
// odd-order cascade via the bilinear transform.
func firstOrderButterworth(freq, sampleRate float64, highpass bool) biquad.Coefficients {
	if _, ok := radianFreq(freq, sampleRate); !ok {
		return biquad.Coefficients{}
	}

	t := math.Tan(math.Pi * freq / sampleRate)
	g := 1 / (1 + t)

	if highpass {
		return biquad.Coefficients{
			B0: g,
			B1: -g,
			A1: (t - 1) * g,
		}
	}

	return biquad.Coefficients{
		B0: t * g,
		B1: t * g,
		A1: (t - 1) * g,
	}
}
