package biquad

import (
	"math"
	"math/cmplx"
)

// Response evaluates the complex frequency response H(e^jw) at freqHz for
// the given sample rate. Numerator and denominator are evaluated in
// Horner form at z^-1 = e^-jw.
func (c *Coefficients) Response(freqHz, sampleRate float64) complex128 {
	omega := 2 * math.Pi * freqHz / sampleRate
	zInv := cmplx.Exp(complex(0, -omega))

	num := (complex(c.B2, 0)*zInv+complex(c.B1, 0))*zInv + complex(c.B0, 0)
	den := (complex(c.A2, 0)*zInv+complex(c.A1, 0))*zInv + complex(1, 0)
	return num / den
}

// MagnitudeSquared returns |H(f)|^2 from a closed form in cos(w), cheaper
// than the complex response and exact enough for response plots.
func (c *Coefficients) MagnitudeSquared(freqHz, sampleRate float64) float64 {
	k := 2 * math.Cos(2*math.Pi*freqHz/sampleRate)
	num := (c.B0-c.B2)*(c.B0-c.B2) + c.B1*c.B1 + (c.B1*(c.B0+c.B2)+c.B0*c.B2*k)*k
	den := (1-c.A2)*(1-c.A2) + c.A1*c.A1 + (c.A1*(c.A2+1)+k*c.A2)*k
	return num / den
}

// MagnitudeDB returns the section gain at freqHz in decibels.
func (c *Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 10 * math.Log10(c.MagnitudeSquared(freqHz, sampleRate))
}

// Phase returns the phase response in radians at freqHz, in [-pi, pi].
func (c *Coefficients) Phase(freqHz, sampleRate float64) float64 {
	return cmplx.Phase(c.Response(freqHz, sampleRate))
}

// DCGain returns H(1), the gain of the section at DC. Zero-phase
// filtering uses it to seed steady-state initial conditions.
func (c *Coefficients) DCGain() float64 {
	return (c.B0 + c.B1 + c.B2) / (1 + c.A1 + c.A2)
}

// Response evaluates the cascade response, the product of the section
// responses scaled by the chain gain.
func (ch *Chain) Response(freqHz, sampleRate float64) complex128 {
	acc := complex(ch.gain, 0)
	for i := range ch.secs {
		acc *= ch.secs[i].Response(freqHz, sampleRate)
	}
	return acc
}

// MagnitudeDB returns the cascade magnitude response in dB.
func (ch *Chain) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(ch.Response(freqHz, sampleRate)))
}

// ImpulseResponse returns the first n samples of h[n]. The section's
// delay line is saved and restored around the measurement, so in-flight
// processing can continue afterwards.
func (s *Section) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}

	snap := s.State()
	s.Reset()

	h := make([]float64, n)
	h[0] = 1
	s.ProcessBlock(h)

	s.SetState(snap)
	return h
}

// ImpulseResponse returns the first n samples of the cascade impulse
// response, preserving the chain state like the Section version.
func (ch *Chain) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}

	snap := ch.State()
	ch.Reset()

	h := make([]float64, n)
	h[0] = 1
	ch.ProcessBlock(h)

	ch.SetState(snap)
	return h
}
