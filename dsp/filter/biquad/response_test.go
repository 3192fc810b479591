package biquad

import (
	"math"
	"math/cmplx"
	"testing"
)

// probeFreqs spans the band of interest below the 12800 Hz Nyquist of a
// 25600 Hz vibration capture.
var probeFreqs = []float64{50, 250, 1000, 5000, 10000, 12500}

const probeRate = 25600.0

func TestMagnitudeSquared_MatchesResponse(t *testing.T) {
	// The closed form must agree with |H|² from the complex response.
	c := gentleLowpass()

	for _, freq := range probeFreqs {
		h := c.Response(freq, probeRate)
		re, im := real(h), imag(h)
		fromResponse := re*re + im*im
		fromClosed := c.MagnitudeSquared(freq, probeRate)
		if !within(fromClosed, fromResponse, 1e-10) {
			t.Errorf("f=%v Hz: MagnitudeSquared=%.15f, |Response|²=%.15f", freq, fromClosed, fromResponse)
		}
	}
}

func TestMagnitudeDB_MatchesMagnitudeSquared(t *testing.T) {
	c := gentleLowpass()

	for _, freq := range probeFreqs {
		db := c.MagnitudeDB(freq, probeRate)
		fromSq := 10 * math.Log10(c.MagnitudeSquared(freq, probeRate))
		if !within(db, fromSq, 1e-12) {
			t.Errorf("f=%v Hz: MagnitudeDB=%.15f, 10*log10(MagSq)=%.15f", freq, db, fromSq)
		}
	}
}

func TestPhase_MatchesResponse(t *testing.T) {
	c := gentleLowpass()

	for _, freq := range probeFreqs {
		h := c.Response(freq, probeRate)
		fromResponse := cmplx.Phase(h)
		fromClosed := c.Phase(freq, probeRate)
		if !within(fromClosed, fromResponse, 1e-10) {
			t.Errorf("f=%v Hz: Phase=%.15f, arg(Response)=%.15f", freq, fromClosed, fromResponse)
		}
	}
}

func TestResponse_Passthrough(t *testing.T) {
	c := Coefficients{B0: 1}

	for _, freq := range probeFreqs {
		if mag := cmplx.Abs(c.Response(freq, probeRate)); !within(mag, 1, 1e-12) {
			t.Errorf("f=%v Hz: |H|=%v, want 1", freq, mag)
		}
	}
}

func TestResponse_Allpass(t *testing.T) {
	// Numerator equal to the reversed denominator gives |H| = 1 at every
	// frequency, a sharp self-check for the response math.
	c := Coefficients{B0: 0.2, B1: -0.4, B2: 1, A1: -0.4, A2: 0.2}

	for _, freq := range probeFreqs {
		if mag := cmplx.Abs(c.Response(freq, probeRate)); !within(mag, 1, 1e-10) {
			t.Errorf("f=%v Hz: |H|=%.15f, want 1", freq, mag)
		}
	}
}

func TestChain_Response_ProductOfSections(t *testing.T) {
	coeffs := cascadeCoeffs()
	chain := NewChain(coeffs)

	for _, freq := range probeFreqs {
		ref := coeffs[0].Response(freq, probeRate) * coeffs[1].Response(freq, probeRate)
		got := chain.Response(freq, probeRate)
		if !within(real(got), real(ref), 1e-10) || !within(imag(got), imag(ref), 1e-10) {
			t.Errorf("f=%v Hz: chain=%v, product=%v", freq, got, ref)
		}
	}
}

func TestChain_Response_WithGain(t *testing.T) {
	const gain = 0.25
	chain := NewChain(cascadeCoeffs(), WithGain(gain))
	plain := NewChain(cascadeCoeffs())

	for _, freq := range probeFreqs {
		ref := plain.Response(freq, probeRate) * complex(gain, 0)
		got := chain.Response(freq, probeRate)
		if !within(real(got), real(ref), 1e-10) || !within(imag(got), imag(ref), 1e-10) {
			t.Errorf("f=%v Hz: chain=%v, ref=%v", freq, got, ref)
		}
	}
}

func TestChain_MagnitudeDB_MatchesResponse(t *testing.T) {
	chain := NewChain(cascadeCoeffs())

	for _, freq := range probeFreqs {
		fromResponse := 20 * math.Log10(cmplx.Abs(chain.Response(freq, probeRate)))
		fromMethod := chain.MagnitudeDB(freq, probeRate)
		if !within(fromMethod, fromResponse, 1e-10) {
			t.Errorf("f=%v Hz: MagnitudeDB=%.15f, 20*log10(|H|)=%.15f", freq, fromMethod, fromResponse)
		}
	}
}

func TestDCGain(t *testing.T) {
	cases := []struct {
		name string
		c    Coefficients
		want float64
	}{
		{"passthrough", Coefficients{B0: 1}, 1},
		{"two-tap average", Coefficients{B0: 0.5, B1: 0.5}, 1},
		{"gentle lowpass", gentleLowpass(), (0.5 + 0.4 + 0.1) / (1 - 0.3 + 0.02)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.c.DCGain()
			if !within(got, tc.want, eps) {
				t.Errorf("DCGain: got %v, want %v", got, tc.want)
			}

			// DCGain is H evaluated at 0 Hz.
			if h := tc.c.Response(0, probeRate); !within(got, real(h), 1e-10) {
				t.Errorf("DCGain=%v disagrees with H(0)=%v", got, h)
			}
		})
	}
}

func TestSection_ImpulseResponse(t *testing.T) {
	s := NewSection(gentleLowpass())

	// Dirty the delay line first: ImpulseResponse must not disturb it.
	s.ProcessSample(0.8)
	s.ProcessSample(-0.2)
	saved := s.State()

	ir := s.ImpulseResponse(8)

	if s.State() != saved {
		t.Fatal("ImpulseResponse modified section state")
	}

	ref := NewSection(gentleLowpass())
	impulse := make([]float64, len(ir))
	impulse[0] = 1
	for i, x := range impulse {
		want := ref.ProcessSample(x)
		if !within(ir[i], want, eps) {
			t.Errorf("ir[%d]: got %.15f, want %.15f", i, ir[i], want)
		}
	}
}

func TestSection_ImpulseResponse_NonPositive(t *testing.T) {
	s := NewSection(Coefficients{B0: 1})

	if ir := s.ImpulseResponse(0); ir != nil {
		t.Errorf("ImpulseResponse(0) should return nil, got %v", ir)
	}
	if ir := s.ImpulseResponse(-1); ir != nil {
		t.Errorf("ImpulseResponse(-1) should return nil, got %v", ir)
	}
}

func TestSection_ImpulseResponse_Passthrough(t *testing.T) {
	// A passthrough has the unit impulse itself as impulse response.
	ir := NewSection(Coefficients{B0: 1}).ImpulseResponse(5)
	want := []float64{1, 0, 0, 0, 0}

	for i := range ir {
		if !within(ir[i], want[i], eps) {
			t.Errorf("ir[%d]: got %v, want %v", i, ir[i], want[i])
		}
	}
}

func TestChain_ImpulseResponse(t *testing.T) {
	chain := NewChain(cascadeCoeffs())

	chain.ProcessSample(0.8)
	chain.ProcessSample(-0.2)
	saved := chain.State()

	ir := chain.ImpulseResponse(16)

	restored := chain.State()
	for i, st := range saved {
		if st != restored[i] {
			t.Fatalf("ImpulseResponse modified chain state at section %d", i)
		}
	}

	ref := NewChain(cascadeCoeffs())
	impulse := make([]float64, len(ir))
	impulse[0] = 1
	for i, x := range impulse {
		want := ref.ProcessSample(x)
		if !within(ir[i], want, eps) {
			t.Errorf("ir[%d]: got %.15f, want %.15f", i, ir[i], want)
		}
	}
}
