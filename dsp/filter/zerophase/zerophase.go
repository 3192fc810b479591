package zerophase

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-envelope/dsp/filter/biquad"
	"github.com/cwbudde/algo-envelope/dsp/filter/design"
)

// ErrInvalidParams is returned for out-of-range cutoffs, orders, sample
// rates, unstable cascades, and signals too short to pad.
var ErrInvalidParams = errors.New("zerophase: invalid parameters")

// PadLen returns the reflection padding applied at each end of the signal
// when filtering through a cascade of numSections biquads.
func PadLen(numSections int) int {
	return 3 * (2*numSections + 1)
}

// MinSignalLen returns the shortest signal length Filter accepts for a
// cascade of numSections biquads.
func MinSignalLen(numSections int) int {
	return PadLen(numSections) + 1
}

// Filter applies the cascade to signal twice, forward then backward, and
// returns the zero-phase result. The output has the same length as the
// input and its magnitude response is the square of the cascade's.
//
// The signal is extended at both ends by PadLen samples of odd reflection,
// and section states are seeded with their steady-state step response so
// the passes start settled rather than from zero state.
func Filter(sections []biquad.Coefficients, signal []float64) ([]float64, error) {
	if len(sections) == 0 {
		return nil, fmt.Errorf("zerophase: empty cascade: %w", ErrInvalidParams)
	}
	for i := range sections {
		if !sections[i].Stable() {
			return nil, fmt.Errorf("zerophase: cascade section %d is unstable: %w", i, ErrInvalidParams)
		}
	}

	n := len(signal)
	pad := PadLen(len(sections))
	if n <= pad {
		return nil, fmt.Errorf("zerophase: signal length %d too short for %d sections (need at least %d samples): %w",
			n, len(sections), pad+1, ErrInvalidParams)
	}

	ext := make([]float64, n+2*pad)
	for i := range pad {
		ext[i] = 2*signal[0] - signal[pad-i]
	}
	copy(ext[pad:], signal)
	for i := range pad {
		ext[pad+n+i] = 2*signal[n-1] - signal[n-2-i]
	}

	chain := biquad.NewChain(sections)

	primeChain(chain, ext[0])
	chain.ProcessBlock(ext)

	reverse(ext)
	primeChain(chain, ext[0])
	chain.ProcessBlock(ext)
	reverse(ext)

	out := make([]float64, n)
	copy(out, ext[pad:pad+n])
	return out, nil
}

// Bandpass designs a Butterworth bandpass for [low, high] Hz of the given
// order per edge and applies it zero-phase. The defaults used across this
// module are a 1000-10000 Hz band of order 4 at 25600 Hz.
func Bandpass(signal []float64, low, high, sampleRate float64, order int) ([]float64, error) {
	coeffs, err := BandpassDesign(low, high, sampleRate, order)
	if err != nil {
		return nil, err
	}
	return Filter(coeffs, signal)
}

// BandpassDesign validates the band parameters and returns the Butterworth
// cascade that Bandpass applies: a highpass at low and a lowpass at high,
// each of the given order.
func BandpassDesign(low, high, sampleRate float64, order int) ([]biquad.Coefficients, error) {
	if order <= 0 {
		return nil, fmt.Errorf("zerophase: order must be positive, got %d: %w", order, ErrInvalidParams)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("zerophase: sample rate must be positive, got %g: %w", sampleRate, ErrInvalidParams)
	}
	if low <= 0 {
		return nil, fmt.Errorf("zerophase: low cutoff must be positive, got %g Hz: %w", low, ErrInvalidParams)
	}
	if low >= high {
		return nil, fmt.Errorf("zerophase: low cutoff %g Hz must be below high cutoff %g Hz: %w", low, high, ErrInvalidParams)
	}
	if nyquist := sampleRate / 2; high >= nyquist {
		return nil, fmt.Errorf("zerophase: high cutoff %g Hz must be below the Nyquist frequency %g Hz: %w",
			high, nyquist, ErrInvalidParams)
	}

	return design.ButterworthBand(low, high, order, sampleRate), nil
}

// primeChain seeds every section with the delay-line state it would hold
// after an infinitely long step of amplitude x0. The step level entering
// each section is the input level scaled by the DC gain of the sections
// before it.
func primeChain(chain *biquad.Chain, x0 float64) {
	level := x0
	for i := 0; i < chain.NumSections(); i++ {
		s := chain.Section(i)
		kdc := s.DCGain()
		z2 := (s.B2 - kdc*s.A2) * level
		z1 := z2 + (s.B1-kdc*s.A1)*level
		s.SetState([2]float64{z1, z2})
		level *= kdc
	}
}

func reverse(buf []float64) {
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
}
