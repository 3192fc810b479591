package envelope

import (
	"errors"
	"fmt"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-envelope/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

var (
	// ErrEmptyInput is returned when the input signal has no samples.
	ErrEmptyInput = errors.New("envelope: empty input")
	// ErrInvalidFFTSize is returned when the requested transform size is not a
	// positive power of two.
	ErrInvalidFFTSize = errors.New("envelope: FFT size must be a positive power of 2")
	// ErrSignalTooLong is returned when a signal exceeds the extractor's
	// transform size.
	ErrSignalTooLong = errors.New("envelope: signal longer than FFT size")
)

// Extractor computes amplitude envelopes via the analytic signal. It owns an
// FFT plan and complex work buffers sized for a fixed transform length, so a
// single extractor can process many signals of the same length without
// reallocating. An Extractor is not safe for concurrent use; create one per
// goroutine.
type Extractor struct {
	fftSize int
	plan    *algofft.Plan[complex128]
	time    []complex128
	freq    []complex128
}

// NewExtractor creates an extractor for signals up to fftSize samples long.
// fftSize must be a positive power of two.
func NewExtractor(fftSize int) (*Extractor, error) {
	if fftSize <= 0 || !isPowerOf2(fftSize) {
		return nil, fmt.Errorf("envelope: size %d: %w", fftSize, ErrInvalidFFTSize)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("envelope: failed to create FFT plan: %w", err)
	}

	return &Extractor{
		fftSize: fftSize,
		plan:    plan,
		time:    make([]complex128, fftSize),
		freq:    make([]complex128, fftSize),
	}, nil
}

// FFTSize returns the transform length the extractor was created with.
func (e *Extractor) FFTSize() int {
	return e.fftSize
}

// Analytic computes the analytic signal of the input: a complex signal whose
// real part is the input and whose imaginary part is its Hilbert transform.
// Signals shorter than the transform size are zero-padded internally; the
// result always has len(signal) samples.
func (e *Extractor) Analytic(signal []float64) ([]complex128, error) {
	if err := e.transform(signal); err != nil {
		return nil, err
	}

	out := make([]complex128, len(signal))
	copy(out, e.time[:len(signal)])

	return out, nil
}

// Amplitude computes the amplitude envelope of the input: the magnitude of
// its analytic signal. The result has len(signal) samples, all non-negative.
func (e *Extractor) Amplitude(signal []float64) ([]float64, error) {
	if err := e.transform(signal); err != nil {
		return nil, err
	}

	n := len(signal)
	out := make([]float64, n)
	re, im, buf := getScratch(n)
	for i, c := range e.time[:n] {
		re[i] = real(c)
		im[i] = imag(c)
	}
	vecmath.Magnitude(out, re, im)
	putScratch(buf)

	return out, nil
}

// transform runs the analytic-signal pipeline, leaving the result in e.time.
// The one-sided spectrum is built by doubling the positive frequencies and
// zeroing the negative ones; DC and Nyquist keep unit weight.
func (e *Extractor) transform(signal []float64) error {
	n := len(signal)
	if n == 0 {
		return ErrEmptyInput
	}
	if n > e.fftSize {
		return fmt.Errorf("envelope: signal length %d exceeds FFT size %d: %w",
			n, e.fftSize, ErrSignalTooLong)
	}

	for i, v := range signal {
		e.time[i] = complex(v, 0)
	}
	for i := n; i < e.fftSize; i++ {
		e.time[i] = 0
	}

	if err := e.plan.Forward(e.freq, e.time); err != nil {
		return fmt.Errorf("envelope: forward FFT failed: %w", err)
	}

	half := e.fftSize / 2
	for i := 1; i < half; i++ {
		e.freq[i] *= 2
	}
	for i := half + 1; i < e.fftSize; i++ {
		e.freq[i] = 0
	}

	if err := e.plan.Inverse(e.time, e.freq); err != nil {
		return fmt.Errorf("envelope: inverse FFT failed: %w", err)
	}

	return nil
}

// Amplitude computes the amplitude envelope of a signal in one shot, sizing
// the transform to the next power of two at or above the signal length. For
// repeated extraction at a fixed length, create an Extractor once instead.
func Amplitude(signal []float64) ([]float64, error) {
	e, err := extractorFor(signal)
	if err != nil {
		return nil, err
	}

	return e.Amplitude(signal)
}

// Analytic computes the analytic signal in one shot. See Amplitude for the
// sizing behavior.
func Analytic(signal []float64) ([]complex128, error) {
	e, err := extractorFor(signal)
	if err != nil {
		return nil, err
	}

	return e.Analytic(signal)
}

func extractorFor(signal []float64) (*Extractor, error) {
	if len(signal) == 0 {
		return nil, ErrEmptyInput
	}

	return NewExtractor(nextPowerOf2(len(signal)))
}

// isPowerOf2 returns true if n is a power of 2.
func isPowerOf2(n int) bool {
	return n > 0 && (n&(n-1)) == 0
}

// nextPowerOf2 returns the smallest power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}

// scratchBuf wraps the real/imaginary scratch planes used when unpacking the
// analytic signal for magnitude computation.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any {
		return &scratchBuf{}
	},
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	buf.data = core.EnsureLen(buf.data, 2*n)

	return buf.data[:n], buf.data[n:], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}
