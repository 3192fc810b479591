package spectrum

import (
	"errors"
	"fmt"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

var (
	// ErrEmptyInput is returned when the input signal has no samples.
	ErrEmptyInput = errors.New("spectrum: empty input")
	// ErrInvalidRate is returned for non-positive sample rates.
	ErrInvalidRate = errors.New("spectrum: sample rate must be positive")
)

// Spectrum is the one-sided amplitude spectrum of a real signal, from DC to
// the Nyquist frequency. Bin values are calibrated so a unit sine at a bin
// frequency reads an amplitude of 1.
type Spectrum struct {
	// Bins holds the amplitude of each frequency bin. Bins[0] is DC and
	// Bins[len(Bins)-1] is the Nyquist bin.
	Bins []float64

	// BinWidth is the frequency spacing between adjacent bins in Hz.
	BinWidth float64
}

// FreqAt returns the center frequency of bin i in Hz.
func (s *Spectrum) FreqAt(i int) float64 {
	return float64(i) * s.BinWidth
}

// Peak returns the frequency and amplitude of the strongest bin at or above
// minHz. Passing the bin width as minHz skips the DC bin; zero scans the full
// spectrum. If no bin lies at or above minHz, both results are zero.
func (s *Spectrum) Peak(minHz float64) (freqHz, amplitude float64) {
	found := false
	for i, a := range s.Bins {
		f := s.FreqAt(i)
		if f < minHz {
			continue
		}
		if !found || a > amplitude {
			freqHz, amplitude = f, a
			found = true
		}
	}
	if !found {
		return 0, 0
	}

	return freqHz, amplitude
}

// Amplitude computes the one-sided amplitude spectrum of signal. The
// transform length is the next power of two at or above the signal length;
// shorter signals are zero-padded, which narrows BinWidth without changing
// the amplitude calibration.
//
// Applied to an amplitude envelope, the spectral peaks sit at the modulation
// frequencies of the record: for a bearing, the repetition rate of the defect
// impacts.
func Amplitude(signal []float64, sampleRate float64) (*Spectrum, error) {
	n := len(signal)
	if n == 0 {
		return nil, ErrEmptyInput
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("spectrum: sample rate %g: %w", sampleRate, ErrInvalidRate)
	}

	fftSize := nextPowerOf2(n)
	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("spectrum: failed to create FFT plan: %w", err)
	}

	time := make([]complex128, fftSize)
	for i, v := range signal {
		time[i] = complex(v, 0)
	}
	freq := make([]complex128, fftSize)
	if err := plan.Forward(freq, time); err != nil {
		return nil, fmt.Errorf("spectrum: forward FFT failed: %w", err)
	}

	half := fftSize / 2
	bins := make([]float64, half+1)
	re, im, buf := getScratch(half + 1)
	for i := 0; i <= half; i++ {
		re[i] = real(freq[i])
		im[i] = imag(freq[i])
	}
	vecmath.Magnitude(bins, re, im)
	putScratch(buf)

	// One-sided scaling: interior bins carry the mirrored negative
	// frequencies, DC and Nyquist do not.
	scale := 2 / float64(n)
	for i := range bins {
		bins[i] *= scale
	}
	bins[0] /= 2
	if half > 0 {
		bins[half] /= 2
	}

	return &Spectrum{Bins: bins, BinWidth: sampleRate / float64(fftSize)}, nil
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

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}

	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}
