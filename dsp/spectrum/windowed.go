package spectrum

import (
	"fmt"
	"sort"

	"github.com/cwbudde/algo-envelope/dsp/window"
	"github.com/cwbudde/algo-vecmath"
)

// AmplitudeWindowed computes the one-sided amplitude spectrum of signal after
// applying the given window in its periodic form. The bins are divided by the
// window's coherent gain, so an on-bin sine still reads its true amplitude.
// Low-scalloping windows such as the flat top keep that calibration for tones
// between bin centers, at the cost of a wider main lobe.
func AmplitudeWindowed(signal []float64, sampleRate float64, typ window.Type) (*Spectrum, error) {
	if len(signal) == 0 {
		return nil, ErrEmptyInput
	}

	coeffs := window.Generate(typ, len(signal), window.WithPeriodic())
	gain, err := window.CoherentGain(coeffs)
	if err != nil {
		return nil, fmt.Errorf("spectrum: %w", err)
	}

	windowed, err := window.ApplyCoefficients(signal, coeffs)
	if err != nil {
		return nil, fmt.Errorf("spectrum: %w", err)
	}

	spec, err := Amplitude(windowed, sampleRate)
	if err != nil {
		return nil, err
	}

	vecmath.ScaleBlock(spec.Bins, spec.Bins, 1/gain)

	return spec, nil
}

// Line is a single spectral line: a local amplitude maximum of a Spectrum.
type Line struct {
	Freq      float64
	Amplitude float64
}

// Peaks returns up to count spectral lines at or above minHz, strongest
// first. A line is a bin whose amplitude exceeds its lower neighbor and is
// not exceeded by its upper neighbor, so a flat plateau yields one line at
// its left edge. Equal amplitudes sort by ascending frequency.
func (s *Spectrum) Peaks(minHz float64, count int) []Line {
	if count <= 0 {
		return nil
	}

	var lines []Line
	for i, a := range s.Bins {
		if s.FreqAt(i) < minHz {
			continue
		}
		if i > 0 && s.Bins[i-1] >= a {
			continue
		}
		if i < len(s.Bins)-1 && s.Bins[i+1] > a {
			continue
		}

		lines = append(lines, Line{Freq: s.FreqAt(i), Amplitude: a})
	}

	sort.Slice(lines, func(i, j int) bool {
		if lines[i].Amplitude != lines[j].Amplitude {
			return lines[i].Amplitude > lines[j].Amplitude
		}

		return lines[i].Freq < lines[j].Freq
	})

	if len(lines) > count {
		lines = lines[:count]
	}

	return lines
}
