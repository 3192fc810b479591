package spectrum

import (
	"fmt"
	"math"
)

// Goertzel evaluates a single DFT bin without computing the full transform.
//
// In vibration work it probes an envelope at a known defect frequency: the
// ball-pass or cage rates of a bearing follow from its geometry and shaft
// speed, so a handful of Goertzel analyzers answer "how strong is the BPFO
// line?" far cheaper than a full spectrum.
//
// The analyzer is stateful and accumulates every sample processed since the
// last Reset; Power and Magnitude evaluate the component over that block.
// The main lobe of the equivalent filter is 4·pi/N wide for a block of N
// samples, so the block must be long enough to separate neighbouring defect
// frequencies.
type Goertzel struct {
	freq  float64
	rate  float64
	coeff float64
	q1    float64
	q2    float64
}

// NewGoertzel creates an analyzer for one target frequency, which must lie
// in [0, sampleRate/2].
func NewGoertzel(frequency, sampleRate float64) (*Goertzel, error) {
	if math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) || sampleRate <= 0 {
		return nil, fmt.Errorf("spectrum: goertzel needs a positive sample rate, got %v", sampleRate)
	}
	if math.IsNaN(frequency) || frequency < 0 || frequency > sampleRate/2 {
		return nil, fmt.Errorf("spectrum: goertzel frequency %v outside [0, %v]", frequency, sampleRate/2)
	}

	g := &Goertzel{freq: frequency, rate: sampleRate}
	g.coeff = 2 * math.Cos(2*math.Pi*frequency/sampleRate)

	return g, nil
}

// Reset clears the accumulated block so the analyzer can start a new one.
func (g *Goertzel) Reset() {
	g.q1, g.q2 = 0, 0
}

// ProcessSample folds one sample into the running recurrence.
func (g *Goertzel) ProcessSample(sample float64) {
	q0 := sample + g.coeff*g.q1 - g.q2
	g.q2, g.q1 = g.q1, q0
}

// ProcessBlock folds a whole record into the running recurrence.
func (g *Goertzel) ProcessBlock(signal []float64) {
	q1, q2 := g.q1, g.q2

	c := g.coeff
	for _, x := range signal {
		q0 := x + c*q1 - q2
		q2, q1 = q1, q0
	}

	g.q1, g.q2 = q1, q2
}

// Power returns the squared magnitude of the component over the block
// processed so far, equal to |X[k]|^2 of the corresponding DFT bin.
func (g *Goertzel) Power() float64 {
	return g.q1*g.q1 + g.q2*g.q2 - g.coeff*g.q1*g.q2
}

// Magnitude returns |X[k]|. Rounding can push Power a hair negative for an
// all-zero block; that clamps to 0.
func (g *Goertzel) Magnitude() float64 {
	if p := g.Power(); p > 0 {
		return math.Sqrt(p)
	}

	return 0
}

// Amplitude rescales Magnitude to the physical tone amplitude for a block of
// n samples, matching the calibration of Spectrum bins: a unit sine at the
// target frequency reads 1.
func (g *Goertzel) Amplitude(n int) float64 {
	if n <= 0 {
		return 0
	}

	return 2 * g.Magnitude() / float64(n)
}

// SetFrequency retunes the analyzer and clears the accumulated block, so a
// probe can track a defect line across shaft-speed changes without being
// rebuilt. The frequency must lie in [0, sampleRate/2].
func (g *Goertzel) SetFrequency(frequency float64) error {
	if math.IsNaN(frequency) || frequency < 0 || frequency > g.rate/2 {
		return fmt.Errorf("spectrum: goertzel frequency %v outside [0, %v]", frequency, g.rate/2)
	}

	g.freq = frequency
	g.coeff = 2 * math.Cos(2*math.Pi*frequency/g.rate)
	g.Reset()

	return nil
}

// Frequency returns the target frequency.
func (g *Goertzel) Frequency() float64 { return g.freq }

// SampleRate returns the sample rate the analyzer was built for.
func (g *Goertzel) SampleRate() float64 { return g.rate }

// AnalyzeBlock returns the Goertzel power of one frequency over one block,
// for callers that do not need a reusable analyzer.
func AnalyzeBlock(signal []float64, frequency, sampleRate float64) (float64, error) {
	g, err := NewGoertzel(frequency, sampleRate)
	if err != nil {
		return 0, err
	}

	g.ProcessBlock(signal)

	return g.Power(), nil
}

// MultiGoertzel probes several frequencies over the same block, one analyzer
// per line of interest.
type MultiGoertzel struct {
	probes []*Goertzel
}

// NewMultiGoertzel creates one analyzer per frequency. Any frequency
// rejected by NewGoertzel fails the whole set.
func NewMultiGoertzel(frequencies []float64, sampleRate float64) (*MultiGoertzel, error) {
	probes := make([]*Goertzel, 0, len(frequencies))
	for _, f := range frequencies {
		g, err := NewGoertzel(f, sampleRate)
		if err != nil {
			return nil, err
		}

		probes = append(probes, g)
	}

	return &MultiGoertzel{probes: probes}, nil
}

// ProcessBlock feeds the same record to every probe.
func (m *MultiGoertzel) ProcessBlock(signal []float64) {
	for _, g := range m.probes {
		g.ProcessBlock(signal)
	}
}

// Powers returns the powers of all probes, in constructor order.
func (m *MultiGoertzel) Powers() []float64 {
	out := make([]float64, len(m.probes))
	for i, g := range m.probes {
		out[i] = g.Power()
	}

	return out
}

// Amplitudes returns the calibrated tone amplitudes of all probes for a
// block of n samples, in constructor order.
func (m *MultiGoertzel) Amplitudes(n int) []float64 {
	out := make([]float64, len(m.probes))
	for i, g := range m.probes {
		out[i] = g.Amplitude(n)
	}

	return out
}

// Reset clears every probe for a new block.
func (m *MultiGoertzel) Reset() {
	for _, g := range m.probes {
		g.Reset()
	}
}
