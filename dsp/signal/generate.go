package signal

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/cwbudde/algo-envelope/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// defaultSeed is the noise seed a generator starts with unless WithSeed
// overrides it.
const defaultSeed = 1

// Generator builds synthetic vibration records from a shared acquisition
// configuration. Tones are phase-locked to sample zero and noise restarts
// from the generator seed, so the same settings always reproduce the same
// record.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures generator behavior beyond the shared processor settings.
type Option func(*Generator)

// WithSeed selects the noise seed.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator returns a generator using the given acquisition settings and
// the default noise seed.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return NewGeneratorWithOptions(opts)
}

// NewGeneratorWithOptions is NewGenerator plus generator-specific options,
// split out so callers that only tune acquisition settings stay terse.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{cfg: core.ApplyProcessorOptions(coreOpts...), seed: defaultSeed}
	for _, o := range opts {
		if o != nil {
			o(g)
		}
	}
	return g
}

// Config returns the acquisition settings the generator was built with.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// SetSeed changes the seed used by subsequent WhiteNoise calls.
func (g *Generator) SetSeed(seed int64) {
	g.seed = seed
}

// Seed returns the active noise seed.
func (g *Generator) Seed() int64 {
	return g.seed
}

func recordLen(samples int) error {
	if samples <= 0 {
		return fmt.Errorf("signal: record length must be positive, got %d", samples)
	}
	return nil
}

// Sine returns a tone at freqHz with the given amplitude, phase-locked to
// sample zero.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if err := recordLen(samples); err != nil {
		return nil, err
	}
	if g.cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("signal: sample rate must be positive, got %v", g.cfg.SampleRate)
	}
	sig := make([]float64, samples)
	w := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for i := range sig {
		sig[i] = amplitude * math.Sin(w*float64(i))
	}
	return sig, nil
}

// Multisine returns a sum of equal-amplitude tones, one per entry of freqsHz.
// Shaft signatures take this form, running speed plus a few harmonics.
func (g *Generator) Multisine(freqsHz []float64, amplitude float64, samples int) ([]float64, error) {
	if len(freqsHz) == 0 {
		return nil, errors.New("signal: multisine needs at least one frequency")
	}
	sig, err := g.Sine(freqsHz[0], amplitude, samples)
	if err != nil {
		return nil, err
	}
	for _, freq := range freqsHz[1:] {
		tone, err := g.Sine(freq, amplitude, samples)
		if err != nil {
			return nil, err
		}
		vecmath.AddBlockInPlace(sig, tone)
	}
	return sig, nil
}

// WhiteNoise returns uniform noise in [-amplitude, amplitude]. The source
// restarts from the generator seed on every call, so one seed stands for one
// reproducible record.
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if err := recordLen(samples); err != nil {
		return nil, err
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("signal: noise amplitude must not be negative, got %v", amplitude)
	}
	rng := rand.New(rand.NewPCG(uint64(g.seed), 0))
	sig := make([]float64, samples)
	for i := range sig {
		sig[i] = amplitude * (2*rng.Float64() - 1)
	}
	return sig, nil
}

// Impulse returns a record that is zero except for one spike at pos.
func (g *Generator) Impulse(amplitude float64, samples, pos int) ([]float64, error) {
	if err := recordLen(samples); err != nil {
		return nil, err
	}
	if pos < 0 || pos >= samples {
		return nil, fmt.Errorf("signal: impulse position %d not in [0, %d)", pos, samples)
	}
	sig := make([]float64, samples)
	sig[pos] = amplitude
	return sig, nil
}

// ImpulseTrain returns a spike every period samples starting at offset.
// Bearing-defect impacts repeat this way, with the period set by the defect
// passing frequency.
func (g *Generator) ImpulseTrain(amplitude float64, samples, period, offset int) ([]float64, error) {
	if err := recordLen(samples); err != nil {
		return nil, err
	}
	if period <= 0 {
		return nil, fmt.Errorf("signal: impulse period must be positive, got %d", period)
	}
	if offset < 0 || offset >= samples {
		return nil, fmt.Errorf("signal: impulse offset %d not in [0, %d)", offset, samples)
	}
	sig := make([]float64, samples)
	for i := offset; i < samples; i += period {
		sig[i] = amplitude
	}
	return sig, nil
}

// Add returns the sample-wise sum of a and b.
func Add(a, b []float64) ([]float64, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("signal: add length mismatch, %d vs %d", len(a), len(b))
	}
	sig := make([]float64, len(a))
	vecmath.AddBlock(sig, a, b)
	return sig, nil
}

// Scale returns data multiplied by factor.
func Scale(data []float64, factor float64) []float64 {
	sig := make([]float64, len(data))
	vecmath.ScaleBlock(sig, data, factor)
	return sig
}

// Normalize rescales data so its largest magnitude equals targetPeak. An
// all-zero input stays zero rather than dividing by its zero peak.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("signal: target peak must not be negative, got %v", targetPeak)
	}
	if len(data) == 0 {
		return nil, errors.New("signal: normalize needs a non-empty input")
	}
	sig := make([]float64, len(data))
	peak := vecmath.MaxAbs(data)
	if peak == 0 || targetPeak == 0 {
		return sig, nil
	}
	vecmath.ScaleBlock(sig, data, targetPeak/peak)
	return sig, nil
}

// RemoveDC subtracts the mean, leaving the AC part of the record.
func RemoveDC(data []float64) ([]float64, error) {
	if len(data) == 0 {
		return nil, errors.New("signal: remove DC needs a non-empty input")
	}
	mean := vecmath.Sum(data) / float64(len(data))
	sig := make([]float64, len(data))
	for i, x := range data {
		sig[i] = x - mean
	}
	return sig, nil
}
