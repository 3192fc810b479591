package detect

import (
	"github.com/cwbudde/algo-envelope/dsp/core"
)

// Default analysis parameters. The band covers the structural resonances
// excited by rolling-element impacts on common industrial bearings; a
// fourth-order Butterworth keeps the passband flat without excessive
// ringing at the band edges.
const (
	DefaultLowCutoff  = 1000.0
	DefaultHighCutoff = 10000.0
	DefaultOrder      = 4
	DefaultConfidence = 0.95
	DefaultWorkers    = 1
)

// Config holds detector configuration.
type Config struct {
	core.ProcessorConfig

	// LowCutoff and HighCutoff bound the analysis band in Hz.
	LowCutoff  float64
	HighCutoff float64

	// Order is the Butterworth order of each bandpass half; the
	// zero-phase pass doubles the effective order.
	Order int

	// Confidence is the classification confidence level in (0, 1).
	Confidence float64

	// Workers is the number of goroutines used for batch operations.
	Workers int
}

// Option configures a Detector.
type Option func(*Config)

// DefaultConfig returns the default detector configuration.
func DefaultConfig() Config {
	return Config{
		ProcessorConfig: core.DefaultProcessorConfig(),
		LowCutoff:       DefaultLowCutoff,
		HighCutoff:      DefaultHighCutoff,
		Order:           DefaultOrder,
		Confidence:      DefaultConfidence,
		Workers:         DefaultWorkers,
	}
}

// WithSampleRate sets the sample rate in Hz.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *Config) {
		cfg.SampleRate = sampleRate
	}
}

// WithBand sets the analysis band in Hz.
func WithBand(low, high float64) Option {
	return func(cfg *Config) {
		cfg.LowCutoff = low
		cfg.HighCutoff = high
	}
}

// WithOrder sets the Butterworth order of each bandpass half.
func WithOrder(order int) Option {
	return func(cfg *Config) {
		cfg.Order = order
	}
}

// WithConfidence sets the classification confidence level.
func WithConfidence(confidence float64) Option {
	return func(cfg *Config) {
		cfg.Confidence = confidence
	}
}

// WithWorkers sets the number of goroutines used by Train and Classify.
func WithWorkers(workers int) Option {
	return func(cfg *Config) {
		cfg.Workers = workers
	}
}

// ApplyOptions applies the given options to a default configuration.
// Values are not validated here; New rejects invalid configurations.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
