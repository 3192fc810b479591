package core

// Default acquisition settings shared across the pipeline. 25.6 kHz is the
// standard rate of portable vibration front-ends, and 4096 samples (160 ms)
// is a power of two so envelope extraction needs no padding.
const (
	DefaultSampleRate   = 25600.0
	DefaultRecordLength = 4096
)

// ProcessorConfig defines common processing settings.
type ProcessorConfig struct {
	SampleRate   float64
	RecordLength int
}

// ProcessorOption overrides one field of a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns the default acquisition settings.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate:   DefaultSampleRate,
		RecordLength: DefaultRecordLength,
	}
}

// WithSampleRate sets the acquisition sample rate. Non-positive rates are
// ignored, keeping the default.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(pc *ProcessorConfig) {
		if sampleRate <= 0 {
			return
		}
		pc.SampleRate = sampleRate
	}
}

// WithRecordLength sets the number of samples per measurement record.
// Non-positive lengths are ignored, keeping the default.
func WithRecordLength(recordLength int) ProcessorOption {
	return func(pc *ProcessorConfig) {
		if recordLength <= 0 {
			return
		}
		pc.RecordLength = recordLength
	}
}

// ApplyProcessorOptions folds the given options over the default config,
// skipping nil entries.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}
	return cfg
}
