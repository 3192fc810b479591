// Package envelope extracts amplitude envelopes from real-valued signals via
// the analytic signal.
//
// The analytic signal of x is x + j*H(x), where H is the Hilbert transform.
// Its magnitude is the instantaneous amplitude of x, which demodulates
// amplitude modulation: for a bearing signal, periodic impacts that modulate
// the structural resonance show up directly in the envelope, where they can be
// compared against a reference level or examined spectrally.
//
// The transform is computed in the frequency domain by doubling positive
// frequencies and zeroing negative ones. DC and Nyquist keep unit weight, so
// a constant signal is its own analytic signal.
//
// For one-shot extraction:
//
//	env, err := envelope.Amplitude(signal)
//
// For repeated extraction at a fixed length, create an [Extractor] once to
// reuse its FFT plan and work buffers:
//
//	e, err := envelope.NewExtractor(4096)
//	env, err := e.Amplitude(signal)
//
// Transform sizes are powers of two. Signals of other lengths are zero-padded
// internally and results truncated back, which perturbs the envelope near the
// signal edges; prefer power-of-two record lengths where the acquisition
// allows it.
package envelope
