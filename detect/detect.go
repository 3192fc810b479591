package detect

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/cwbudde/algo-envelope/dsp/filter/biquad"
	"github.com/cwbudde/algo-envelope/dsp/filter/zerophase"
)

var (
	// ErrEmptyCorpus is returned when training is requested on an empty
	// corpus or with a non-positive signal count.
	ErrEmptyCorpus = errors.New("detect: empty training corpus")
	// ErrEmptyReference is returned when classification is attempted
	// against a reference with no envelope.
	ErrEmptyReference = errors.New("detect: empty reference")
	// ErrLengthMismatch is returned when training signals produce
	// envelopes of different lengths.
	ErrLengthMismatch = errors.New("detect: signal length mismatch")
	// ErrInvalidConfidence is returned for confidence levels outside (0, 1).
	ErrInvalidConfidence = errors.New("detect: confidence must be in (0, 1)")
	// ErrInvalidWorkers is returned for non-positive worker counts.
	ErrInvalidWorkers = errors.New("detect: workers must be at least 1")
)

// Detector runs the envelope analysis pipeline: zero-phase bandpass
// filtering, rectification, envelope extraction and Gaussian thresholding.
// A Detector is immutable after construction and safe for concurrent use.
type Detector struct {
	cfg      Config
	sections []biquad.Coefficients
}

// New creates a detector. Invalid configurations are rejected here rather
// than on first use: band and order errors wrap zerophase.ErrInvalidParams,
// confidence and worker errors wrap the sentinels of this package.
func New(opts ...Option) (*Detector, error) {
	cfg := ApplyOptions(opts...)

	sections, err := zerophase.BandpassDesign(cfg.LowCutoff, cfg.HighCutoff, cfg.SampleRate, cfg.Order)
	if err != nil {
		return nil, err
	}
	if cfg.Confidence <= 0 || cfg.Confidence >= 1 {
		return nil, fmt.Errorf("detect: confidence %g: %w", cfg.Confidence, ErrInvalidConfidence)
	}
	if cfg.Workers < 1 {
		return nil, fmt.Errorf("detect: workers %d: %w", cfg.Workers, ErrInvalidWorkers)
	}

	return &Detector{cfg: cfg, sections: sections}, nil
}

// Config returns the detector's configuration.
func (d *Detector) Config() Config {
	return d.cfg
}

// MinSignalLen returns the shortest signal the detector accepts, set by the
// reflection padding of the zero-phase filter.
func (d *Detector) MinSignalLen() int {
	return zerophase.MinSignalLen(len(d.sections))
}

// Preprocess bandpass filters the signal with zero phase shift and rectifies
// the result. The output has the same length as the input and is the form
// all downstream stages consume: training extracts envelopes from it and
// classification scores its mean level.
func (d *Detector) Preprocess(signal []float64) ([]float64, error) {
	filtered, err := zerophase.Filter(d.sections, signal)
	if err != nil {
		return nil, err
	}

	for i, v := range filtered {
		filtered[i] = math.Abs(v)
	}

	return filtered, nil
}

// runJobs fans the indices [0, n) out over the configured worker count and
// calls job for each. Jobs only write their own index in shared output
// slices, so no locking is needed on results. The first error reported is
// returned; remaining jobs still run to completion. With a single worker
// everything runs on the calling goroutine.
func (d *Detector) runJobs(n int, job func(i int) error) error {
	workers := min(d.cfg.Workers, n)
	if workers <= 1 {
		for i := range n {
			if err := job(i); err != nil {
				return err
			}
		}

		return nil
	}

	jobs := make(chan int, n)
	for i := range n {
		jobs <- i
	}
	close(jobs)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := job(i); err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	return firstErr
}
