package detect

import (
	"fmt"

	"github.com/cwbudde/algo-envelope/dsp/envelope"
	"github.com/cwbudde/algo-envelope/stats/normal"
	timestats "github.com/cwbudde/algo-envelope/stats/time"
	"github.com/cwbudde/algo-vecmath"
)

// Reference is the healthy-machine fingerprint produced by Train: the
// pointwise mean of the training envelopes together with the Gaussian
// moments of that mean envelope.
type Reference struct {
	// Envelope is the pointwise mean of the training envelopes.
	Envelope []float64

	// Mean and Std are the mean and population standard deviation of the
	// Envelope samples.
	Mean float64
	Std  float64

	// Requested and Used record how many training signals were asked for
	// and how many the corpus could provide.
	Requested int
	Used      int
}

// Clamped reports whether fewer training signals were available than
// requested.
func (r *Reference) Clamped() bool {
	return r.Used < r.Requested
}

// Threshold returns the anomaly threshold at the given confidence level:
// the envelope mean plus the z-score of the level times the envelope
// standard deviation.
func (r *Reference) Threshold(confidence float64) (float64, error) {
	if confidence <= 0 || confidence >= 1 {
		return 0, fmt.Errorf("detect: confidence %g: %w", confidence, ErrInvalidConfidence)
	}
	if len(r.Envelope) == 0 {
		return 0, ErrEmptyReference
	}

	return r.Mean + normal.ZScore(confidence)*r.Std, nil
}

// Exceedance returns the probability that a sample drawn from the
// reference's Gaussian envelope model exceeds level. It complements the
// threshold check with a severity figure for flagged scores.
func (r *Reference) Exceedance(level float64) float64 {
	if r.Std == 0 {
		if level > r.Mean {
			return 0
		}

		return 1
	}

	return 1 - normal.CDF((level-r.Mean)/r.Std)
}

// Train builds a reference from the first n signals of the corpus, in
// stored order. Each signal is preprocessed and its amplitude envelope
// extracted; the envelopes are averaged pointwise and the moments of the
// average form the classification model. A corpus holding fewer than n
// signals is not an error: the full corpus is used and the shortfall is
// recorded in the returned reference.
//
// All training signals must have the same length; a mismatch wraps
// ErrLengthMismatch.
func (d *Detector) Train(corpus [][]float64, n int) (*Reference, error) {
	if len(corpus) == 0 {
		return nil, fmt.Errorf("detect: no training signals: %w", ErrEmptyCorpus)
	}
	if n <= 0 {
		return nil, fmt.Errorf("detect: requested %d training signals: %w", n, ErrEmptyCorpus)
	}

	used := min(n, len(corpus))
	envelopes := make([][]float64, used)
	err := d.runJobs(used, func(i int) error {
		pre, err := d.Preprocess(corpus[i])
		if err != nil {
			return fmt.Errorf("detect: training signal %d: %w", i, err)
		}
		env, err := envelope.Amplitude(pre)
		if err != nil {
			return fmt.Errorf("detect: training signal %d: %w", i, err)
		}
		envelopes[i] = env

		return nil
	})
	if err != nil {
		return nil, err
	}

	ref := make([]float64, len(envelopes[0]))
	for i, env := range envelopes {
		if len(env) != len(ref) {
			return nil, fmt.Errorf("detect: training signal %d has %d samples, signal 0 has %d: %w",
				i, len(env), len(ref), ErrLengthMismatch)
		}
		vecmath.AddBlockInPlace(ref, env)
	}
	vecmath.ScaleBlockInPlace(ref, 1/float64(used))

	mean, std := timestats.MeanStdDev(ref)

	return &Reference{
		Envelope:  ref,
		Mean:      mean,
		Std:       std,
		Requested: n,
		Used:      used,
	}, nil
}
