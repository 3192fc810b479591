package detect

import (
	"fmt"

	timestats "github.com/cwbudde/algo-envelope/stats/time"
)

// Flag records one anomalous test signal.
type Flag struct {
	// Index is the signal's position in the test corpus.
	Index int

	// Score is the mean preprocessed level that exceeded the threshold.
	Score float64

	// Signal is the preprocessed form of the flagged signal, as scored.
	Signal []float64
}

// Result holds the outcome of classifying a test corpus.
type Result struct {
	// Threshold is the decision level the scores were compared against.
	Threshold float64

	// Scores holds the score of every test signal in corpus order.
	Scores []float64

	// Flags lists the anomalous signals in ascending index order.
	Flags []Flag
}

// Count returns the number of flagged signals.
func (r *Result) Count() int {
	return len(r.Flags)
}

// Indices returns the flagged signal indices in ascending order.
func (r *Result) Indices() []int {
	idx := make([]int, len(r.Flags))
	for i, f := range r.Flags {
		idx[i] = f.Index
	}

	return idx
}

// Classify preprocesses every test signal and scores it against the
// reference. A signal whose mean preprocessed level lies strictly above
// the threshold at the detector's confidence level is flagged; flags keep
// the corpus order. Per-signal filter errors carry the signal index.
func (d *Detector) Classify(ref *Reference, tests [][]float64) (*Result, error) {
	if ref == nil {
		return nil, ErrEmptyReference
	}

	pre := make([][]float64, len(tests))
	err := d.runJobs(len(tests), func(i int) error {
		p, err := d.Preprocess(tests[i])
		if err != nil {
			return fmt.Errorf("detect: test signal %d: %w", i, err)
		}
		pre[i] = p

		return nil
	})
	if err != nil {
		return nil, err
	}

	return d.ClassifyPreprocessed(ref, pre)
}

// ClassifyPreprocessed is Classify for signals that have already been
// preprocessed, for pipelines that filter once and score many times.
func (d *Detector) ClassifyPreprocessed(ref *Reference, tests [][]float64) (*Result, error) {
	if ref == nil {
		return nil, ErrEmptyReference
	}
	threshold, err := ref.Threshold(d.cfg.Confidence)
	if err != nil {
		return nil, err
	}

	scores := make([]float64, len(tests))
	err = d.runJobs(len(tests), func(i int) error {
		scores[i] = timestats.Mean(tests[i])

		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &Result{Threshold: threshold, Scores: scores}
	for i, score := range scores {
		if score > threshold {
			result.Flags = append(result.Flags, Flag{Index: i, Score: score, Signal: tests[i]})
		}
	}

	return result, nil
}
