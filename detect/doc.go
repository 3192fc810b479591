// Package detect implements envelope-based anomaly detection for
// rotating-machinery vibration signals.
//
// Bearing and gear faults show up as short impacts that excite structural
// resonances well above the shaft frequency. The detector isolates that
// evidence in three stages:
//
//   - Zero-phase bandpass filtering keeps the resonance band and removes
//     shaft harmonics and low-frequency runout without smearing impact timing
//   - Rectification and envelope extraction demodulate the impacts into a
//     low-frequency amplitude trace
//   - A Gaussian model of the healthy envelope turns the trace into a
//     threshold test at a chosen confidence level
//
// # Usage
//
// Train a reference on healthy records, then classify new ones:
//
//	d, _ := detect.New(
//	    detect.WithSampleRate(25600),
//	    detect.WithBand(1000, 10000),
//	    detect.WithConfidence(0.95),
//	)
//	ref, _ := d.Train(healthy, 400)
//	res, _ := d.Classify(ref, incoming)
//	for _, f := range res.Flags {
//	    fmt.Printf("record %d anomalous: score %.4f > %.4f\n", f.Index, f.Score, res.Threshold)
//	}
//
// Batch operations fan out across detect.WithWorkers goroutines; the result
// is independent of the worker count.
package detect
