package main

import (
	"fmt"

	"github.com/cwbudde/algo-envelope/dsp/core"
	"github.com/cwbudde/algo-envelope/dsp/signal"
)

// The demo corpus is a healthy fleet of noisy 5 kHz tones with two seeded
// faults at five times the amplitude.
const (
	demoTrainCount = 400
	demoTestCount  = 12
	demoRecordLen  = 4096
	demoToneHz     = 5000.0
	demoToneAmp    = 1.0
	demoNoiseAmp   = 0.1
	demoFaultGain  = 5.0
)

var demoFaults = [...]int{3, 7}

// demoCorpora builds the synthetic training and test corpora for -demo.
// Noise is seeded per record, so runs are reproducible.
func demoCorpora(sampleRate float64) (train, tests [][]float64, err error) {
	gen := signal.NewGenerator(
		core.WithSampleRate(sampleRate),
		core.WithRecordLength(demoRecordLen),
	)

	train = make([][]float64, demoTrainCount)
	for i := range train {
		if train[i], err = demoRecord(gen, int64(i+1), demoToneAmp); err != nil {
			return nil, nil, fmt.Errorf("demo: training record %d: %w", i, err)
		}
	}

	tests = make([][]float64, demoTestCount)
	for i := range tests {
		amp := demoToneAmp
		for _, f := range demoFaults {
			if i == f {
				amp = demoToneAmp * demoFaultGain
			}
		}
		if tests[i], err = demoRecord(gen, int64(demoTrainCount+i+1), amp); err != nil {
			return nil, nil, fmt.Errorf("demo: test record %d: %w", i, err)
		}
	}

	return train, tests, nil
}

func demoRecord(gen *signal.Generator, seed int64, amplitude float64) ([]float64, error) {
	gen.SetSeed(seed)

	tone, err := gen.Sine(demoToneHz, amplitude, demoRecordLen)
	if err != nil {
		return nil, err
	}
	noise, err := gen.WhiteNoise(demoNoiseAmp, demoRecordLen)
	if err != nil {
		return nil, err
	}

	return signal.Add(tone, noise)
}
