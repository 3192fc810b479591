package testutil

import (
	"math"
	"math/rand/v2"
)

// DeterministicSine returns a tone phase-locked to sample zero. The same
// arguments always yield the same samples.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	sig := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range sig {
		sig[i] = amplitude * math.Sin(step*float64(i))
	}
	return sig
}

// DeterministicNoise returns uniform noise in [-amplitude, amplitude] drawn
// from a PCG source seeded with seed.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	rng := rand.New(rand.NewPCG(uint64(seed), 0))
	sig := make([]float64, length)
	for i := range sig {
		sig[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return sig
}

// Impulse returns a record that is zero except for a unit spike at pos. An
// out-of-range pos yields all zeros.
func Impulse(length, pos int) []float64 {
	sig := make([]float64, length)
	if pos >= 0 && pos < length {
		sig[pos] = 1
	}
	return sig
}

// DC returns a constant record.
func DC(value float64, length int) []float64 {
	sig := make([]float64, length)
	for i := range sig {
		sig[i] = value
	}
	return sig
}

// Ones returns a record of length n filled with 1.
func Ones(n int) []float64 {
	return DC(1, n)
}

// SineCorpus returns count identical tone records, the shape of a training
// set captured from a healthy machine.
func SineCorpus(count int, freqHz, sampleRate, amplitude float64, length int) [][]float64 {
	corpus := make([][]float64, count)
	for i := range corpus {
		corpus[i] = DeterministicSine(freqHz, sampleRate, amplitude, length)
	}
	return corpus
}

// NoisySineCorpus returns count tone records, each overlaid with noise from
// a distinct seed so records differ the way repeated measurements do.
func NoisySineCorpus(count int, freqHz, sampleRate, amplitude, noiseAmplitude float64, length int) [][]float64 {
	corpus := make([][]float64, count)
	for i := range corpus {
		rec := DeterministicSine(freqHz, sampleRate, amplitude, length)
		noise := DeterministicNoise(int64(i+1), noiseAmplitude, length)
		for j := range rec {
			rec[j] += noise[j]
		}
		corpus[i] = rec
	}
	return corpus
}
