package biquad

import (
	"math"
	"math/rand/v2"
	"testing"
)

// eps bounds the rounding drift allowed between two ways of computing the
// same sample.
const eps = 1e-12

func within(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// gentleLowpass returns a stable lowpass-like biquad with real poles at
// 0.2 and 0.1, convenient for hand tracing.
func gentleLowpass() Coefficients {
	return Coefficients{B0: 0.5, B1: 0.4, B2: 0.1, A1: -0.3, A2: 0.02}
}

// noiseBlock returns n reproducible samples in [-1, 1).
func noiseBlock(n int, seed uint64) []float64 {
	r := rand.New(rand.NewPCG(seed, 0))
	out := make([]float64, n)
	for i := range out {
		out[i] = 2*r.Float64() - 1
	}
	return out
}

func TestNewSection(t *testing.T) {
	coeffs := Coefficients{B0: 0.7, B1: -1.1, B2: 0.4, A1: -0.9, A2: 0.3}
	s := NewSection(coeffs)
	if s.Coefficients != coeffs {
		t.Fatalf("coefficients mismatch: got %v, want %v", s.Coefficients, coeffs)
	}
	if st := s.State(); st != [2]float64{0, 0} {
		t.Fatalf("initial state not zero: %v", st)
	}
}

func TestProcessSample_ImpulseTrace(t *testing.T) {
	// Hand trace of the transposed form for gentleLowpass and a unit
	// impulse. With A1 = -0.3 the feedback term -A1*y adds 0.3*y:
	//
	//	n=0: y = 0.5            z1 = 0.4 + 0.15 = 0.55       z2 = 0.1 - 0.01 = 0.09
	//	n=1: y = 0.55           z1 = 0.165 + 0.09 = 0.255    z2 = -0.011
	//	n=2: y = 0.255          z1 = 0.0765 - 0.011 = 0.0655 z2 = -0.0051
	//	n=3: y = 0.0655
	s := NewSection(gentleLowpass())

	impulse := []float64{1, 0, 0, 0}
	want := []float64{0.5, 0.55, 0.255, 0.0655}
	for i, x := range impulse {
		if y := s.ProcessSample(x); !within(y, want[i], eps) {
			t.Errorf("sample %d: got %.15f, want %.15f", i, y, want[i])
		}
	}
}

func TestProcessSample_Special(t *testing.T) {
	cases := []struct {
		name  string
		c     Coefficients
		input []float64
		want  []float64
	}{
		{
			// All-zero coefficients swallow everything.
			name:  "silence",
			c:     Coefficients{},
			input: []float64{1, 1, 1, 1},
			want:  []float64{0, 0, 0, 0},
		},
		{
			name:  "passthrough",
			c:     Coefficients{B0: 1},
			input: []float64{1, 0, -1, 0.5, 0.25},
			want:  []float64{1, 0, -1, 0.5, 0.25},
		},
		{
			// B1 alone is a one-sample delay: y[n] = x[n-1].
			name:  "unit delay",
			c:     Coefficients{B1: 1},
			input: []float64{1, 2, 3, 4, 5},
			want:  []float64{0, 1, 2, 3, 4},
		},
		{
			// Two-tap average: y[n] = (x[n] + x[n-1]) / 2.
			name:  "two-tap average",
			c:     Coefficients{B0: 0.5, B1: 0.5},
			input: []float64{1, 1, 1, 1},
			want:  []float64{0.5, 1, 1, 1},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSection(tc.c)
			for i, x := range tc.input {
				if y := s.ProcessSample(x); !within(y, tc.want[i], eps) {
					t.Errorf("sample %d: got %v, want %v", i, y, tc.want[i])
				}
			}
		})
	}
}

func TestProcessBlock_MatchesSample(t *testing.T) {
	// 257 samples: odd length forces the single-sample tail of the
	// unrolled loop; the even prefix covers the paired path.
	for _, n := range []int{1, 2, 8, 257} {
		input := noiseBlock(n, 11)

		ref := NewSection(gentleLowpass())
		want := make([]float64, n)
		for i, x := range input {
			want[i] = ref.ProcessSample(x)
		}

		s := NewSection(gentleLowpass())
		block := make([]float64, n)
		copy(block, input)
		s.ProcessBlock(block)

		for i := range block {
			if !within(block[i], want[i], eps) {
				t.Errorf("n=%d sample %d: ProcessBlock=%.15f, ProcessSample=%.15f", n, i, block[i], want[i])
			}
		}
	}
}

func TestProcessBlockTo_MatchesSample(t *testing.T) {
	src := noiseBlock(64, 12)
	snap := append([]float64(nil), src...)

	ref := NewSection(gentleLowpass())
	want := make([]float64, len(src))
	for i, x := range src {
		want[i] = ref.ProcessSample(x)
	}

	s := NewSection(gentleLowpass())
	dst := make([]float64, len(src))
	s.ProcessBlockTo(dst, src)

	for i := range dst {
		if !within(dst[i], want[i], eps) {
			t.Errorf("sample %d: ProcessBlockTo=%.15f, ProcessSample=%.15f", i, dst[i], want[i])
		}
	}

	for i, v := range src {
		if v != snap[i] {
			t.Fatalf("src modified at index %d", i)
		}
	}
}

func TestReset(t *testing.T) {
	s := NewSection(gentleLowpass())
	s.ProcessSample(0.9)
	s.ProcessSample(-0.6)

	if st := s.State(); st == [2]float64{0, 0} {
		t.Fatal("state should be non-zero after processing")
	}

	s.Reset()
	if st := s.State(); st != [2]float64{0, 0} {
		t.Fatalf("state not zero after reset: %v", st)
	}
}

func TestState_SaveRestore(t *testing.T) {
	s := NewSection(gentleLowpass())
	s.ProcessSample(0.9)
	s.ProcessSample(-0.6)
	saved := s.State()

	// Rewinding to the saved state must replay the same outputs.
	probes := []float64{0.45, -0.15}
	want := make([]float64, len(probes))
	for i, x := range probes {
		want[i] = s.ProcessSample(x)
	}

	s.SetState(saved)
	for i, x := range probes {
		if y := s.ProcessSample(x); !within(y, want[i], eps) {
			t.Errorf("replay sample %d: got %v, want %v", i, y, want[i])
		}
	}
}

func TestProcessSample_StateDecays(t *testing.T) {
	// With poles at 0.2 and 0.1 the state shrinks by a factor of five or
	// more per sample, so 4096 quiet samples underflow it to exactly zero.
	s := NewSection(gentleLowpass())
	s.ProcessSample(1)

	for range 4096 {
		s.ProcessSample(0)
	}

	if st := s.State(); st != [2]float64{0, 0} {
		t.Errorf("state still ringing after quiet input: %v", st)
	}
}
