package window

import (
	"errors"
	"math"
	"testing"
)

func TestGenerate_SymmetricHannShape(t *testing.T) {
	w := Generate(TypeHann, 9)
	if len(w) != 9 {
		t.Fatalf("len = %d, want 9", len(w))
	}
	if w[0] != 0 || math.Abs(w[8]) > 1e-15 {
		t.Errorf("endpoints = %v, %v, want 0, 0", w[0], w[8])
	}
	if math.Abs(w[4]-1) > 1e-15 {
		t.Errorf("midpoint = %v, want 1", w[4])
	}
	for i := 0; i < 4; i++ {
		if math.Abs(w[i]-w[8-i]) > 1e-15 {
			t.Errorf("asymmetric: w[%d]=%v, w[%d]=%v", i, w[i], 8-i, w[8-i])
		}
	}
}

func TestGenerate_PeriodicFormShiftsDenominator(t *testing.T) {
	n := 16
	sym := Generate(TypeHann, n)
	per := Generate(TypeHann, n, WithPeriodic())

	// Symmetric tapers to zero at both ends; periodic leaves the last
	// sample one step short of the wraparound zero.
	if sym[n-1] != per[0] || math.Abs(sym[n-1]) > 1e-15 {
		t.Errorf("leading samples: sym end %v, per start %v, want both 0", sym[n-1], per[0])
	}
	if per[n-1] <= 0 {
		t.Errorf("periodic end = %v, want > 0", per[n-1])
	}
	if math.Abs(per[n/2]-1) > 1e-15 {
		t.Errorf("periodic midpoint = %v, want 1", per[n/2])
	}
}

func TestGenerate_Rectangular(t *testing.T) {
	for _, v := range Generate(TypeRectangular, 32) {
		if v != 1 {
			t.Fatalf("rectangular coefficient = %v, want 1", v)
		}
	}
}

func TestGenerate_FlatTopShape(t *testing.T) {
	w := Generate(TypeFlatTop, 1025)

	if math.Abs(w[512]-1) > 1e-8 {
		t.Errorf("midpoint = %v, want ~1", w[512])
	}

	// Flat-top windows dip below zero near the edges.
	min := w[0]
	for _, v := range w {
		if v < min {
			min = v
		}
	}
	if min >= 0 {
		t.Errorf("min = %v, want < 0", min)
	}
}

func TestGenerate_DegenerateLengths(t *testing.T) {
	if got := Generate(TypeHann, 0); got != nil {
		t.Errorf("length 0: got %v, want nil", got)
	}
	if got := Generate(TypeHann, -4); got != nil {
		t.Errorf("negative length: got %v, want nil", got)
	}
}

func TestCoherentGain_PeriodicMatchesDCTerm(t *testing.T) {
	// For periodic cosine-sum windows the mean is exactly the DC term: every
	// other term sums over whole cycles.
	cases := []struct {
		typ  Type
		want float64
	}{
		{TypeRectangular, 1.0},
		{TypeHann, 0.5},
		{TypeHamming, 0.54},
		{TypeBlackman, 0.42},
		{TypeFlatTop, 0.21557895},
	}

	for _, tc := range cases {
		t.Run(tc.typ.String(), func(t *testing.T) {
			gain, err := CoherentGain(Generate(tc.typ, 1024, WithPeriodic()))
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(gain-tc.want) > 1e-12 {
				t.Errorf("CoherentGain = %v, want %v", gain, tc.want)
			}
		})
	}
}

func TestEquivalentNoiseBandwidth_KnownValues(t *testing.T) {
	cases := []struct {
		typ  Type
		want float64
		tol  float64
	}{
		{TypeRectangular, 1.0, 1e-12},
		{TypeHann, 1.5, 1e-12},
		{TypeHamming, 1.3628, 1e-4},
		{TypeBlackman, 1.7268, 1e-4},
		{TypeFlatTop, 3.770, 1e-3},
	}

	for _, tc := range cases {
		t.Run(tc.typ.String(), func(t *testing.T) {
			enbw, err := EquivalentNoiseBandwidth(Generate(tc.typ, 4096, WithPeriodic()))
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(enbw-tc.want) > tc.tol {
				t.Errorf("ENBW = %v, want %v +- %v", enbw, tc.want, tc.tol)
			}
		})
	}
}

func TestCoherentGainErrors(t *testing.T) {
	if _, err := CoherentGain(nil); err == nil {
		t.Error("empty coefficients: want error")
	}
	if _, err := CoherentGain([]float64{1, -1}); err == nil {
		t.Error("zero-sum coefficients: want error")
	}
	if _, err := EquivalentNoiseBandwidth(nil); err == nil {
		t.Error("empty coefficients: want error")
	}
	if _, err := EquivalentNoiseBandwidth([]float64{1, -1}); err == nil {
		t.Error("zero-sum coefficients: want error")
	}
}

func TestApply_MatchesGenerate(t *testing.T) {
	buf := make([]float64, 64)
	for i := range buf {
		buf[i] = 2
	}

	Apply(TypeHann, buf, WithPeriodic())

	w := Generate(TypeHann, 64, WithPeriodic())
	for i := range buf {
		if math.Abs(buf[i]-2*w[i]) > 1e-15 {
			t.Fatalf("buf[%d] = %v, want %v", i, buf[i], 2*w[i])
		}
	}
}

func TestApplyCoefficients(t *testing.T) {
	samples := []float64{1, 2, 3, 4}
	coeffs := []float64{0.5, 0.5, 0.5, 0.5}

	out, err := ApplyCoefficients(samples, coeffs)
	if err != nil {
		t.Fatal(err)
	}
	for i, want := range []float64{0.5, 1, 1.5, 2} {
		if out[i] != want {
			t.Errorf("out[%d] = %v, want %v", i, out[i], want)
		}
	}
	if samples[0] != 1 {
		t.Error("input mutated")
	}

	if _, err := ApplyCoefficients(samples, coeffs[:3]); err == nil {
		t.Error("length mismatch: want error")
	}
}

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want Type
	}{
		{"hann", TypeHann},
		{"Hann", TypeHann},
		{" hamming ", TypeHamming},
		{"blackman", TypeBlackman},
		{"flattop", TypeFlatTop},
		{"flat-top", TypeFlatTop},
		{"rectangular", TypeRectangular},
		{"rect", TypeRectangular},
		{"none", TypeRectangular},
	}
	for _, tc := range cases {
		got, err := Parse(tc.in)
		if err != nil {
			t.Errorf("Parse(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}

	if _, err := Parse("welch"); !errors.Is(err, ErrUnknownType) {
		t.Errorf("Parse(welch): got %v, want ErrUnknownType", err)
	}
}

func TestTypeString(t *testing.T) {
	for _, typ := range []Type{TypeRectangular, TypeHann, TypeHamming, TypeBlackman, TypeFlatTop} {
		back, err := Parse(typ.String())
		if err != nil {
			t.Errorf("%v does not round-trip: %v", typ, err)
		}
		if back != typ {
			t.Errorf("Parse(%q) = %v, want %v", typ.String(), back, typ)
		}
	}
	if got := Type(99).String(); got != "window(99)" {
		t.Errorf("unknown String() = %q, want window(99)", got)
	}
}
