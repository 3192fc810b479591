package testutil

import (
	"fmt"
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any sample pair differs by more than tol (absolute). A tol of zero
// demands bitwise equality, which deterministic pipelines can deliver.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, tol float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d samples, want %d", len(got), len(want))
	}

	for i, g := range got {
		if diff := math.Abs(g - want[i]); diff > tol {
			t.Fatalf("sample %d: got %v, want %v (|diff| %v > %v)", i, g, want[i], diff, tol)
		}
	}
}

// RequireFinite fails t if any sample is NaN or Inf, the usual symptoms of
// an unstable filter.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()

	for i, v := range data {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			t.Fatalf("sample %d is not finite: %v", i, v)
		}
	}
}

// MaxAbsDiff returns the largest absolute difference between corresponding
// samples of a and b, or an error if the slices differ in length.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("slice lengths differ: %d vs %d", len(a), len(b))
	}

	worst := 0.0
	for i, v := range a {
		worst = math.Max(worst, math.Abs(v-b[i]))
	}

	return worst, nil
}
