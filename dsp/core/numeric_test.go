package core

import (
	"math"
	"testing"
)

func TestNearlyEqual(t *testing.T) {
	cases := []struct {
		name string
		a, b float64
		eps  float64
		want bool
	}{
		{"absolute", 1.0, 1.0 + 1e-13, 1e-12, true},
		{"relative", 2e9, 2e9 + 1, 1e-6, true},
		{"differs", 1.0, 1.1, 1e-3, false},
		{"zero eps falls back", 0, 0, 0, true},
		{"negative eps falls back", 5, 5, -1, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NearlyEqual(tc.a, tc.b, tc.eps); got != tc.want {
				t.Fatalf("NearlyEqual(%v, %v, %v) = %v, want %v", tc.a, tc.b, tc.eps, got, tc.want)
			}
		})
	}
}

func TestDBConversions(t *testing.T) {
	if got := DBToLinear(20); !NearlyEqual(got, 10, 1e-10) {
		t.Fatalf("DBToLinear(20) = %v, want 10", got)
	}
	if got := LinearToDB(DBToLinear(-6)); !NearlyEqual(got, -6, 1e-10) {
		t.Fatalf("-6 dB round trip = %v", got)
	}
	if got := LinearToDB(0); !math.IsInf(got, -1) {
		t.Fatalf("LinearToDB(0) = %v, want -Inf", got)
	}
	if got := LinearToDB(-1); !math.IsNaN(got) {
		t.Fatalf("LinearToDB(-1) = %v, want NaN", got)
	}
}
