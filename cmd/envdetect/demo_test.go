package main

import (
	"math"
	"testing"
)

func TestDemoCorpora_Shape(t *testing.T) {
	train, tests, err := demoCorpora(25600)
	if err != nil {
		t.Fatal(err)
	}

	if len(train) != demoTrainCount {
		t.Fatalf("len(train) = %d, want %d", len(train), demoTrainCount)
	}
	if len(tests) != demoTestCount {
		t.Fatalf("len(tests) = %d, want %d", len(tests), demoTestCount)
	}
	for i, rec := range train {
		if len(rec) != demoRecordLen {
			t.Fatalf("train[%d] length = %d, want %d", i, len(rec), demoRecordLen)
		}
	}
}

func TestDemoCorpora_FaultsStandOut(t *testing.T) {
	_, tests, err := demoCorpora(25600)
	if err != nil {
		t.Fatal(err)
	}

	healthy := peak(tests[0])
	for _, f := range demoFaults {
		if got := peak(tests[f]); got < 4*healthy {
			t.Errorf("fault %d peak = %v, want > 4x healthy peak %v", f, got, healthy)
		}
	}
}

func TestDemoCorpora_Reproducible(t *testing.T) {
	train1, tests1, err := demoCorpora(25600)
	if err != nil {
		t.Fatal(err)
	}
	train2, tests2, err := demoCorpora(25600)
	if err != nil {
		t.Fatal(err)
	}

	for _, i := range []int{0, demoTrainCount / 2, demoTrainCount - 1} {
		for j := range train1[i] {
			if train1[i][j] != train2[i][j] {
				t.Fatalf("train[%d][%d] differs between runs", i, j)
			}
		}
	}
	for i := range tests1 {
		for j := range tests1[i] {
			if tests1[i][j] != tests2[i][j] {
				t.Fatalf("tests[%d][%d] differs between runs", i, j)
			}
		}
	}
}

func TestDemoCorpora_RecordsDiffer(t *testing.T) {
	train, _, err := demoCorpora(25600)
	if err != nil {
		t.Fatal(err)
	}

	same := true
	for j := range train[0] {
		if train[0][j] != train[1][j] {
			same = false
			break
		}
	}
	if same {
		t.Error("adjacent training records are identical, noise seeding is broken")
	}
}

func peak(data []float64) float64 {
	p := 0.0
	for _, v := range data {
		if a := math.Abs(v); a > p {
			p = a
		}
	}

	return p
}
