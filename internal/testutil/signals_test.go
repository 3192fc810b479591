package testutil

import (
	"math"
	"slices"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	sig := DeterministicSine(1000, 48000, 1.0, 48)
	if len(sig) != 48 {
		t.Fatalf("len = %d, want 48", len(sig))
	}
	if math.Abs(sig[0]) > 1e-15 {
		t.Fatalf("sample 0 = %v, want 0 at phase zero", sig[0])
	}
	for i, v := range sig {
		if math.Abs(v) > 1 {
			t.Fatalf("sample %d = %v outside [-1, 1]", i, v)
		}
	}

	again := DeterministicSine(1000, 48000, 1.0, 48)
	if !slices.Equal(sig, again) {
		t.Fatal("repeated call produced a different record")
	}
}

func TestDeterministicNoise(t *testing.T) {
	first := DeterministicNoise(42, 0.5, 64)
	second := DeterministicNoise(42, 0.5, 64)
	if len(first) != 64 {
		t.Fatalf("len = %d, want 64", len(first))
	}
	if !slices.Equal(first, second) {
		t.Fatal("same seed produced different records")
	}
	for i, v := range first {
		if math.Abs(v) > 0.5 {
			t.Fatalf("sample %d = %v outside [-0.5, 0.5]", i, v)
		}
	}

	if slices.Equal(first, DeterministicNoise(43, 0.5, 64)) {
		t.Fatal("seeds 42 and 43 produced identical noise")
	}
}

func TestImpulse(t *testing.T) {
	imp := Impulse(6, 2)
	for i, v := range imp {
		want := 0.0
		if i == 2 {
			want = 1
		}
		if v != want {
			t.Fatalf("sample %d = %v, want %v", i, v, want)
		}
	}

	for i, v := range Impulse(3, 7) {
		if v != 0 {
			t.Fatalf("out-of-range pos: sample %d = %v, want 0", i, v)
		}
	}
}

func TestDCAndOnes(t *testing.T) {
	for i, v := range DC(0.25, 4) {
		if v != 0.25 {
			t.Fatalf("DC sample %d = %v, want 0.25", i, v)
		}
	}
	ones := Ones(3)
	if len(ones) != 3 {
		t.Fatalf("len = %d, want 3", len(ones))
	}
	for i, v := range ones {
		if v != 1 {
			t.Fatalf("Ones sample %d = %v, want 1", i, v)
		}
	}
}

func TestSineCorpus(t *testing.T) {
	corpus := SineCorpus(5, 1000, 25600, 1.0, 64)
	if len(corpus) != 5 {
		t.Fatalf("count = %d, want 5", len(corpus))
	}
	for i, rec := range corpus {
		if len(rec) != 64 {
			t.Fatalf("record %d: len = %d, want 64", i, len(rec))
		}
		if !slices.Equal(rec, corpus[0]) {
			t.Fatalf("record %d differs from record 0", i)
		}
	}
}

func TestNoisySineCorpus(t *testing.T) {
	corpus := NoisySineCorpus(3, 1000, 25600, 1.0, 0.1, 64)
	if len(corpus) != 3 {
		t.Fatalf("count = %d, want 3", len(corpus))
	}
	if slices.Equal(corpus[0], corpus[1]) {
		t.Fatal("records with distinct noise seeds are identical")
	}
}
