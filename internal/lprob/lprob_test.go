package lprob

import (
	"math"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-12 }

func TestAdd(t *testing.T) {
	got := Add(math.Log(0.25), math.Log(0.5))
	if !near(got, math.Log(0.75)) {
		t.Fatalf("Add: got %v want %v", got, math.Log(0.75))
	}
	if v := Add(Zero(), math.Log(0.3)); !near(v, math.Log(0.3)) {
		t.Fatalf("Add with zero: %v", v)
	}
	if v := Add(Zero(), Zero()); !IsZero(v) {
		t.Fatalf("zero+zero = %v", v)
	}
	// large magnitudes must not overflow
	if v := Add(-1000, -1000); !near(v, -1000+math.Ln2) {
		t.Fatalf("Add(-1000,-1000) = %v", v)
	}
}

func TestNormalize(t *testing.T) {
	xs := []float64{math.Log(2), math.Log(6), Zero()}
	n := Normalize(xs)
	if !near(Sum(n...), 0) {
		t.Fatalf("sum after normalize = %v", Sum(n...))
	}
	if !near(n[0], math.Log(0.25)) || !IsZero(n[2]) {
		t.Fatalf("normalize: %v", n)
	}
	if xs[0] != math.Log(2) {
		t.Fatalf("input mutated")
	}
	all := Normalize([]float64{Zero(), Zero()})
	if !IsZero(all[0]) || !IsZero(all[1]) {
		t.Fatalf("all-zero normalize: %v", all)
	}
}

func TestLog1mExp(t *testing.T) {
	for _, p := range []float64{1e-9, 0.1, 0.5, 0.9, 0.999999} {
		got := Log1mExp(math.Log(p))
		if math.Abs(got-math.Log(1-p)) > 1e-9 {
			t.Fatalf("Log1mExp(log %v) = %v want %v", p, got, math.Log(1-p))
		}
	}
	if !IsZero(Log1mExp(0)) {
		t.Fatalf("Log1mExp(0) should be zero probability")
	}
	if Log1mExp(Zero()) != 0 {
		t.Fatalf("Log1mExp(zero) should be log 1")
	}
}

func TestIsZero(t *testing.T) {
	if !IsZero(Zero()) || !IsZero(-1e301) || IsZero(-1e10) {
		t.Fatalf("IsZero tolerance broken")
	}
}
