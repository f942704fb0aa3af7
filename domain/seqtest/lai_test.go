package seqtest

import "testing"

type fixedRNG struct{ v float64 }

func (f fixedRNG) Float64() float64 { return f.v }

func TestLaiDecidesAboveTheta(t *testing.T) {
	test, err := NewLai("LAI 0.5 0.01", 0.5, 0.01, fixedRNG{0.5})
	if err != nil {
		t.Fatalf("NewLai: %v", err)
	}
	test.Observe(1000, 900)
	if !test.IsDone() {
		t.Fatal("expected decision with overwhelming evidence")
	}
	if test.outcome != AcceptNull {
		t.Fatalf("expected AcceptNull for p-hat > theta, got %v", test.outcome)
	}
}

func TestLaiDecidesBelowTheta(t *testing.T) {
	test, err := NewLai("LAI 0.5 0.01", 0.5, 0.01, fixedRNG{0.5})
	if err != nil {
		t.Fatalf("NewLai: %v", err)
	}
	test.Observe(1000, 100)
	if !test.IsDone() {
		t.Fatal("expected decision with overwhelming evidence")
	}
	if test.outcome != AcceptAlt {
		t.Fatalf("expected AcceptAlt for p-hat < theta, got %v", test.outcome)
	}
}

func TestLaiTieBreakUsesInjectedRNG(t *testing.T) {
	lowRNG := fixedRNG{0.0}
	highRNG := fixedRNG{0.999}

	a, err := NewLai("LAI 0.5 0.01", 0.5, 0.01, lowRNG)
	if err != nil {
		t.Fatalf("NewLai: %v", err)
	}
	b, err := NewLai("LAI 0.5 0.01", 0.5, 0.01, highRNG)
	if err != nil {
		t.Fatalf("NewLai: %v", err)
	}

	// Exact tie: p-hat == theta.
	a.Observe(1000, 500)
	b.Observe(1000, 500)

	if !a.IsDone() || !b.IsDone() {
		t.Skip("KL threshold not crossed at this (n, x); tie-break path not exercised")
	}
	if a.outcome == b.outcome {
		t.Fatalf("expected RNG to break the tie differently, got a=%v b=%v", a.outcome, b.outcome)
	}
}

func TestLaiRejectsBadCost(t *testing.T) {
	if _, err := NewLai("LAI 0.5 0", 0.5, 0, fixedRNG{0.5}); err == nil {
		t.Fatal("expected error for cost <= 0")
	}
}
