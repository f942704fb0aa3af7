package seqtest

import "testing"

func TestBayesEstimTerminatesOnCoverage(t *testing.T) {
	test, err := NewBayesEstim("BEST 0.05 0.95 1 1", 0.05, 0.95, 1, 1)
	if err != nil {
		t.Fatalf("NewBayesEstim: %v", err)
	}
	// A large, balanced sample should eventually tighten the posterior
	// enough to clear a 95% coverage target at +-0.05.
	test.Observe(5000, 2500)
	if !test.IsDone() {
		t.Fatal("expected termination with a large balanced sample")
	}
	if test.Estimate() <= 0.45 || test.Estimate() >= 0.55 {
		t.Fatalf("expected estimate near 0.5, got %v", test.Estimate())
	}
}

func TestBayesEstimClampsIntervalNearZero(t *testing.T) {
	test, err := NewBayesEstim("BEST 0.1 0.9 1 1", 0.1, 0.9, 1, 1)
	if err != nil {
		t.Fatalf("NewBayesEstim: %v", err)
	}
	// Mostly-failure sample pushes mu near 0, forcing the lower-clamp branch.
	test.Observe(1000, 5)
	if test.IsDone() {
		if test.Estimate() < 0 || test.Estimate() > 1 {
			t.Fatalf("estimate must stay in [0,1], got %v", test.Estimate())
		}
	}
}

func TestBayesEstimRejectsBadDelta(t *testing.T) {
	if _, err := NewBayesEstim("BEST 0.6 0.9 1 1", 0.6, 0.9, 1, 1); err == nil {
		t.Fatal("expected error for delta > 0.5")
	}
}
