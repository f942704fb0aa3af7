package seqtest

import "testing"

func TestBFTRejectsDegeneratePrior(t *testing.T) {
	if _, err := NewBFT("BFT 0.99999 3 0.001 0.001", 0.99999, 3, 0.001, 0.001); err == nil {
		t.Fatal("expected initialization failure for near-degenerate prior")
	}
}

func TestBFTAcceptsReasonableParameters(t *testing.T) {
	test, err := NewBFT("BFT 0.5 3 2 2", 0.5, 3, 2, 2)
	if err != nil {
		t.Fatalf("NewBFT: %v", err)
	}
	if test.IsDone() {
		t.Fatal("expected fresh test to be pending")
	}
}

func TestBFTDecidesOnStrongEvidence(t *testing.T) {
	test, err := NewBFT("BFT 0.5 3 2 2", 0.5, 3, 2, 2)
	if err != nil {
		t.Fatalf("NewBFT: %v", err)
	}
	test.Observe(200, 190) // overwhelmingly above theta, which is the null region [theta, 1]
	if !test.IsDone() {
		t.Fatal("expected decision with strong evidence")
	}
	if test.outcome != AcceptNull {
		t.Fatalf("expected AcceptNull given high success rate above theta, got %v", test.outcome)
	}
}
