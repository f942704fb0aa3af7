package seqtest

import (
	"bytes"
	"strings"
	"testing"
)

func TestCHBTerminationBound(t *testing.T) {
	test, err := NewCHB("CHB 0.1 0.9", 0.1, 0.9)
	if err != nil {
		t.Fatalf("NewCHB: %v", err)
	}
	if test.Bound() != 116 {
		t.Fatalf("expected bound 116, got %d", test.Bound())
	}

	test.Observe(116, 58)
	if !test.IsDone() {
		t.Fatalf("expected test to be done at n=116")
	}
	if test.Estimate() != 0.5 {
		t.Fatalf("expected estimate 0.5, got %v", test.Estimate())
	}

	var buf bytes.Buffer
	if err := test.PrintResult(&buf); err != nil {
		t.Fatalf("PrintResult: %v", err)
	}
	if !strings.Contains(buf.String(), "C-H bound = 116") {
		t.Fatalf("expected C-H bound in output, got %q", buf.String())
	}
}

func TestCHBObserveIsIdempotentOnceDone(t *testing.T) {
	test, err := NewCHB("CHB 0.1 0.9", 0.1, 0.9)
	if err != nil {
		t.Fatalf("NewCHB: %v", err)
	}
	test.Observe(116, 58)
	test.Observe(200, 100) // overshoot batch, must be ignored
	if test.samples != 116 || test.successes != 58 {
		t.Fatalf("expected frozen (116, 58), got (%d, %d)", test.samples, test.successes)
	}
}

func TestCHBRejectsInvalidDelta(t *testing.T) {
	if _, err := NewCHB("CHB 0.6 0.9", 0.6, 0.9); err == nil {
		t.Fatal("expected error for delta >= 0.5")
	}
}

func TestCHBPrintBeforeDoneFails(t *testing.T) {
	test, err := NewCHB("CHB 0.1 0.9", 0.1, 0.9)
	if err != nil {
		t.Fatalf("NewCHB: %v", err)
	}
	var buf bytes.Buffer
	if err := test.PrintResult(&buf); err == nil {
		t.Fatal("expected PrintResult to fail before termination")
	}
}

func TestCHBReplayingSameStreamIsDeterministic(t *testing.T) {
	a, _ := NewCHB("CHB 0.1 0.9", 0.1, 0.9)
	b, _ := NewCHB("CHB 0.1 0.9", 0.1, 0.9)
	stream := [][2]uint64{{20, 10}, {60, 30}, {116, 58}, {180, 90}}
	for _, s := range stream {
		a.Observe(s[0], s[1])
		b.Observe(s[0], s[1])
	}
	if a.Estimate() != b.Estimate() || a.samples != b.samples {
		t.Fatalf("expected identical replay results, got %v/%d vs %v/%d",
			a.Estimate(), a.samples, b.Estimate(), b.samples)
	}
}
