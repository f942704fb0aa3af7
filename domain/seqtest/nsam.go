package seqtest

import (
	"fmt"
	"io"
)

// NSAM is the naive fixed-sample estimator: once at least N samples have
// been observed, report x/n over the n samples seen, with no statistical
// bound attached.
type NSAM struct {
	state
	n uint64
}

// NewNSAM parses "N" and validates N > 0.
func NewNSAM(argsLine string, n uint64) (*NSAM, error) {
	if n == 0 {
		return nil, validationError(argsLine, "must have N > 0")
	}
	return &NSAM{
		state: state{argsEcho: fmt.Sprintf("NSAM %d", n)},
		n:     n,
	}, nil
}

// N returns the fixed sample count this test was constructed with.
func (t *NSAM) N() uint64 { return t.n }

func (t *NSAM) Kind() Kind        { return KindNSAM }
func (t *NSAM) IsDone() bool      { return t.isDone() }
func (t *NSAM) Estimate() float64 { return t.estimate }

func (t *NSAM) Observe(n, x uint64) {
	if t.isDone() {
		return
	}
	if n >= t.n {
		t.freeze(Done, n, x)
		t.estimate = float64(x) / float64(n)
	}
}

func (t *NSAM) PrintResult(w io.Writer) error {
	return printEstimation(w, &t.state, "")
}
