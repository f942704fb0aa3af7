// Package seqtest implements the seven sequential statistical tests that
// share a common n/x -> verdict contract: four hypothesis tests (SPRT,
// BFT, BFTI, Lai), two estimation procedures (CHB, BayesEstim), and the
// naive fixed-sample sampler NSAM, which also reports an estimate.
//
// Every test's state is touched only by the driver's coordinator, which
// runs strictly between batch barriers (spec.md §4.4/§5) — no internal
// locking is needed or provided.
package seqtest

import (
	"fmt"
	"io"

	"github.com/terminiter/sreach/internal/errors"
)

// Kind identifies which of the seven tests a line in the spec file names.
type Kind string

const (
	KindSPRT       Kind = "SPRT"
	KindBFT        Kind = "BFT"
	KindBFTI       Kind = "BFTI"
	KindLai        Kind = "LAI"
	KindCHB        Kind = "CHB"
	KindBayesEstim Kind = "BEST"
	KindNSAM       Kind = "NSAM"
)

// Outcome is a test's terminal state. Hypothesis tests settle on
// AcceptNull/AcceptAlt; estimation and sampling tests settle on Done.
type Outcome int

const (
	Pending Outcome = iota
	AcceptNull
	AcceptAlt
	Done
)

// Test is the shared contract every sequential test implements.
//
// Observe is monotone: it is safe to call with strictly non-decreasing n
// and corresponding x <= n, and once a test has reached a terminal
// outcome, later calls are no-ops. Because the parallel driver advances
// n in steps of W (the worker count), a test may observe n strictly
// greater than the n at which its threshold was first crossed — this
// overshoot is expected and must never change a terminal test's recorded
// (samples, successes, estimate) triple once it is set.
type Test interface {
	Kind() Kind
	IsDone() bool
	Observe(n, x uint64)
	PrintResult(w io.Writer) error
}

// state holds the fields common to every test's terminal snapshot.
type state struct {
	argsEcho  string
	outcome   Outcome
	samples   uint64
	successes uint64
	estimate  float64
}

func (s *state) isDone() bool { return s.outcome != Pending }

// freeze records the terminal (n, x) pair exactly once; later Observe
// calls on an already-terminal test are no-ops by construction because
// callers check IsDone() first, but freeze is also idempotent on its own
// in case a test's Observe forgets to check.
func (s *state) freeze(outcome Outcome, n, x uint64) {
	if s.outcome != Pending {
		return
	}
	s.outcome = outcome
	s.samples = n
	s.successes = x
}

func validationError(argsEcho, detail string) error {
	return errors.New(errors.CodeParamInvalid, fmt.Sprintf("%s : %s", argsEcho, detail))
}
