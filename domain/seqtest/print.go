package seqtest

import (
	"fmt"
	"io"

	"github.com/terminiter/sreach/internal/errors"
)

// printNotDone is the fatal error every test's PrintResult returns if
// called before IsDone(), per spec.md §4.1 ("Printing before termination
// is a fatal error").
func printNotDone(argsEcho string) error {
	return errors.New(errors.CodeInternal, fmt.Sprintf("print_result: test not completed: %s", argsEcho))
}

// printHypothesis renders the result line shared by SPRT/BFT/BFTI/Lai.
func printHypothesis(w io.Writer, s *state) error {
	if s.outcome == Pending {
		return printNotDone(s.argsEcho)
	}
	verdict := "Accept Null hypothesis"
	if s.outcome == AcceptAlt {
		verdict = "Reject Null hypothesis"
	}
	_, err := fmt.Fprintf(w, "%s: %s, successes = %d, samples = %d\n",
		s.argsEcho, verdict, s.successes, s.samples)
	return err
}

// printEstimation renders the result line shared by CHB/NSAM/BayesEstim,
// with an optional trailing ", C-H bound = N" for CHB.
func printEstimation(w io.Writer, s *state, chBoundSuffix string) error {
	if s.outcome == Pending {
		return printNotDone(s.argsEcho)
	}
	_, err := fmt.Fprintf(w, "%s: estimate = %v, successes = %d, samples = %d%s\n",
		s.argsEcho, s.estimate, s.successes, s.samples, chBoundSuffix)
	return err
}
