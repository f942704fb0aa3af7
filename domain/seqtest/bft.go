package seqtest

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/mathext"
)

// BFT is the Bayes-factor hypothesis test: null is "success probability
// is at least theta", tested via the ratio of posterior to prior odds
// against a fixed threshold T.
type BFT struct {
	state
	theta  float64
	thresh float64
	alpha  float64
	beta   float64
	podds  float64 // prior odds, precomputed at construction
}

// NewBFT parses "theta T alpha beta", validates 0<theta<1, T>1, alpha,beta>0,
// and rejects a degenerate prior (I(theta; alpha, beta) in {0, 1}).
func NewBFT(argsLine string, theta, thresh, alpha, beta float64) (*BFT, error) {
	if theta <= 0.0 || theta >= 1.0 {
		return nil, validationError(argsLine, "must have 0 < theta < 1")
	}
	if thresh <= 1.0 {
		return nil, validationError(argsLine, "must have T > 1")
	}
	if alpha <= 0.0 || beta <= 0.0 {
		return nil, validationError(argsLine, "must have alpha > 0 and beta > 0")
	}
	iTheta := mathext.RegIncBeta(alpha, beta, theta)
	if iTheta == 0.0 || iTheta == 1.0 {
		return nil, validationError(argsLine, "degenerate prior: I(theta; alpha, beta) is 0 or 1")
	}
	return &BFT{
		state:  state{argsEcho: fmt.Sprintf("BFT %v %v %v %v", theta, thresh, alpha, beta)},
		theta:  theta,
		thresh: thresh,
		alpha:  alpha,
		beta:   beta,
		podds:  iTheta / (1.0 - iTheta),
	}, nil
}

func (t *BFT) Kind() Kind   { return KindBFT }
func (t *BFT) IsDone() bool { return t.isDone() }

func (t *BFT) Observe(n, x uint64) {
	if t.isDone() {
		return
	}
	iPost := mathext.RegIncBeta(float64(x)+t.alpha, float64(n-x)+t.beta, t.theta)
	b := t.podds * (1.0/iPost - 1.0)
	if outcome, ok := bayesFactorDecision(b, t.thresh); ok {
		t.freeze(outcome, n, x)
	}
}

// bayesFactorDecision applies the decision rule shared by BFT and BFTI:
// accept the null if the Bayes factor clears the threshold, accept the
// alternative if it falls below its reciprocal, otherwise continue.
func bayesFactorDecision(b, thresh float64) (Outcome, bool) {
	switch {
	case b > thresh:
		return AcceptNull, true
	case b < 1.0/thresh:
		return AcceptAlt, true
	default:
		return Pending, false
	}
}

func (t *BFT) PrintResult(w io.Writer) error {
	return printHypothesis(w, &t.state)
}
