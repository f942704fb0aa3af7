package seqtest

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/mathext"
)

// BFTI is the Bayes-factor test with an indifference region: instead of a
// single theta, the null and alternative are evaluated at theta1 = theta-delta
// and theta2 = theta+delta, clamped to (0,1). As delta -> 0 it reduces to BFT.
type BFTI struct {
	state
	theta1 float64
	theta2 float64
	thresh float64
	alpha  float64
	beta   float64
	podds  float64 // prior odds evaluated at theta1
}

// NewBFTI parses "theta T alpha beta delta". theta1, theta2 are rejected if
// clamping drove either to the [0,1] endpoint.
func NewBFTI(argsLine string, theta, thresh, alpha, beta, delta float64) (*BFTI, error) {
	if theta <= 0.0 || theta >= 1.0 {
		return nil, validationError(argsLine, "must have 0 < theta < 1")
	}
	if thresh <= 1.0 {
		return nil, validationError(argsLine, "must have T > 1")
	}
	if alpha <= 0.0 || beta <= 0.0 {
		return nil, validationError(argsLine, "must have alpha > 0 and beta > 0")
	}
	if delta <= 0.0 || delta >= 0.5 {
		return nil, validationError(argsLine, "must have 0 < delta < 0.5")
	}
	theta1 := theta - delta
	if theta1 < 0.0 {
		theta1 = 0.0
	}
	theta2 := theta + delta
	if theta2 > 1.0 {
		theta2 = 1.0
	}
	if theta1 == 0.0 || theta2 == 1.0 {
		return nil, validationError(argsLine, "indifference region clamps to a distribution endpoint")
	}
	iTheta1 := mathext.RegIncBeta(alpha, beta, theta1)
	if iTheta1 == 0.0 || iTheta1 == 1.0 {
		return nil, validationError(argsLine, "degenerate prior: I(theta1; alpha, beta) is 0 or 1")
	}
	return &BFTI{
		state:  state{argsEcho: fmt.Sprintf("BFTI %v %v %v %v %v", theta, thresh, alpha, beta, delta)},
		theta1: theta1,
		theta2: theta2,
		thresh: thresh,
		alpha:  alpha,
		beta:   beta,
		podds:  iTheta1 / (1.0 - iTheta1),
	}, nil
}

func (t *BFTI) Kind() Kind   { return KindBFTI }
func (t *BFTI) IsDone() bool { return t.isDone() }

func (t *BFTI) Observe(n, x uint64) {
	if t.isDone() {
		return
	}
	a := float64(x) + t.alpha
	b := float64(n-x) + t.beta
	iLow := mathext.RegIncBeta(a, b, t.theta1)
	iHigh := mathext.RegIncBeta(a, b, t.theta2)
	factor := t.podds * (1.0 - iHigh) / iLow
	if outcome, ok := bayesFactorDecision(factor, t.thresh); ok {
		t.freeze(outcome, n, x)
	}
}

func (t *BFTI) PrintResult(w io.Writer) error {
	return printHypothesis(w, &t.state)
}
