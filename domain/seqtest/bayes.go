package seqtest

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/mathext"
)

// BayesEstim is Bayesian interval estimation under a Beta(alpha, beta)
// prior: it reports the posterior mean once a fixed-width credible
// interval around it reaches the requested coverage.
type BayesEstim struct {
	state
	delta    float64
	coverage float64
	alpha    float64
	beta     float64
}

// NewBayesEstim parses "delta c alpha beta" and validates 0<delta<=0.5,
// c>0, alpha>0, beta>0.
func NewBayesEstim(argsLine string, delta, coverage, alpha, beta float64) (*BayesEstim, error) {
	if delta <= 0.0 || delta > 0.5 {
		return nil, validationError(argsLine, "must have 0 < delta <= 0.5")
	}
	if coverage <= 0.0 {
		return nil, validationError(argsLine, "must have c > 0")
	}
	if alpha <= 0.0 || beta <= 0.0 {
		return nil, validationError(argsLine, "must have alpha > 0 and beta > 0")
	}
	return &BayesEstim{
		state:    state{argsEcho: fmt.Sprintf("BEST %v %v %v %v", delta, coverage, alpha, beta)},
		delta:    delta,
		coverage: coverage,
		alpha:    alpha,
		beta:     beta,
	}, nil
}

func (t *BayesEstim) Kind() Kind        { return KindBayesEstim }
func (t *BayesEstim) IsDone() bool      { return t.isDone() }
func (t *BayesEstim) Estimate() float64 { return t.estimate }

func (t *BayesEstim) Observe(n, x uint64) {
	if t.isDone() {
		return
	}
	a := float64(x) + t.alpha
	b := float64(n) + t.alpha + t.beta
	mu := a / b

	lower := mu - t.delta
	upper := mu + t.delta
	switch {
	case upper > 1.0:
		upper = 1.0
		lower = 1.0 - 2.0*t.delta
	case lower < 0.0:
		lower = 0.0
		upper = 2.0 * t.delta
	}

	// Posterior of the success rate given (a successes, b-a failures) is
	// Beta(a, b-a); I is evaluated at the interval endpoints under that law.
	betaB := b - a
	cov := mathext.RegIncBeta(a, betaB, upper) - mathext.RegIncBeta(a, betaB, lower)
	if cov >= t.coverage {
		t.freeze(Done, n, x)
		t.estimate = mu
	}
}

func (t *BayesEstim) PrintResult(w io.Writer) error {
	return printEstimation(w, &t.state, "")
}
