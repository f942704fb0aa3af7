package seqtest

import (
	"fmt"
	"io"
	"math"
)

// CHB is the Chernoff-Hoeffding bound estimator: a fixed sample-size
// estimate of a Bernoulli success probability with precomputed bound
// N = ceil((1/(2*delta^2)) * ln(1/(1-c))).
type CHB struct {
	state
	delta float64
	c     float64
	n     uint64 // precomputed Chernoff-Hoeffding bound
}

// NewCHB parses "delta c" and validates 0 < delta < 0.5, c > 0.
func NewCHB(argsLine string, delta, c float64) (*CHB, error) {
	if delta <= 0.0 || delta >= 0.5 {
		return nil, validationError(argsLine, "must have 0 < delta < 0.5")
	}
	if c <= 0.0 {
		return nil, validationError(argsLine, "must have c > 0")
	}
	n := uint64(math.Ceil((1.0 / (2.0 * delta * delta)) * math.Log(1.0/(1.0-c))))
	return &CHB{
		state: state{argsEcho: fmt.Sprintf("CHB %v %v", delta, c)},
		delta: delta,
		c:     c,
		n:     n,
	}, nil
}

// Bound returns the precomputed Chernoff-Hoeffding sample bound N.
func (t *CHB) Bound() uint64 { return t.n }

func (t *CHB) Kind() Kind { return KindCHB }
func (t *CHB) IsDone() bool { return t.isDone() }
func (t *CHB) Estimate() float64 { return t.estimate }

// Observe terminates as soon as n reaches the precomputed bound. A
// multi-threaded driver overshoots this bound by up to W-1 samples; the
// comparison must stay >=, never ==, to still terminate in that case.
func (t *CHB) Observe(n, x uint64) {
	if t.isDone() {
		return
	}
	if n >= t.n {
		t.freeze(Done, n, x)
		t.estimate = float64(x) / float64(n)
	}
}

func (t *CHB) PrintResult(w io.Writer) error {
	return printEstimation(w, &t.state, fmt.Sprintf(", C-H bound = %d", t.n))
}
