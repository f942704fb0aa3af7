package seqtest

import (
	"fmt"
	"io"
	"math"

	"github.com/terminiter/sreach/ports"
)

// Lai implements Lai's sequential hypothesis test, comparing the empirical
// Kullback-Leibler divergence against a sample-size-dependent threshold
// g(c*n)/n. Once the threshold is crossed, exact equality between the
// empirical rate and theta is broken by an injected RNG rather than a
// package-global one. At exact equality the divergence is 0 while g is
// positive on every branch, so Observe never reaches that tie-break.
//
// The t < 0.01 branch of g below follows the source's piecewise definition
// faithfully; the expression is numerically delicate there (it involves
// ln ln w) but is not re-derived here.
type Lai struct {
	state
	theta float64
	cost  float64
	rng   ports.RNGPort
}

// NewLai parses "theta c" and validates 0<theta<1, c>0.
func NewLai(argsLine string, theta, cost float64, rng ports.RNGPort) (*Lai, error) {
	if theta <= 0.0 || theta >= 1.0 {
		return nil, validationError(argsLine, "must have 0 < theta < 1")
	}
	if cost <= 0.0 {
		return nil, validationError(argsLine, "must have c > 0")
	}
	return &Lai{
		state: state{argsEcho: fmt.Sprintf("LAI %v %v", theta, cost)},
		theta: theta,
		cost:  cost,
		rng:   rng,
	}, nil
}

func (t *Lai) Kind() Kind   { return KindLai }
func (t *Lai) IsDone() bool { return t.isDone() }

func (t *Lai) Observe(n, x uint64) {
	if t.isDone() || n == 0 {
		return
	}
	pHat := float64(x) / float64(n)

	var kl float64
	switch {
	case pHat == 0.0:
		kl = math.Log(1.0 / (1.0 - t.theta))
	case pHat == 1.0:
		kl = math.Log(1.0 / t.theta)
	default:
		kl = pHat*math.Log(pHat/t.theta) + (1.0-pHat)*math.Log((1.0-pHat)/(1.0-t.theta))
	}

	tVal := t.cost * float64(n)
	g := laiThreshold(tVal)
	threshold := g / float64(n)

	if kl < threshold {
		return
	}
	switch {
	case pHat > t.theta:
		t.freeze(AcceptNull, n, x)
	case pHat < t.theta:
		t.freeze(AcceptAlt, n, x)
	default:
		if t.rng.Float64() < 0.5 {
			t.freeze(AcceptNull, n, x)
		} else {
			t.freeze(AcceptAlt, n, x)
		}
	}
}

// laiThreshold computes g(t) per the piecewise definition in the source.
func laiThreshold(tVal float64) float64 {
	switch {
	case tVal >= 0.8:
		w := 1.0 / tVal
		return (1.0 / (16.0 * math.Pi)) * (w*w - (10.0/(48.0*math.Pi))*w*w*w*w + math.Pow((5.0/(48.0*math.Pi)), 2)*w*w*w*w*w*w)
	case tVal >= 0.1:
		return math.Exp(-1.38*tVal-2.0) / (2.0 * tVal)
	case tVal >= 0.01:
		return (0.1521 + 0.000225/tVal - 0.00585/math.Sqrt(tVal)) / (2.0 * tVal)
	default:
		w := 1.0 / tVal
		return 0.5 * (2.0*math.Log(w) + math.Log(math.Log(w)) - math.Log(4.0*math.Pi) - 3.0*math.Exp(-0.016*math.Sqrt(w)))
	}
}

func (t *Lai) PrintResult(w io.Writer) error {
	return printHypothesis(w, &t.state)
}
