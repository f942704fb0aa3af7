package seqtest

import (
	"fmt"
	"io"
	"math"
)

// SPRT is Wald's sequential probability ratio test over the indifference
// region [theta-delta, theta+delta], decided by comparing the log
// likelihood ratio r against +-ln(T).
type SPRT struct {
	state
	theta1 float64
	theta2 float64
	logT   float64
}

// NewSPRT parses "theta T delta" with the same theta1/theta2 derivation and
// validation as BFTI.
func NewSPRT(argsLine string, theta, thresh, delta float64) (*SPRT, error) {
	if theta <= 0.0 || theta >= 1.0 {
		return nil, validationError(argsLine, "must have 0 < theta < 1")
	}
	if thresh <= 1.0 {
		return nil, validationError(argsLine, "must have T > 1")
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
	return &SPRT{
		state:  state{argsEcho: fmt.Sprintf("SPRT %v %v %v", theta, thresh, delta)},
		theta1: theta1,
		theta2: theta2,
		logT:   math.Log(thresh),
	}, nil
}

func (t *SPRT) Kind() Kind   { return KindSPRT }
func (t *SPRT) IsDone() bool { return t.isDone() }

func (t *SPRT) Observe(n, x uint64) {
	if t.isDone() {
		return
	}
	nx := float64(n - x)
	fx := float64(x)
	r := fx*math.Log(t.theta2/t.theta1) + nx*math.Log((1.0-t.theta2)/(1.0-t.theta1))
	switch {
	case r > t.logT:
		t.freeze(AcceptNull, n, x)
	case r < -t.logT:
		t.freeze(AcceptAlt, n, x)
	}
}

func (t *SPRT) PrintResult(w io.Writer) error {
	return printHypothesis(w, &t.state)
}
