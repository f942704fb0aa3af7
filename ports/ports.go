// Package ports declares the contracts this driver uses for the parts of
// the system that live outside its own binary: the probabilistic-model
// preprocessor, the random-variable sampler, the per-worker template
// instantiator, and the delta-decision solver process itself. None of
// these are implemented here — the driver only needs to call them.
package ports

import "context"

// Verdict is the Bernoulli outcome of a single solver invocation.
type Verdict int

const (
	Unsat Verdict = iota
	Sat
)

func (v Verdict) String() string {
	if v == Sat {
		return "sat"
	}
	return "unsat"
}

// Assignment is an ordered sequence of decimal value tokens, one per
// declared random variable. Equality is token-wise and exact; no numeric
// normalization is performed anywhere in the driver.
type Assignment []string

// Key returns the cache lookup key for an assignment. 0x1f (unit
// separator) cannot appear in a decimal token, so joining on it cannot
// collide two distinct assignments into the same key.
func (a Assignment) Key() string {
	const sep = "\x1f"
	out := ""
	for i, tok := range a {
		if i > 0 {
			out += sep
		}
		out += tok
	}
	return out
}

// RVDescriptor describes one random variable's distribution, opaque to
// the driver — only the sampler and instantiator need to understand it.
type RVDescriptor struct {
	Name string
	Spec string
}

// Preprocessor turns an annotated probabilistic model into a fixed-portion
// template plus the list of random variables it declares.
type Preprocessor interface {
	Preprocess(ctx context.Context, modelPath string) (template string, rvs []RVDescriptor, err error)
}

// Sampler draws one concrete value per descriptor.
type Sampler interface {
	Sample(ctx context.Context, rvs []RVDescriptor) (Assignment, error)
}

// Instantiator splices an assignment into the fixed template, producing a
// solver-ready file namespaced by workerID to avoid collisions between
// concurrent workers.
type Instantiator interface {
	Instantiate(ctx context.Context, template string, assignment Assignment, workerID int) (path string, err error)
}

// Solver invokes the delta-decision procedure on a worker-specific model
// file and returns its sat/unsat verdict.
type Solver interface {
	Decide(ctx context.Context, workerModel string, workerID int) (Verdict, error)
}

// RNGPort provides a deterministic, injectable bit source. It exists so
// the Lai test's tie-break can be seeded in tests instead of drawing from
// a wall-clock-seeded global generator.
type RNGPort interface {
	// Float64 returns a pseudo-random value in [0, 1).
	Float64() float64
}
