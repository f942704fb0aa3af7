// Package testkit provides deterministic fakes for the ports interfaces,
// used by driver tests in place of a real sampler, instantiator, solver,
// or random source.
package testkit

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/terminiter/sreach/ports"
)

// FixedRNG returns a fixed sequence of values from Float64, cycling once
// exhausted. Useful for pinning Lai's tie-break in tests.
type FixedRNG struct {
	mu     sync.Mutex
	values []float64
	next   int
}

// NewFixedRNG returns a FixedRNG cycling through values.
func NewFixedRNG(values ...float64) *FixedRNG {
	if len(values) == 0 {
		values = []float64{0.0}
	}
	return &FixedRNG{values: values}
}

func (r *FixedRNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	v := r.values[r.next%len(r.values)]
	r.next++
	return v
}

// QueueSampler hands out assignments from a fixed queue, one per Sample
// call, cycling once exhausted. Driver tests use this to script exactly
// which (assignment) sequence a batch of workers will observe.
type QueueSampler struct {
	mu    sync.Mutex
	queue []ports.Assignment
	next  int
}

func NewQueueSampler(assignments ...ports.Assignment) *QueueSampler {
	return &QueueSampler{queue: assignments}
}

func (s *QueueSampler) Sample(ctx context.Context, rvs []ports.RVDescriptor) (ports.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		return nil, fmt.Errorf("testkit: queue sampler has no assignments queued")
	}
	a := s.queue[s.next%len(s.queue)]
	s.next++
	return a, nil
}

// NoopInstantiator returns a worker-namespaced path without touching the
// filesystem; it records every call it receives for assertions. The
// returned path encodes the assignment's tokens after an underscore (e.g.
// "worker-2_1,2.model") so a solver fake like VerdictBySum can recover the
// assignment from workerModel alone, the same information a real
// ports.Solver.Decide would have to work from a real instantiated file.
type NoopInstantiator struct {
	mu    sync.Mutex
	Calls []ports.Assignment
}

func (i *NoopInstantiator) Instantiate(ctx context.Context, template string, assignment ports.Assignment, workerID int) (string, error) {
	i.mu.Lock()
	i.Calls = append(i.Calls, assignment)
	i.mu.Unlock()
	return fmt.Sprintf("worker-%d_%s.model", workerID, strings.Join(assignment, ",")), nil
}

// VerdictBySum decides Sat/Unsat for an assignment by summing its tokens as
// integers and comparing to Threshold: Sat if the sum is strictly greater
// than Threshold, Unsat otherwise (so the zero-value Threshold makes any
// assignment with a positive token sum Sat, the common case driver tests
// want). It recovers the assignment from workerModel, which NoopInstantiator
// encodes as "worker-<id>_<tok,tok,...>.model"; tokens that don't parse as
// integers contribute 0. It also counts invocations so tests can assert the
// cache actually deduplicated repeated assignments.
type VerdictBySum struct {
	mu        sync.Mutex
	Threshold int
	Calls     int
}

func (s *VerdictBySum) Decide(ctx context.Context, workerModel string, workerID int) (ports.Verdict, error) {
	s.mu.Lock()
	s.Calls++
	s.mu.Unlock()

	if sumModelTokens(workerModel) > s.Threshold {
		return ports.Sat, nil
	}
	return ports.Unsat, nil
}

// sumModelTokens parses the "<tok,tok,...>" suffix NoopInstantiator encodes
// after the first underscore in its returned path and sums the tokens that
// parse as integers.
func sumModelTokens(workerModel string) int {
	name := strings.TrimSuffix(filepath.Base(workerModel), filepath.Ext(workerModel))
	idx := strings.IndexByte(name, '_')
	if idx < 0 {
		return 0
	}
	sum := 0
	for _, tok := range strings.Split(name[idx+1:], ",") {
		if v, err := strconv.Atoi(tok); err == nil {
			sum += v
		}
	}
	return sum
}

// CallCount returns how many times Decide has been invoked.
func (s *VerdictBySum) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Calls
}
