package driver

import (
	"bytes"
	"context"
	"runtime"
	"testing"

	"github.com/terminiter/sreach/domain/seqtest"
	"github.com/terminiter/sreach/internal/cache"
	"github.com/terminiter/sreach/internal/errors"
	"github.com/terminiter/sreach/internal/testkit"
	"github.com/terminiter/sreach/ports"
)

func TestDriverRejectsUnsatisfiableParallelism(t *testing.T) {
	deps := Deps{
		Sampler:      testkit.NewQueueSampler(ports.Assignment{"1"}),
		Instantiator: &testkit.NoopInstantiator{},
		Solver:       &testkit.VerdictBySum{},
		Cache:        cache.New(),
	}
	var out bytes.Buffer
	d := New(deps, nil, runtime.NumCPU()+1000, &out)

	err := d.Run(context.Background())
	if err == nil {
		t.Fatal("expected host error for an unsatisfiable worker count")
	}
	if errors.Code(err) != errors.CodeHostError {
		t.Fatalf("expected CodeHostError, got %s", errors.Code(err))
	}
}

func TestDriverRunsUntilTestsTerminate(t *testing.T) {
	const workers = 4

	assignments := make([]ports.Assignment, 0, workers)
	for i := 0; i < workers; i++ {
		assignments = append(assignments, ports.Assignment{"1", "2"})
	}

	solver := &testkit.VerdictBySum{}
	deps := Deps{
		Sampler:      testkit.NewQueueSampler(assignments...),
		Instantiator: &testkit.NoopInstantiator{},
		Solver:       solver,
		Cache:        cache.New(),
		Template:     "template",
		RVs:          []ports.RVDescriptor{{Name: "x"}, {Name: "y"}},
	}

	nsam, err := seqtest.NewNSAM("NSAM 8", 8)
	if err != nil {
		t.Fatalf("NewNSAM: %v", err)
	}

	var out bytes.Buffer
	d := New(deps, []seqtest.Test{nsam}, workers, &out)

	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !nsam.IsDone() {
		t.Fatal("expected NSAM test to be done")
	}
	if out.Len() == 0 {
		t.Fatal("expected a printed result line")
	}

	// Every worker sampled the same assignment every batch, so the cache
	// should dedupe all solver invocations to exactly one.
	if calls := solver.CallCount(); calls != 1 {
		t.Fatalf("expected exactly 1 solver invocation across all workers, got %d", calls)
	}
}

func TestDriverOvershootsCounterByWorkerCount(t *testing.T) {
	const workers = 3

	assignments := []ports.Assignment{{"a"}, {"b"}, {"c"}}
	deps := Deps{
		Sampler:      testkit.NewQueueSampler(assignments...),
		Instantiator: &testkit.NoopInstantiator{},
		Solver:       &testkit.VerdictBySum{},
		Cache:        cache.New(),
		Template:     "template",
		RVs:          []ports.RVDescriptor{{Name: "x"}},
	}

	nsam, err := seqtest.NewNSAM("NSAM 4", 4) // not a multiple of workers
	if err != nil {
		t.Fatalf("NewNSAM: %v", err)
	}

	var out bytes.Buffer
	d := New(deps, []seqtest.Test{nsam}, workers, &out)
	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	counters := d.Counters()
	if counters.TotalSamples%uint64(workers) != 0 {
		t.Fatalf("expected total_samples to be a multiple of W at the barrier boundary, got %d", counters.TotalSamples)
	}
	if counters.TotalSamples < 4 {
		t.Fatalf("expected at least 4 samples, got %d", counters.TotalSamples)
	}
}
