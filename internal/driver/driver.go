// Package driver runs the parallel batch loop described by the statistical
// tests: a fixed pool of workers repeatedly sample, check the observation
// cache, invoke the solver on a cache miss, and rendezvous at a pair of
// barriers so one worker per batch — the coordinator — can advance every
// test still pending.
package driver

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/terminiter/sreach/domain/seqtest"
	"github.com/terminiter/sreach/internal/cache"
	"github.com/terminiter/sreach/internal/errors"
	"github.com/terminiter/sreach/ports"
)

// Deps bundles the external collaborators a Driver needs, all of them
// interfaces so tests can substitute fakes (see internal/testkit).
type Deps struct {
	Sampler      ports.Sampler
	Instantiator ports.Instantiator
	Solver       ports.Solver
	Cache        *cache.ObservationCache
	Template     string
	RVs          []ports.RVDescriptor
}

// Driver owns the test list, the worker pool size, and the shared counters;
// everything else flows through Deps.
type Driver struct {
	deps    Deps
	tests   []seqtest.Test
	workers int
	out     io.Writer

	counters GlobalCounters
	log      *resultsLog

	batchStart time.Time // start of the batch in progress; advanced by each coordinator step

	b1 *barrier // batch barrier: all workers finish a trial
	b2 *barrier // coordinator barrier: coordinator finishes its step
}

// New constructs a Driver with workers worker goroutines and the given test
// list, which is run to completion in registration order.
func New(deps Deps, tests []seqtest.Test, workers int, out io.Writer) *Driver {
	return &Driver{
		deps:    deps,
		tests:   tests,
		workers: workers,
		out:     out,
		log:     newResultsLog(),
		b1:      newBarrier(workers),
		b2:      newBarrier(workers),
	}
}

// Run drives every worker to completion. It returns once every test in the
// list has reached a terminal outcome, or the first worker error occurs —
// every failure in this system is fatal, so Run does not retry.
func (d *Driver) Run(ctx context.Context) error {
	if d.workers > runtime.NumCPU() {
		return errors.New(errors.CodeHostError,
			fmt.Sprintf("requested %d workers but host reports only %d logical CPUs available", d.workers, runtime.NumCPU()))
	}

	slots := make([]workerSlot, d.workers)
	allDone := false
	d.batchStart = time.Now()

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < d.workers; w++ {
		workerID := w
		g.Go(func() error {
			return d.workerLoop(gctx, workerID, slots, &allDone)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return nil
}

// workerSlot is one worker's pending trial result, written by the worker
// before the batch barrier and read only by that round's coordinator.
type workerSlot struct {
	assignment ports.Assignment
	verdict    ports.Verdict
}

func (d *Driver) workerLoop(ctx context.Context, workerID int, slots []workerSlot, allDone *bool) error {
	for {
		assignment, err := d.deps.Sampler.Sample(ctx, d.deps.RVs)
		if err != nil {
			return errors.Wrapf(err, "worker %d: sample random variables", workerID)
		}

		verdict, ok := d.deps.Cache.Lookup(assignment)
		if !ok {
			modelPath, err := d.deps.Instantiator.Instantiate(ctx, d.deps.Template, assignment, workerID)
			if err != nil {
				return errors.Wrapf(err, "worker %d: instantiate model", workerID)
			}
			verdict, err = d.deps.Solver.Decide(ctx, modelPath, workerID)
			if err != nil {
				return errors.Wrapf(err, "worker %d: solver decision", workerID)
			}
			verdict = d.deps.Cache.Store(assignment, verdict)
		}
		slots[workerID] = workerSlot{assignment: assignment, verdict: verdict}

		isCoordinator, err := d.b1.Wait(ctx)
		if err != nil {
			return errors.WithCode(errors.CodeInternal, errors.Wrapf(err, "worker %d: batch barrier", workerID))
		}

		if isCoordinator {
			if err := d.coordinatorStep(slots, allDone); err != nil {
				return err
			}
		}

		if _, err := d.b2.Wait(ctx); err != nil {
			return errors.WithCode(errors.CodeInternal, errors.Wrapf(err, "worker %d: coordinator barrier", workerID))
		}

		if *allDone {
			return nil
		}
	}
}

// coordinatorStep runs once per batch, on the barrier's last arriver, while
// every other worker waits at the second barrier. It is the only place
// GlobalCounters, the results log, and test state are mutated.
func (d *Driver) coordinatorStep(slots []workerSlot, allDone *bool) error {
	batch := make([]resultEntry, len(slots))
	var batchSuccesses uint64
	for i, slot := range slots {
		batch[i] = resultEntry{Assignment: slot.assignment, Verdict: slot.verdict}
		if slot.verdict == ports.Sat {
			batchSuccesses++
		}
	}

	d.counters.Add(uint64(len(slots)), batchSuccesses)
	now := time.Now()
	d.log.appendBatch(batch, now.Sub(d.batchStart))
	d.batchStart = now

	done := true
	for _, test := range d.tests {
		if test.IsDone() {
			continue
		}
		test.Observe(d.counters.TotalSamples, d.counters.SatSamples)
		if test.IsDone() {
			if err := test.PrintResult(d.out); err != nil {
				return errors.Wrapf(err, "print result for %s", test.Kind())
			}
		} else {
			done = false
		}
	}
	*allDone = done
	return nil
}

// Counters returns a snapshot of the driver's running totals. Safe to call
// only after Run has returned.
func (d *Driver) Counters() GlobalCounters {
	return d.counters
}

// PrintSummary writes the batch-timing summary line, if enough batches ran
// to make one meaningful.
func (d *Driver) PrintSummary(w io.Writer) error {
	summary, err := d.log.Summary()
	if err != nil {
		return err
	}
	if summary == "" {
		return nil
	}
	_, err = fmt.Fprintln(w, summary)
	return err
}
