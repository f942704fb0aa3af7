package driver

import (
	"context"
	"sync"
)

// barrier is a reusable (cyclic) rendezvous point for exactly n parties,
// built as a sense-reversing turnstile: each round gets a fresh channel
// that the last arriver closes to release everyone else. No library in
// this module's dependency set models a repeated, cancellable barrier —
// x/sync offers a single-use errgroup and a counting semaphore, neither of
// which can be waited on twice — so this is hand-rolled, in the same
// mutex-guarded style the rest of this codebase uses for shared state.
//
// The last party to arrive at a round is that round's coordinator: its
// Wait call returns true, every other party's returns false.
type barrier struct {
	mu      sync.Mutex
	parties int
	count   int
	ch      chan struct{}
}

func newBarrier(parties int) *barrier {
	return &barrier{parties: parties, ch: make(chan struct{})}
}

// Wait blocks until all parties have called Wait for the current round, or
// ctx is canceled. Once any call observes ctx cancellation, the barrier's
// party count is left short for future rounds — callers must treat a
// canceled Wait as "abandon the run", not "retry this round".
func (b *barrier) Wait(ctx context.Context) (isCoordinator bool, err error) {
	b.mu.Lock()
	myCh := b.ch
	b.count++
	if b.count == b.parties {
		b.count = 0
		b.ch = make(chan struct{})
		b.mu.Unlock()
		close(myCh)
		return true, nil
	}
	b.mu.Unlock()

	select {
	case <-myCh:
		return false, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}
