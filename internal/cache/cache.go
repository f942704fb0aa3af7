// Package cache implements the ObservationCache: a write-once-per-key map
// from an Assignment to the Verdict the solver produced for it, shared by
// every worker in the driver's pool.
package cache

import (
	"sync"

	"github.com/terminiter/sreach/ports"
)

// ObservationCache is safe for concurrent use. A duplicate write for a key
// that already holds a value is silently dropped rather than overwritten —
// per spec, verdicts are a pure function of the assignment, so two workers
// racing to solve the same assignment must agree, and the first writer
// wins.
type ObservationCache struct {
	mu   sync.Mutex
	data map[string]ports.Verdict
}

// New returns an empty cache.
func New() *ObservationCache {
	return &ObservationCache{data: make(map[string]ports.Verdict)}
}

// Lookup returns the cached verdict for assignment, if any.
func (c *ObservationCache) Lookup(assignment ports.Assignment) (ports.Verdict, bool) {
	key := assignment.Key()
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok
}

// Store records verdict for assignment if no value is already present.
// Returns the verdict that ends up recorded: either the one just stored, or
// the one an earlier writer already recorded for the same key.
func (c *ObservationCache) Store(assignment ports.Assignment, verdict ports.Verdict) ports.Verdict {
	key := assignment.Key()
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.data[key]; ok {
		return existing
	}
	c.data[key] = verdict
	return verdict
}

// Len returns the number of distinct assignments recorded so far.
func (c *ObservationCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}
