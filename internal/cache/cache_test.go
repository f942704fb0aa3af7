package cache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/terminiter/sreach/ports"
)

func TestStoreThenLookup(t *testing.T) {
	c := New()
	a := ports.Assignment{"1.5", "2.0"}

	c.Store(a, ports.Sat)

	v, ok := c.Lookup(a)
	require.True(t, ok, "expected lookup hit after store")
	require.Equal(t, ports.Sat, v)
}

func TestLookupMissOnUnseenAssignment(t *testing.T) {
	c := New()
	if _, ok := c.Lookup(ports.Assignment{"9.9"}); ok {
		t.Fatal("expected miss on empty cache")
	}
}

func TestStoreIsWriteOncePerKey(t *testing.T) {
	c := New()
	a := ports.Assignment{"3.0"}

	first := c.Store(a, ports.Sat)
	second := c.Store(a, ports.Unsat) // a racing writer disagreeing must lose

	if first != ports.Sat || second != ports.Sat {
		t.Fatalf("expected both calls to resolve to the first writer's value, got %v and %v", first, second)
	}
}

func TestConcurrentStoreDedupes(t *testing.T) {
	c := New()
	a := ports.Assignment{"7.0"}

	const workers = 32
	var wg sync.WaitGroup
	results := make([]ports.Verdict, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = c.Store(a, ports.Sat)
		}(i)
	}
	wg.Wait()

	for i, v := range results {
		if v != ports.Sat {
			t.Fatalf("worker %d saw inconsistent verdict %v", i, v)
		}
	}
	if c.Len() != 1 {
		t.Fatalf("expected exactly one distinct key, got %d", c.Len())
	}
}

func TestDistinctAssignmentsDoNotCollide(t *testing.T) {
	c := New()
	c.Store(ports.Assignment{"1", "2"}, ports.Sat)
	c.Store(ports.Assignment{"1,2"}, ports.Unsat)

	v1, _ := c.Lookup(ports.Assignment{"1", "2"})
	v2, _ := c.Lookup(ports.Assignment{"1,2"})
	if v1 == v2 {
		t.Fatalf("expected distinct assignments to map to distinct verdicts, got %v and %v", v1, v2)
	}
}
