package driver

// GlobalCounters tracks the driver-wide sample tally. Mutated only by the
// coordinator between barriers (see barrier.go); every other goroutine only
// ever reads a snapshot taken after a barrier round, which is
// happens-before safe without its own lock.
type GlobalCounters struct {
	TotalSamples uint64
	SatSamples   uint64
}

// Add folds one batch's tally into the running totals.
func (c *GlobalCounters) Add(batchSamples, batchSuccesses uint64) {
	c.TotalSamples += batchSamples
	c.SatSamples += batchSuccesses
}
