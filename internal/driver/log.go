package driver

import (
	"fmt"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/terminiter/sreach/ports"
)

// resultEntry is one worker trial's outcome as appended to the batch log by
// the coordinator.
type resultEntry struct {
	Assignment ports.Assignment
	Verdict    ports.Verdict
}

// resultsLog accumulates every trial outcome across the run, plus the
// wall-clock duration of each batch for reporting. It is owned by the
// coordinator and never touched by workers directly.
type resultsLog struct {
	entries        []resultEntry
	batchDurations []float64 // seconds, one per completed batch
}

func newResultsLog() *resultsLog {
	return &resultsLog{}
}

func (l *resultsLog) appendBatch(batch []resultEntry, duration time.Duration) {
	l.entries = append(l.entries, batch...)
	l.batchDurations = append(l.batchDurations, duration.Seconds())
}

// Summary returns a human-readable line describing batch timing: mean and
// population standard deviation across all completed batches. Returns an
// empty summary string if fewer than two batches have run, since a
// standard deviation over a single sample isn't meaningful.
func (l *resultsLog) Summary() (string, error) {
	if len(l.batchDurations) < 2 {
		return "", nil
	}
	mean, err := stats.Mean(l.batchDurations)
	if err != nil {
		return "", fmt.Errorf("compute batch duration mean: %w", err)
	}
	stddev, err := stats.StandardDeviation(l.batchDurations)
	if err != nil {
		return "", fmt.Errorf("compute batch duration stddev: %w", err)
	}
	return fmt.Sprintf("batches = %d, mean batch time = %.6fs, stddev = %.6fs",
		len(l.batchDurations), mean, stddev), nil
}
