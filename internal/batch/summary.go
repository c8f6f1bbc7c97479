package batch

import (
	"sync"
	"time"

	"snapsort/internal/outcome"
)

// Summary is the result of one batch.
type Summary struct {
	Discovered int64
	Processed  int64
	Elapsed    time.Duration
	ByStatus   map[outcome.Status]int64
	ByReason   map[outcome.Reason]int64
}

// Count returns the number of files that ended in status.
func (s Summary) Count(status outcome.Status) int64 {
	return s.ByStatus[status]
}

type tally struct {
	mu       sync.Mutex
	byStatus map[outcome.Status]int64
	byReason map[outcome.Reason]int64
}

func newTally() *tally {
	return &tally{
		byStatus: make(map[outcome.Status]int64),
		byReason: make(map[outcome.Reason]int64),
	}
}

func (t *tally) add(r outcome.Result) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.byStatus[r.Status]++
	if r.Reason != outcome.ReasonNone {
		t.byReason[r.Reason]++
	}
}
