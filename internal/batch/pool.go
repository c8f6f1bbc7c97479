package batch

import (
	"context"
	"iter"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"snapsort/internal/logging"
	"snapsort/internal/outcome"
	"snapsort/internal/scan"
)

// ProcessFunc handles one file and reports how it ended. It must not panic
// on per-file failures; those belong in the Result.
type ProcessFunc func(ctx context.Context, file scan.MediaFile) outcome.Result

// Pool runs ProcessFunc over a sequence of files with a fixed number of
// workers.
type Pool struct {
	Workers int
	Process ProcessFunc
	Logger  *slog.Logger

	discovered Counter
	processed  Counter
}

// NewPool builds a pool. workers below 1 means one per CPU.
func NewPool(workers int, process ProcessFunc, logger *slog.Logger) *Pool {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pool{Workers: workers, Process: process, Logger: logger}
}

// Discovered is the number of files submitted so far.
func (p *Pool) Discovered() int64 { return p.discovered.Load() }

// Processed is the number of files finished so far, whatever their outcome.
func (p *Pool) Processed() int64 { return p.processed.Load() }

// Run submits every file from files and returns once all workers are done.
// Workers receive files in the order files yields them.
// Cancelling ctx stops submission; files already handed to a worker still
// run to completion because processing does not observe the cancellation.
func (p *Pool) Run(ctx context.Context, files iter.Seq[scan.MediaFile]) Summary {
	started := time.Now()
	workers := max(p.Workers, 1)

	jobs := make(chan scan.MediaFile, workers)
	counts := newTally()
	work := context.WithoutCancel(ctx)

	var wg sync.WaitGroup
	for range workers {
		wg.Go(func() {
			for file := range jobs {
				result := p.Process(work, file)
				counts.add(result)
				p.processed.Inc()
			}
		})
	}

submit:
	for file := range files {
		p.discovered.Inc()
		select {
		case jobs <- file:
		case <-ctx.Done():
			// The file was counted but never handed off.
			counts.add(outcome.Result{Source: file.Path, Status: outcome.StatusSkipped})
			p.processed.Inc()
			break submit
		}
	}
	close(jobs)
	wg.Wait()

	if ctx.Err() != nil {
		p.Logger.Warn("submission stopped",
			logging.Int64("discovered", p.Discovered()),
			logging.Error(context.Cause(ctx)),
		)
	}

	return Summary{
		Discovered: p.Discovered(),
		Processed:  p.Processed(),
		Elapsed:    time.Since(started),
		ByStatus:   counts.byStatus,
		ByReason:   counts.byReason,
	}
}
