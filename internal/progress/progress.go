package progress

import (
	"sync"
	"time"
)

// DefaultInterval is the refresh period when none is configured.
const DefaultInterval = 100 * time.Millisecond

// Source exposes the counters being reported.
type Source interface {
	Discovered() int64
	Processed() int64
}

// Renderer draws one progress state. Calls come from a single goroutine.
type Renderer interface {
	Render(done, total int64) error
	Clear() error
}

// Reporter redraws progress on a fixed interval until stopped.
type Reporter struct {
	Interval time.Duration
	Source   Source
	Renderer Renderer

	once sync.Once
	stop chan struct{}
	done chan struct{}
}

// NewReporter builds a reporter; a non-positive interval uses DefaultInterval.
func NewReporter(interval time.Duration, source Source, renderer Renderer) *Reporter {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Reporter{Interval: interval, Source: source, Renderer: renderer}
}

// Start launches the reporting goroutine.
func (r *Reporter) Start() {
	r.stop = make(chan struct{})
	r.done = make(chan struct{})
	go r.loop()
}

// Stop ends reporting, waits for the goroutine to exit, and clears the
// rendered line. Safe to call more than once.
func (r *Reporter) Stop() {
	if r.stop == nil {
		return
	}
	r.once.Do(func() {
		close(r.stop)
		<-r.done
		_ = r.Renderer.Clear()
	})
}

func (r *Reporter) loop() {
	defer close(r.done)
	ticker := time.NewTicker(r.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			r.tick()
		}
	}
}

func (r *Reporter) tick() {
	total := r.Source.Discovered()
	if total <= 0 {
		return
	}
	done := min(r.Source.Processed(), total)
	_ = r.Renderer.Render(done, total)
}
