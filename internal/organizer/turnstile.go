package organizer

import "sync"

// turnstile lets files that share a canonical name plan one at a time in
// discovery order, whatever order their metadata reads finish in.
//
// Every sequence number from 1 up must be reported exactly once. A file is
// queued under its key only after all earlier files have reported, so a
// queue never receives an earlier file behind a later one.
type turnstile struct {
	mu   sync.Mutex
	cond *sync.Cond

	next     int64
	reported map[int64]string
	queues   map[string][]int64
}

func newTurnstile() *turnstile {
	t := &turnstile{
		next:     1,
		reported: make(map[int64]string),
		queues:   make(map[string][]int64),
	}
	t.cond = sync.NewCond(&t.mu)
	return t
}

// Report records the key seq will plan under. An empty key means the file
// failed before planning and takes no turn.
func (t *turnstile) Report(seq int64, key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.reported[seq] = key
	for {
		k, ok := t.reported[t.next]
		if !ok {
			break
		}
		delete(t.reported, t.next)
		if k != "" {
			t.queues[k] = append(t.queues[k], t.next)
		}
		t.next++
	}
	t.cond.Broadcast()
}

// Wait blocks until seq heads the queue for key. seq must have been
// reported under key.
func (t *turnstile) Wait(seq int64, key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for {
		if q := t.queues[key]; len(q) > 0 && q[0] == seq {
			return
		}
		t.cond.Wait()
	}
}

// Done hands the turn for key to the next queued file.
func (t *turnstile) Done(seq int64, key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	q := t.queues[key]
	if len(q) == 0 || q[0] != seq {
		return
	}
	if len(q) == 1 {
		delete(t.queues, key)
	} else {
		t.queues[key] = q[1:]
	}
	t.cond.Broadcast()
}

func (t *turnstile) pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.reported) + len(t.queues)
}
