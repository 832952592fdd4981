package frame

import (
	"context"
	"sync"
	"time"
)

// Loop is a real-time host. Callbacks run on the goroutine calling Run.
type Loop struct {
	mu       sync.Mutex
	interval time.Duration
	clock    *SystemClock
	next     Handle
	queue    []pending
}

func NewLoop(fps int) *Loop {
	return &Loop{
		interval: Interval(fps),
		clock:    NewSystemClock(),
	}
}

// Clock returns the clock whose timestamps the loop passes to callbacks.
func (l *Loop) Clock() *SystemClock { return l.clock }

func (l *Loop) RequestFrame(cb Callback) Handle {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.next++
	l.queue = append(l.queue, pending{h: l.next, cb: cb})
	return l.next
}

func (l *Loop) CancelFrame(h Handle) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, p := range l.queue {
		if p.h == h {
			l.queue = append(l.queue[:i], l.queue[i+1:]...)
			return
		}
	}
}

func (l *Loop) take() []pending {
	l.mu.Lock()
	defer l.mu.Unlock()
	batch := l.queue
	l.queue = nil
	return batch
}

func (l *Loop) idle() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue) == 0
}

// Run fires pending callbacks once per frame until none remain or ctx is
// done. It returns the number of frames run and ctx.Err() on cancellation.
func (l *Loop) Run(ctx context.Context) (int, error) {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	frames := 0
	for !l.idle() {
		select {
		case <-ctx.Done():
			return frames, ctx.Err()
		case <-ticker.C:
		}

		ts := l.clock.Now()
		for _, p := range l.take() {
			p.cb(ts)
		}
		frames++
	}
	return frames, nil
}
