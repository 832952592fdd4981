package viz

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/springrk/internal/frame"
)

// FrameMsg is delivered by the tick a Host schedules.
type FrameMsg time.Time

type pending struct {
	h  frame.Handle
	cb frame.Callback
}

// Host is a frame scheduler driven by Bubble Tea. Callbacks queue up until
// the model passes the next FrameMsg to Fire. Host is not safe for use
// outside the program goroutine.
type Host struct {
	clock    frame.Clock
	interval time.Duration
	next     frame.Handle
	queue    []pending
	ticking  bool
}

// NewHost returns a host ticking at fps. A nil clock uses the system clock.
func NewHost(fps int, clock frame.Clock) *Host {
	if clock == nil {
		clock = frame.NewSystemClock()
	}
	return &Host{clock: clock, interval: frame.Interval(fps)}
}

func (h *Host) Now() float64 { return h.clock.Now() }

func (h *Host) RequestFrame(cb frame.Callback) frame.Handle {
	h.next++
	h.queue = append(h.queue, pending{h: h.next, cb: cb})
	return h.next
}

func (h *Host) CancelFrame(handle frame.Handle) {
	for i, p := range h.queue {
		if p.h == handle {
			h.queue = append(h.queue[:i], h.queue[i+1:]...)
			return
		}
	}
}

// Pending reports how many callbacks wait for the next frame.
func (h *Host) Pending() int { return len(h.queue) }

// Tick returns the command for the next frame, or nil when nothing is
// pending or a tick is already in flight.
func (h *Host) Tick() tea.Cmd {
	if h.ticking || len(h.queue) == 0 {
		return nil
	}
	h.ticking = true
	return tea.Tick(h.interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// Fire runs the callbacks queued before the call and returns how many ran.
func (h *Host) Fire() int {
	h.ticking = false
	batch := h.queue
	h.queue = nil
	now := h.clock.Now()
	for _, p := range batch {
		p.cb(now)
	}
	return len(batch)
}
