package frame

import "time"

// Handle identifies a pending frame request. The zero Handle is never issued
// by a real scheduler.
type Handle uint64

// Callback receives the host timestamp in milliseconds.
type Callback func(ts float64)

type Scheduler interface {
	RequestFrame(cb Callback) Handle
	CancelFrame(h Handle)
}

// Clock reports time in milliseconds.
type Clock interface {
	Now() float64
}

// SystemClock measures milliseconds since it was created using the
// monotonic clock reading of time.Time.
type SystemClock struct {
	start time.Time
}

func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

func (c *SystemClock) Now() float64 {
	return float64(time.Since(c.start).Nanoseconds()) / 1e6
}

// Nop never fires the callbacks it is given.
type Nop struct{}

func (Nop) RequestFrame(Callback) Handle { return 0 }
func (Nop) CancelFrame(Handle)           {}

// Interval returns the frame period for fps, defaulting to 60 fps.
func Interval(fps int) time.Duration {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return time.Second / time.Duration(fps)
}

const DefaultFPS = 60
