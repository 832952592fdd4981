package frame

type pending struct {
	h  Handle
	cb Callback
}

// Manual is a deterministic host: its clock only moves when Advance is
// called, and each Advance fires the callbacks that were pending before it.
type Manual struct {
	now   float64
	next  Handle
	queue []pending
	fired int
}

func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) Now() float64 { return m.now }

func (m *Manual) RequestFrame(cb Callback) Handle {
	m.next++
	m.queue = append(m.queue, pending{h: m.next, cb: cb})
	return m.next
}

func (m *Manual) CancelFrame(h Handle) {
	for i, p := range m.queue {
		if p.h == h {
			m.queue = append(m.queue[:i], m.queue[i+1:]...)
			return
		}
	}
}

// Pending reports how many callbacks are waiting for the next frame.
func (m *Manual) Pending() int { return len(m.queue) }

// Fired reports how many callbacks have run so far.
func (m *Manual) Fired() int { return m.fired }

// Advance moves the clock forward by ms and runs one frame. Callbacks
// registered while the frame runs wait for the next Advance.
func (m *Manual) Advance(ms float64) int {
	m.now += ms
	batch := m.queue
	m.queue = nil
	for _, p := range batch {
		p.cb(m.now)
		m.fired++
	}
	return len(batch)
}

// RunUntilIdle advances frame by frame until nothing is pending or maxFrames
// frames have run. It returns the number of frames advanced.
func (m *Manual) RunUntilIdle(frameMs float64, maxFrames int) int {
	n := 0
	for len(m.queue) > 0 && n < maxFrames {
		m.Advance(frameMs)
		n++
	}
	return n
}
