package spring

import (
	"math"

	"go.uber.org/zap"
)

// Start moves the spring toward target, calling onFrame with every new
// value. If the spring is already animating only the target and the frame
// callback change; otherwise onStart fires and the first step runs
// immediately.
func (s *Spring) Start(target float64, onFrame Callback) {
	s.target = target
	s.onFrame = onFrame
	if s.animating {
		return
	}

	s.animating = true
	s.frames = 0
	s.lastTime = s.clock.Now()
	s.log.Debug("spring started",
		zap.Float64("value", s.value),
		zap.Float64("target", target),
		zap.Float64("velocity", s.velocity),
	)

	gen := s.gen
	if s.onStart != nil {
		s.onStart(s.value)
	}
	if gen != s.gen {
		// onStart stopped or restarted the spring.
		return
	}
	s.Animate()
}

// Animate is the per-frame tick. It is a no-op unless the spring is
// animating.
func (s *Spring) Animate() {
	if !s.animating {
		return
	}

	now := s.clock.Now()
	dt := (now - s.lastTime) / 1000
	s.lastTime = now
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		dt = 0
	}
	if s.maxDelta > 0 && dt > s.maxDelta {
		dt = s.maxDelta
	}

	settled := s.Update(dt)
	s.frames++

	gen := s.gen
	s.emit(s.value)
	if gen != s.gen || !s.animating {
		return
	}

	if !settled {
		s.requestFrame()
		return
	}

	s.velocity = 0
	s.value = s.target
	s.animating = false
	s.lastTime = 0
	final := s.value
	s.log.Debug("spring settled",
		zap.Float64("value", final),
		zap.Int("frames", s.frames),
	)

	s.emit(final)
	if s.onEnd != nil {
		s.onEnd(final)
	}
}

// SetValue overwrites the current value, and zeroes the velocity when
// resetVelocity is set. It does not start or stop the animation.
func (s *Spring) SetValue(value float64, resetVelocity bool) {
	s.value = value
	if resetVelocity {
		s.velocity = 0
	}
}

// Stop halts the animation where it is. onEnd is not called.
func (s *Spring) Stop() {
	if s.animating {
		s.log.Debug("spring stopped",
			zap.Float64("value", s.value),
			zap.Float64("velocity", s.velocity),
		)
	}
	s.animating = false
	s.lastTime = 0
	s.gen++
	if s.scheduled {
		s.sched.CancelFrame(s.handle)
		s.scheduled = false
	}
}

func (s *Spring) emit(v float64) {
	if s.onFrame != nil {
		s.onFrame(v)
	}
	if s.onUpdate != nil {
		s.onUpdate(v)
	}
}

func (s *Spring) requestFrame() {
	if s.scheduled {
		return
	}
	gen := s.gen
	s.scheduled = true
	s.handle = s.sched.RequestFrame(func(float64) {
		if gen != s.gen {
			return
		}
		s.scheduled = false
		s.Animate()
	})
}
