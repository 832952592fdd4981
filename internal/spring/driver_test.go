package spring_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/springrk/internal/frame"
	"github.com/san-kum/springrk/internal/spring"
)

const frameMs = 1000.0 / 60

// leakyHost ignores cancellation, so stale callbacks still fire.
type leakyHost struct {
	*frame.Manual
}

func (leakyHost) CancelFrame(frame.Handle) {}

var _ = Describe("Spring driver", func() {
	var (
		host    *frame.Manual
		starts  []float64
		updates []float64
		ends    []float64
	)

	newSpring := func(opts ...spring.Option) *spring.Spring {
		base := []spring.Option{
			spring.WithScheduler(host),
			spring.WithClock(host),
			spring.OnStart(func(v float64) { starts = append(starts, v) }),
			spring.OnUpdate(func(v float64) { updates = append(updates, v) }),
			spring.OnEnd(func(v float64) { ends = append(ends, v) }),
		}
		return spring.New(append(base, opts...)...)
	}

	BeforeEach(func() {
		host = frame.NewManual()
		starts, updates, ends = nil, nil, nil
	})

	Describe("Start", func() {
		It("fires onStart and takes the first step synchronously", func() {
			s := newSpring(spring.WithInitialValue(3))
			var frames []float64

			s.Start(10, func(v float64) { frames = append(frames, v) })

			Expect(starts).To(Equal([]float64{3}))
			Expect(frames).To(HaveLen(1))
			Expect(updates).To(Equal(frames))
			Expect(s.IsAnimating()).To(BeTrue())
			Expect(s.Target()).To(Equal(10.0))
			Expect(host.Pending()).To(Equal(1))
		})

		It("only retargets when already animating", func() {
			s := newSpring()
			s.Start(10, nil)
			host.Advance(frameMs)

			var second []float64
			s.Start(-5, func(v float64) { second = append(second, v) })

			Expect(starts).To(HaveLen(1))
			Expect(s.Target()).To(Equal(-5.0))
			Expect(host.Pending()).To(Equal(1))

			host.Advance(frameMs)
			Expect(second).To(HaveLen(1))
		})

		It("settles immediately when started at rest on the target", func() {
			s := newSpring(spring.WithInitialValue(4))
			s.Start(4, nil)

			Expect(s.IsAnimating()).To(BeFalse())
			Expect(ends).To(Equal([]float64{4}))
			Expect(host.Pending()).To(BeZero())
		})
	})

	Describe("Animate", func() {
		It("drives the value exactly onto the target and ends once", func() {
			s := newSpring()
			var frames []float64
			s.Start(100, func(v float64) { frames = append(frames, v) })

			n := host.RunUntilIdle(frameMs, 1000)

			Expect(n).To(BeNumerically("<", 1000))
			Expect(s.IsAnimating()).To(BeFalse())
			Expect(s.Value()).To(Equal(100.0))
			Expect(s.Velocity()).To(BeZero())
			Expect(ends).To(Equal([]float64{100}))
			Expect(frames[len(frames)-1]).To(Equal(100.0))
			Expect(updates[len(updates)-1]).To(Equal(100.0))
			Expect(s.Frames()).To(Equal(n + 1))
		})

		It("delivers to the frame callback before onUpdate", func() {
			var order []string
			s := newSpring(spring.OnUpdate(func(float64) { order = append(order, "update") }))
			s.Start(1, func(float64) { order = append(order, "frame") })

			Expect(order).To(Equal([]string{"frame", "update"}))
		})

		It("is a no-op while idle", func() {
			s := newSpring(spring.WithInitialValue(2))
			s.Animate()

			Expect(s.Value()).To(Equal(2.0))
			Expect(updates).To(BeEmpty())
		})

		It("treats a clock running backwards as a zero step", func() {
			clock := &stepClock{now: 1000}
			s := spring.New(spring.WithScheduler(host), spring.WithClock(clock))
			s.Start(10, nil)
			clock.now = 1016
			host.Advance(0)
			before := s.Value()
			Expect(before).To(BeNumerically(">", 0))

			clock.now = 500
			host.Advance(0)

			Expect(math.IsNaN(s.Value())).To(BeFalse())
			Expect(s.Value()).To(Equal(before))
		})

		It("clamps long frames to the maximum delta", func() {
			s := newSpring(spring.WithMaxDelta(1.0 / 60))
			twin := spring.New(spring.WithTarget(10))

			s.Start(10, nil)
			host.Advance(5000)
			twin.Update(1.0 / 60)

			Expect(s.Value()).To(BeNumerically("~", twin.Value(), 1e-12))
		})
	})

	Describe("LastTime", func() {
		It("tracks the clock while animating and clears when idle", func() {
			host.Advance(500)
			s := newSpring()
			s.Start(10, nil)
			Expect(s.State().LastTime).To(Equal(500.0))

			host.Advance(frameMs)
			Expect(s.State().LastTime).To(Equal(500 + frameMs))

			s.Stop()
			Expect(s.State().LastTime).To(BeZero())

			s.Start(10, nil)
			host.RunUntilIdle(frameMs, 1000)
			Expect(s.IsAnimating()).To(BeFalse())
			Expect(s.State().LastTime).To(BeZero())
		})
	})

	Describe("Stop", func() {
		It("halts immediately without onEnd and cancels the pending frame", func() {
			s := newSpring()
			s.Start(10, nil)
			host.Advance(frameMs)

			s.Stop()
			value, velocity := s.Value(), s.Velocity()

			Expect(s.IsAnimating()).To(BeFalse())
			Expect(host.Pending()).To(BeZero())

			host.Advance(frameMs)
			Expect(s.Value()).To(Equal(value))
			Expect(s.Velocity()).To(Equal(velocity))
			Expect(velocity).NotTo(BeZero())
			Expect(ends).To(BeEmpty())
		})

		It("ignores stale frames after a restart", func() {
			leaky := leakyHost{host}
			s := spring.New(
				spring.WithScheduler(leaky),
				spring.WithClock(host),
				spring.OnUpdate(func(v float64) { updates = append(updates, v) }),
			)
			s.Start(10, nil)
			s.Stop()
			s.Start(10, nil)
			updates = nil

			host.Advance(frameMs)

			Expect(updates).To(HaveLen(1))
			Expect(host.Pending()).To(Equal(1))
		})

		It("can be called from a frame callback", func() {
			s := newSpring()
			calls := 0
			s.Start(10, func(float64) {
				calls++
				if calls == 2 {
					s.Stop()
				}
			})

			host.RunUntilIdle(frameMs, 100)

			Expect(calls).To(Equal(2))
			Expect(s.IsAnimating()).To(BeFalse())
			Expect(host.Pending()).To(BeZero())
			Expect(ends).To(BeEmpty())
		})
	})

	Describe("re-entrant callbacks", func() {
		It("lets onEnd start a new animation", func() {
			var s *spring.Spring
			legs := 0
			s = newSpring(spring.OnEnd(func(v float64) {
				legs++
				if legs == 1 {
					s.Start(0, nil)
				}
			}))

			s.Start(50, nil)
			host.RunUntilIdle(frameMs, 2000)

			Expect(legs).To(Equal(2))
			Expect(s.Value()).To(Equal(0.0))
			Expect(s.IsAnimating()).To(BeFalse())
		})

		It("stops when onStart stops the spring", func() {
			var s *spring.Spring
			s = newSpring(spring.OnStart(func(float64) { s.Stop() }))
			s.Start(10, nil)

			Expect(s.IsAnimating()).To(BeFalse())
			Expect(updates).To(BeEmpty())
			Expect(host.Pending()).To(BeZero())
		})
	})

	Describe("SetValue", func() {
		It("overwrites value and optionally velocity", func() {
			s := newSpring(spring.WithVelocity(5))

			s.SetValue(10, true)
			Expect(s.Value()).To(Equal(10.0))
			Expect(s.Velocity()).To(BeZero())

			s = newSpring(spring.WithVelocity(5))
			s.SetValue(10, false)
			Expect(s.Velocity()).To(Equal(5.0))
		})

		It("does not change the animation state", func() {
			s := newSpring()
			s.Start(10, nil)
			s.SetValue(20, true)

			Expect(s.IsAnimating()).To(BeTrue())
			host.RunUntilIdle(frameMs, 1000)
			Expect(s.Value()).To(Equal(10.0))
		})
	})

	Describe("presets", func() {
		It("builds from a preset with critical damping", func() {
			s, err := spring.NewWithPreset("gentle")
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Mass()).To(Equal(1.0))
			Expect(s.Tension()).To(Equal(120.0))
			Expect(s.Friction()).To(Equal(2 * math.Sqrt(120)))
		})

		It("keeps preset friction and applies overrides", func() {
			s, err := spring.NewWithPreset("molasses", spring.WithTarget(3))
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Friction()).To(Equal(120.0))
			Expect(s.Target()).To(Equal(3.0))

			s, err = spring.NewWithPreset("gentle", spring.WithTension(300))
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Friction()).To(Equal(s.CriticalDamping()))
		})

		It("fails for unknown presets", func() {
			s, err := spring.NewWithPreset("bouncy")
			Expect(err).To(MatchError(spring.ErrPresetNotFound))
			Expect(err.Error()).To(ContainSubstring("bouncy"))
			Expect(s).To(BeNil())
		})
	})
})

type stepClock struct{ now float64 }

func (c *stepClock) Now() float64 { return c.now }
