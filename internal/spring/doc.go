// Package spring animates a single value with a damped harmonic oscillator.
//
// A [Spring] owns its physical state (mass, tension, friction, position,
// velocity and target) and advances it with one RK4 step per frame. Frames
// are requested from an injected [frame.Scheduler] and timed with an
// injected [frame.Clock], so the same spring runs under a real-time loop, a
// terminal UI or a deterministic test host.
//
// # Example
//
//	loop := frame.NewLoop(60)
//	s := spring.New(
//	    spring.WithScheduler(loop),
//	    spring.WithClock(loop.Clock()),
//	    spring.OnEnd(func(v float64) { fmt.Println("settled at", v) }),
//	)
//	s.Start(100, func(v float64) { render(v) })
//	loop.Run(ctx)
//
// # Settling
//
// Motion stops once kinetic plus potential energy drops below the precision
// threshold. The spring then snaps exactly onto its target with zero
// velocity.
//
// # Thread Safety
//
// Spring instances are NOT thread-safe. All calls, including the frame
// callbacks, must happen on the host's goroutine.
package spring
