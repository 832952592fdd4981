package spring

import "math"

// CriticalDamping returns the friction that brings the spring to rest as
// fast as possible without oscillating.
func (s *Spring) CriticalDamping() float64 {
	return 2 * math.Sqrt(s.mass*s.tension)
}

// SpringForce applies Hooke's law to a displacement from the target.
func (s *Spring) SpringForce(distance float64) float64 {
	return -s.tension * distance
}

// DampingForce opposes velocity in proportion to friction.
func (s *Spring) DampingForce(velocity float64) float64 {
	return -s.friction * velocity
}

// Acceleration makes Spring an integrators.Oscillator pulled toward its
// current target.
func (s *Spring) Acceleration(position, velocity float64) float64 {
	distance := position - s.target
	return (s.SpringForce(distance) + s.DampingForce(velocity)) / s.mass
}

// Energy is the kinetic plus potential energy of the current state.
func (s *Spring) Energy() float64 {
	distance := s.value - s.target
	kinetic := 0.5 * s.mass * s.velocity * s.velocity
	potential := 0.5 * s.tension * distance * distance
	return kinetic + potential
}

// Update advances the spring by dt seconds with one RK4 step and reports
// whether its energy fell below the precision threshold. It does not touch
// the animation state, so it can be used to step a spring by hand.
func (s *Spring) Update(dt float64) bool {
	s.value, s.velocity = s.integ.Step(s, s.value, s.velocity, dt)
	return s.Energy() < s.precision
}
