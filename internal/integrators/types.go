package integrators

// Oscillator is a one-dimensional second-order system: it reports the
// acceleration at a given position and velocity.
type Oscillator interface {
	Acceleration(position, velocity float64) float64
}

// Stepper advances (position, velocity) by dt seconds.
type Stepper interface {
	Step(osc Oscillator, x, v, dt float64) (float64, float64)
}
