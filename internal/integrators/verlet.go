package integrators

// Verlet is velocity Verlet. The second acceleration sample uses the old
// velocity, so damping is only first-order accurate.
type Verlet struct{}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (Verlet) Step(osc Oscillator, x, v, dt float64) (float64, float64) {
	a := osc.Acceleration(x, v)
	nx := x + v*dt + 0.5*a*dt*dt
	aNew := osc.Acceleration(nx, v+a*dt)
	return nx, v + 0.5*(a+aNew)*dt
}

// Leapfrog is kick-drift-kick: half velocity step, full position step,
// half velocity step.
type Leapfrog struct{}

func NewLeapfrog() *Leapfrog {
	return &Leapfrog{}
}

func (Leapfrog) Step(osc Oscillator, x, v, dt float64) (float64, float64) {
	halfDt := 0.5 * dt
	vHalf := v + osc.Acceleration(x, v)*halfDt
	nx := x + vHalf*dt
	return nx, vHalf + osc.Acceleration(nx, vHalf)*halfDt
}
