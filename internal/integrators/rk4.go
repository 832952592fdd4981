package integrators

// RK4 is the classical fourth-order Runge-Kutta method applied to the pair
// x' = v, v' = a(x, v).
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (RK4) Step(osc Oscillator, x, v, dt float64) (float64, float64) {
	k1v := osc.Acceleration(x, v) * dt
	k1x := v * dt

	k2v := osc.Acceleration(x+0.5*k1x, v+0.5*k1v) * dt
	k2x := (v + 0.5*k1v) * dt

	k3v := osc.Acceleration(x+0.5*k2x, v+0.5*k2v) * dt
	k3x := (v + 0.5*k2v) * dt

	k4v := osc.Acceleration(x+k3x, v+k3v) * dt
	k4x := (v + k3v) * dt

	v += (k1v + 2*k2v + 2*k3v + k4v) / 6
	x += (k1x + 2*k2x + 2*k3x + k4x) / 6
	return x, v
}
