package integrators

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (Euler) Step(osc Oscillator, x, v, dt float64) (float64, float64) {
	a := osc.Acceleration(x, v)
	return x + v*dt, v + a*dt
}
