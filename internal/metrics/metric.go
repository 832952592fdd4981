package metrics

import "github.com/san-kum/springrk/internal/spring"

// Metric accumulates a scalar over the frames of one animation. t is the
// animation time in seconds.
type Metric interface {
	Name() string
	Observe(s spring.State, t float64)
	Value() float64
	Reset()
}

// Defaults returns a fresh set of the metrics recorded for every run.
func Defaults() []Metric {
	return []Metric{
		NewPeakEnergy(),
		NewEnergyGain(),
		NewOvershoot(),
		NewSettleTime(),
	}
}

func energy(s spring.State) float64 {
	d := s.Value - s.Target
	return 0.5*s.Mass*s.Velocity*s.Velocity + 0.5*s.Tension*d*d
}
