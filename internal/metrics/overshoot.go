package metrics

import (
	"math"

	"github.com/san-kum/springrk/internal/spring"
)

// Overshoot is the furthest the value travelled past the target, as a
// fraction of the starting distance. 0 means the target was never crossed.
type Overshoot struct {
	distance float64
	worst    float64
	samples  int
}

func NewOvershoot() *Overshoot {
	return &Overshoot{}
}

func (o *Overshoot) Name() string {
	return "overshoot"
}

func (o *Overshoot) Observe(s spring.State, t float64) {
	if o.samples == 0 {
		o.distance = s.Target - s.Value
	}
	o.samples++
	if o.distance == 0 {
		return
	}
	past := (s.Value - s.Target) / o.distance
	o.worst = math.Max(o.worst, past)
}

func (o *Overshoot) Value() float64 {
	return o.worst
}

func (o *Overshoot) Reset() {
	o.distance, o.worst = 0, 0
	o.samples = 0
}
