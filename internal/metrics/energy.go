package metrics

import (
	"math"

	"github.com/san-kum/springrk/internal/spring"
)

// PeakEnergy is the largest total energy seen.
type PeakEnergy struct {
	peak float64
}

func NewPeakEnergy() *PeakEnergy { return &PeakEnergy{} }

func (e *PeakEnergy) Name() string { return "peak_energy" }

func (e *PeakEnergy) Observe(s spring.State, t float64) {
	e.peak = math.Max(e.peak, energy(s))
}

func (e *PeakEnergy) Value() float64 { return e.peak }
func (e *PeakEnergy) Reset()         { e.peak = 0 }

// EnergyGain is the largest frame-to-frame energy increase. A damped spring
// with a fixed target never gains energy, so anything above rounding noise
// points at a step too large for the integrator.
type EnergyGain struct {
	last    float64
	maxGain float64
	samples int
}

func NewEnergyGain() *EnergyGain { return &EnergyGain{} }

func (e *EnergyGain) Name() string { return "energy_gain" }

func (e *EnergyGain) Observe(s spring.State, t float64) {
	en := energy(s)
	if e.samples > 0 && en-e.last > e.maxGain {
		e.maxGain = en - e.last
	}
	e.last = en
	e.samples++
}

func (e *EnergyGain) Value() float64 { return e.maxGain }

func (e *EnergyGain) Reset() {
	e.last = 0
	e.maxGain = 0
	e.samples = 0
}
