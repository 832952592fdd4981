package analysis

import "math"

type Regime string

const (
	Underdamped Regime = "underdamped"
	Critical    Regime = "critical"
	Overdamped  Regime = "overdamped"
)

// criticalTolerance absorbs rounding in friction values derived from
// 2*sqrt(m*k).
const criticalTolerance = 1e-9

// Characteristics are the closed-form properties of a damped spring.
type Characteristics struct {
	NaturalFrequency float64 // rad/s
	DampingRatio     float64
	DampedFrequency  float64 // Hz, 0 unless underdamped
	Regime           Regime
}

func Characterize(mass, tension, friction float64) Characteristics {
	if mass <= 0 || tension <= 0 {
		return Characteristics{Regime: Overdamped}
	}

	omega := math.Sqrt(tension / mass)
	zeta := friction / (2 * math.Sqrt(mass*tension))
	ch := Characteristics{NaturalFrequency: omega, DampingRatio: zeta}

	switch {
	case math.Abs(zeta-1) <= criticalTolerance:
		ch.Regime = Critical
	case zeta > 1:
		ch.Regime = Overdamped
	default:
		ch.Regime = Underdamped
		ch.DampedFrequency = omega * math.Sqrt(1-zeta*zeta) / (2 * math.Pi)
	}
	return ch
}

// LogDecrement estimates the damping ratio from the decay between
// successive peaks of |value - target|. It needs at least two peaks and
// reports ok=false otherwise.
func LogDecrement(values []float64, target float64) (zeta float64, ok bool) {
	var peaks []float64
	for i := 1; i < len(values)-1; i++ {
		prev := math.Abs(values[i-1] - target)
		cur := math.Abs(values[i] - target)
		next := math.Abs(values[i+1] - target)
		if cur > prev && cur >= next && cur > 0 {
			peaks = append(peaks, cur)
		}
	}
	if len(peaks) < 2 {
		return 0, false
	}

	// successive |x| peaks are half a period apart
	delta := 2 * math.Log(peaks[0]/peaks[1])
	return delta / math.Sqrt(4*math.Pi*math.Pi+delta*delta), true
}
