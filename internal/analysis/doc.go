// Package analysis characterizes recorded spring trajectories.
//
//   - [Characterize]: natural frequency, damping ratio and regime from the
//     physical constants
//   - [DominantFrequency]: strongest oscillation in a trajectory, from its
//     power spectrum
//   - [LogDecrement]: damping ratio estimated from successive peaks
//   - [NewPhasePortrait]: value against velocity
//
// A critically damped or overdamped spring has no oscillation, so the
// spectral estimate is only meaningful for underdamped runs:
//
//	ch := analysis.Characterize(meta.Mass, meta.Tension, meta.Friction)
//	if ch.Regime == analysis.Underdamped {
//	    hz := analysis.DominantFrequency(samples.Values, float64(meta.FPS))
//	}
package analysis
