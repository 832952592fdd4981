package experiment

import (
	"fmt"
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/fogleman/ease"
	"github.com/san-kum/springrk/internal/frame"
	"github.com/san-kum/springrk/internal/integrators"
	"github.com/san-kum/springrk/internal/spring"
)

const (
	MethodHarmonica = "harmonica"
	MethodEase      = "ease"
)

// CompareConfig describes one spring move stepped at a fixed frame rate.
type CompareConfig struct {
	Mass      float64
	Tension   float64
	Friction  float64
	Precision float64
	From      float64
	Target    float64
	FPS       int
	Duration  float64
}

type Trajectory struct {
	Method     string
	Times      []float64
	Values     []float64
	SettleTime float64
	Settled    bool
	FinalError float64
	PeakValue  float64
}

// Methods lists every name Compare accepts.
func Methods() []string {
	return append(integrators.Names(), MethodHarmonica, MethodEase)
}

// Compare steps the same move with each method. Integrator methods use the
// spring's own acceleration, harmonica uses its closed-form damped spring
// with the same natural frequency and damping ratio, and ease follows an
// out-cubic curve over the whole duration.
func Compare(cfg CompareConfig, methods []string) ([]Trajectory, error) {
	if cfg.FPS <= 0 {
		cfg.FPS = frame.DefaultFPS
	}
	if cfg.Duration <= 0 {
		return nil, fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}

	out := make([]Trajectory, 0, len(methods))
	for _, name := range methods {
		step, err := stepper(cfg, name)
		if err != nil {
			return nil, err
		}
		out = append(out, trace(cfg, name, step))
	}
	return out, nil
}

type stepFunc func(i int, x, v float64) (float64, float64)

func stepper(cfg CompareConfig, name string) (stepFunc, error) {
	dt := 1.0 / float64(cfg.FPS)

	switch name {
	case MethodHarmonica:
		omega := math.Sqrt(cfg.Tension / cfg.Mass)
		zeta := cfg.Friction / (2 * math.Sqrt(cfg.Mass*cfg.Tension))
		hs := harmonica.NewSpring(harmonica.FPS(cfg.FPS), omega, zeta)
		return func(_ int, x, v float64) (float64, float64) {
			return hs.Update(x, v, cfg.Target)
		}, nil

	case MethodEase:
		frames := cfg.Duration * float64(cfg.FPS)
		return func(i int, x, _ float64) (float64, float64) {
			p := math.Min(float64(i+1)/frames, 1)
			nx := cfg.From + (cfg.Target-cfg.From)*ease.OutCubic(p)
			return nx, (nx - x) / dt
		}, nil
	}

	integ, err := integrators.Get(name)
	if err != nil {
		return nil, err
	}
	osc := spring.New(
		spring.WithMass(cfg.Mass),
		spring.WithTension(cfg.Tension),
		spring.WithFriction(cfg.Friction),
		spring.WithTarget(cfg.Target),
	)
	return func(_ int, x, v float64) (float64, float64) {
		return integ.Step(osc, x, v, dt)
	}, nil
}

func trace(cfg CompareConfig, name string, step stepFunc) Trajectory {
	dt := 1.0 / float64(cfg.FPS)
	steps := int(cfg.Duration * float64(cfg.FPS))

	tr := Trajectory{
		Method:    name,
		Times:     make([]float64, 0, steps+1),
		Values:    make([]float64, 0, steps+1),
		PeakValue: cfg.From,
	}
	x, v := cfg.From, 0.0
	tr.Times = append(tr.Times, 0)
	tr.Values = append(tr.Values, x)

	for i := 0; i < steps; i++ {
		x, v = step(i, x, v)
		t := float64(i+1) * dt
		tr.Times = append(tr.Times, t)
		tr.Values = append(tr.Values, x)
		if math.Abs(x-cfg.From) > math.Abs(tr.PeakValue-cfg.From) {
			tr.PeakValue = x
		}

		d := x - cfg.Target
		e := 0.5*cfg.Mass*v*v + 0.5*cfg.Tension*d*d
		if !tr.Settled && e < cfg.Precision {
			tr.Settled = true
			tr.SettleTime = t
		}
	}
	tr.FinalError = math.Abs(x - cfg.Target)
	return tr
}
