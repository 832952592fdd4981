package experiment

import (
	"context"
	"math"

	"github.com/san-kum/springrk/internal/frame"
	"github.com/san-kum/springrk/internal/metrics"
	"github.com/san-kum/springrk/internal/spring"
	"go.uber.org/zap"
)

type Config struct {
	Target    float64
	FPS       int
	MaxFrames int
}

// Result is the trajectory of one animation. Each frame callback adds a
// sample, so the settling frame appears twice: once as integrated and once
// snapped onto the target.
type Result struct {
	Times      []float64
	Values     []float64
	Velocities []float64
	Frames     int
	Settled    bool
	Metrics    map[string]float64
}

// Builder constructs a spring from the options the experiment supplies.
type Builder func(opts ...spring.Option) (*spring.Spring, error)

// Experiment runs a spring on a virtual frame host, so results do not
// depend on wall-clock timing.
type Experiment struct {
	cfg     Config
	host    *frame.Manual
	spring  *spring.Spring
	metrics []metrics.Metric
	log     *zap.Logger
}

func New(cfg Config, log *zap.Logger) *Experiment {
	if cfg.FPS <= 0 {
		cfg.FPS = frame.DefaultFPS
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Experiment{cfg: cfg, host: frame.NewManual(), log: log}
}

func (e *Experiment) Setup(build Builder, ms []metrics.Metric) error {
	s, err := build(
		spring.WithScheduler(e.host),
		spring.WithClock(e.host),
		spring.WithLogger(e.log.Named("spring")),
	)
	if err != nil {
		return err
	}
	e.spring = s
	e.metrics = ms
	return nil
}

// Spring returns the spring under test, or nil before Setup.
func (e *Experiment) Spring() *spring.Spring {
	return e.spring
}

func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.spring == nil {
		return nil, ErrNotSetup
	}

	for _, m := range e.metrics {
		m.Reset()
	}

	frameMs := 1000.0 / float64(e.cfg.FPS)
	start := e.host.Now()
	result := &Result{Metrics: make(map[string]float64)}

	record := func(v float64) {
		t := (e.host.Now() - start) / 1000
		st := e.spring.State()
		result.Times = append(result.Times, t)
		result.Values = append(result.Values, v)
		result.Velocities = append(result.Velocities, st.Velocity)
		for _, m := range e.metrics {
			m.Observe(st, t)
		}
	}

	e.log.Debug("experiment started",
		zap.Float64("target", e.cfg.Target),
		zap.Int("fps", e.cfg.FPS),
		zap.Int("max_frames", e.cfg.MaxFrames),
	)
	e.spring.Start(e.cfg.Target, record)

	var runErr error
	for e.spring.IsAnimating() {
		if e.cfg.MaxFrames > 0 && result.Frames >= e.cfg.MaxFrames {
			runErr = e.fail(result, ErrNotSettled)
			break
		}
		select {
		case <-ctx.Done():
			e.spring.Stop()
			runErr = ctx.Err()
		default:
		}
		if runErr != nil {
			break
		}

		e.host.Advance(frameMs)
		result.Frames++

		if v := e.spring.Value(); math.IsNaN(v) || math.IsInf(v, 0) {
			runErr = e.fail(result, ErrDiverged)
			break
		}
	}

	result.Settled = runErr == nil
	for _, m := range e.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	if runErr != nil {
		e.log.Warn("experiment ended early", zap.Int("frames", result.Frames), zap.Error(runErr))
		return result, runErr
	}
	e.log.Debug("experiment settled", zap.Int("frames", result.Frames))
	return result, nil
}

func (e *Experiment) fail(result *Result, err error) error {
	e.spring.Stop()
	t := 0.0
	if n := len(result.Times); n > 0 {
		t = result.Times[n-1]
	}
	return &RunError{Frame: result.Frames, Time: t, Value: e.spring.Value(), Wrapped: err}
}
