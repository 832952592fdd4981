package automation

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/san-kum/springrk/internal/config"
	"github.com/san-kum/springrk/internal/experiment"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ParameterSweep runs the base config once per value of one parameter.
type ParameterSweep struct {
	Base      *config.Config
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
	// Workers bounds concurrent runs; 0 means GOMAXPROCS.
	Workers int
}

// SweepResult is one point of a sweep. A run that exhausted its frame
// budget or blew up has Settled false and keeps its partial metrics.
type SweepResult struct {
	ParamValue float64
	Frames     int
	Settled    bool
	Diverged   bool
	Metrics    map[string]float64
}

// Values returns n evenly spaced values from lo to hi inclusive.
func Values(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{lo}
	}
	step := (hi - lo) / float64(n-1)
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}

// RunSweep executes the sweep in parallel. Results are in parameter order.
// Each run has its own spring and virtual host, so runs share nothing.
func RunSweep(ctx context.Context, sweep *ParameterSweep, log *zap.Logger) ([]SweepResult, error) {
	if sweep.Base == nil {
		return nil, errors.New("sweep has no base config")
	}
	if log == nil {
		log = zap.NewNop()
	}

	values := Values(sweep.ParamMin, sweep.ParamMax, sweep.NumSteps)
	configs := make([]*config.Config, len(values))
	for i, v := range values {
		cfg := sweep.Base.Clone()
		if err := cfg.Set(sweep.ParamName, v); err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sweep.ParamName, v, err)
		}
		configs[i] = cfg
	}

	workers := sweep.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]SweepResult, len(values))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range configs {
		i := i
		g.Go(func() error {
			result, _, err := Execute(ctx, configs[i], log)
			diverged := errors.Is(err, experiment.ErrDiverged)
			if err != nil && !diverged && !errors.Is(err, experiment.ErrNotSettled) {
				return fmt.Errorf("%s=%g: %w", sweep.ParamName, values[i], err)
			}
			results[i] = SweepResult{
				ParamValue: values[i],
				Frames:     result.Frames,
				Settled:    result.Settled,
				Diverged:   diverged,
				Metrics:    result.Metrics,
			}
			log.Debug("sweep point done",
				zap.String("param", sweep.ParamName),
				zap.Float64("value", values[i]),
				zap.Bool("settled", result.Settled),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
