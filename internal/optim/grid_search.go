package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/springrk/internal/automation"
	"github.com/san-kum/springrk/internal/config"
	"github.com/san-kum/springrk/internal/experiment"
	"go.uber.org/zap"
)

var ErrNoCandidate = errors.New("optim: no parameter combination was accepted")

// GridSearch tries every combination of parameter values on a base config
// and keeps the one with the lowest value of a metric.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Candidate is the best combination found.
type Candidate struct {
	Params map[string]float64
	Score  float64
	Result *experiment.Result
	Tried  int
}

// Search runs every combination. Runs that fail, do not settle, or are
// rejected by accept (when non-nil) are skipped.
func (g *GridSearch) Search(
	ctx context.Context,
	base *config.Config,
	metricName string,
	accept func(*experiment.Result) bool,
	log *zap.Logger,
) (*Candidate, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, fmt.Errorf("optim: %d parameters but %d ranges", len(g.paramNames), len(g.ranges))
	}
	if log == nil {
		log = zap.NewNop()
	}

	best := &Candidate{Score: math.Inf(1)}
	if err := g.searchRecursive(ctx, 0, make(map[string]float64), base, metricName, accept, log, best); err != nil {
		return nil, err
	}
	if best.Params == nil {
		return best, ErrNoCandidate
	}
	return best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	base *config.Config,
	metricName string,
	accept func(*experiment.Result) bool,
	log *zap.Logger,
	best *Candidate,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		best.Tried++
		cfg := base.Clone()
		for k, v := range current {
			if err := cfg.Set(k, v); err != nil {
				return err
			}
		}
		if err := cfg.Validate(); err != nil {
			log.Debug("skipping invalid combination", zap.Any("params", current), zap.Error(err))
			return nil
		}

		result, _, err := automation.Execute(ctx, cfg, log)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return nil
		}
		if accept != nil && !accept(result) {
			return nil
		}

		val, ok := result.Metrics[metricName]
		if !ok {
			return fmt.Errorf("optim: unknown metric %s", metricName)
		}
		if val < best.Score {
			best.Score = val
			best.Result = result
			best.Params = make(map[string]float64, len(current))
			for k, v := range current {
				best.Params[k] = v
			}
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, base, metricName, accept, log, best); err != nil {
			return err
		}
	}
	return nil
}
