package automation

import (
	"context"
	"fmt"
	"os"

	"github.com/san-kum/springrk/internal/config"
	"github.com/san-kum/springrk/internal/experiment"
	"github.com/san-kum/springrk/internal/metrics"
	"github.com/san-kum/springrk/internal/spring"
	"github.com/san-kum/springrk/internal/storage"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted sequence of runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one run. Its config keys sit directly on the step and
// default to config.DefaultConfig.
type ScenarioStep struct {
	Name          string `yaml:"name"`
	config.Config `yaml:",inline"`
}

func (s *ScenarioStep) UnmarshalYAML(node *yaml.Node) error {
	type raw ScenarioStep
	r := raw{Config: *config.DefaultConfig()}
	if err := node.Decode(&r); err != nil {
		return err
	}
	*s = ScenarioStep(r)
	return nil
}

// StepResult is the outcome of one scenario step. RunID is empty when the
// scenario ran without a store.
type StepResult struct {
	Name   string
	RunID  string
	Result *experiment.Result
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	for i := range scenario.Steps {
		if err := scenario.Steps[i].Validate(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}

	return &scenario, nil
}

// Execute runs one configured spring to rest on a virtual host.
func Execute(ctx context.Context, cfg *config.Config, log *zap.Logger) (*experiment.Result, *experiment.Experiment, error) {
	exp := experiment.New(experiment.Config{
		Target:    cfg.Spring.Target,
		FPS:       cfg.Run.FPS,
		MaxFrames: cfg.Run.MaxFrames,
	}, log)
	if err := exp.Setup(cfg.NewSpring, metrics.Defaults()); err != nil {
		return nil, nil, err
	}

	result, err := exp.Run(ctx)
	return result, exp, err
}

// Metadata describes a run of cfg. The physical constants are read back
// from s, so presets and the critical friction default are resolved.
func Metadata(cfg *config.Config, s *spring.Spring) storage.RunMetadata {
	return storage.RunMetadata{
		Preset:    cfg.Preset,
		Mass:      s.Mass(),
		Tension:   s.Tension(),
		Friction:  s.Friction(),
		Precision: s.Precision(),
		From:      cfg.Spring.InitialValue,
		Target:    cfg.Spring.Target,
		FPS:       cfg.Run.FPS,
	}
}

// RunScenario executes the steps in order and saves each run to st when
// st is not nil. A step that fails to settle stops the scenario.
func RunScenario(ctx context.Context, scenario *Scenario, st *storage.Store, log *zap.Logger) ([]StepResult, error) {
	if log == nil {
		log = zap.NewNop()
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step-%d", i+1)
		}
		log.Info("running scenario step",
			zap.String("scenario", scenario.Name),
			zap.String("step", name),
			zap.Int("index", i+1),
			zap.Int("total", len(scenario.Steps)),
		)

		cfg := step.Config
		result, exp, err := Execute(ctx, &cfg, log.Named(name))
		if err != nil {
			return results, fmt.Errorf("step %d (%s): %w", i+1, name, err)
		}

		sr := StepResult{Name: name, Result: result}
		if st != nil {
			sr.RunID, err = st.Save(Metadata(&cfg, exp.Spring()), result)
			if err != nil {
				return results, fmt.Errorf("step %d (%s) save: %w", i+1, name, err)
			}
		}

		results = append(results, sr)
	}

	return results, nil
}
