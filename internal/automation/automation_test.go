package automation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/springrk/internal/config"
	"github.com/san-kum/springrk/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioYAML = `name: demo
description: two moves
steps:
  - name: soft
    preset: gentle
    spring:
      target: 10
  - spring:
      tension: 300
      target: -5
`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValues(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []float64{0, 5, 10}, Values(0, 10, 3))
	assert.Equal(t, []float64{1}, Values(1, 2, 1))
}

func TestLoadScenario(t *testing.T) {
	t.Parallel()

	sc, err := LoadScenario(writeFile(t, scenarioYAML))
	require.NoError(t, err)

	assert.Equal(t, "demo", sc.Name)
	require.Len(t, sc.Steps, 2)

	first := sc.Steps[0]
	assert.Equal(t, "soft", first.Name)
	assert.Equal(t, "gentle", first.Preset)
	assert.Equal(t, 10.0, first.Spring.Target)
	// untouched keys keep their defaults
	assert.Equal(t, config.DefaultConfig().Spring.Precision, first.Spring.Precision)
	assert.Equal(t, config.DefaultMaxFrames, first.Run.MaxFrames)

	require.NotNil(t, sc.Steps[1].Spring.Tension)
	assert.Equal(t, 300.0, *sc.Steps[1].Spring.Tension)
	assert.Nil(t, sc.Steps[1].Spring.Mass)
}

func TestLoadScenarioInvalidStep(t *testing.T) {
	t.Parallel()

	_, err := LoadScenario(writeFile(t, "steps:\n  - spring:\n      mass: 0\n"))
	assert.ErrorContains(t, err, "step 1")

	_, err = LoadScenario(writeFile(t, "steps: [\n"))
	assert.ErrorContains(t, err, "parse scenario")
}

func TestRunScenario(t *testing.T) {
	t.Parallel()

	sc, err := LoadScenario(writeFile(t, scenarioYAML))
	require.NoError(t, err)

	st := storage.New(t.TempDir())
	require.NoError(t, st.Init())

	results, err := RunScenario(context.Background(), sc, st, nil)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "soft", results[0].Name)
	assert.Equal(t, "step-2", results[1].Name)

	for i, want := range []float64{10, -5} {
		r := results[i]
		assert.True(t, r.Result.Settled)
		assert.Equal(t, want, r.Result.Values[len(r.Result.Values)-1])

		meta, err := st.Load(r.RunID)
		require.NoError(t, err)
		assert.Equal(t, want, meta.Target)
	}

	runs, err := st.List()
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestRunScenarioWithoutStore(t *testing.T) {
	t.Parallel()

	sc := &Scenario{Steps: []ScenarioStep{{Config: *config.DefaultConfig()}}}
	results, err := RunScenario(context.Background(), sc, nil, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Empty(t, results[0].RunID)
}

func TestRunScenarioStopsOnFailure(t *testing.T) {
	t.Parallel()

	stuck := *config.DefaultConfig()
	stuck.Run.MaxFrames = 2
	sc := &Scenario{Steps: []ScenarioStep{
		{Name: "ok", Config: *config.DefaultConfig()},
		{Name: "stuck", Config: stuck},
		{Name: "never", Config: *config.DefaultConfig()},
	}}

	results, err := RunScenario(context.Background(), sc, nil, nil)
	assert.ErrorContains(t, err, "stuck")
	assert.Len(t, results, 1)
}

func TestRunSweep(t *testing.T) {
	t.Parallel()

	results, err := RunSweep(context.Background(), &ParameterSweep{
		Base:      config.DefaultConfig(),
		ParamName: "tension",
		ParamMin:  50,
		ParamMax:  450,
		NumSteps:  5,
		Workers:   2,
	}, nil)
	require.NoError(t, err)
	require.Len(t, results, 5)

	for i, r := range results {
		assert.Equal(t, 50+100*float64(i), r.ParamValue)
		assert.True(t, r.Settled)
		assert.False(t, r.Diverged)
	}
	// stiffer springs settle sooner
	assert.Greater(t, results[0].Metrics["settle_time"], results[4].Metrics["settle_time"])
}

func TestRunSweepUnsettled(t *testing.T) {
	t.Parallel()

	base := config.DefaultConfig()
	base.Run.MaxFrames = 3

	results, err := RunSweep(context.Background(), &ParameterSweep{
		Base:      base,
		ParamName: "mass",
		ParamMin:  1,
		ParamMax:  2,
		NumSteps:  2,
	}, nil)
	require.NoError(t, err)
	for _, r := range results {
		assert.False(t, r.Settled)
		assert.Equal(t, 3, r.Frames)
	}
}

func TestRunSweepKeepsPresetPhysics(t *testing.T) {
	t.Parallel()

	base := config.DefaultConfig()
	base.Preset = "molasses"

	results, err := RunSweep(context.Background(), &ParameterSweep{
		Base:      base,
		ParamName: "mass",
		ParamMin:  2,
		ParamMax:  2,
		NumSteps:  1,
	}, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.True(t, results[0].Settled)

	// the same spring spelled out without the preset
	explicit := config.DefaultConfig()
	for name, v := range map[string]float64{"mass": 2, "tension": 280, "friction": 120} {
		require.NoError(t, explicit.Set(name, v))
	}
	want, _, err := Execute(context.Background(), explicit, nil)
	require.NoError(t, err)

	assert.Equal(t, want.Frames, results[0].Frames)
	assert.Equal(t, want.Metrics["settle_time"], results[0].Metrics["settle_time"])
	assert.Equal(t, "molasses", base.Preset)
}

func TestRunSweepErrors(t *testing.T) {
	t.Parallel()

	_, err := RunSweep(context.Background(), &ParameterSweep{}, nil)
	assert.Error(t, err)

	_, err = RunSweep(context.Background(), &ParameterSweep{
		Base:      config.DefaultConfig(),
		ParamName: "damping",
		NumSteps:  2,
	}, nil)
	assert.ErrorContains(t, err, "unknown parameter")

	_, err = RunSweep(context.Background(), &ParameterSweep{
		Base:      config.DefaultConfig(),
		ParamName: "mass",
		ParamMin:  -1,
		ParamMax:  1,
		NumSteps:  2,
	}, nil)
	assert.ErrorContains(t, err, "mass must be positive")
}
