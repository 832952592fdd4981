package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/springrk/internal/experiment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *experiment.Result {
	return &experiment.Result{
		Times:      []float64{0, 0.016667, 0.033333},
		Values:     []float64{0, 4.5, 10},
		Velocities: []float64{0, 270, 0},
		Frames:     2,
		Settled:    true,
		Metrics:    map[string]float64{"settle_time": 0.033333},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	t.Parallel()

	st := New(t.TempDir())
	require.NoError(t, st.Init())

	runID, err := st.Save(RunMetadata{Preset: "wobbly", Mass: 1, Tension: 180, Friction: 12, Target: 10, FPS: 60}, sampleResult())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(runID, "wobbly_"))

	meta, err := st.Load(runID)
	require.NoError(t, err)
	assert.Equal(t, runID, meta.ID)
	assert.Equal(t, "wobbly", meta.Preset)
	assert.Equal(t, 180.0, meta.Tension)
	assert.Equal(t, 2, meta.Frames)
	assert.True(t, meta.Settled)
	assert.Equal(t, 0.033333, meta.Metrics["settle_time"])

	samples, err := st.LoadStates(runID)
	require.NoError(t, err)
	assert.Equal(t, 3, samples.Len())
	assert.Equal(t, []float64{0, 4.5, 10}, samples.Values)
	assert.Equal(t, []float64{0, 270, 0}, samples.Velocities)
}

func TestStoreCustomLabel(t *testing.T) {
	t.Parallel()

	st := New(t.TempDir())
	require.NoError(t, st.Init())

	runID, err := st.Save(RunMetadata{}, sampleResult())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(runID, "custom_"))
}

func TestStoreList(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	st := New(dir)
	require.NoError(t, st.Init())

	first, err := st.Save(RunMetadata{Preset: "gentle"}, sampleResult())
	require.NoError(t, err)
	second, err := st.Save(RunMetadata{Preset: "stiff"}, sampleResult())
	require.NoError(t, err)

	// stray directories and files are ignored
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "junk"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	runs, err := st.List()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, first, runs[0].ID)
	assert.Equal(t, second, runs[1].ID)
}

func TestStoreListMissingDir(t *testing.T) {
	t.Parallel()

	runs, err := New(filepath.Join(t.TempDir(), "missing")).List()
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	st := New(dir)

	_, err := st.Load("nope")
	assert.Error(t, err)
	_, err = st.LoadStates("nope")
	assert.Error(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "bad"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad", metadataFile), []byte("{"), 0644))
	_, err = st.Load("bad")
	assert.ErrorContains(t, err, "parse metadata")
}

func TestLoadStatesSkipsBadRows(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	st := New(dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "run"), 0755))

	csv := "time,value,velocity\n0,1,2\nx,1,2\n0.5,3\n1,4,5\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "run", statesFile), []byte(csv), 0644))

	samples, err := st.LoadStates("run")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1}, samples.Times)
	assert.Equal(t, []float64{1, 4}, samples.Values)
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, &Samples{
		Times:      []float64{0, 0.5},
		Values:     []float64{1, 2},
		Velocities: []float64{0, -1.25},
	}))

	want := "time,value,velocity\n" +
		"0.000000,1.000000,0.000000\n" +
		"0.500000,2.000000,-1.250000\n"
	assert.Equal(t, want, buf.String())
}

func TestExportJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "run.json")
	meta := &RunMetadata{ID: "gentle_1", Preset: "gentle", Target: 10}
	samples := &Samples{Times: []float64{0, 1}, Values: []float64{0, 10}, Velocities: []float64{0, 0}}

	require.NoError(t, ExportJSON(path, meta, samples))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var got ExportData
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "gentle_1", got.Run.ID)
	assert.Equal(t, 2, got.Steps)
	assert.Equal(t, []float64{0, 10}, got.Values)
}
