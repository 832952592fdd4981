package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/springrk/internal/experiment"
)

const (
	metadataFile = "metadata.json"
	statesFile   = "states.csv"
)

var stateHeader = []string{"time", "value", "velocity"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes a saved run. Friction is the effective value, so a
// run reloads identically even if it was created from the critical default.
type RunMetadata struct {
	ID        string             `json:"id"`
	Preset    string             `json:"preset,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
	Mass      float64            `json:"mass"`
	Tension   float64            `json:"tension"`
	Friction  float64            `json:"friction"`
	Precision float64            `json:"precision"`
	From      float64            `json:"from"`
	Target    float64            `json:"target"`
	FPS       int                `json:"fps"`
	Frames    int                `json:"frames"`
	Settled   bool               `json:"settled"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Samples is the per-frame trajectory stored alongside the metadata.
type Samples struct {
	Times      []float64
	Values     []float64
	Velocities []float64
}

func (s *Samples) Len() int {
	return len(s.Times)
}

// Save writes meta and the result's trajectory under a new run directory and
// returns the run id. ID, Timestamp, Frames, Settled and Metrics are filled
// in from the result.
func (s *Store) Save(meta RunMetadata, result *experiment.Result) (string, error) {
	now := time.Now()
	label := meta.Preset
	if label == "" {
		label = "custom"
	}
	runID := fmt.Sprintf("%s_%d", label, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Frames = result.Frames
	meta.Settled = result.Settled
	meta.Metrics = result.Metrics

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", fmt.Errorf("write metadata: %w", err)
	}

	csvFile, err := os.Create(filepath.Join(runDir, statesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	samples := &Samples{Times: result.Times, Values: result.Values, Velocities: result.Velocities}
	if err := WriteCSV(csvFile, samples); err != nil {
		return "", fmt.Errorf("write states: %w", err)
	}

	return runID, nil
}

// List returns every readable run, oldest first. Directories without valid
// metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parse metadata for %s: %w", runID, err)
	}

	return &meta, nil
}

// LoadStates reads a run's trajectory. Rows that fail to parse are skipped.
func (s *Store) LoadStates(runID string) (*Samples, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, statesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	samples := &Samples{}
	if len(records) < 2 {
		return samples, nil
	}

	for _, record := range records[1:] {
		if len(record) < len(stateHeader) {
			continue
		}

		var row [3]float64
		ok := true
		for j := range row {
			row[j], err = strconv.ParseFloat(record[j], 64)
			if err != nil {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}

		samples.Times = append(samples.Times, row[0])
		samples.Values = append(samples.Values, row[1])
		samples.Velocities = append(samples.Velocities, row[2])
	}

	return samples, nil
}
