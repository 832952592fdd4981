package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"
)

type ExportData struct {
	Run        RunMetadata `json:"run"`
	Steps      int         `json:"steps"`
	Times      []float64   `json:"times"`
	Values     []float64   `json:"values"`
	Velocities []float64   `json:"velocities"`
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// WriteCSV writes samples as time,value,velocity rows under a header.
func WriteCSV(w io.Writer, samples *Samples) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(stateHeader); err != nil {
		return err
	}
	for i := range samples.Times {
		row := []string{
			formatFloat(samples.Times[i]),
			formatFloat(samples.Values[i]),
			formatFloat(samples.Velocities[i]),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func WriteJSON(w io.Writer, meta *RunMetadata, samples *Samples) error {
	data := ExportData{
		Run:        *meta,
		Steps:      samples.Len(),
		Times:      samples.Times,
		Values:     samples.Values,
		Velocities: samples.Velocities,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSON(path string, meta *RunMetadata, samples *Samples) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, meta, samples)
}

func ExportJSONStdout(meta *RunMetadata, samples *Samples) error {
	return WriteJSON(os.Stdout, meta, samples)
}
