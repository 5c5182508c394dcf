package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/attractors/internal/engine"
)

type ExportData struct {
	Module     string             `json:"module"`
	SampleRate float64            `json:"sample_rate"`
	Decimate   int                `json:"decimate"`
	Steps      int                `json:"steps"`
	Outputs    []string           `json:"outputs"`
	Times      []float64          `json:"times"`
	Frames     [][]float64        `json:"frames"`
	Metrics    map[string]float64 `json:"metrics"`
}

func newExportData(meta *RunMetadata, result *engine.Result) ExportData {
	return ExportData{
		Module:     meta.Module,
		SampleRate: meta.SampleRate,
		Decimate:   meta.Decimate,
		Steps:      len(result.Times),
		Outputs:    result.Outputs,
		Times:      result.Times,
		Frames:     result.Frames,
		Metrics:    result.Metrics,
	}
}

func ExportJSON(path string, meta *RunMetadata, result *engine.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, meta, result)
}

func WriteJSON(w io.Writer, meta *RunMetadata, result *engine.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newExportData(meta, result))
}
