package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/attractors/internal/engine"
	"github.com/san-kum/attractors/internal/storage"
)

func TestExportJSONWritesFile(t *testing.T) {
	dir := t.TempDir()
	oldData := dataDir
	dataDir = filepath.Join(dir, "runs")
	jsonOut = filepath.Join(dir, "run.json")
	t.Cleanup(func() { dataDir, jsonOut = oldData, "" })

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}
	runID, err := st.Save(storage.RunMetadata{Module: "attractors", SampleRate: 48000, Duration: 2.0 / 48000, Decimate: 1}, &engine.Result{
		Outputs:    []string{"lorenz_x"},
		Times:      []float64{0, 1.0 / 48000},
		Frames:     [][]float64{{0.1}, {0.2}},
		StepsTaken: 2,
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := exportJSON(nil, []string{runID}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(jsonOut)
	if err != nil {
		t.Fatal(err)
	}
	var got storage.ExportData
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.Steps != 2 || len(got.Outputs) != 1 || got.Outputs[0] != "lorenz_x" {
		t.Errorf("export = %+v", got)
	}
}
