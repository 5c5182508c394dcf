package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/attractors/internal/engine"
)

const (
	metadataFile = "metadata.json"
	signalsFile  = "signals.csv"
	wavFile      = "signals.wav"
)

var (
	ErrRunNotFound = errors.New("storage: run not found")
	ErrUnevenRate  = errors.New("storage: recorded rate is not a whole number of hz")
)

// WAVRate is the rate of the recorded frames, which the WAV header stores
// as an integer.
func WAVRate(sampleRate float64, decimate int) (int, error) {
	decimate = max(decimate, 1)
	if sampleRate != math.Trunc(sampleRate) || int64(sampleRate)%int64(decimate) != 0 {
		return 0, fmt.Errorf("%w: %g hz / %d", ErrUnevenRate, sampleRate, decimate)
	}
	return int(sampleRate) / decimate, nil
}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Dir is the directory holding one run.
func (s *Store) Dir(runID string) string {
	return filepath.Join(s.baseDir, runID)
}

// RunMetadata describes one stored render. Only the rendered signals are
// kept; the attractor state itself is never saved.
type RunMetadata struct {
	ID         string             `json:"id"`
	Module     string             `json:"module"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed,omitempty"`
	SampleRate float64            `json:"sample_rate"`
	Duration   float64            `json:"duration"`
	Decimate   int                `json:"decimate"`
	Frames     int64              `json:"frames"`
	Outputs    []string           `json:"outputs"`
	Params     map[string]float64 `json:"params,omitempty"`
	CV         map[string]float64 `json:"cv,omitempty"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Save writes metadata, CSV and WAV for result. ID, Timestamp, Frames,
// Outputs and Metrics of meta are filled in from the run.
func (s *Store) Save(meta RunMetadata, result *engine.Result) (string, error) {
	rate, err := WAVRate(meta.SampleRate, meta.Decimate)
	if err != nil {
		return "", err
	}

	now := time.Now()
	runID, err := s.makeRunDir(meta.Module, now)
	if err != nil {
		return "", err
	}
	runDir := s.Dir(runID)

	meta.ID = runID
	meta.Timestamp = now
	meta.Frames = result.StepsTaken
	meta.Outputs = result.Outputs
	meta.Metrics = result.Metrics

	if err := writeJSONFile(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, signalsFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()
	if err := WriteCSV(csvFile, result); err != nil {
		return "", err
	}

	wav := EncodeWAVFloat32LE(interleave(result), rate, len(result.Outputs))
	if err := os.WriteFile(filepath.Join(runDir, wavFile), wav, 0644); err != nil {
		return "", err
	}

	return runID, nil
}

// makeRunDir creates <module>_<unix> and appends a counter on collision.
func (s *Store) makeRunDir(module string, now time.Time) (string, error) {
	if err := s.Init(); err != nil {
		return "", err
	}
	base := fmt.Sprintf("%s_%d", module, now.Unix())
	runID := base
	for i := 1; ; i++ {
		err := os.Mkdir(s.Dir(runID), 0755)
		if err == nil {
			return runID, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", err
		}
		runID = fmt.Sprintf("%s_%d", base, i)
	}
}

// WriteCSV writes a time column followed by one column per output.
func WriteCSV(w io.Writer, result *engine.Result) error {
	cw := csv.NewWriter(w)

	header := append([]string{"time"}, result.Outputs...)
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for i, frame := range result.Frames {
		row[0] = strconv.FormatFloat(result.Times[i], 'g', -1, 64)
		for j, v := range frame {
			row[j+1] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// List returns stored runs, oldest first.
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

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

// Latest returns the id of the most recent run.
func (s *Store) Latest() (string, error) {
	runs, err := s.List()
	if err != nil {
		return "", err
	}
	if len(runs) == 0 {
		return "", fmt.Errorf("%w: store %s is empty", ErrRunNotFound, s.baseDir)
	}
	return runs[len(runs)-1].ID, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir(runID), metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadSignals reads a run's CSV back into a result. Metrics come from the
// metadata.
func (s *Store) LoadSignals(runID string) (*engine.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.Dir(runID), signalsFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	result := &engine.Result{
		Metrics:    meta.Metrics,
		StepsTaken: meta.Frames,
		Errors:     make([]error, 0),
	}
	if len(records) == 0 {
		return result, nil
	}

	result.Outputs = records[0][1:]
	result.Times = make([]float64, 0, len(records)-1)
	result.Frames = make([][]float64, 0, len(records)-1)

	for i := 1; i < len(records); i++ {
		record := records[i]

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", signalsFile, i+1, err)
		}

		frame := make([]float64, len(record)-1)
		for j := 1; j < len(record); j++ {
			frame[j-1], err = strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", signalsFile, i+1, err)
			}
		}

		result.Times = append(result.Times, t)
		result.Frames = append(result.Frames, frame)
	}

	return result, nil
}

func writeJSONFile(path string, v any) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
