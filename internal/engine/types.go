package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/attractors/internal/rack"
)

var ErrInvalidConfig = errors.New("engine: invalid config")

type Config struct {
	SampleRate float64
	Duration   float64
	// Decimate records every Nth frame. The module is still ticked on all of them.
	Decimate int
	// Record names the outputs to capture. Empty means the outputs connected
	// when the run starts.
	Record          []string
	ValidateOutputs bool
}

func DefaultConfig() Config {
	return Config{
		SampleRate:      44100,
		Duration:        5,
		Decimate:        1,
		ValidateOutputs: true,
	}
}

func (c Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive, got %g", ErrInvalidConfig, c.SampleRate)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %g", ErrInvalidConfig, c.Duration)
	}
	if c.Decimate < 1 {
		return fmt.Errorf("%w: decimate must be at least 1, got %d", ErrInvalidConfig, c.Decimate)
	}
	return nil
}

// Frames is the number of ticks a run of this config performs.
func (c Config) Frames() int64 {
	return int64(math.Round(c.Duration * c.SampleRate))
}

// Automation changes a module while it runs. Apply is called before every
// tick with the time of that tick.
type Automation interface {
	Apply(m rack.Module, t float64) error
}

// Metric accumulates over recorded channels. v is ordered like
// Result.Outputs and must not be retained.
type Metric interface {
	Name() string
	Observe(t float64, v []float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(t float64, v []float64)
}

type Result struct {
	Outputs    []string
	Times      []float64
	Frames     [][]float64
	Metrics    map[string]float64
	StepsTaken int64
	Errors     []error
}

// Channel returns the recorded voltages of one output.
func (r *Result) Channel(name string) ([]float64, error) {
	col := -1
	for i, o := range r.Outputs {
		if o == name {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("%w: %s was not recorded", rack.ErrUnknownPort, name)
	}

	out := make([]float64, len(r.Frames))
	for i, f := range r.Frames {
		out[i] = f[col]
	}
	return out, nil
}
