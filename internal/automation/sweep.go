package automation

import (
	"context"
	"fmt"

	"github.com/san-kum/attractors/internal/engine"
	"github.com/san-kum/attractors/internal/metrics"
	"github.com/san-kum/attractors/internal/rack"
)

// ParameterSweep renders the same patch once per knob value.
type ParameterSweep struct {
	Module    string
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
	Outputs   []string
	Config    engine.Config

	// Build, when set, returns a freshly patched module for every step and
	// replaces Module and Outputs.
	Build func() (rack.Module, error)
}

func (sw *ParameterSweep) build() (rack.Module, error) {
	if sw.Build != nil {
		return sw.Build()
	}
	m, err := rack.New(sw.Module, rack.Options{})
	if err != nil {
		return nil, err
	}
	if err := rack.ConnectOutputs(m, sw.Outputs); err != nil {
		return nil, err
	}
	return m, nil
}

// SweepResult holds the metrics of one render in a sweep.
type SweepResult struct {
	ParamValue float64
	Metrics    map[string]float64
	StepsTaken int64
}

// RunSweep executes a parameter sweep
func RunSweep(ctx context.Context, sweep *ParameterSweep) ([]SweepResult, error) {
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("%w: sweep needs at least 2 steps", ErrInvalidScenario)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	paramStep := (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)

	for i := 0; i < sweep.NumSteps; i++ {
		m, err := sweep.build()
		if err != nil {
			return nil, err
		}

		paramVal := sweep.ParamMin + float64(i)*paramStep
		p, err := rack.FindParam(m, sweep.ParamName)
		if err != nil {
			return nil, err
		}
		p.SetValue(paramVal)

		e := engine.New(m)
		for _, mt := range metrics.Defaults(rack.PortNames(rack.ConnectedOutputs(m))) {
			e.AddMetric(mt)
		}

		result, err := e.Run(ctx, sweep.Config)
		if err != nil {
			return nil, err
		}

		results = append(results, SweepResult{
			ParamValue: p.Value(),
			Metrics:    result.Metrics,
			StepsTaken: result.StepsTaken,
		})
	}

	return results, nil
}
