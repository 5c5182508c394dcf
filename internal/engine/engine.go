package engine

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/rack"
)

// ctxCheckInterval is how many frames pass between cancellation checks.
const ctxCheckInterval = 1024

// Engine is an offline host: it ticks one module as fast as it can.
type Engine struct {
	module     rack.Module
	automation Automation
	metrics    []Metric
	observers  []Observer
}

func New(m rack.Module) *Engine {
	return &Engine{
		module:    m,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (e *Engine) Module() rack.Module        { return e.module }
func (e *Engine) SetAutomation(a Automation) { e.automation = a }
func (e *Engine) AddMetric(m Metric)         { e.metrics = append(e.metrics, m) }
func (e *Engine) AddObserver(o Observer)     { e.observers = append(e.observers, o) }

func (e *Engine) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ports, err := e.recordPorts(cfg.Record)
	if err != nil {
		return nil, err
	}

	frames := cfg.Frames()
	capacity := frames/int64(cfg.Decimate) + 1
	result := &Result{
		Outputs: rack.PortNames(ports),
		Times:   make([]float64, 0, capacity),
		Frames:  make([][]float64, 0, capacity),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range e.metrics {
		m.Reset()
	}

	args := rack.NewProcessArgs(cfg.SampleRate, 0)
	buf := make([]float64, len(ports))

	for frame := int64(0); frame < frames; frame++ {
		if frame%ctxCheckInterval == 0 {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			default:
			}
		}

		t := float64(frame) * args.SampleTime
		if e.automation != nil {
			if err := e.automation.Apply(e.module, t); err != nil {
				return result, fmt.Errorf("frame %d: %w", frame, err)
			}
		}

		args.Frame = frame
		e.module.Process(args)

		valid := true
		for i, p := range ports {
			buf[i] = p.Voltage()
			if math.IsNaN(buf[i]) || math.IsInf(buf[i], 0) {
				valid = false
			}
		}
		if cfg.ValidateOutputs && !valid {
			result.Errors = append(result.Errors, &dynamo.SimulationError{
				Step:    int(frame),
				Time:    t,
				Wrapped: dynamo.ErrInvalidState,
			})
			break
		}

		for _, m := range e.metrics {
			m.Observe(t, buf)
		}
		for _, o := range e.observers {
			o.OnFrame(t, buf)
		}

		if frame%int64(cfg.Decimate) == 0 {
			row := make([]float64, len(buf))
			copy(row, buf)
			result.Frames = append(result.Frames, row)
			result.Times = append(result.Times, t)
		}
		result.StepsTaken++
	}

	for _, m := range e.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (e *Engine) recordPorts(names []string) ([]*rack.Port, error) {
	if len(names) == 0 {
		return rack.ConnectedOutputs(e.module), nil
	}
	ports := make([]*rack.Port, 0, len(names))
	for _, n := range names {
		p, err := rack.FindOutput(e.module, n)
		if err != nil {
			return nil, err
		}
		ports = append(ports, p)
	}
	return ports, nil
}
