package automation

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/attractors/internal/rack"
	"gopkg.in/yaml.v3"
)

var ErrInvalidScenario = errors.New("automation: invalid scenario")

// Scenario is a timed list of knob, CV and cable changes applied to one
// module while it renders.
type Scenario struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Module      string  `yaml:"module"`
	Duration    float64 `yaml:"duration"`
	Steps       []Step  `yaml:"steps"`

	next int
}

// Step fires once, on the first tick at or after At seconds.
type Step struct {
	At         float64            `yaml:"at"`
	Params     map[string]float64 `yaml:"params"`
	CV         map[string]float64 `yaml:"cv"`
	Connect    []string           `yaml:"connect"`
	Disconnect []string           `yaml:"disconnect"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if scenario.Module == "" {
		scenario.Module = "attractors"
	}

	return &scenario, nil
}

// Validate checks step order and that every name exists on m.
func (s *Scenario) Validate(m rack.Module) error {
	prev := 0.0
	for i, st := range s.Steps {
		if st.At < prev {
			return fmt.Errorf("%w: step %d at %gs comes before %gs", ErrInvalidScenario, i+1, st.At, prev)
		}
		prev = st.At

		for name := range st.Params {
			if _, err := rack.FindParam(m, name); err != nil {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
		}
		for name := range st.CV {
			if _, err := rack.FindInput(m, name); err != nil {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
		}
		for _, name := range append(append([]string{}, st.Connect...), st.Disconnect...) {
			if _, err := findPort(m, name); err != nil {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
		}
	}
	return nil
}

// Apply fires every pending step whose time has come, in order.
func (s *Scenario) Apply(m rack.Module, t float64) error {
	for s.next < len(s.Steps) && s.Steps[s.next].At <= t {
		if err := s.Steps[s.next].apply(m); err != nil {
			return fmt.Errorf("step %d: %w", s.next+1, err)
		}
		s.next++
	}
	return nil
}

// Reset rewinds the scenario so it can drive another render.
func (s *Scenario) Reset() { s.next = 0 }

// Pending is the number of steps not yet applied.
func (s *Scenario) Pending() int { return len(s.Steps) - s.next }

func (st *Step) apply(m rack.Module) error {
	for name, v := range st.Params {
		p, err := rack.FindParam(m, name)
		if err != nil {
			return err
		}
		p.SetValue(v)
	}
	for name, v := range st.CV {
		p, err := rack.FindInput(m, name)
		if err != nil {
			return err
		}
		p.Patch(v)
	}
	for _, name := range st.Connect {
		p, err := findPort(m, name)
		if err != nil {
			return err
		}
		p.Connect(true)
	}
	for _, name := range st.Disconnect {
		p, err := findPort(m, name)
		if err != nil {
			return err
		}
		p.Connect(false)
	}
	return nil
}

// findPort resolves an output first, then an input.
func findPort(m rack.Module, name string) (*rack.Port, error) {
	if p, err := rack.FindOutput(m, name); err == nil {
		return p, nil
	}
	return rack.FindInput(m, name)
}
