package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/san-kum/attractors/internal/engine"
	"github.com/san-kum/attractors/internal/rack"
	"github.com/san-kum/attractors/internal/storage"
	"gopkg.in/yaml.v3"
)

const (
	DefaultModule     = "attractors"
	DefaultSampleRate = 44100.0
	DefaultDuration   = 5.0
	DefaultDecimate   = 1
)

var ErrInvalidConfig = errors.New("config: invalid")

// Config is one patch: a module, its knob and CV settings, the cables
// plugged into its outputs and how long to render it.
type Config struct {
	Module     string             `yaml:"module"`
	SampleRate float64            `yaml:"sample_rate"`
	Duration   float64            `yaml:"duration"`
	Decimate   int                `yaml:"decimate"`
	Seed       int64              `yaml:"seed,omitempty"`
	Params     map[string]float64 `yaml:"params,omitempty"`
	CV         map[string]float64 `yaml:"cv,omitempty"`
	Outputs    []string           `yaml:"outputs,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Module:     DefaultModule,
		SampleRate: DefaultSampleRate,
		Duration:   DefaultDuration,
		Decimate:   DefaultDecimate,
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a patch file on top of a copy of base. Keys the file leaves
// out keep base's value; params and cv merge per name, outputs are replaced.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: sample_rate must be positive, got %g", ErrInvalidConfig, c.SampleRate)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %g", ErrInvalidConfig, c.Duration)
	}
	if c.Decimate < 1 {
		return fmt.Errorf("%w: decimate must be at least 1, got %d", ErrInvalidConfig, c.Decimate)
	}
	if _, err := storage.WAVRate(c.SampleRate, c.Decimate); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if !slices.Contains(rack.Names(), c.Module) {
		return fmt.Errorf("%w: %w: %s", ErrInvalidConfig, rack.ErrUnknownModule, c.Module)
	}
	return nil
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Params = maps.Clone(c.Params)
	out.CV = maps.Clone(c.CV)
	out.Outputs = slices.Clone(c.Outputs)
	return &out
}

func (c *Config) Engine() engine.Config {
	cfg := engine.DefaultConfig()
	cfg.SampleRate = c.SampleRate
	cfg.Duration = c.Duration
	cfg.Decimate = c.Decimate
	return cfg
}

// Build creates the module and applies knobs, CV and cables. An empty
// output list leaves every output plugged.
func (c *Config) Build() (rack.Module, error) {
	m, err := rack.New(c.Module, rack.Options{Seed: c.Seed})
	if err != nil {
		return nil, err
	}

	for name, v := range c.Params {
		p, err := rack.FindParam(m, name)
		if err != nil {
			return nil, err
		}
		p.SetValue(v)
	}
	for name, v := range c.CV {
		p, err := rack.FindInput(m, name)
		if err != nil {
			return nil, err
		}
		p.Patch(v)
	}

	outputs := c.Outputs
	if len(outputs) == 0 {
		outputs = rack.PortNames(m.Outputs())
	}
	if err := rack.ConnectOutputs(m, outputs); err != nil {
		return nil, err
	}
	return m, nil
}
