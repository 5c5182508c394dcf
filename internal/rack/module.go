package rack

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrUnknownModule = errors.New("rack: unknown module")
	ErrUnknownPort   = errors.New("rack: unknown param or port")
)

// ProcessArgs is what the host hands a module on every tick.
type ProcessArgs struct {
	SampleRate float64
	SampleTime float64
	Frame      int64
}

func NewProcessArgs(sampleRate float64, frame int64) ProcessArgs {
	return ProcessArgs{SampleRate: sampleRate, SampleTime: 1 / sampleRate, Frame: frame}
}

// Module is a unit the host ticks once per sample.
type Module interface {
	Name() string
	Params() []*Param
	Inputs() []*Port
	Outputs() []*Port
	Process(args ProcessArgs)
}

// Options configures module construction.
type Options struct {
	// Seed drives modules with a random source. Zero picks a fixed seed.
	Seed int64
}

var factories = map[string]func(Options) Module{
	"attractors": func(Options) Module { return NewStrangeAttractors() },
	"noise":      func(o Options) Module { return NewNoise(o.Seed) },
}

func New(name string, opts Options) (Module, error) {
	fn, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownModule, name)
	}
	return fn(opts), nil
}

// Names lists registered modules, sorted.
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func FindParam(m Module, name string) (*Param, error) {
	for _, p := range m.Params() {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: param %q on %s", ErrUnknownPort, name, m.Name())
}

func FindInput(m Module, name string) (*Port, error) {
	return findPort(m, m.Inputs(), "input", name)
}

func FindOutput(m Module, name string) (*Port, error) {
	return findPort(m, m.Outputs(), "output", name)
}

func findPort(m Module, ports []*Port, kind, name string) (*Port, error) {
	for _, p := range ports {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s %q on %s", ErrUnknownPort, kind, name, m.Name())
}

// PortNames returns the names of ports in order.
func PortNames(ports []*Port) []string {
	names := make([]string, len(ports))
	for i, p := range ports {
		names[i] = p.Name
	}
	return names
}

// ConnectOutputs plugs exactly the named outputs and unplugs the rest.
func ConnectOutputs(m Module, names []string) error {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		if _, err := FindOutput(m, n); err != nil {
			return err
		}
		want[n] = true
	}
	for _, p := range m.Outputs() {
		p.Connect(want[p.Name])
	}
	return nil
}

// ConnectedOutputs returns the plugged output ports in declaration order.
func ConnectedOutputs(m Module) []*Port {
	var out []*Port
	for _, p := range m.Outputs() {
		if p.IsConnected() {
			out = append(out, p)
		}
	}
	return out
}
