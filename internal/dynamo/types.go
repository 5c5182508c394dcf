package dynamo

import (
	"fmt"
	"math"
	"strings"
)

// Kind tags the chaotic system a Definition describes.
type Kind int

const (
	KindLorenz Kind = iota
	KindRossler
)

func (k Kind) String() string {
	switch k {
	case KindLorenz:
		return "lorenz"
	case KindRossler:
		return "rossler"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind accepts "lorenz" and "rossler" (also "rössler"), case-insensitive.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lorenz":
		return KindLorenz, nil
	case "rossler", "rössler":
		return KindRossler, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSystem, s)
}

// State is a point in the three-dimensional phase space.
type State struct {
	X, Y, Z float64
}

func (s State) IsValid() bool {
	for _, v := range [3]float64{s.X, s.Y, s.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Sub(o State) State {
	return State{s.X - o.X, s.Y - o.Y, s.Z - o.Z}
}

func (s State) Norm() float64 {
	return math.Sqrt(s.X*s.X + s.Y*s.Y + s.Z*s.Z)
}

// Axis returns the component for 0 (x), 1 (y) or 2 (z).
func (s State) Axis(i int) float64 {
	switch i {
	case 0:
		return s.X
	case 1:
		return s.Y
	default:
		return s.Z
	}
}

// Coefficients holds the three system-specific ODE constants in
// definition order (sigma, beta, rho for Lorenz; a, b, c for Rössler).
type Coefficients [3]float64

// DeriveFunc evaluates the unscaled vector field at s.
type DeriveFunc func(c Coefficients, s State) State

// ParamSpec names one parameter and its valid closed interval.
type ParamSpec struct {
	Name    string
	Min     float64
	Max     float64
	Default float64
}

// Clamp limits v to [Min, Max].
func (p ParamSpec) Clamp(v float64) float64 {
	if v < p.Min {
		return p.Min
	}
	if v > p.Max {
		return p.Max
	}
	return v
}

func (p ParamSpec) Contains(v float64) bool {
	return v >= p.Min && v <= p.Max
}

// PitchIndex is the parameter slot shared by every definition.
const PitchIndex = 3

// NumParams is the number of parameters of every definition.
const NumParams = 4

// Definition is the immutable description of one attractor.
type Definition struct {
	Kind Kind
	// Params lists the three coefficients followed by pitch.
	Params    [NumParams]ParamSpec
	TimeScale float64
	Derive    DeriveFunc
	Seed      State
}

// ParamIndex returns the slot of the named parameter.
func (d *Definition) ParamIndex(name string) (int, error) {
	for i, p := range d.Params {
		if p.Name == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s has no %q", ErrUnknownParam, d.Kind, name)
}

// ParamNames returns parameter names in slot order.
func (d *Definition) ParamNames() []string {
	names := make([]string, NumParams)
	for i, p := range d.Params {
		names[i] = p.Name
	}
	return names
}
