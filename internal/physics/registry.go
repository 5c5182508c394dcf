package physics

import (
	"fmt"

	"github.com/san-kum/attractors/internal/dynamo"
)

// Definitions lists every attractor in kind order.
var Definitions = []*dynamo.Definition{Lorenz, Rossler}

// ByKind returns the definition tagged k.
func ByKind(k dynamo.Kind) (*dynamo.Definition, error) {
	for _, d := range Definitions {
		if d.Kind == k {
			return d, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", dynamo.ErrUnknownSystem, k)
}

// ByName parses name with [dynamo.ParseKind] and returns its definition.
func ByName(name string) (*dynamo.Definition, error) {
	k, err := dynamo.ParseKind(name)
	if err != nil {
		return nil, err
	}
	return ByKind(k)
}

// NewSystem builds a fresh system for name.
func NewSystem(name string) (*dynamo.System, error) {
	def, err := ByName(name)
	if err != nil {
		return nil, err
	}
	return dynamo.New(def), nil
}
