package integrators

import "github.com/san-kum/attractors/internal/dynamo"

// Euler is the forward-Euler stepper the rack runs at audio rate.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Name() string { return "euler" }

func (e *Euler) Step(sys *dynamo.System, dt float64) {
	sys.Advance(dt)
}
