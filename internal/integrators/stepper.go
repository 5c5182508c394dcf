package integrators

import (
	"errors"
	"fmt"

	"github.com/san-kum/attractors/internal/dynamo"
)

var ErrUnknownIntegrator = errors.New("integrators: unknown integrator")

// Stepper advances a system by dt in place.
type Stepper interface {
	Name() string
	Step(sys *dynamo.System, dt float64)
}

var registry = map[string]func() Stepper{
	"euler": func() Stepper { return NewEuler() },
	"heun":  func() Stepper { return NewHeun() },
	"rk4":   func() Stepper { return NewRK4() },
}

func ByName(name string) (Stepper, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownIntegrator, name)
	}
	return fn(), nil
}

// Report describes how two steppers drift apart from the same start.
type Report struct {
	// DivergedAt is the first step whose separation exceeded the
	// tolerance, or -1 if they stayed within it.
	DivergedAt int
	MaxSep     float64
	FinalA     dynamo.State
	FinalB     dynamo.State
}

// Divergence runs two copies of sys with a and b for steps steps of dt.
// sys itself is not modified.
func Divergence(sys *dynamo.System, a, b Stepper, dt float64, steps int, tol float64) Report {
	sa, sb := sys.Clone(), sys.Clone()
	rep := Report{DivergedAt: -1}

	for i := 0; i < steps; i++ {
		a.Step(sa, dt)
		b.Step(sb, dt)

		sep := sa.State.Sub(sb.State).Norm()
		if sep > rep.MaxSep {
			rep.MaxSep = sep
		}
		if rep.DivergedAt < 0 && sep > tol {
			rep.DivergedAt = i
		}
	}

	rep.FinalA, rep.FinalB = sa.State, sb.State
	return rep
}
