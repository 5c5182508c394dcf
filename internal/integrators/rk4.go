package integrators

import "github.com/san-kum/attractors/internal/dynamo"

// RK4 integrates the same scaled vector field as [dynamo.System.Advance]
// with the classic fourth-order Runge-Kutta scheme. It serves as a
// reference trajectory; the rack never uses it.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Name() string { return "rk4" }

func (r *RK4) Step(sys *dynamo.System, dt float64) {
	x := sys.State

	k1 := sys.Velocity(x)
	k2 := sys.Velocity(axpy(x, k1, dt*0.5))
	k3 := sys.Velocity(axpy(x, k2, dt*0.5))
	k4 := sys.Velocity(axpy(x, k3, dt))

	dt6 := dt / 6.0
	sys.State = dynamo.State{
		X: x.X + dt6*(k1.X+2*k2.X+2*k3.X+k4.X),
		Y: x.Y + dt6*(k1.Y+2*k2.Y+2*k3.Y+k4.Y),
		Z: x.Z + dt6*(k1.Z+2*k2.Z+2*k3.Z+k4.Z),
	}
}

// Heun is the explicit trapezoidal (improved Euler) method.
type Heun struct{}

func NewHeun() *Heun {
	return &Heun{}
}

func (h *Heun) Name() string { return "heun" }

func (h *Heun) Step(sys *dynamo.System, dt float64) {
	x := sys.State
	k1 := sys.Velocity(x)
	k2 := sys.Velocity(axpy(x, k1, dt))

	half := dt * 0.5
	sys.State = dynamo.State{
		X: x.X + half*(k1.X+k2.X),
		Y: x.Y + half*(k1.Y+k2.Y),
		Z: x.Z + half*(k1.Z+k2.Z),
	}
}

// axpy returns x + a*v.
func axpy(x, v dynamo.State, a float64) dynamo.State {
	return dynamo.State{X: x.X + a*v.X, Y: x.Y + a*v.Y, Z: x.Z + a*v.Z}
}
