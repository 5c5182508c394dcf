package analysis

import (
	"math"

	"github.com/san-kum/attractors/internal/dynamo"
)

// LyapunovExponent estimates the largest Lyapunov exponent, in 1/s of
// rendered time, by following a copy of sys displaced by perturbation in x
// and pulling it back to that distance after every step. A positive value
// indicates chaos. sys itself is not advanced.
//
//	λ ≈ Σ ln(|δ(t)|/|δ0|) / T
func LyapunovExponent(sys *dynamo.System, dt, duration, perturbation float64) float64 {
	if dt <= 0 || perturbation <= 0 {
		return 0
	}

	a := sys.Clone()
	b := sys.Clone()
	b.State.X += perturbation

	steps := int(math.Round(duration / dt))
	sumLog := 0.0
	count := 0

	for i := 0; i < steps; i++ {
		a.Advance(dt)
		b.Advance(dt)

		delta := b.State.Sub(a.State)
		sep := delta.Norm()
		if sep == 0 || math.IsNaN(sep) || math.IsInf(sep, 0) {
			continue
		}

		sumLog += math.Log(sep / perturbation)
		count++

		scale := perturbation / sep
		b.State = dynamo.State{
			X: a.State.X + delta.X*scale,
			Y: a.State.Y + delta.Y*scale,
			Z: a.State.Z + delta.Z*scale,
		}
	}

	if count == 0 {
		return 0
	}
	return sumLog / (float64(count) * dt)
}
