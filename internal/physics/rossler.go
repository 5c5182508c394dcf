package physics

import "github.com/san-kum/attractors/internal/dynamo"

// Rössler parameter slots.
const (
	RosslerA = iota
	RosslerB
	RosslerC
	RosslerPitch
)

// RosslerTimeScale is the Rössler counterpart of LorenzTimeScale.
const RosslerTimeScale = 2910.0

var Rossler = &dynamo.Definition{
	Kind: dynamo.KindRossler,
	Params: [dynamo.NumParams]dynamo.ParamSpec{
		{Name: "a", Min: 0, Max: 0.2, Default: 0.2},
		{Name: "b", Min: 0.1, Max: 1, Default: 0.2},
		{Name: "c", Min: 3, Max: 12, Default: 5.7},
		{Name: "pitch", Min: 0.001, Max: 1, Default: 0.5},
	},
	TimeScale: RosslerTimeScale,
	Derive:    deriveRossler,
	Seed:      dynamo.State{X: 1, Y: 1, Z: 1},
}

func NewRossler() *dynamo.System { return dynamo.New(Rossler) }

// deriveRossler calculates the Rossler attractor derivatives.
func deriveRossler(c dynamo.Coefficients, s dynamo.State) dynamo.State {
	a, b, cc := c[RosslerA], c[RosslerB], c[RosslerC]
	return dynamo.State{
		X: -s.Y - s.Z,
		Y: s.X + a*s.Y,
		Z: b + s.Z*(s.X-cc),
	}
}
