package physics

import "github.com/san-kum/attractors/internal/dynamo"

// Lorenz parameter slots.
const (
	LorenzSigma = iota
	LorenzBeta
	LorenzRho
	LorenzPitch
)

// LorenzTimeScale maps the audio-rate step onto the attractor's natural
// time so the orbit lands in an audible range. Tuned by ear; keep exact.
const LorenzTimeScale = 375.0

var Lorenz = &dynamo.Definition{
	Kind: dynamo.KindLorenz,
	Params: [dynamo.NumParams]dynamo.ParamSpec{
		{Name: "sigma", Min: 3, Max: 30, Default: 10},
		{Name: "beta", Min: 0.5, Max: 3, Default: 8.0 / 3.0},
		{Name: "rho", Min: 13, Max: 80, Default: 28},
		{Name: "pitch", Min: 0.001, Max: 1, Default: 0.5},
	},
	TimeScale: LorenzTimeScale,
	Derive:    deriveLorenz,
	Seed:      dynamo.State{X: 1, Y: 1, Z: 1},
}

func NewLorenz() *dynamo.System { return dynamo.New(Lorenz) }

// deriveLorenz calculates the Lorenz attractor derivatives.
func deriveLorenz(c dynamo.Coefficients, s dynamo.State) dynamo.State {
	sigma, beta, rho := c[LorenzSigma], c[LorenzBeta], c[LorenzRho]
	return dynamo.State{
		X: sigma * (s.Y - s.X),
		Y: s.X*(rho-s.Z) - s.Y,
		Z: s.X*s.Y - beta*s.Z,
	}
}
