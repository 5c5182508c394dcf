// Package physics defines the chaotic systems driven by the rack.
//
// Each system is a [dynamo.Definition] with its derivative, parameter
// ranges and time-scale constant:
//
//   - [Lorenz]: butterfly attractor, sigma/beta/rho/pitch, scale 375
//   - [Rossler]: spiral attractor, a/b/c/pitch, scale 2910
//
// Both start from the seed (1, 1, 1); the origin is a fixed point of
// Lorenz and collapses Rössler onto a symmetric orbit.
//
//	sys := physics.NewRossler()
//	sys.Coeffs[physics.RosslerC] = 9
//	sys.Advance(1.0 / 48000)
package physics
