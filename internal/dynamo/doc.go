// Package dynamo provides the numeric primitive shared by every attractor.
//
// A [Definition] describes one chaotic system: its [Kind] tag, the
// derivative function, four parameter specs (three coefficients plus
// pitch), a fixed time-scale constant and the seed state. A [System] is a
// mutable instance of a definition that is advanced with forward Euler:
//
//	sys := physics.NewLorenz()
//	for i := 0; i < n; i++ {
//	    sys.Advance(1.0 / 44100)
//	}
//	x, y := sys.State.X, sys.State.Y
//
// # Thread Safety
//
// A System is owned by exactly one goroutine. [System.Advance] never
// allocates, blocks or clamps its parameters; callers keep parameters in
// range and pass dt > 0.
package dynamo
