// Package analysis provides chaos and signal analysis tools.
//
//   - [LyapunovExponent]: largest Lyapunov exponent via trajectory separation
//   - [BifurcationDiagram]: parameter sweep recording local maxima
//   - [GeneratePhasePortrait], [PortraitFromSignals]: 2D phase space plots
//   - [GeneratePoincareSection]: crossings of a plane
//   - [PowerSpectrum], [DominantFrequency]: spectra of rendered outputs
//
// # Chaos Detection
//
// A positive largest Lyapunov exponent indicates chaotic dynamics:
//
//	lambda := analysis.LyapunovExponent(physics.NewLorenz(), 1.0/44100, 1, 1e-8)
//	if lambda > 0 {
//	    // System is chaotic
//	}
package analysis
