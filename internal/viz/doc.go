// Package viz provides the terminal scope for rack modules.
//
// [Monitor] is a Bubble Tea model that draws a braille [Canvas] phase
// portrait of a pair of outputs, or a rotating 3D trail of the attractor
// behind them, next to a meter per connected output. It only observes: knob,
// CV and cable changes belong to the patch or an automation scenario.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	Tab   - Next output pair
//	V     - Toggle 3D view (when the monitor owns the module)
//	T     - Cycle color themes
//	Q     - Quit
package viz
