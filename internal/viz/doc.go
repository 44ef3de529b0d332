// Package viz renders a running population in the terminal.
//
// The live view is a Bubble Tea program that advances the simulation by
// exactly one tick per frame and draws it on a Braille [Canvas]:
//
//   - bodies as discs sized by sqrt(mass/100) in world units
//   - a fading [Trail] of recent positions per body
//   - a side panel with tick count, energy, momentum and an energy chart
//
// Body index i is bound to trail i for the lifetime of the model.
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	N     - Single tick while paused
//	R     - Reset to initial population
//	+/-   - Zoom in/out
//	Arrows/HJKL - Pan
//	C     - Recenter on center of mass
//	?     - Show help overlay
//	Q     - Quit
package viz
