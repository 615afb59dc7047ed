// Package viz is the terminal live view of a running system, built on Bubble
// Tea.
//
//   - [Model]: steps a [sim.System] on every frame and draws it top-down
//   - [Menu]: preset picker that starts a Model
//   - [Canvas]: braille dot canvas used for the drawing
//
// # Key Bindings
//
//	Space     pause / resume
//	Up/Down   scale the timestep by 1.1 / 0.9
//	Tab       focus the next body
//	f         focus Earth
//	+/-       zoom
//	g         toggle GIF recording
//	q         quit
package viz
