// Package viz renders ocean snapshots for people.
//
//   - [HeatMap]: terminal heat map of H with one flow glyph per cell
//   - [Recorder]: animated GIF of H, one frame per burst
//   - [Dump]: plain text dump of every engine array
//   - [Model]: Bubble Tea live viewer that owns an engine and steps it
//
// Everything here reads snapshots; only [Model] calls Advance, and only
// between frames.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Reset to the initial state
//	+ -   - Double/halve the burst size
//	G     - Toggle GIF recording
//	Q     - Quit
package viz
