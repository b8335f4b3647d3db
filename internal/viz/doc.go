// Package viz turns simulated trajectories into frames and plays them in
// the terminal.
//
// A [Renderer] fits one [Viewport] around every finite XY point of the
// drawn bodies and plans an [Animation]: one [Frame] per history index,
// shown at (i+1) times the frame duration. Frames are drawn onto a
// braille [Canvas] without clearing, so bodies leave their paths behind.
// [Player] is the Bubble Tea model that consumes the [Timeline] once.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	Q     - Quit
package viz
