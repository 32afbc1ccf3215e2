// Package viz renders lattice frames in the terminal.
//
//   - [Model]: bubbletea live view with a displacement heatmap, a braille
//     mesh or a rotating 3D surface, plus energy and probe history
//   - [Canvas]: braille pixel canvas; [DrawLattice] draws the deformed grid
//   - [Heatmap]: colored shade map of displacement magnitude
//   - [Recorder]: captures canvas frames into an animated GIF
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Rebuild the lattice from its configuration
//	+/-   - Scale dt
//	[ ]   - Halve/double steps per frame
//	V     - Cycle heatmap, mesh and surface views
//	X Y Z - Rotate the surface camera (shift reverses)
//	> <   - Zoom the surface camera
//	T     - Cycle color themes
//	G     - Toggle GIF recording (written to lattice.gif)
//	?     - Show help overlay
package viz
