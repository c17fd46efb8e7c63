// Package viz renders stored trajectories in the terminal.
//
// [Playback] is a Bubble Tea model that replays a run frame by frame, with
// per-compartment share bars, an asciigraph history of the selected
// compartment and a braille share-plane trace. The chart helpers produce
// static output for the plot command.
//
// # Key Bindings
//
//	Space   - Pause/Resume playback
//	R       - Restart from the first grid point
//	[ ]     - Scrub backwards/forwards
//	+ -     - Change playback speed
//	Tab     - Cycle the selected compartment
//	S       - Toggle absolute sizes and shares
//	T       - Cycle color themes
//	?       - Show help
package viz
