// Package viz is the interactive terminal front end built on Bubble Tea.
//
//   - [App]: algorithm menu leading to the playback screen
//   - [Model]: bar chart, transport controls, statistics and info panel
//   - [Canvas]: Braille canvas used for the compact two-bars-per-column view
//   - Theme selection with 5 built-in colour schemes
//
// The model never mutates playback state directly. It calls the engine's
// transport operations on key presses and polls Engine.State once per
// frame.
//
// # Key Bindings
//
//	Space - Start / pause / continue
//	N     - New array (disabled while sorting)
//	R     - Reset playback
//	S     - Single step
//	+/-   - Speed up / slow down by 5%
//	←/→   - Switch algorithm
//	I     - Toggle algorithm info
//	C     - Toggle compact bars
//	T     - Cycle colour themes
//	?     - Show help overlay
package viz
