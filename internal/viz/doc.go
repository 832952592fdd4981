// Package viz renders a spring live in the terminal.
//
// [Host] adapts Bubble Tea's message loop to the spring's frame scheduler:
// each requested frame becomes a tea.Tick, and the callbacks run inside
// Update, so the spring is only ever touched from the program goroutine.
// [Model] draws the spring on a Braille [Canvas] with a value history chart.
//
// # Key Bindings
//
//	Space - Send the spring to the other end
//	R     - Reset to the start value
//	P     - Cycle presets on the moving spring
//	S     - Stop where it is
//	T     - Cycle color themes
//	?     - Toggle full help
//	Q     - Quit
package viz
