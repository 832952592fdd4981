// Package frame provides the host collaborators an animation needs: a
// scheduler that runs a callback once on a future frame, and a clock that
// reports elapsed time in milliseconds.
//
//   - [Manual]: virtual clock and scheduler stepped explicitly by the caller
//   - [Loop]: real-time host firing callbacks at a fixed frame rate
//   - [SystemClock]: monotonic wall clock
//   - [Nop]: scheduler that never fires, for callers driving frames by hand
//
// # Threading
//
// Hosts are cooperative: callbacks run one at a time on the goroutine that
// drives the host ([Manual.Advance] or [Loop.Run]). Animations driven by a
// host must only be touched from that goroutine.
package frame
