// Package player replays a sorting [trace.Trace] over time.
//
// An [Engine] advances through the trace one event per scheduled tick,
// maintaining three highlight sets (comparing, swapping, sorted) and the
// current array values. Transport operations (Start, Pause, Reset, Step,
// SetSpeed, Load) are serialized through a single mutex; renderers read
// copies through [Engine.State] or receive them via [Engine.Subscribe].
//
// # Timing
//
// Each advance is a one-shot callback from a [Scheduler]. The delay
// between advances is
//
//	base * (101 - speed) / 100
//
// floored at the minimum delay. At most one callback is outstanding.
//
// # Cancellation
//
// Load, Reset and Pause bump a generation counter. A callback that fires
// with a stale generation, or while the engine is not running, returns
// without touching state.
package player
