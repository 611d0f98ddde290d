// Package trace defines the event vocabulary produced by sorting
// algorithms and consumed by the playback engine.
//
// The package defines the fundamental types for replaying a sort:
//
//   - [Kind]: the kind of step (compare, swap, mark sorted)
//   - [Event]: one step with the array positions it touches
//   - [Trace]: the ordered, finite sequence of events for one run
//
// # Example
//
//	tr, _ := algorithms.Generate("bubble", values)
//	if err := tr.Validate(); err != nil {
//		return err
//	}
//	engine.Load(tr, 50)
//
// # Invariants
//
// Every index lies in [0, len(Initial)). Once an index has been marked
// sorted it is never compared or swapped again. [Trace.Validate] checks
// both.
package trace
