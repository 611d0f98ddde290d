// Package algorithms generates instrumented traces for textbook sorting
// algorithms.
//
// Each algorithm runs against a [Recorder], which performs the real
// comparisons and exchanges on a private copy of the input and records
// them as [trace.Event] values. The resulting trace is deterministic for
// a given input and always marks every index sorted exactly once.
//
// Merge sort merges in place by rotating elements with adjacent swaps,
// so every algorithm is expressible with compare, swap and mark-sorted
// events alone.
package algorithms
