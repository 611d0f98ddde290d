package tui

import "github.com/san-kum/sortviz/internal/trace"

func twoElementTrace() trace.Trace {
	return trace.Trace{
		Algorithm: "bubble",
		Initial:   []int{2, 1},
		Events: []trace.Event{
			trace.NewCompare(0, 1),
			trace.NewSwap(0, 1, []int{1, 2}),
			trace.NewMarkSorted(1),
			trace.NewMarkSorted(0),
		},
		Final: []int{1, 2},
	}
}
