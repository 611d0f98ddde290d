package metrics

import "github.com/san-kum/sortviz/internal/trace"

// Counter counts events of a single kind.
type Counter struct {
	name string
	kind trace.Kind
	n    int
}

func NewComparisons() *Counter {
	return &Counter{name: "comparisons", kind: trace.Compare}
}

func NewSwaps() *Counter {
	return &Counter{name: "swaps", kind: trace.Swap}
}

func NewMarks() *Counter {
	return &Counter{name: "sorted", kind: trace.MarkSorted}
}

func (c *Counter) Name() string { return c.name }

func (c *Counter) Observe(ev trace.Event) {
	if ev.Kind == c.kind {
		c.n++
	}
}

func (c *Counter) Value() float64 { return float64(c.n) }

func (c *Counter) Count() int { return c.n }

func (c *Counter) Reset() { c.n = 0 }
