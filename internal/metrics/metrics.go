package metrics

import "github.com/san-kum/sortviz/internal/trace"

// Metric accumulates a value over a stream of trace events.
type Metric interface {
	Name() string
	Observe(ev trace.Event)
	Value() float64
	Reset()
}

// Default returns a fresh set of the metrics shown in the stats panel.
func Default() []Metric {
	return []Metric{
		NewComparisons(),
		NewSwaps(),
		NewMarks(),
		NewSwapRatio(),
	}
}

// Collect feeds events to every metric and returns their values by name.
// Metrics are not reset first.
func Collect(events []trace.Event, ms ...Metric) map[string]float64 {
	for _, ev := range events {
		for _, m := range ms {
			m.Observe(ev)
		}
	}
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}

// Operations returns the cumulative number of compares and swaps after
// each event. Mark events repeat the previous value.
func Operations(events []trace.Event) []float64 {
	series := make([]float64, len(events))
	ops := 0.0
	for i, ev := range events {
		if ev.Kind == trace.Compare || ev.Kind == trace.Swap {
			ops++
		}
		series[i] = ops
	}
	return series
}

// Tally counts compare, swap and mark events in events[:cursor].
type Tally struct {
	Comparisons int
	Swaps       int
	Marks       int
}

func TallyAt(tr trace.Trace, cursor int) Tally {
	if cursor > tr.Len() {
		cursor = tr.Len()
	}
	var t Tally
	for _, ev := range tr.Events[:max(cursor, 0)] {
		switch ev.Kind {
		case trace.Compare:
			t.Comparisons++
		case trace.Swap:
			t.Swaps++
		case trace.MarkSorted:
			t.Marks++
		}
	}
	return t
}
