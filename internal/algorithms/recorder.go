package algorithms

import "github.com/san-kum/sortviz/internal/trace"

// Recorder executes a sort on a private array and records each step.
type Recorder struct {
	a      []int
	events []trace.Event
	sorted []bool
}

func NewRecorder(values []int) *Recorder {
	a := make([]int, len(values))
	copy(a, values)
	return &Recorder{a: a, sorted: make([]bool, len(values))}
}

func (r *Recorder) Len() int { return len(r.a) }

// Value returns the current value at i without recording a comparison.
func (r *Recorder) Value(i int) int { return r.a[i] }

// Less records a comparison and reports whether a[i] < a[j].
func (r *Recorder) Less(i, j int) bool {
	r.events = append(r.events, trace.NewCompare(i, j))
	return r.a[i] < r.a[j]
}

// Greater records a comparison and reports whether a[i] > a[j].
func (r *Recorder) Greater(i, j int) bool {
	r.events = append(r.events, trace.NewCompare(i, j))
	return r.a[i] > r.a[j]
}

func (r *Recorder) Swap(i, j int) {
	r.a[i], r.a[j] = r.a[j], r.a[i]
	r.events = append(r.events, trace.NewSwap(i, j, r.a))
}

// Mark finalizes index i. Repeated marks are dropped.
func (r *Recorder) Mark(i int) {
	if r.sorted[i] {
		return
	}
	r.sorted[i] = true
	r.events = append(r.events, trace.NewMarkSorted(i))
}

// MarkAll finalizes every index not yet marked, in ascending order.
func (r *Recorder) MarkAll() {
	for i := range r.a {
		r.Mark(i)
	}
}

func (r *Recorder) trace(name string, initial []int) trace.Trace {
	r.MarkAll()
	init := make([]int, len(initial))
	copy(init, initial)
	final := make([]int, len(r.a))
	copy(final, r.a)
	return trace.Trace{
		Algorithm: name,
		Initial:   init,
		Events:    r.events,
		Final:     final,
	}
}
