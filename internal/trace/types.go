package trace

import "fmt"

type Kind int

const (
	Compare Kind = iota
	Swap
	MarkSorted
)

func (k Kind) String() string {
	switch k {
	case Compare:
		return "compare"
	case Swap:
		return "swap"
	case MarkSorted:
		return "mark_sorted"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Arity returns how many indices an event of this kind carries.
func (k Kind) Arity() int {
	if k == MarkSorted {
		return 1
	}
	return 2
}

func ParseKind(s string) (Kind, error) {
	switch s {
	case "compare":
		return Compare, nil
	case "swap":
		return Swap, nil
	case "mark_sorted":
		return MarkSorted, nil
	}
	return 0, fmt.Errorf("trace: unknown event kind %q", s)
}

type Event struct {
	Kind    Kind
	Indices []int
	// Snapshot is the full array after the event has been applied. It is
	// optional; swaps without one are applied in place.
	Snapshot []int
}

func NewCompare(i, j int) Event { return Event{Kind: Compare, Indices: []int{i, j}} }

func NewSwap(i, j int, after []int) Event {
	return Event{Kind: Swap, Indices: []int{i, j}, Snapshot: cloneInts(after)}
}

func NewMarkSorted(i int) Event { return Event{Kind: MarkSorted, Indices: []int{i}} }

func (e Event) Clone() Event {
	return Event{Kind: e.Kind, Indices: cloneInts(e.Indices), Snapshot: cloneInts(e.Snapshot)}
}

func (e Event) String() string {
	return fmt.Sprintf("%s%v", e.Kind, e.Indices)
}

type Trace struct {
	Algorithm string
	Initial   []int
	Events    []Event
	Final     []int
}

func (t Trace) Len() int { return len(t.Events) }

func (t Trace) Clone() Trace {
	c := Trace{
		Algorithm: t.Algorithm,
		Initial:   cloneInts(t.Initial),
		Final:     cloneInts(t.Final),
	}
	if t.Events != nil {
		c.Events = make([]Event, len(t.Events))
		for i, e := range t.Events {
			c.Events[i] = e.Clone()
		}
	}
	return c
}

// Validate checks index bounds, arity, snapshot length and that no
// finalized index is touched again.
func (t Trace) Validate() error {
	n := len(t.Initial)
	sorted := make(map[int]struct{})

	for ei, e := range t.Events {
		switch e.Kind {
		case Compare, Swap, MarkSorted:
		default:
			return &Error{Event: ei, Index: -1, Reason: fmt.Sprintf("unknown kind %d", int(e.Kind))}
		}
		if len(e.Indices) != e.Kind.Arity() {
			return &Error{Event: ei, Index: -1, Reason: fmt.Sprintf("%s expects %d indices, got %d", e.Kind, e.Kind.Arity(), len(e.Indices))}
		}
		for _, idx := range e.Indices {
			if idx < 0 || idx >= n {
				return &Error{Event: ei, Index: idx, Reason: fmt.Sprintf("out of range [0, %d)", n)}
			}
			if e.Kind != MarkSorted {
				if _, done := sorted[idx]; done {
					return &Error{Event: ei, Index: idx, Reason: "touched after being marked sorted"}
				}
			}
		}
		if e.Snapshot != nil && len(e.Snapshot) != n {
			return &Error{Event: ei, Index: -1, Reason: fmt.Sprintf("snapshot has %d values, want %d", len(e.Snapshot), n)}
		}
		if e.Kind == MarkSorted {
			sorted[e.Indices[0]] = struct{}{}
		}
	}
	return nil
}

func cloneInts(s []int) []int {
	if s == nil {
		return nil
	}
	c := make([]int, len(s))
	copy(c, s)
	return c
}
