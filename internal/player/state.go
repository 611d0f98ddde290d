package player

import "fmt"

type Status int

const (
	Idle Status = iota
	Running
	Paused
	Completed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Completed:
		return "completed"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// State is an immutable copy of the engine's playback state.
type State struct {
	Algorithm string
	Cursor    int
	Total     int
	Status    Status
	Speed     int
	Comparing []int
	Swapping  []int
	Sorted    []int
	Array     []int
}

func (s State) IsComparing(i int) bool { return contains(s.Comparing, i) }
func (s State) IsSwapping(i int) bool  { return contains(s.Swapping, i) }
func (s State) IsSorted(i int) bool    { return contains(s.Sorted, i) }

// Progress returns the fraction of events applied, 1 for an empty trace.
func (s State) Progress() float64 {
	if s.Total == 0 {
		return 1
	}
	return float64(s.Cursor) / float64(s.Total)
}

func contains(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
