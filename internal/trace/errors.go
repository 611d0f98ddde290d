package trace

import (
	"errors"
	"fmt"
)

// ErrInvalidTrace indicates a malformed trace (bad index, arity or snapshot).
var ErrInvalidTrace = errors.New("trace: invalid trace")

// Error wraps ErrInvalidTrace with the offending event.
type Error struct {
	Event  int
	Index  int
	Reason string
}

func (e *Error) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("trace: event %d (index %d): %s", e.Event, e.Index, e.Reason)
	}
	return fmt.Sprintf("trace: event %d: %s", e.Event, e.Reason)
}

func (e *Error) Unwrap() error {
	return ErrInvalidTrace
}
