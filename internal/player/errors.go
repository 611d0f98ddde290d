package player

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidState indicates a transport call that is illegal for the
	// current status. The call has no effect.
	ErrInvalidState = errors.New("player: invalid state for operation")

	// ErrInvalidSpeed indicates a speed outside [MinSpeed, MaxSpeed].
	ErrInvalidSpeed = errors.New("player: speed out of range")
)

// StateError wraps ErrInvalidState with the rejected operation.
type StateError struct {
	Op     string
	Status Status
}

func (e *StateError) Error() string {
	return fmt.Sprintf("player: cannot %s while %s", e.Op, e.Status)
}

func (e *StateError) Unwrap() error {
	return ErrInvalidState
}

func validateSpeed(speed int) error {
	if speed < MinSpeed || speed > MaxSpeed {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidSpeed, speed, MinSpeed, MaxSpeed)
	}
	return nil
}
