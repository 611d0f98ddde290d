package player

import "context"

// Run starts the engine and blocks until playback completes or ctx is
// done. On cancellation the engine is paused and ctx.Err() is returned.
// A Reset or Load from another goroutine during Run leaves it waiting
// for ctx.
func Run(ctx context.Context, e *Engine) (State, error) {
	done := make(chan State, 1)
	unsubscribe := e.Subscribe(func(s State) {
		if s.Status == Completed {
			select {
			case done <- s:
			default:
			}
		}
	})
	defer unsubscribe()

	if err := e.Start(); err != nil {
		return e.State(), err
	}

	select {
	case s := <-done:
		return s, nil
	case <-ctx.Done():
		_ = e.Pause()
		return e.State(), ctx.Err()
	}
}
