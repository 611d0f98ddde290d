package player

import (
	"sync"
	"time"
)

// Timer is a pending one-shot callback.
type Timer interface {
	Stop() bool
}

// Scheduler creates one-shot deferred callbacks.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealScheduler schedules callbacks on the runtime timer.
func RealScheduler() Scheduler { return realScheduler{} }

// ManualScheduler never fires on its own; callers fire timers explicitly.
// It makes playback deterministic in tests and headless tooling.
type ManualScheduler struct {
	mu     sync.Mutex
	timers []*ManualTimer
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	t := &ManualTimer{Delay: d, f: f}
	s.mu.Lock()
	s.timers = append(s.timers, t)
	s.mu.Unlock()
	return t
}

// Next returns the oldest timer that is neither stopped nor fired.
func (s *ManualScheduler) Next() *ManualTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.timers {
		if t.live() {
			return t
		}
	}
	return nil
}

// Last returns the most recently scheduled timer, live or not.
func (s *ManualScheduler) Last() *ManualTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.timers) == 0 {
		return nil
	}
	return s.timers[len(s.timers)-1]
}

// Pending counts live timers.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if t.live() {
			n++
		}
	}
	return n
}

// Advance fires the next live timer. It reports false when none is left.
func (s *ManualScheduler) Advance() bool {
	t := s.Next()
	if t == nil {
		return false
	}
	t.Fire()
	return true
}

// RunUntilIdle fires timers until none is live or max is reached and
// returns how many fired.
func (s *ManualScheduler) RunUntilIdle(max int) int {
	n := 0
	for n < max && s.Advance() {
		n++
	}
	return n
}

type ManualTimer struct {
	Delay time.Duration

	mu      sync.Mutex
	f       func()
	stopped bool
	fired   bool
}

func (t *ManualTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	wasLive := !t.stopped && !t.fired
	t.stopped = true
	return wasLive
}

// Fire runs the callback even if the timer was stopped, the way a
// runtime timer that already started firing would.
func (t *ManualTimer) Fire() {
	t.mu.Lock()
	t.fired = true
	f := t.f
	t.mu.Unlock()
	f()
}

func (t *ManualTimer) Stopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

func (t *ManualTimer) live() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.stopped && !t.fired
}
