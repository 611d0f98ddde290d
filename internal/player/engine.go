package player

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/san-kum/sortviz/internal/log"
	"github.com/san-kum/sortviz/internal/trace"
)

const (
	MinSpeed = 1
	MaxSpeed = 100

	DefaultBaseDelay = 500 * time.Millisecond
	DefaultMinDelay  = time.Millisecond
)

type Option func(*Engine)

func WithScheduler(s Scheduler) Option { return func(e *Engine) { e.sched = s } }

func WithBaseDelay(d time.Duration) Option { return func(e *Engine) { e.baseDelay = d } }

func WithMinDelay(d time.Duration) Option { return func(e *Engine) { e.minDelay = d } }

func WithLogger(l *slog.Logger) Option { return func(e *Engine) { e.logger = l } }

// WithObserver registers fn for every state change, as Subscribe does.
func WithObserver(fn func(State)) Option {
	return func(e *Engine) { e.Subscribe(fn) }
}

// Engine is the playback state machine. It is safe for concurrent use;
// all mutation is serialized through mu.
type Engine struct {
	sched     Scheduler
	baseDelay time.Duration
	minDelay  time.Duration
	logger    *slog.Logger

	obsMu     sync.Mutex
	observers map[int]func(State)
	nextObs   int

	mu        sync.Mutex
	tr        trace.Trace
	loaded    bool
	array     []int
	cursor    int
	status    Status
	speed     int
	comparing []int
	swapping  []int
	sorted    map[int]struct{}
	gen       uint64
	pending   Timer

	// outbox holds snapshots in the order they were taken. Only the
	// goroutine that set delivering drains it.
	outbox     []State
	delivering bool
}

func New(opts ...Option) *Engine {
	e := &Engine{
		sched:     RealScheduler(),
		baseDelay: DefaultBaseDelay,
		minDelay:  DefaultMinDelay,
		logger:    slog.New(slog.DiscardHandler),
		observers: make(map[int]func(State)),
		speed:     50,
		sorted:    make(map[int]struct{}),
		comparing: make([]int, 0, 2),
		swapping:  make([]int, 0, 2),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Subscribe registers fn to receive a snapshot after every state change.
// Snapshots are delivered one at a time in the order the changes happened.
// fn runs outside the engine lock and may call back into the engine; the
// snapshots such calls produce are delivered after fn returns.
func (e *Engine) Subscribe(fn func(State)) (unsubscribe func()) {
	e.obsMu.Lock()
	id := e.nextObs
	e.nextObs++
	e.observers[id] = fn
	e.obsMu.Unlock()

	return func() {
		e.obsMu.Lock()
		delete(e.observers, id)
		e.obsMu.Unlock()
	}
}

// Load replaces the current trace. Any pending advance is cancelled. On
// error the engine is left exactly as it was.
func (e *Engine) Load(tr trace.Trace, speed int) error {
	if err := validateSpeed(speed); err != nil {
		return err
	}
	if err := tr.Validate(); err != nil {
		return err
	}

	e.mu.Lock()
	e.tr = tr.Clone()
	e.loaded = true
	e.speed = speed
	e.resetLocked()
	e.publishLocked()
	e.mu.Unlock()

	e.logger.Debug("trace loaded",
		log.AlgorithmKey, tr.Algorithm,
		log.EventsKey, tr.Len(),
		log.SpeedKey, speed,
	)
	e.deliver()
	return nil
}

func (e *Engine) Start() error {
	e.mu.Lock()
	if !e.loaded || e.status == Running || e.status == Completed {
		err := &StateError{Op: "start", Status: e.status}
		e.mu.Unlock()
		return err
	}

	if e.cursor == e.tr.Len() {
		e.status = Completed
		e.cancelLocked()
	} else {
		e.status = Running
		e.scheduleLocked()
	}
	snap := e.publishLocked()
	e.mu.Unlock()

	e.logger.Debug("playback started", log.CursorKey, snap.Cursor, log.StatusKey, snap.Status.String())
	e.deliver()
	return nil
}

func (e *Engine) Pause() error {
	e.mu.Lock()
	if e.status != Running {
		err := &StateError{Op: "pause", Status: e.status}
		e.mu.Unlock()
		return err
	}
	e.cancelLocked()
	e.status = Paused
	snap := e.publishLocked()
	e.mu.Unlock()

	e.logger.Debug("playback paused", log.CursorKey, snap.Cursor)
	e.deliver()
	return nil
}

// Reset returns to Idle at cursor 0 with empty highlights. It is valid in
// every state and idempotent.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.resetLocked()
	e.publishLocked()
	e.mu.Unlock()

	e.logger.Debug("playback reset")
	e.deliver()
}

// SetSpeed changes the delay used for advances scheduled from now on.
func (e *Engine) SetSpeed(speed int) error {
	if err := validateSpeed(speed); err != nil {
		return err
	}
	e.mu.Lock()
	e.speed = speed
	e.publishLocked()
	e.mu.Unlock()

	e.deliver()
	return nil
}

// Step applies a single advance synchronously from Idle or Paused and
// leaves the engine Paused (or Completed at the end of the trace).
func (e *Engine) Step() error {
	e.mu.Lock()
	if !e.loaded || e.status == Running || e.status == Completed {
		err := &StateError{Op: "step", Status: e.status}
		e.mu.Unlock()
		return err
	}
	if !e.advanceLocked() {
		e.status = Paused
	}
	e.publishLocked()
	e.mu.Unlock()

	e.deliver()
	return nil
}

func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Delay returns the wait before the next advance at the current speed.
func (e *Engine) Delay() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.delayLocked()
}

func (e *Engine) delayLocked() time.Duration {
	d := e.baseDelay * time.Duration(101-e.speed) / 100
	if d < e.minDelay {
		return e.minDelay
	}
	return d
}

func (e *Engine) scheduleLocked() {
	gen := e.gen
	e.pending = e.sched.AfterFunc(e.delayLocked(), func() { e.fire(gen) })
}

// fire is the scheduled callback. It never reports errors; a stale or
// out-of-state call is dropped.
func (e *Engine) fire(gen uint64) {
	e.mu.Lock()
	if gen != e.gen || e.status != Running {
		e.mu.Unlock()
		return
	}
	e.pending = nil
	completed := e.advanceLocked()
	if !completed {
		e.scheduleLocked()
	}
	snap := e.publishLocked()
	e.mu.Unlock()

	if completed {
		e.logger.Info("playback completed",
			log.AlgorithmKey, snap.Algorithm,
			log.EventsKey, snap.Total,
		)
	}
	e.deliver()
}

// advanceLocked executes one step of the replay and reports whether the
// trace was already exhausted (and the engine is now Completed).
func (e *Engine) advanceLocked() bool {
	if e.cursor == e.tr.Len() {
		e.status = Completed
		e.cancelLocked()
		return true
	}

	ev := e.tr.Events[e.cursor]
	e.comparing = e.comparing[:0]
	e.swapping = e.swapping[:0]

	switch ev.Kind {
	case trace.Compare:
		e.comparing = append(e.comparing, ev.Indices...)
	case trace.Swap:
		e.swapping = append(e.swapping, ev.Indices...)
		if ev.Snapshot != nil {
			copy(e.array, ev.Snapshot)
		} else {
			i, j := ev.Indices[0], ev.Indices[1]
			e.array[i], e.array[j] = e.array[j], e.array[i]
		}
	case trace.MarkSorted:
		e.sorted[ev.Indices[0]] = struct{}{}
	}

	e.cursor++
	return false
}

func (e *Engine) cancelLocked() {
	if e.pending != nil {
		e.pending.Stop()
		e.pending = nil
	}
	e.gen++
}

func (e *Engine) resetLocked() {
	e.cancelLocked()
	e.cursor = 0
	e.status = Idle
	e.comparing = e.comparing[:0]
	e.swapping = e.swapping[:0]
	e.sorted = make(map[int]struct{})
	e.array = make([]int, len(e.tr.Initial))
	copy(e.array, e.tr.Initial)
}

func (e *Engine) snapshotLocked() State {
	sorted := make([]int, 0, len(e.sorted))
	for i := range e.sorted {
		sorted = append(sorted, i)
	}
	sort.Ints(sorted)

	array := make([]int, len(e.array))
	copy(array, e.array)

	return State{
		Algorithm: e.tr.Algorithm,
		Cursor:    e.cursor,
		Total:     e.tr.Len(),
		Status:    e.status,
		Speed:     e.speed,
		Comparing: append([]int{}, e.comparing...),
		Swapping:  append([]int{}, e.swapping...),
		Sorted:    sorted,
		Array:     array,
	}
}

// publishLocked queues the current snapshot for observers and returns it.
func (e *Engine) publishLocked() State {
	snap := e.snapshotLocked()
	e.outbox = append(e.outbox, snap)
	return snap
}

// deliver drains the outbox unless another goroutine already is, so
// observers never run concurrently and never see states out of order.
func (e *Engine) deliver() {
	e.mu.Lock()
	if e.delivering {
		e.mu.Unlock()
		return
	}
	e.delivering = true
	for len(e.outbox) > 0 {
		s := e.outbox[0]
		e.outbox[0] = State{}
		e.outbox = e.outbox[1:]
		e.mu.Unlock()
		e.notify(s)
		e.mu.Lock()
	}
	e.outbox = nil
	e.delivering = false
	e.mu.Unlock()
}

func (e *Engine) notify(s State) {
	e.obsMu.Lock()
	fns := make([]func(State), 0, len(e.observers))
	ids := make([]int, 0, len(e.observers))
	for id := range e.observers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		fns = append(fns, e.observers[id])
	}
	e.obsMu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}
