// Package simtask implements the simulated task shared by every page flow:
// a small state machine that validates its input synchronously, then fakes
// progress on an injectable clock and resolves to a fabricated result.
// Every run owns its ticker or timer and releases it on every exit path,
// including cancellation of the page context.
package simtask

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/heroxshorts/heroxshorts-studio/internal/domain/entity"
	"github.com/heroxshorts/heroxshorts-studio/internal/infra/metrics"
	"github.com/jonboulle/clockwork"
)

type State string

const (
	StateIdle       State = "IDLE"
	StateValidating State = "VALIDATING"
	StateRunning    State = "RUNNING"
	StateDone       State = "DONE"
	StateFailed     State = "FAILED"
)

// IsActive is true while a run holds the task.
func (s State) IsActive() bool {
	return s == StateValidating || s == StateRunning
}

var (
	ErrBusy      = errors.New("simulated task already in flight")
	ErrCancelled = errors.New("simulated task cancelled")
)

// Plan is the timing of one simulated run. With a zero Tick the run is a
// plain fixed delay; otherwise every Tick adds Step percent up to Cap and the
// tick that reaches Duration resolves the run at exactly 100.
type Plan struct {
	Duration time.Duration
	Tick     time.Duration
	Step     int
	Cap      int
}

func Delay(d time.Duration) Plan {
	return Plan{Duration: d}
}

func (p Plan) ticking() bool {
	return p.Tick > 0 && p.Step > 0
}

type Snapshot struct {
	State    State
	Progress int
	Result   string
	Err      error
}

// Resolver fabricates the result once the simulated delay has elapsed.
type Resolver func() (string, error)

// FaultInjector is consulted when a run resolves; a non-nil error fails it.
type FaultInjector func(task string) error

type Option func(*Task)

func WithClock(c clockwork.Clock) Option {
	return func(t *Task) { t.clock = c }
}

func WithFault(f FaultInjector) Option {
	return func(t *Task) { t.fault = f }
}

type run struct {
	cancel context.CancelFunc
	done   chan struct{}
	result string
	err    error
}

type Task struct {
	name      string
	clock     clockwork.Clock
	fault     FaultInjector
	observers []func(Snapshot)

	mu       sync.Mutex
	state    State
	progress int
	result   string
	err      error
	current  *run
}

func New(name string, opts ...Option) *Task {
	t := &Task{
		name:  name,
		clock: clockwork.NewRealClock(),
		state: StateIdle,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Task) Name() string {
	return t.name
}

// Observe registers fn for every state or progress change. Not safe to call
// while a run is in flight.
func (t *Task) Observe(fn func(Snapshot)) {
	t.observers = append(t.observers, fn)
}

func (t *Task) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

func (t *Task) snapshotLocked() Snapshot {
	return Snapshot{State: t.state, Progress: t.progress, Result: t.result, Err: t.err}
}

func (t *Task) emit(s Snapshot) {
	for _, fn := range t.observers {
		fn(s)
	}
}

func (t *Task) transition(mutate func()) {
	t.mu.Lock()
	mutate()
	snap := t.snapshotLocked()
	t.mu.Unlock()
	t.emit(snap)
}

// Start validates synchronously and, when validation passes, runs plan in the
// background. A validation error returns the task to IDLE without touching the
// clock. ctx bounds the run: cancelling it abandons the run like Cancel.
func (t *Task) Start(ctx context.Context, plan Plan, validate func() error, resolve Resolver) error {
	t.mu.Lock()
	if t.state.IsActive() {
		t.mu.Unlock()
		return ErrBusy
	}
	t.state = StateValidating
	t.progress = 0
	t.result = ""
	t.err = nil
	snap := t.snapshotLocked()
	t.mu.Unlock()
	t.emit(snap)

	if validate != nil {
		if err := validate(); err != nil {
			t.transition(func() {
				t.state = StateIdle
				t.err = err
			})
			return err
		}
	}

	runCtx, cancel := context.WithCancel(ctx)
	r := &run{cancel: cancel, done: make(chan struct{})}
	t.transition(func() {
		t.state = StateRunning
		t.current = r
	})

	go t.execute(runCtx, r, plan, resolve)
	return nil
}

func (t *Task) execute(ctx context.Context, r *run, plan Plan, resolve Resolver) {
	defer close(r.done)
	defer r.cancel()

	active := metrics.InFlightTasks.WithLabelValues(t.name)
	active.Inc()
	defer active.Dec()

	started := t.clock.Now()

	if plan.Duration <= 0 {
		t.finish(r, resolve, started)
		return
	}

	if plan.ticking() {
		ticker := t.clock.NewTicker(plan.Tick)
		defer ticker.Stop()

		var elapsed time.Duration
		for {
			select {
			case <-ctx.Done():
				t.abandon(r)
				return
			case <-ticker.Chan():
				elapsed += plan.Tick
				if elapsed >= plan.Duration {
					t.finish(r, resolve, started)
					return
				}
				t.advance(plan)
			}
		}
	}

	timer := t.clock.NewTimer(plan.Duration)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		t.abandon(r)
	case <-timer.Chan():
		t.finish(r, resolve, started)
	}
}

func (t *Task) advance(plan Plan) {
	t.transition(func() {
		p := t.progress + plan.Step
		if plan.Cap > 0 && p > plan.Cap {
			p = plan.Cap
		}
		t.progress = p
	})
}

func (t *Task) finish(r *run, resolve Resolver, started time.Time) {
	var err error
	if t.fault != nil {
		if ferr := t.fault(t.name); ferr != nil {
			err = &entity.SimulatedFailure{Operation: t.name, Reason: ferr.Error()}
		}
	}

	var result string
	if err == nil && resolve != nil {
		result, err = resolve()
	}

	metrics.SimulatedDuration.WithLabelValues(t.name).Observe(t.clock.Since(started).Seconds())

	r.result, r.err = result, err
	t.transition(func() {
		if err != nil {
			t.state = StateFailed
			t.err = err
		} else {
			t.state = StateDone
			t.progress = 100
			t.result = result
		}
	})
}

func (t *Task) abandon(r *run) {
	r.err = ErrCancelled
	t.transition(func() {
		t.state = StateIdle
		t.progress = 0
		t.err = ErrCancelled
	})
}

// Wait blocks until the current run ends and returns its outcome. With no run
// in flight, because none was started or Cancel cleared it, it returns
// ErrCancelled.
func (t *Task) Wait(ctx context.Context) (string, error) {
	t.mu.Lock()
	r := t.current
	t.mu.Unlock()
	if r == nil {
		return "", ErrCancelled
	}

	select {
	case <-r.done:
		return r.result, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Cancel abandons any in-flight run, waits for its timers to be released and
// resets the task to IDLE.
func (t *Task) Cancel() {
	t.mu.Lock()
	r := t.current
	t.mu.Unlock()

	if r != nil {
		r.cancel()
		<-r.done
	}

	t.transition(func() {
		t.state = StateIdle
		t.progress = 0
		t.result = ""
		t.err = nil
		t.current = nil
	})
}
