// Package engine is the calculator's input state machine: tokens in,
// display projections out. It has no I/O; the only asynchronous element
// is the timed clear of the error state, driven through a Scheduler.
package engine

import (
	"io"
	"log/slog"
	"sync"
	"time"
)

// DefaultErrorDelay is how long an error message stays before the
// engine clears itself.
const DefaultErrorDelay = 2 * time.Second

// Projection is the read-only view a presentation layer renders.
type Projection struct {
	Primary   string    // number or error message
	Secondary string    // "<operand> <operator>" while an operation is pending
	IsError   bool      // error message showing
	Err       ErrorKind // which error, when IsError
}

// Project derives the display projection from a state.
func Project(s State) Projection {
	p := Projection{Primary: s.Text, IsError: s.IsError(), Err: s.Err}
	if s.HasAcc && s.Op != OpNone {
		p.Secondary = FormatResult(s.Acc) + " " + s.Op.Symbol()
	}
	return p
}

// Listener receives the projection after a change the caller did not
// trigger itself, i.e. the timed error clear.
type Listener func(Projection)

// Option configures an Engine.
type Option func(*Engine)

func WithScheduler(s Scheduler) Option { return func(e *Engine) { e.sched = s } }

func WithErrorDelay(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.delay = d
		}
	}
}

func WithLogger(l *slog.Logger) Option { return func(e *Engine) { e.log = l } }

func WithListener(l Listener) Option { return func(e *Engine) { e.listener = l } }

// Engine owns one State and the at-most-one pending error clear. Every
// Dispatch replaces both under the lock, so a timer firing concurrently
// never observes or produces a half-applied transition.
type Engine struct {
	mu       sync.Mutex
	state    State
	expiry   Task
	gen      uint64 // bumped on every error entry; a stale expiry sees a different value
	sched    Scheduler
	delay    time.Duration
	log      *slog.Logger
	listener Listener
}

func New(opts ...Option) *Engine {
	e := &Engine{
		state: Initial(),
		sched: TimerScheduler{},
		delay: DefaultErrorDelay,
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// SetListener replaces the listener. Hosts that build their event loop
// after the engine register here.
func (e *Engine) SetListener(l Listener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listener = l
}

// Dispatch applies one token and returns the resulting projection.
func (e *Engine) Dispatch(t Token) Projection {
	e.mu.Lock()
	defer e.mu.Unlock()
	prev := e.state
	var next State
	if t.Kind == KindEquals {
		var ok bool
		if next, ok = prev.Calculate(); !ok && !next.IsError() {
			e.log.Debug("equals ignored", "text", prev.Text, "op", prev.Op.String(), "error", prev.Err.String())
		}
	} else {
		next = prev.Apply(t)
	}
	e.transition(next)
	e.log.Debug("dispatch", "token", t.String(), "text", e.state.Text, "op", e.state.Op.String(), "error", e.state.Err.String())
	return Project(e.state)
}

// Projection returns the current projection without new input.
func (e *Engine) Projection() Projection {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Project(e.state)
}

// State returns a copy of the current state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Pending reports whether an error clear is scheduled.
func (e *Engine) Pending() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.expiry != nil
}

// Close cancels any scheduled clear. The engine stays usable.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelExpiry()
}

// transition installs next and keeps the expiry task in step with the
// error state. Caller holds mu.
func (e *Engine) transition(next State) {
	wasError := e.state.IsError()
	e.state = next
	switch {
	case !wasError && next.IsError():
		e.scheduleExpiry()
		e.log.Info("error entered", "kind", next.Err.String(), "clear_after", e.delay)
	case wasError && !next.IsError():
		e.cancelExpiry()
		e.log.Debug("error left by input")
	}
}

func (e *Engine) scheduleExpiry() {
	e.cancelExpiry()
	e.gen++
	gen := e.gen
	e.expiry = e.sched.Schedule(e.delay, func() { e.expire(gen) })
}

func (e *Engine) cancelExpiry() {
	if e.expiry == nil {
		return
	}
	e.expiry.Cancel()
	e.expiry = nil
}

func (e *Engine) expire(gen uint64) {
	e.mu.Lock()
	if gen != e.gen || e.expiry == nil {
		e.mu.Unlock()
		return
	}
	e.expiry = nil
	e.state = e.state.Expire()
	p := Project(e.state)
	l := e.listener
	e.mu.Unlock()

	e.log.Info("error cleared by timer")
	if l != nil {
		l(p)
	}
}
