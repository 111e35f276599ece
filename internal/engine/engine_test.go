package engine

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"
)

// manualScheduler records tasks and fires them only when told to.
type manualScheduler struct {
	mu    sync.Mutex
	tasks []*manualTask
}

type manualTask struct {
	d         time.Duration
	fn        func()
	cancelled bool
	fired     bool
}

func (m *manualScheduler) Schedule(d time.Duration, fn func()) Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTask{d: d, fn: fn}
	m.tasks = append(m.tasks, t)
	return t
}

func (t *manualTask) Cancel() bool {
	if t.fired || t.cancelled {
		return false
	}
	t.cancelled = true
	return true
}

// fireAll runs every task, cancelled ones included, to model a timer that
// raced its cancellation.
func (m *manualScheduler) fireAll() {
	m.mu.Lock()
	tasks := append([]*manualTask(nil), m.tasks...)
	m.mu.Unlock()
	for _, t := range tasks {
		t.fired = true
		t.fn()
	}
}

func (m *manualScheduler) live() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.tasks {
		if !t.cancelled && !t.fired {
			n++
		}
	}
	return n
}

func dispatch(e *Engine, keys string) Projection {
	var p Projection
	for i := 0; i < len(keys); i++ {
		p = e.Dispatch(tokenFor(keys[i]))
	}
	return p
}

func TestDispatchProjection(t *testing.T) {
	e := New(WithScheduler(&manualScheduler{}))
	p := dispatch(e, "12+")
	if p.Primary != "12" || p.Secondary != "12 +" || p.IsError {
		t.Fatalf("unexpected projection: %+v", p)
	}
	p = dispatch(e, "3*")
	if p.Primary != "15" || p.Secondary != "15 ×" {
		t.Fatalf("unexpected chained projection: %+v", p)
	}
	p = dispatch(e, "2=")
	if p.Primary != "30" || p.Secondary != "" {
		t.Fatalf("unexpected result projection: %+v", p)
	}
	if e.Projection() != p {
		t.Fatalf("Projection() should match the last dispatch")
	}
}

func TestDispatchLogsIgnoredEquals(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	e := New(WithScheduler(&manualScheduler{}), WithLogger(log))
	if p := dispatch(e, "5="); p.Primary != "5" {
		t.Fatalf("equals without an operator should keep 5, got %q", p.Primary)
	}
	if !strings.Contains(buf.String(), "equals ignored") {
		t.Fatalf("expected ignored equals to be logged:\n%s", buf.String())
	}
	buf.Reset()
	if p := dispatch(e, "+3="); p.Primary != "8" {
		t.Fatalf("expected 8, got %q", p.Primary)
	}
	if strings.Contains(buf.String(), "equals ignored") {
		t.Fatalf("a computed equals should not be logged as ignored")
	}
}

func TestSecondaryUsesOperatorGlyphs(t *testing.T) {
	e := New(WithScheduler(&manualScheduler{}))
	want := map[byte]string{'+': "7 +", '-': "7 −", '*': "7 ×", '/': "7 ÷"}
	for k, sec := range want {
		dispatch(e, "C7"+string(k))
		if got := e.Projection().Secondary; got != sec {
			t.Fatalf("%c: got %q, want %q", k, got, sec)
		}
	}
}

func TestErrorSchedulesOneClear(t *testing.T) {
	sched := &manualScheduler{}
	e := New(WithScheduler(sched), WithErrorDelay(1500*time.Millisecond))
	p := dispatch(e, "5/0=")
	if !p.IsError || p.Primary != "Cannot divide by zero" || p.Err != ErrDivisionByZero {
		t.Fatalf("expected division error, got %+v", p)
	}
	if sched.live() != 1 || !e.Pending() {
		t.Fatalf("expected exactly one scheduled clear, got %d", sched.live())
	}
	if sched.tasks[0].d != 1500*time.Millisecond {
		t.Fatalf("unexpected delay %v", sched.tasks[0].d)
	}
	// operators and equals are ignored and schedule nothing new
	dispatch(e, "+=")
	if sched.live() != 1 || len(sched.tasks) != 1 {
		t.Fatalf("operators during error should not reschedule")
	}
}

func TestAutoClear(t *testing.T) {
	sched := &manualScheduler{}
	var got []Projection
	e := New(WithScheduler(sched), WithListener(func(p Projection) { got = append(got, p) }))
	dispatch(e, "5/0=")
	sched.fireAll()
	p := e.Projection()
	if p.Primary != "0" || p.IsError || p.Secondary != "" {
		t.Fatalf("expected reset after expiry, got %+v", p)
	}
	if e.State() != Initial() {
		t.Fatalf("expected initial state, got %+v", e.State())
	}
	if len(got) != 1 || got[0].Primary != "0" {
		t.Fatalf("listener should see the cleared projection once, got %+v", got)
	}
	if e.Pending() {
		t.Fatalf("no clear should remain pending")
	}
}

func TestInputCancelsClear(t *testing.T) {
	for _, keys := range []string{"7", ".", "<", "C", "E"} {
		sched := &manualScheduler{}
		fired := 0
		e := New(WithScheduler(sched), WithListener(func(Projection) { fired++ }))
		dispatch(e, "5/0=")
		dispatch(e, keys)
		if sched.live() != 0 || e.Pending() {
			t.Fatalf("%q should cancel the pending clear", keys)
		}
		dispatch(e, "12")
		before := e.Projection()
		// a timer that lost the race must not reset the new entry
		sched.fireAll()
		if e.Projection() != before {
			t.Fatalf("%q: stale clear changed the display: %+v", keys, e.Projection())
		}
		if fired != 0 {
			t.Fatalf("%q: listener should not run for a stale clear", keys)
		}
	}
}

func TestStaleClearAfterSecondError(t *testing.T) {
	sched := &manualScheduler{}
	e := New(WithScheduler(sched))
	dispatch(e, "5/0=C8/0=")
	if len(sched.tasks) != 2 || sched.live() != 1 {
		t.Fatalf("expected one cancelled and one live clear, got %d/%d", len(sched.tasks), sched.live())
	}
	sched.tasks[0].fired = true
	sched.tasks[0].fn()
	if !e.Projection().IsError {
		t.Fatalf("first error's clear must not end the second error")
	}
	sched.tasks[1].fired = true
	sched.tasks[1].fn()
	if e.Projection().IsError {
		t.Fatalf("second clear should end the error")
	}
}

func TestCloseCancelsClear(t *testing.T) {
	sched := &manualScheduler{}
	e := New(WithScheduler(sched))
	dispatch(e, "1/0=")
	e.Close()
	if sched.live() != 0 {
		t.Fatalf("Close should cancel the pending clear")
	}
}

func TestTimerSchedulerAutoClear(t *testing.T) {
	done := make(chan Projection, 1)
	e := New(WithErrorDelay(20*time.Millisecond), WithListener(func(p Projection) { done <- p }))
	dispatch(e, "5/0=")
	select {
	case p := <-done:
		if p.Primary != "0" || p.IsError {
			t.Fatalf("unexpected projection after timer: %+v", p)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timer never cleared the error")
	}
}

func TestTimerSchedulerCancel(t *testing.T) {
	fired := make(chan struct{}, 1)
	e := New(WithErrorDelay(30*time.Millisecond), WithListener(func(Projection) { fired <- struct{}{} }))
	dispatch(e, "5/0=9")
	select {
	case <-fired:
		t.Fatalf("cancelled clear fired")
	case <-time.After(100 * time.Millisecond):
	}
	if p := e.Projection(); p.Primary != "9" {
		t.Fatalf("expected entry to survive, got %+v", p)
	}
}
