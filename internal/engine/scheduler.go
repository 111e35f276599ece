package engine

import "time"

// Task is a scheduled one-shot callback.
type Task interface {
	// Cancel stops the callback. It reports false if the callback already
	// ran or was cancelled before.
	Cancel() bool
}

// Scheduler runs fn once after d. Hosts plug their timer primitive in here.
// Schedule must not call fn before returning.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) Task
}

// TimerScheduler schedules on the runtime timer. fn runs on its own goroutine.
type TimerScheduler struct{}

func (TimerScheduler) Schedule(d time.Duration, fn func()) Task {
	return timerTask{time.AfterFunc(d, fn)}
}

type timerTask struct{ t *time.Timer }

func (t timerTask) Cancel() bool { return t.t.Stop() }
