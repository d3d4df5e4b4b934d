package launcher

import "time"

// Timer is a scheduled action that can be cancelled before it runs.
type Timer interface {
	// Stop prevents the action from running. It returns false when the action
	// already ran or was stopped.
	Stop() bool
}

// Scheduler runs fn once after delay.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) Timer
}

// TimerScheduler schedules on the runtime's timers.
type TimerScheduler struct{}

// Schedule implements Scheduler.
func (TimerScheduler) Schedule(delay time.Duration, fn func()) Timer {
	return time.AfterFunc(delay, fn)
}
