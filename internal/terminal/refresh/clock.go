package refresh

import "time"

// Timer is the handle returned by Clock.AfterFunc.
type Timer interface {
	Stop() bool
}

// Clock schedules the debounce and poll timers.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemClock is the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func (SystemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
