package clock

import "time"

// Timer is a handle to a scheduled callback
type Timer interface {
	// Stop cancels the timer. It reports whether the callback was still pending.
	Stop() bool
}

// Clock abstracts wall-clock reads and deferred callback scheduling so that
// timer-driven state transitions can be tested deterministically.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// New returns a Clock backed by the time package
func New() Clock {
	return realClock{}
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
