package quiz

import "time"

// Clock schedules the countdown ticks. Tests substitute a virtual clock.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type Timer interface {
	Stop() bool
}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemClock runs callbacks on real timers.
var SystemClock Clock = systemClock{}
