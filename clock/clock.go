package clock

import "time"

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

func NewClock() Clock {
	return &realClock{}
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

// NewFixedClock always reports now. Used by tests that check timestamps.
func NewFixedClock(now time.Time) Clock {
	return &fixedClock{now: now}
}
