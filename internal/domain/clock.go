package domain

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Request timing reads time through timeSource; tests drive it with a
// clockwork.FakeClock.
var timeSource clockwork.Clock = clockwork.NewRealClock()

// SetClock replaces the time source behind Now and Since. A nil clock
// restores the wall clock.
func SetClock(c clockwork.Clock) {
	if c == nil {
		c = clockwork.NewRealClock()
	}
	timeSource = c
}

// Now reports the current time.
func Now() time.Time {
	return timeSource.Now()
}

// Since reports the time elapsed since t.
func Since(t time.Time) time.Duration {
	return timeSource.Since(t)
}
