package utils

import "time"

const dateInputLayout = "2006-01-02"

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (s SystemClock) Now() time.Time {
	return time.Now()
}

type MockClock struct {
	FixedNow time.Time
}

func (m *MockClock) Now() time.Time {
	return m.FixedNow
}

// Today returns the clock's current date in loc as YYYY-MM-DD.
func Today(clock Clock, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return clock.Now().In(loc).Format(dateInputLayout)
}
