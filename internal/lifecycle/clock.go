package lifecycle

import "time"

// Clock supplies the current time to every computation that needs "now" or
// "today". Services hold a Clock instead of reading time.Now directly so
// tests can pin dates.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the same instant.
type FixedClock struct {
	Time time.Time
}

func (c FixedClock) Now() time.Time {
	return c.Time
}
