package service

import "time"

// Clock supplies the current time. Use cases depend on it instead of
// time.Now so that timestamp stamping rules stay testable.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock backed by time.Now.
type SystemClock struct{}

// Now returns the current wall-clock time in UTC.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
