// Package clock abstracts "current wall-clock instant" so the engine and
// scheduler can be driven by a frozen or simulated time source in tests.
package clock

import "time"

// Clock reports the current time. Implementations must be safe for
// concurrent use since the scheduler and sleep-lifecycle listener may both
// query it.
type Clock interface {
	Now() time.Time
}

// Real returns the system wall clock, always UTC as the engine requires.
type Real struct{}

// Now returns the current UTC instant.
func (Real) Now() time.Time {
	return time.Now().UTC()
}

// New constructs the production clock.
func New() Clock {
	return Real{}
}
