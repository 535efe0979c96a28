// Package clock isolates the wall clock behind an interface so the session
// engine can be driven by a fake in tests.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

// System reads the real wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }
