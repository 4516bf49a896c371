// Package clock abstracts the host runtime's monotonic wall-clock. The
// core treats the clock as a one-way threshold oracle only ("now >=
// timeout"); it never measures a duration across a suspension point.
// This mirrors how chainntnfs abstracts an external chain notifier
// behind an interface so the rest of the codebase never talks to
// btcd/neutrino directly.
package clock

import "time"

// Clock returns the current time as seen by the host runtime.
type Clock interface {
	// Now returns the current unix time in seconds.
	Now() int64
}

// System is the production Clock, backed by the Go runtime's wall
// clock. On the Internet Computer this would instead read the
// replica-provided time via the host's system API; System exists for
// local use and for any host that embeds this core directly.
type System struct{}

// Now implements Clock.
func (System) Now() int64 {
	return time.Now().Unix()
}

// Fixed is a Clock that always returns a fixed instant, the shape tests
// use to exercise the challenge-window edges deterministically: the
// "at timeout" / "past timeout" boundary cannot be reproduced reliably
// against a real wall clock.
type Fixed struct {
	Unix int64
}

// Now implements Clock.
func (f Fixed) Now() int64 {
	return f.Unix
}

// Mutable is a Clock a test can advance between calls without
// recreating the struct, useful for a sequence of operations that
// straddle a timeout.
type Mutable struct {
	unix int64
}

// NewMutable returns a Mutable clock starting at the given unix time.
func NewMutable(start int64) *Mutable {
	return &Mutable{unix: start}
}

// Now implements Clock.
func (m *Mutable) Now() int64 {
	return m.unix
}

// Advance moves the clock forward by delta seconds (delta may be
// negative to model non-monotonicity across calls, which the core must
// tolerate).
func (m *Mutable) Advance(delta int64) {
	m.unix += delta
}

// Set pins the clock to an absolute unix time.
func (m *Mutable) Set(unix int64) {
	m.unix = unix
}
