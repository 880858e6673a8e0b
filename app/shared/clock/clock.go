// Package clock abstracts the wall clock so completion timestamps can be
// pinned in tests.
package clock

import "time"

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// Real is the system clock in UTC.
type Real struct{}

func (Real) Now() time.Time { return time.Now().UTC() }

// Anchor always returns the same instant.
type Anchor struct {
	at time.Time
}

// NewAnchor pins the clock at t. A zero t pins it at the current time.
func NewAnchor(t time.Time) Anchor {
	if t.IsZero() {
		return Anchor{at: time.Now().UTC()}
	}
	return Anchor{at: t.UTC()}
}

func (a Anchor) Now() time.Time { return a.at }
