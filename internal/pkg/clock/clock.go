// Package clock abstracts wall-clock reads so snapshot TTLs, OTP expiry
// and payment references stay deterministic under test.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

func NewRealClock() Clock {
	return realClock{}
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// MockClock only moves when told to.
type MockClock struct {
	now time.Time
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{now: t}
}

func (c *MockClock) Now() time.Time { return c.now }

func (c *MockClock) Set(t time.Time) { c.now = t }

func (c *MockClock) Add(d time.Duration) { c.now = c.now.Add(d) }
