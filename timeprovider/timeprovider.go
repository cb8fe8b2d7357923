package timeprovider

import (
	"sync"
	"time"
)

// TimeProvider supplies the current time to components that track expiry
type TimeProvider interface {
	Now() time.Time
}

// System reads the wall clock
type System struct{}

// Now implements TimeProvider
func (System) Now() time.Time {
	return time.Now()
}

// Manual is a TimeProvider whose clock only moves when told to. Safe for
// concurrent use.
type Manual struct {
	mu  sync.RWMutex
	now time.Time
}

// NewManual creates a Manual provider starting at start
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now implements TimeProvider
func (m *Manual) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// Set moves the clock to t
func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

// Advance moves the clock forward by d and returns the new time
func (m *Manual) Advance(d time.Duration) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
	return m.now
}
