package mocks

import "time"

// MockClock is a controllable clock for deterministic timekeeping tests.
type MockClock struct {
	Current time.Time
	NowFunc func() time.Time
}

func NewMockClock(at time.Time) *MockClock {
	return &MockClock{Current: at}
}

func (m *MockClock) Now() time.Time {
	if m.NowFunc != nil {
		return m.NowFunc()
	}
	return m.Current
}

// Advance moves the clock forward and returns the new time.
func (m *MockClock) Advance(d time.Duration) time.Time {
	m.Current = m.Current.Add(d)
	return m.Current
}
