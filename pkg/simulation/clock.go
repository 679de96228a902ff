package simulation

import (
	"sync"
	"time"
)

// TimeProvider abstracts the wall clock so frames can be replayed in tests.
type TimeProvider interface {
	Now() time.Time
}

type monotonicTimeProvider struct{}

func (monotonicTimeProvider) Now() time.Time { return time.Now() }

// NewTimeProvider returns the process clock. Its readings carry the monotonic
// component, so deltas are immune to wall clock jumps.
func NewTimeProvider() TimeProvider {
	return monotonicTimeProvider{}
}

// MockTimeProvider is a manually advanced clock.
type MockTimeProvider struct {
	mu  sync.Mutex
	now time.Time
}

func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{now: start}
}

func (m *MockTimeProvider) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward by d.
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// Clock turns time readings into frame deltas. The first frame has dt = 0.
type Clock struct {
	provider TimeProvider
	last     time.Time
	started  bool
	maxDelta time.Duration
}

func NewClock(provider TimeProvider) *Clock {
	if provider == nil {
		provider = NewTimeProvider()
	}
	return &Clock{provider: provider}
}

// Tick reads the provider and returns the seconds since the previous tick.
func (c *Clock) Tick() float64 {
	return c.TickAt(c.provider.Now())
}

// TickAt returns the seconds between now and the previous tick. Time going
// backwards yields 0 and restarts counting from now; gaps longer than the max
// delta are clamped.
func (c *Clock) TickAt(now time.Time) float64 {
	if !c.started {
		c.started = true
		c.last = now
		return 0
	}
	d := now.Sub(c.last)
	c.last = now
	if d < 0 {
		return 0
	}
	if c.maxDelta > 0 && d > c.maxDelta {
		d = c.maxDelta
	}
	return d.Seconds()
}
