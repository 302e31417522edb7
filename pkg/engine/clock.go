package engine

import (
	"sync"
	"time"
)

// TimeProvider abstracts the wall clock so game time can be driven in tests
type TimeProvider interface {
	Now() time.Time
}

// SystemTimeProvider returns the real system time with monotonic clock readings
type SystemTimeProvider struct{}

// Now returns time.Now()
func (SystemTimeProvider) Now() time.Time {
	return time.Now()
}

// MockTimeProvider provides a controllable time source for testing
type MockTimeProvider struct {
	mu          sync.RWMutex
	currentTime time.Time
}

// NewMockTimeProvider creates a new mock time provider with the given start time
func NewMockTimeProvider(startTime time.Time) *MockTimeProvider {
	return &MockTimeProvider{
		currentTime: startTime,
	}
}

// Now returns the current mocked time
func (m *MockTimeProvider) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentTime
}

// Advance advances the current time by the given duration
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}

// PausableClock measures play time, excluding time spent paused
type PausableClock struct {
	mu sync.RWMutex

	tp          TimeProvider
	startTime   time.Time
	paused      bool
	pauseStart  time.Time
	totalPaused time.Duration
}

// NewPausableClock creates a running clock; a nil provider uses the system clock
func NewPausableClock(tp TimeProvider) *PausableClock {
	if tp == nil {
		tp = SystemTimeProvider{}
	}
	return &PausableClock{
		tp:        tp,
		startTime: tp.Now(),
	}
}

// Reset restarts the clock from zero in the running state
func (pc *PausableClock) Reset() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	pc.startTime = pc.tp.Now()
	pc.paused = false
	pc.pauseStart = time.Time{}
	pc.totalPaused = 0
}

// Pause stops elapsed-time accounting
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if pc.paused {
		return
	}
	pc.paused = true
	pc.pauseStart = pc.tp.Now()
}

// Resume continues elapsed-time accounting
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if !pc.paused {
		return
	}
	pc.totalPaused += pc.tp.Now().Sub(pc.pauseStart)
	pc.paused = false
	pc.pauseStart = time.Time{}
}

// IsPaused returns current pause state
func (pc *PausableClock) IsPaused() bool {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.paused
}

// TotalPaused returns cumulative pause time, including an ongoing pause
func (pc *PausableClock) TotalPaused() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	total := pc.totalPaused
	if pc.paused {
		total += pc.tp.Now().Sub(pc.pauseStart)
	}
	return total
}

// Elapsed returns play time since the last Reset, minus paused time
func (pc *PausableClock) Elapsed() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	end := pc.tp.Now()
	if pc.paused {
		end = pc.pauseStart
	}
	return end.Sub(pc.startTime) - pc.totalPaused
}
