package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// Scheduler emits ticks at a variable interval and stops emitting while paused.
// The interval function is consulted before every tick so level and boost
// changes take effect on the next step.
type Scheduler struct {
	interval func() time.Duration
	ticks    chan time.Time

	mu     sync.Mutex
	paused bool
	wake   chan struct{}

	tickCount atomic.Uint64
	running   atomic.Bool
	stopChan  chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
}

// NewScheduler creates a stopped scheduler
func NewScheduler(interval func() time.Duration) *Scheduler {
	return &Scheduler{
		interval: interval,
		ticks:    make(chan time.Time, 1),
		wake:     make(chan struct{}, 1),
		stopChan: make(chan struct{}),
	}
}

// Ticks returns the tick channel. A tick is dropped if the previous one was not consumed.
func (s *Scheduler) Ticks() <-chan time.Time {
	return s.ticks
}

// TickCount returns the number of ticks delivered so far
func (s *Scheduler) TickCount() uint64 {
	return s.tickCount.Load()
}

// Start begins the scheduler loop
func (s *Scheduler) Start() {
	if s.running.CompareAndSwap(false, true) {
		s.wg.Add(1)
		go s.loop()
	}
}

// Stop halts the scheduler loop and waits for it to exit
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
		if s.running.Load() {
			s.wg.Wait()
		}
	})
}

// Pause stops tick delivery until Resume
func (s *Scheduler) Pause() {
	s.setPaused(true)
}

// Resume restarts tick delivery; the first tick arrives one full interval later
func (s *Scheduler) Resume() {
	s.setPaused(false)
}

// IsPaused returns current pause state
func (s *Scheduler) IsPaused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

func (s *Scheduler) setPaused(p bool) {
	s.mu.Lock()
	changed := s.paused != p
	s.paused = p
	s.mu.Unlock()

	if !changed {
		return
	}
	// Drop a tick that was already queued before the pause
	if p {
		select {
		case <-s.ticks:
		default:
		}
	}
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Scheduler) loop() {
	defer s.wg.Done()

	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		if s.IsPaused() {
			select {
			case <-s.stopChan:
				return
			case <-s.wake:
			}
			continue
		}

		timer.Reset(s.interval())
		select {
		case <-s.stopChan:
			return

		case <-s.wake:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}

		case now := <-timer.C:
			if s.IsPaused() {
				continue
			}
			select {
			case s.ticks <- now:
				s.tickCount.Add(1)
			default:
			}
		}
	}
}
