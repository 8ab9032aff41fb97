package progress

import (
	"sync"
	"time"
)

// saver coalesces rapid successive mutations into one write: a write fires
// after a quiet period following the last Schedule call, and a Schedule
// during the window resets the timer instead of queueing another write.
//
// The timer callback runs on its own goroutine, which is why the Store
// guards its state with a mutex.
type saver struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	pending bool
	write   func()
}

func newSaver(delay time.Duration, write func()) *saver {
	return &saver{delay: delay, write: write}
}

// Schedule arms (or re-arms) the quiet-period timer.
func (s *saver) Schedule() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = true
	if s.timer == nil {
		s.timer = time.AfterFunc(s.delay, s.fire)
		return
	}
	s.timer.Reset(s.delay)
}

func (s *saver) fire() {
	s.mu.Lock()
	if !s.pending {
		s.mu.Unlock()
		return
	}
	s.pending = false
	s.mu.Unlock()
	s.write()
}

// Flush writes any pending state immediately and disarms the timer.
func (s *saver) Flush() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
	}
	pending := s.pending
	s.pending = false
	s.mu.Unlock()
	if pending {
		s.write()
	}
}

// Cancel disarms the timer and drops any pending write.
func (s *saver) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.pending = false
}
