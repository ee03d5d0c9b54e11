package encounter

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// startTimerLocked launches the spawn timer unless it is already running.
//
// Precondition: s.mu is held.
func (s *Session) startTimerLocked() {
	if s.stopTimer != nil {
		return
	}
	s.timerGen++
	gen := s.timerGen
	interval := s.sim.Rules().SpawnInterval
	done := make(chan struct{})
	var once sync.Once
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.tick(gen)
			case <-done:
				return
			}
		}
	}()
	s.stopTimer = func() {
		once.Do(func() { close(done) })
	}
	s.logger.Debug("spawn timer started", zap.Duration("interval", interval))
}

// stopTimerLocked stops the spawn timer if it is running.
//
// Precondition: s.mu is held.
func (s *Session) stopTimerLocked() {
	if s.stopTimer == nil {
		return
	}
	s.stopTimer()
	s.stopTimer = nil
	s.logger.Debug("spawn timer stopped")
}
