// Package clock implements the turn-clock scheduling primitive: one
// delayed wake-up per session for the active player's zero-time
// deadline, rearmed on every turn change. It holds no game state and
// reads no wall clock itself beyond what time.AfterFunc needs.
package clock

import (
	"sync"
	"time"
)

// Scheduler arms at most one pending wake-up at a time. Rearming cancels
// whatever was pending and bumps a generation counter, so a fire that
// was already in flight when the rearm happened can be recognized as
// stale by comparing its captured generation against Generation().
type Scheduler struct {
	mu         sync.Mutex
	timer      *time.Timer
	generation int
}

// Schedule arms a wake-up after d, calling fire with the generation
// that was current at schedule time. Any previously pending wake-up is
// cancelled first. Returns the new generation.
func (s *Scheduler) Schedule(d time.Duration, fire func(generation int)) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.generation++
	gen := s.generation
	s.timer = time.AfterFunc(d, func() { fire(gen) })
	return gen
}

// Stop cancels any pending wake-up and bumps the generation so a fire
// already in flight is recognized as stale.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.generation++
}

// Generation reports the current generation, for comparing against a
// fire's captured value.
func (s *Scheduler) Generation() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// RemainingMs computes the active player's effective remaining time:
// bank minus elapsed time since the turn started, floored at 0.
func RemainingMs(bankMs, turnStartedAtMs, nowMs int64) int64 {
	remaining := bankMs - (nowMs - turnStartedAtMs)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// DeadlineDelay returns the duration until the active player's bank
// would reach zero, floored at 0.
func DeadlineDelay(bankMs, turnStartedAtMs, nowMs int64) time.Duration {
	remaining := RemainingMs(bankMs, turnStartedAtMs, nowMs)
	return time.Duration(remaining) * time.Millisecond
}
