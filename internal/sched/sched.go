// Package sched runs delayed actions keyed by a token. Scheduling a
// token that already has a pending action replaces it, which is the
// whole cancellation model: a later event overwrites an earlier timer.
package sched

import (
	"sync"
	"time"
)

type Scheduler struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
}

func New() *Scheduler {
	return &Scheduler{timers: make(map[string]*time.Timer)}
}

// After schedules fn to run once after d, cancelling any pending
// action under the same token.
func (s *Scheduler) After(token string, d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[token]; ok {
		t.Stop()
	}
	s.timers[token] = time.AfterFunc(d, func() {
		s.mu.Lock()
		delete(s.timers, token)
		s.mu.Unlock()
		fn()
	})
}

// Cancel stops a pending action. Reports whether one was pending.
func (s *Scheduler) Cancel(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.timers[token]
	if !ok {
		return false
	}
	t.Stop()
	delete(s.timers, token)
	return ok
}

// Stop cancels everything pending. Actions already fired are not
// affected.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, t := range s.timers {
		t.Stop()
		delete(s.timers, token)
	}
}

// Debounce wraps fn in a trigger that coalesces rapid-fire calls:
// every call resets the delay, fn runs once after the calls stop for d.
func Debounce(d time.Duration, fn func()) func() {
	var mu sync.Mutex
	var timer *time.Timer

	return func() {
		mu.Lock()
		defer mu.Unlock()

		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(d, fn)
	}
}
