// Package poll owns the conditional overview refresh loop. The loop runs
// only while the session reports a transition in flight, re-fetches
// nothing but the overview snapshot, and is cancelled unconditionally on
// teardown.
package poll

import (
	"context"
	"sync"
	"time"

	"github.com/stackmill/env-dashboard/internal/logging/events"
	"github.com/stackmill/env-dashboard/internal/platform"
)

// Event is one refresh tick outcome, tagged with the session token the
// loop was started for so stale ticks can be discarded downstream.
type Event struct {
	Token    string
	Overview *platform.Overview
	OK       bool
}

// FetchFunc re-fetches the overview snapshot.
type FetchFunc func(ctx context.Context) (*platform.Overview, bool)

// Scheduler runs at most one poll loop at a time. Start always cancels
// the previous loop first, so starts are idempotent.
type Scheduler struct {
	interval time.Duration
	events   chan Event

	mu     sync.Mutex
	cancel context.CancelFunc
	token  string

	wg sync.WaitGroup
}

func NewScheduler(interval time.Duration) *Scheduler {
	return &Scheduler{
		interval: interval,
		events:   make(chan Event, 16),
	}
}

// Events returns the tick channel. It stays open for the scheduler's
// lifetime; tokens decide which ticks still matter.
func (s *Scheduler) Events() <-chan Event {
	return s.events
}

// Start begins a poll loop for the session token. The first fetch fires a
// full interval after Start: the caller only starts the loop with fresh
// data already in hand.
func (s *Scheduler) Start(token string, fetch FetchFunc) {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.token = token
	s.mu.Unlock()

	events.Poll.Started(token)
	s.wg.Add(1)
	go s.run(ctx, token, fetch)
}

// Stop cancels the running loop, if any. The loop exits after its current
// fetch completes; use Wait if a clean drain is required (e.g. in tests).
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel == nil {
		return
	}
	s.cancel()
	s.cancel = nil
	events.Poll.Stopped(s.token)
	s.token = ""
}

// Running reports whether a poll loop is currently active.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}

// Wait blocks until all poll goroutines have exited. Call after Stop when
// a clean shutdown is required.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

func (s *Scheduler) run(ctx context.Context, token string, fetch FetchFunc) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ov, ok := fetch(ctx)
			if ctx.Err() != nil {
				return
			}
			events.Poll.Tick(token, ok)
			select {
			case <-ctx.Done():
				return
			case s.events <- Event{Token: token, Overview: ov, OK: ok}:
			}
		}
	}
}
