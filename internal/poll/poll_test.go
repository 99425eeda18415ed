package poll

import (
	"context"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/stackmill/env-dashboard/internal/platform"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func waitForEvent(t *testing.T, s *Scheduler) Event {
	t.Helper()
	select {
	case evt := <-s.Events():
		return evt
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for poll event")
	}
	return Event{}
}

func TestSchedulerEmitsTaggedTicks(t *testing.T) {
	s := NewScheduler(10 * time.Millisecond)
	fetch := func(ctx context.Context) (*platform.Overview, bool) {
		return &platform.Overview{ID: "env-1", ClusterState: "LAUNCHING"}, true
	}
	s.Start("token-a", fetch)
	defer func() {
		s.Stop()
		s.Wait()
	}()

	evt := waitForEvent(t, s)
	if evt.Token != "token-a" {
		t.Fatalf("expected tick tagged with token, got %q", evt.Token)
	}
	if !evt.OK || evt.Overview == nil || evt.Overview.ClusterState != "LAUNCHING" {
		t.Fatalf("unexpected event %#v", evt)
	}
}

func TestSchedulerReportsAbsentFetch(t *testing.T) {
	s := NewScheduler(10 * time.Millisecond)
	s.Start("token-a", func(ctx context.Context) (*platform.Overview, bool) {
		return nil, false
	})
	defer func() {
		s.Stop()
		s.Wait()
	}()

	evt := waitForEvent(t, s)
	if evt.OK || evt.Overview != nil {
		t.Fatalf("expected absent tick, got %#v", evt)
	}
}

func TestSchedulerStartCancelsPreviousLoop(t *testing.T) {
	s := NewScheduler(10 * time.Millisecond)
	fetch := func(ctx context.Context) (*platform.Overview, bool) {
		return &platform.Overview{ID: "env-1"}, true
	}
	s.Start("old", fetch)
	s.Start("new", fetch)
	defer func() {
		s.Stop()
		s.Wait()
	}()

	for i := 0; i < 3; i++ {
		evt := waitForEvent(t, s)
		if evt.Token != "new" {
			t.Fatalf("expected only the new loop to tick, got %q", evt.Token)
		}
	}
}

func TestSchedulerStopSilencesLoop(t *testing.T) {
	s := NewScheduler(5 * time.Millisecond)
	s.Start("token-a", func(ctx context.Context) (*platform.Overview, bool) {
		return &platform.Overview{ID: "env-1"}, true
	})
	waitForEvent(t, s)

	s.Stop()
	s.Wait()
	drained := false
	for !drained {
		select {
		case <-s.Events():
		default:
			drained = true
		}
	}

	time.Sleep(20 * time.Millisecond)
	select {
	case evt := <-s.Events():
		t.Fatalf("expected no ticks after stop, got %#v", evt)
	default:
	}
}

func TestSchedulerRunning(t *testing.T) {
	s := NewScheduler(time.Hour)
	if s.Running() {
		t.Fatal("expected idle scheduler to not be running")
	}
	s.Start("token-a", func(ctx context.Context) (*platform.Overview, bool) {
		return nil, false
	})
	if !s.Running() {
		t.Fatal("expected running after start")
	}
	s.Stop()
	if s.Running() {
		t.Fatal("expected stopped after stop")
	}
	s.Stop()
	s.Wait()
}

func TestSchedulerStopAbortsInFlightFetch(t *testing.T) {
	s := NewScheduler(5 * time.Millisecond)
	started := make(chan struct{}, 1)
	s.Start("token-a", func(ctx context.Context) (*platform.Overview, bool) {
		select {
		case started <- struct{}{}:
		default:
		}
		<-ctx.Done()
		return nil, false
	})

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for fetch to start")
	}
	s.Stop()
	s.Wait()

	select {
	case evt := <-s.Events():
		t.Fatalf("expected cancelled fetch to emit nothing, got %#v", evt)
	default:
	}
}
