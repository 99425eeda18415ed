package events

import "github.com/stackmill/env-dashboard/internal/logging"

type PollTracer struct{}

var Poll = PollTracer{}

func (PollTracer) Started(token string) {
	logging.Trace("poll.started", map[string]interface{}{"token": token})
}

func (PollTracer) Stopped(token string) {
	logging.Trace("poll.stopped", map[string]interface{}{"token": token})
}

func (PollTracer) Tick(token string, ok bool) {
	logging.Trace("poll.tick", map[string]interface{}{"token": token, "ok": ok})
}

func (PollTracer) Applied(token string, ok bool) {
	logging.Trace("poll.applied", map[string]interface{}{"token": token, "ok": ok})
}
