package events

import "github.com/stackmill/env-dashboard/internal/logging"

type FetchTracer struct{}

var Fetch = FetchTracer{}

func (FetchTracer) Done(path string, status int) {
	logging.Trace("fetch.done", map[string]interface{}{"path": path, "status": status})
}

// Absent records a fetch collapsing into the absence value, with the
// underlying cause kept for the trace only.
func (FetchTracer) Absent(path, reason string) {
	logging.Trace("fetch.absent", map[string]interface{}{"path": path, "reason": reason})
}
