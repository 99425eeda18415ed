package events

import "github.com/stackmill/env-dashboard/internal/logging"

type LoaderTracer struct{}

var Loader = LoaderTracer{}

func (LoaderTracer) Resolve(token, stack, cluster string) {
	logging.Trace("loader.resolve", map[string]interface{}{"token": token, "stack": stack, "cluster": cluster})
}

func (LoaderTracer) ResolveFailed(token, stack, cluster string) {
	logging.Trace("loader.resolve-failed", map[string]interface{}{"token": token, "stack": stack, "cluster": cluster})
}

func (LoaderTracer) Critical(token, id string) {
	logging.Trace("loader.critical", map[string]interface{}{"token": token, "id": id})
}

func (LoaderTracer) Ready(token string) {
	logging.Trace("loader.ready", map[string]interface{}{"token": token})
}

func (LoaderTracer) TabFetch(token, tab string) {
	logging.Trace("loader.tab-fetch", map[string]interface{}{"token": token, "tab": tab})
}

func (LoaderTracer) Reload(oldToken, newToken string) {
	logging.Trace("loader.reload", map[string]interface{}{"old": oldToken, "new": newToken})
}

// StaleDrop records an async response discarded because its session token no
// longer matches the live session.
func (LoaderTracer) StaleDrop(token, current, kind string) {
	logging.Trace("loader.stale-drop", map[string]interface{}{"token": token, "current": current, "kind": kind})
}
