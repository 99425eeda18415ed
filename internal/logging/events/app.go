package events

import "github.com/stackmill/env-dashboard/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Navigate(route string) {
	logging.Trace("app.navigate", map[string]interface{}{"route": route})
}
