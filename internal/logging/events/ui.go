package events

import "github.com/stackmill/env-dashboard/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

type IntentTracer struct{}

var (
	UI     = UITracer{}
	Filter = FilterTracer{}
	Intent = IntentTracer{}
)

func (UITracer) TabSwitch(tab string) {
	logging.Trace("ui.tab-switch", map[string]interface{}{"tab": tab})
}

func (UITracer) PickerEnter(levelID, itemID, label, filter string) {
	logging.Trace("picker.enter", map[string]interface{}{
		"level":  levelID,
		"item":   itemID,
		"label":  label,
		"filter": filter,
	})
}

func (UITracer) PickerCursor(levelID string, cursor int) {
	logging.Trace("picker.cursor", map[string]interface{}{"level": levelID, "cursor": cursor})
}

func (UITracer) Confirm(action string, accepted bool) {
	logging.Trace("ui.confirm", map[string]interface{}{"action": action, "accepted": accepted})
}

func (FilterTracer) Cleared(levelID string) {
	logging.Trace("filter.clear", map[string]interface{}{"level": levelID})
}

func (FilterTracer) WordBackspace(levelID, filter string) {
	logging.Trace("filter.word-backspace", map[string]interface{}{"level": levelID, "filter": filter})
}

func (FilterTracer) Cursor(levelID string, pos int) {
	logging.Trace("filter.cursor", map[string]interface{}{"level": levelID, "cursor": pos})
}

func (FilterTracer) CursorWord(levelID string, pos int) {
	logging.Trace("filter.cursor-word", map[string]interface{}{"level": levelID, "cursor": pos})
}

func (FilterTracer) Append(levelID, filter string) {
	logging.Trace("filter.append", map[string]interface{}{"level": levelID, "filter": filter})
}

func (FilterTracer) Backspace(levelID, filter string) {
	logging.Trace("filter.backspace", map[string]interface{}{"level": levelID, "filter": filter})
}

func (IntentTracer) Queue(action string) {
	logging.Trace("intent.queue", map[string]interface{}{"action": action})
}

func (IntentTracer) Emit(action, route string) {
	logging.Trace("intent.emit", map[string]interface{}{"action": action, "route": route})
}

func (IntentTracer) Unknown(action string) {
	logging.Trace("intent.unknown", map[string]interface{}{"action": action})
}
