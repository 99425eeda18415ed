package command

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stackmill/env-dashboard/internal/intent"
	"github.com/stackmill/env-dashboard/internal/logging/events"
)

// Request names an accepted action and the label it was offered under.
type Request struct {
	Action string
	Label  string
}

// Navigation is the terminal message of an accepted action: the console
// route an external navigator should open. An empty route marks an
// action with no mapped destination.
type Navigation struct {
	Action string
	Route  string
}

// Bus turns accepted actions into navigation intents.
type Bus struct{}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Execute resolves the action against the intent route table inside a
// Bubble Tea command while emitting trace logs.
func (b *Bus) Execute(ctx intent.Context, req Request) tea.Cmd {
	events.Intent.Queue(req.Action)
	return func() tea.Msg {
		emitted, ok := intent.Emit(req.Action, ctx)
		if !ok {
			events.Intent.Unknown(req.Action)
			return Navigation{Action: req.Action}
		}
		events.Intent.Emit(req.Action, emitted.Route)
		return Navigation{Action: req.Action, Route: emitted.Route}
	}
}
