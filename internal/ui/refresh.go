package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stackmill/env-dashboard/internal/data/dispatcher"
	"github.com/stackmill/env-dashboard/internal/logging/events"
	"github.com/stackmill/env-dashboard/internal/poll"
)

// refreshTickMsg carries one background poll result into the update loop.
type refreshTickMsg struct {
	event poll.Event
}

// waitForRefreshEvent blocks until the scheduler produces its next
// snapshot. The handler re-arms it, so exactly one of these commands is
// outstanding for the lifetime of the program.
func waitForRefreshEvent(s *poll.Scheduler) tea.Cmd {
	return func() tea.Msg {
		return refreshTickMsg{event: <-s.Events()}
	}
}

func (m *Model) handleRefreshTickMsg(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(refreshTickMsg)
	if !ok {
		return nil
	}
	events.Poll.Applied(tick.event.Token, tick.event.OK)
	cmd := m.afterDispatch(m.dispatcher.Handle(dispatcher.Update{
		Token:    tick.event.Token,
		Kind:     dispatcher.KindOverview,
		Present:  tick.event.OK,
		Overview: tick.event.Overview,
	}))
	if m.scheduler == nil {
		return cmd
	}
	return tea.Batch(cmd, waitForRefreshEvent(m.scheduler))
}
