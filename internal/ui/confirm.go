package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stackmill/env-dashboard/internal/intent"
	"github.com/stackmill/env-dashboard/internal/logging/events"
	"github.com/stackmill/env-dashboard/internal/ui/command"
)

// confirmState holds an action waiting for the user to approve it. Only
// one can be pending at a time.
type confirmState struct {
	action string
	label  string
	ctx    intent.Context
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) tea.Cmd {
	pending := m.confirm
	if pending == nil {
		m.mode = ModeDashboard
		return nil
	}
	switch msg.String() {
	case "y", "Y", "enter":
		m.confirm = nil
		m.mode = ModeDashboard
		events.UI.Confirm(pending.action, true)
		return m.bus.Execute(pending.ctx, command.Request{Action: pending.action, Label: pending.label})
	case "n", "N", "esc", "ctrl+c":
		m.confirm = nil
		m.mode = ModeDashboard
		events.UI.Confirm(pending.action, false)
		if m.verbose {
			m.setInfo(fmt.Sprintf("%s cancelled.", pending.label))
		}
		return nil
	}
	return nil
}

func (m *Model) confirmPrompt() string {
	if m.confirm == nil {
		return ""
	}
	if m.confirm.ctx.DeploymentID != "" {
		return fmt.Sprintf("%s? (y/n)", m.confirm.label)
	}
	_, cluster := m.session.RouteNames()
	if cluster == "" {
		cluster = m.session.Identity.ID
	}
	return fmt.Sprintf("%s %s? (y/n)", m.confirm.label, cluster)
}
