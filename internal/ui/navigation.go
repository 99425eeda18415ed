package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stackmill/env-dashboard/internal/derive"
	"github.com/stackmill/env-dashboard/internal/envid"
	"github.com/stackmill/env-dashboard/internal/intent"
	"github.com/stackmill/env-dashboard/internal/logging/events"
	"github.com/stackmill/env-dashboard/internal/picker"
	"github.com/stackmill/env-dashboard/internal/session"
	"github.com/stackmill/env-dashboard/internal/ui/command"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch m.mode {
	case ModeConfirm:
		return m.handleConfirmKey(keyMsg)
	case ModePicker:
		return m.handlePickerKey(keyMsg)
	default:
		return m.handleDashboardKey(keyMsg)
	}
}

func (m *Model) handleDashboardKey(msg tea.KeyMsg) tea.Cmd {
	switch key := msg.String(); key {
	case "ctrl+c", "q":
		return tea.Quit
	case "r":
		return m.reloadSession()
	case "p":
		return m.openPicker()
	case "tab", "right":
		return m.cycleTab(1)
	case "shift+tab", "left":
		return m.cycleTab(-1)
	case "[":
		return m.releasesPageCmd(-1)
	case "]":
		return m.releasesPageCmd(1)
	case "1", "2", "3", "4", "5":
		return m.setActiveTab(session.Tabs()[int(key[0]-'1')])
	default:
		return m.handleActionKey(key)
	}
}

func (m *Model) cycleTab(delta int) tea.Cmd {
	tabs := session.Tabs()
	idx := 0
	for i, tab := range tabs {
		if tab == m.session.ActiveTab {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(tabs)) % len(tabs)
	return m.setActiveTab(tabs[idx])
}

func (m *Model) setActiveTab(tab session.Tab) tea.Cmd {
	if tab == m.session.ActiveTab {
		return nil
	}
	m.session.ActiveTab = tab
	events.UI.TabSwitch(string(tab))
	m.errMsg = ""
	m.forceClearInfo()
	return m.ensureTabCmd(tab)
}

// handleActionKey maps the uppercase hotkeys to environment actions.
// Which keys are live depends on the cluster state and the latest
// deployment, so an inert key falls through silently.
func (m *Model) handleActionKey(key string) tea.Cmd {
	sess := m.session
	if sess.State != session.Ready || sess.Overview == nil {
		return nil
	}
	ov := sess.Overview
	for _, action := range derive.HeaderActions(ov.ClusterState) {
		if action.Key == key {
			return m.startAction(action.Name, action.Label, action.Danger, "")
		}
	}
	if dep := ov.LatestDeployment; dep != nil {
		switch {
		case key == "A" && dep.Status == "WAITING_APPROVAL":
			return m.startAction(intent.ActionApprove, "Approve deployment", false, dep.ID)
		case key == "X" && dep.Status == "WAITING_APPROVAL":
			return m.startAction(intent.ActionReject, "Reject deployment", true, dep.ID)
		case key == "B" && (dep.Status == "IN_PROGRESS" || dep.Status == "QUEUED"):
			return m.startAction(intent.ActionAbort, "Abort deployment", true, dep.ID)
		}
	}
	switch key {
	case "C":
		if sess.CostExplorer != nil && *sess.CostExplorer {
			return m.startAction(intent.ActionCostExplorer, "Cost explorer", false, "")
		}
	case "E":
		return m.startAction(intent.ActionSettings, "Settings", false, "")
	case "W":
		return m.startAction(intent.ActionVariables, "Variables", false, "")
	}
	return nil
}

// startAction either runs the action straight through the command bus or
// parks it behind a confirmation prompt when it can destroy something.
func (m *Model) startAction(name, label string, danger bool, deploymentID string) tea.Cmd {
	m.errMsg = ""
	m.forceClearInfo()
	ctx := m.intentContext(deploymentID)
	if danger {
		m.confirm = &confirmState{action: name, label: label, ctx: ctx}
		m.mode = ModeConfirm
		return nil
	}
	return m.bus.Execute(ctx, command.Request{Action: name, Label: label})
}

func (m *Model) intentContext(deploymentID string) intent.Context {
	stack, cluster := m.session.RouteNames()
	return intent.Context{Stack: stack, Cluster: cluster, DeploymentID: deploymentID}
}

func (m *Model) handlePickerKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "esc":
		return m.handleEscapeKey()
	case "enter":
		return m.handleEnterKey()
	}
	if handled, cmd := m.handleTextInput(msg); handled {
		return cmd
	}
	switch msg.String() {
	case "up":
		return m.moveCursorUp()
	case "down":
		return m.moveCursorDown()
	case "pgup":
		return m.moveCursorPageUp()
	case "pgdown":
		return m.moveCursorPageDown()
	case "home":
		return m.moveCursorHome()
	case "end":
		return m.moveCursorEnd()
	}
	return nil
}

func (m *Model) handleEscapeKey() tea.Cmd {
	current := m.currentLevel()
	if current == nil || len(m.stack) <= 1 {
		m.closePicker()
		return nil
	}
	parent := m.stack[len(m.stack)-2]
	m.stack = m.stack[:len(m.stack)-1]
	if parent != nil {
		if parent.LastCursor >= 0 && parent.LastCursor < len(parent.Items) {
			parent.Cursor = parent.LastCursor
		} else if len(parent.Items) > 0 {
			parent.Cursor = len(parent.Items) - 1
		}
		parent.LastCursor = -1
		m.syncViewport(parent)
	}
	m.errMsg = ""
	m.forceClearInfo()
	return m.ensurePreviewForLevel(parent)
}

func (m *Model) handleEnterKey() tea.Cmd {
	if m.loading {
		return nil
	}
	current := m.currentLevel()
	if current == nil || len(current.Items) == 0 {
		return nil
	}
	item := current.Items[current.Cursor]
	events.UI.PickerEnter(current.ID, item.ID, item.Label, current.Filter)
	beforeCursor := current.FilterCursorPos()
	current.SetFilter("", 0)
	m.noteFilterCursorChange(current, beforeCursor)
	switch current.ID {
	case picker.LevelProjects:
		current.LastCursor = current.Cursor
		m.loading = true
		m.pendingID = picker.LevelEnvironments
		m.pendingLabel = item.Name
		m.errMsg = ""
		m.forceClearInfo()
		return m.loadPickerCmd(picker.LevelEnvironments, item.Name, picker.LoadEnvironments, item)
	case picker.LevelEnvironments:
		identity := envid.Identity{ID: item.ID, Stack: current.Title, Cluster: item.Name}
		m.closePicker()
		return m.switchEnvironment(identity)
	}
	return nil
}

func (m *Model) moveCursorUp() tea.Cmd {
	current := m.currentLevel()
	if current == nil {
		return nil
	}
	n := len(current.Items)
	if n == 0 {
		return nil
	}
	if current.Cursor > 0 {
		current.Cursor--
	} else {
		current.Cursor = n - 1
	}
	events.UI.PickerCursor(current.ID, current.Cursor)
	m.syncViewport(current)
	return m.ensurePreviewForLevel(current)
}

func (m *Model) moveCursorDown() tea.Cmd {
	current := m.currentLevel()
	if current == nil {
		return nil
	}
	n := len(current.Items)
	if n == 0 {
		return nil
	}
	if current.Cursor < n-1 {
		current.Cursor++
	} else {
		current.Cursor = 0
	}
	events.UI.PickerCursor(current.ID, current.Cursor)
	m.syncViewport(current)
	return m.ensurePreviewForLevel(current)
}

func (m *Model) moveCursorPageUp() tea.Cmd {
	current := m.currentLevel()
	if current == nil {
		return nil
	}
	if current.MoveCursorPageUp(m.maxVisibleItems()) {
		events.UI.PickerCursor(current.ID, current.Cursor)
	}
	m.syncViewport(current)
	return m.ensurePreviewForLevel(current)
}

func (m *Model) moveCursorPageDown() tea.Cmd {
	current := m.currentLevel()
	if current == nil {
		return nil
	}
	if current.MoveCursorPageDown(m.maxVisibleItems()) {
		events.UI.PickerCursor(current.ID, current.Cursor)
	}
	m.syncViewport(current)
	return m.ensurePreviewForLevel(current)
}

func (m *Model) moveCursorHome() tea.Cmd {
	current := m.currentLevel()
	if current == nil {
		return nil
	}
	if current.MoveCursorHome() {
		events.UI.PickerCursor(current.ID, current.Cursor)
	}
	m.syncViewport(current)
	return m.ensurePreviewForLevel(current)
}

func (m *Model) moveCursorEnd() tea.Cmd {
	current := m.currentLevel()
	if current == nil {
		return nil
	}
	if current.MoveCursorEnd() {
		events.UI.PickerCursor(current.ID, current.Cursor)
	}
	m.syncViewport(current)
	return m.ensurePreviewForLevel(current)
}

func (m *Model) openPicker() tea.Cmd {
	m.mode = ModePicker
	m.stack = nil
	m.preview = nil
	m.loading = true
	m.pendingID = picker.LevelProjects
	m.pendingLabel = "projects"
	m.errMsg = ""
	m.forceClearInfo()
	return m.loadPickerCmd(picker.LevelProjects, "Projects", picker.LoadProjects, picker.Item{})
}

func (m *Model) closePicker() {
	m.mode = ModeDashboard
	m.stack = nil
	m.preview = nil
	m.loading = false
	m.pendingID = ""
	m.pendingLabel = ""
	m.errMsg = ""
	m.forceClearInfo()
}

func (m *Model) handlePickerLoadedMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(pickerLoadedMsg)
	if !ok {
		return nil
	}
	if update.id != m.pendingID {
		return nil
	}
	m.loading = false
	m.pendingID = ""
	m.pendingLabel = ""
	if update.err != nil {
		m.errMsg = update.err.Error()
		return nil
	}
	m.errMsg = ""
	lvl := newLevel(update.id, update.title, update.items)
	m.syncViewport(lvl)
	m.stack = append(m.stack, lvl)
	if len(lvl.Items) == 0 {
		m.setInfo("No entries found.")
	} else if m.infoMsg != "" {
		m.clearInfo()
	}
	return m.ensurePreviewForLevel(lvl)
}

func (m *Model) currentLevel() *level {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}

func (m *Model) syncViewport(l *level) {
	if l == nil {
		return
	}
	l.EnsureCursorVisible(m.maxVisibleItems())
}
