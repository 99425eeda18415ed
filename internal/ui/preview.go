package ui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	humanize "github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/stackmill/env-dashboard/internal/derive"
	"github.com/stackmill/env-dashboard/internal/picker"
	"github.com/stackmill/env-dashboard/internal/platform"
)

type previewData struct {
	target       string
	label        string
	lines        []string
	err          string
	loading      bool
	seq          int
	scrollOffset int // position within lines; clamped by renderPreviewPanel
}

type previewLoadedMsg struct {
	levelID string
	target  string
	seq     int
	lines   []string
	err     string
}

// previewEligible reports whether hovering an item on the given level
// should fetch a summary. Only environments have one worth showing.
func previewEligible(levelID string) bool {
	return levelID == picker.LevelEnvironments
}

func (m *Model) ensurePreviewForLevel(level *level) tea.Cmd {
	if level == nil {
		return nil
	}
	if !previewEligible(level.ID) {
		m.clearPreview(level.ID)
		return nil
	}
	if len(level.Items) == 0 {
		m.clearPreview(level.ID)
		return nil
	}
	if level.Cursor < 0 || level.Cursor >= len(level.Items) {
		level.Cursor = 0
	}
	item := level.Items[level.Cursor]
	if item.ID == "" {
		m.clearPreview(level.ID)
		return nil
	}
	if m.preview == nil {
		m.preview = make(map[string]*previewData)
	}
	if existing, ok := m.preview[level.ID]; ok && existing.target == item.ID && !existing.loading {
		return nil
	}
	m.previewSeq++
	seq := m.previewSeq
	m.preview[level.ID] = &previewData{
		target:  item.ID,
		label:   item.Name,
		loading: true,
		seq:     seq,
	}
	client := m.client
	levelID := level.ID
	target := item.ID
	return func() tea.Msg {
		ov, ok := client.Overview(context.Background(), target)
		if !ok {
			return previewLoadedMsg{levelID: levelID, target: target, seq: seq, err: "environment details unavailable"}
		}
		return previewLoadedMsg{levelID: levelID, target: target, seq: seq, lines: previewLines(ov)}
	}
}

func (m *Model) clearPreview(levelID string) {
	if levelID == "" || m.preview == nil {
		return
	}
	delete(m.preview, levelID)
}

func (m *Model) activePreview() *previewData {
	if len(m.stack) == 0 || m.preview == nil {
		return nil
	}
	current := m.currentLevel()
	if current == nil {
		return nil
	}
	return m.preview[current.ID]
}

func (m *Model) handlePreviewLoadedMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(previewLoadedMsg)
	if !ok {
		return nil
	}
	if m.preview == nil {
		return nil
	}
	data, ok := m.preview[update.levelID]
	if !ok {
		return nil
	}
	if data.seq != update.seq || data.target != update.target {
		return nil
	}
	data.loading = false
	if update.err != "" {
		data.err = update.err
		data.lines = nil
	} else {
		data.err = ""
		data.lines = update.lines
	}
	data.scrollOffset = 0
	// Re-sync the viewport so the cursor stays visible with the updated
	// item height budget.
	m.syncViewport(m.currentLevel())
	return nil
}

func previewLines(ov *platform.Overview) []string {
	if ov == nil {
		return nil
	}
	lines := []string{"state      " + derive.ClusterState(ov.ClusterState).Label}
	if ov.CloudProvider != "" {
		cloud := ov.CloudProvider
		if ov.CloudAccountID != "" {
			cloud += " (" + ov.CloudAccountID + ")"
		}
		lines = append(lines, "cloud      "+cloud)
	}
	if ov.Blueprint != nil {
		lines = append(lines, "blueprint  "+strings.TrimSpace(ov.Blueprint.Name+" "+ov.Blueprint.Version))
	}
	if n := len(ov.InstalledComponents); n > 0 {
		lines = append(lines, "components "+english.Plural(n, "component", ""))
	}
	if n := len(ov.InProgressDeployments); n > 0 {
		lines = append(lines, "deploying  "+english.Plural(n, "deployment", ""))
	}
	if dep := ov.LatestDeployment; dep != nil {
		line := "latest     " + dep.Service + " " + derive.DeploymentStatus(dep.Status).Label
		if !dep.StartedAt.IsZero() {
			line += ", " + humanize.Time(dep.StartedAt)
		}
		lines = append(lines, line)
	}
	if !ov.UpdatedAt.IsZero() {
		lines = append(lines, "updated    "+humanize.Time(ov.UpdatedAt))
	}
	return lines
}
