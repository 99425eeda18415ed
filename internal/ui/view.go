package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	humanize "github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/muesli/reflow/truncate"
	"github.com/stackmill/env-dashboard/internal/derive"
	"github.com/stackmill/env-dashboard/internal/format/table"
	"github.com/stackmill/env-dashboard/internal/intent"
	"github.com/stackmill/env-dashboard/internal/picker"
	"github.com/stackmill/env-dashboard/internal/platform"
	"github.com/stackmill/env-dashboard/internal/session"
	"github.com/stackmill/env-dashboard/internal/theme"
)

const (
	previewMaxDisplayLines = 8   // used by inline (vertical) preview only
	previewPanelMinWidth   = 40  // minimum cols for the preview panel; below this no split
	previewPanelFraction   = 0.5 // fraction of total width given to the preview panel
)

const (
	dashboardFooterText = "tab/1-5 switch  [/] page  p environments  r reload  q quit"
	pickerFooterText    = "↑/↓ move  enter select  esc back  ctrl+c quit"
)

// previewBorder styles used when drawing the preview box.
var (
	previewBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	previewScrollStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

var tabTitles = map[session.Tab]string{
	session.TabOverview:  "Overview",
	session.TabReleases:  "Releases",
	session.TabResources: "Resources",
	session.TabConfig:    "Config",
	session.TabSchedule:  "Schedule",
}

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

func styledText(style *lipgloss.Style, text string) string {
	if style == nil || text == "" {
		return text
	}
	return style.Render(text)
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.mode == ModePicker {
		if m.hasSidePreview() {
			return m.viewPickerSideBySide()
		}
		return m.viewPicker()
	}
	return m.viewDashboard()
}

func (m *Model) viewDashboard() string {
	lines := make([]styledLine, 0, 32)
	lines = append(lines, styledLine{text: m.headerTitle(), style: styles.Header})
	sess := m.session
	switch sess.State {
	case session.Failed:
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: "Unable to load environment", style: styles.Error})
		if sess.BootErr != "" {
			lines = append(lines, styledLine{text: sess.BootErr, style: styles.Info})
		}
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: "r retry  q quit", style: styles.Hint})
	case session.Ready:
		if state := m.stateLine(); state.text != "" {
			lines = append(lines, state)
		}
		if bar := m.actionBarLine(); bar.text != "" {
			lines = append(lines, styledLine{})
			lines = append(lines, bar)
		}
		lines = append(lines, styledLine{})
		lines = append(lines, m.tabBarLine())
		lines = append(lines, styledLine{})
		lines = append(lines, m.tabBodyLines()...)
	default:
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: m.loadingText(), style: styles.Loading})
	}
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: dashboardFooterText, style: styles.Footer})
	}
	// Reserve 2 rows for the bottom bar (blank + status/confirm line).
	lines = limitHeight(lines, m.height-2, m.width)
	lines = applyWidth(lines, m.width)

	var status styledLine
	switch {
	case m.mode == ModeConfirm && m.confirm != nil:
		status = styledLine{text: m.confirmPrompt(), style: styles.ActionDanger}
	case m.errMsg != "":
		status = styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	}
	bottomLines := applyWidth([]styledLine{{}, status}, m.width)
	lines = append(lines, bottomLines...)
	return renderLines(lines)
}

func (m *Model) headerTitle() string {
	stack, cluster := m.session.RouteNames()
	if stack != "" && cluster != "" {
		return stack + " / " + cluster
	}
	if cluster != "" {
		return cluster
	}
	if id := m.session.Identity.ID; id != "" {
		return id
	}
	return "environment dashboard"
}

// stateLine is the badge row under the title: classified cluster state
// plus freshness metadata.
func (m *Model) stateLine() styledLine {
	sess := m.session
	ov := sess.Overview
	if ov == nil {
		return styledLine{}
	}
	desc := derive.ClusterState(ov.ClusterState)
	badge := theme.ForState(desc.Color, desc.Pulse)
	label := desc.Label
	meta := ""
	switch {
	case sess.OverviewDegraded:
		meta = "details unavailable"
	case !ov.UpdatedAt.IsZero():
		meta = "updated " + humanize.Time(ov.UpdatedAt)
	}
	if sess.PollingActive {
		if meta != "" {
			meta += ", auto-refreshing"
		} else {
			meta = "auto-refreshing"
		}
	}
	if meta == "" {
		return styledLine{text: label, style: &badge}
	}
	return styledLine{
		text:          label + "  " + meta,
		style:         styles.Hint,
		prefixStyle:   &badge,
		highlightFrom: len([]rune(label)),
	}
}

func (m *Model) loadingText() string {
	switch m.session.State {
	case session.ResolvingIdentity:
		return "Resolving environment…"
	case session.LoadingCritical:
		return "Loading environment…"
	default:
		return "Starting…"
	}
}

func (m *Model) actionBarLine() styledLine {
	sess := m.session
	ov := sess.Overview
	if ov == nil {
		return styledLine{}
	}
	parts := make([]string, 0, 6)
	add := func(action derive.Action) {
		text := fmt.Sprintf("[%s] %s", action.Key, action.Label)
		style := styles.ActionSecondary
		if action.Primary {
			style = styles.ActionPrimary
		} else if action.Danger {
			style = styles.ActionDanger
		}
		parts = append(parts, styledText(style, text))
	}
	for _, action := range derive.HeaderActions(ov.ClusterState) {
		add(action)
	}
	if dep := ov.LatestDeployment; dep != nil {
		switch dep.Status {
		case "WAITING_APPROVAL":
			add(derive.Action{Name: intent.ActionApprove, Label: "Approve", Key: "A", Primary: true})
			add(derive.Action{Name: intent.ActionReject, Label: "Reject", Key: "X", Danger: true})
		case "IN_PROGRESS", "QUEUED":
			add(derive.Action{Name: intent.ActionAbort, Label: "Abort", Key: "B", Danger: true})
		}
	}
	if sess.CostExplorer != nil && *sess.CostExplorer {
		add(derive.Action{Name: intent.ActionCostExplorer, Label: "Costs", Key: "C"})
	}
	if len(parts) == 0 {
		return styledLine{}
	}
	return styledLine{text: strings.Join(parts, "  "), raw: true}
}

func (m *Model) tabBarLine() styledLine {
	parts := make([]string, 0, 5)
	for i, tab := range session.Tabs() {
		text := fmt.Sprintf(" %d %s ", i+1, tabTitles[tab])
		style := styles.TabInactive
		if tab == m.session.ActiveTab {
			style = styles.TabActive
		}
		parts = append(parts, styledText(style, text))
	}
	return styledLine{text: strings.Join(parts, " "), raw: true}
}

func (m *Model) tabBodyLines() []styledLine {
	switch m.session.ActiveTab {
	case session.TabReleases:
		return m.releasesBody()
	case session.TabResources:
		return m.resourcesBody()
	case session.TabConfig:
		return m.configBody()
	case session.TabSchedule:
		return m.scheduleBody()
	default:
		return m.overviewBody()
	}
}

func styledRow(label, value string) []string {
	return []string{styledText(styles.Label, label), styledText(styles.Value, value)}
}

func (m *Model) overviewBody() []styledLine {
	sess := m.session
	ov := sess.Overview
	lines := make([]styledLine, 0, 16)
	if sess.OverviewDegraded {
		lines = append(lines, styledLine{text: "Environment details are unavailable right now.", style: styles.Placeholder})
	}
	if readiness, ok := derive.ReadinessChecklist(ov, sess.Counts); ok {
		return append(lines, readinessLines(readiness)...)
	}
	rows := make([][]string, 0, 6)
	if ov.CloudProvider != "" {
		cloud := ov.CloudProvider
		if ov.CloudAccountID != "" {
			cloud += " (" + ov.CloudAccountID + ")"
		}
		rows = append(rows, styledRow("cloud", cloud))
	}
	if ov.Blueprint != nil {
		rows = append(rows, styledRow("blueprint", strings.TrimSpace(ov.Blueprint.Name+" "+ov.Blueprint.Version)))
	}
	if stats := sess.Stats; stats != nil {
		rows = append(rows, styledRow("resources", resourceSummary(stats)))
	}
	if len(ov.DeploymentsByType) > 0 {
		rows = append(rows, styledRow("deployments", deploymentTypeSummary(ov.DeploymentsByType)))
	}
	if len(ov.DownstreamEnvironments) > 0 {
		rows = append(rows, styledRow("downstream", strings.Join(ov.DownstreamEnvironments, ", ")))
	}
	for _, row := range table.Format(rows, nil) {
		lines = append(lines, styledLine{text: row, raw: true})
	}
	if len(ov.InstalledComponents) > 0 {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: "Installed components", style: styles.SectionTitle})
		names := make([]string, 0, len(ov.InstalledComponents))
		for name := range ov.InstalledComponents {
			names = append(names, name)
		}
		sort.Strings(names)
		compRows := make([][]string, 0, len(names))
		for _, name := range names {
			compRows = append(compRows, styledRow(name, ov.InstalledComponents[name]))
		}
		for _, row := range table.Format(compRows, []table.Alignment{table.AlignLeft, table.AlignRight}) {
			lines = append(lines, styledLine{text: row, raw: true})
		}
	}
	return append(lines, m.deploymentLines()...)
}

func resourceSummary(stats *platform.ResourceStats) string {
	parts := make([]string, 0, 4)
	if stats.Services > 0 {
		parts = append(parts, english.Plural(stats.Services, "service", ""))
	}
	if stats.Databases > 0 {
		parts = append(parts, english.Plural(stats.Databases, "database", ""))
	}
	if stats.Jobs > 0 {
		parts = append(parts, english.Plural(stats.Jobs, "job", ""))
	}
	if stats.Volumes > 0 {
		parts = append(parts, english.Plural(stats.Volumes, "volume", ""))
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}

func deploymentTypeSummary(byType map[string]int) string {
	kinds := make([]string, 0, len(byType))
	for kind := range byType {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	parts := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		parts = append(parts, fmt.Sprintf("%s %d", strings.ToLower(kind), byType[kind]))
	}
	return strings.Join(parts, ", ")
}

func (m *Model) deploymentLines() []styledLine {
	ov := m.session.Overview
	lines := make([]styledLine, 0, 8)
	if len(ov.InProgressDeployments) > 0 {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: "In progress", style: styles.SectionTitle})
		for _, dep := range ov.InProgressDeployments {
			lines = append(lines, styledLine{text: deploymentRow(dep), raw: true})
		}
	}
	if ov.QueuedReleases > 0 {
		lines = append(lines, styledLine{
			text:  english.Plural(ov.QueuedReleases, "queued release", "") + " waiting",
			style: styles.Hint,
		})
	}
	if dep := ov.LatestDeployment; dep != nil {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: "Latest deployment", style: styles.SectionTitle})
		lines = append(lines, styledLine{text: deploymentRow(*dep), raw: true})
		if pct, ok := derive.DeployHealth(dep.Releases); ok {
			summary := fmt.Sprintf("%d%% healthy (%s)", pct, english.Plural(dep.Releases.Total(), "release", ""))
			lines = append(lines, styledLine{text: summary, style: styles.Hint})
		}
	}
	return lines
}

func deploymentRow(dep platform.Deployment) string {
	desc := derive.DeploymentStatus(dep.Status)
	badge := theme.ForState(desc.Color, desc.Pulse)
	row := styledText(styles.Value, dep.Service) + "  " + badge.Render(desc.Label)
	if !dep.StartedAt.IsZero() {
		row += "  " + styledText(styles.Hint, humanize.Time(dep.StartedAt))
	}
	return row
}

func readinessLines(r derive.Readiness) []styledLine {
	lines := make([]styledLine, 0, len(r.Checks)+len(r.Meta)+4)
	title := "Launch checklist"
	if r.Blueprint {
		title = "Blueprint environment"
	}
	lines = append(lines, styledLine{text: title, style: styles.SectionTitle})
	for _, meta := range r.Meta {
		lines = append(lines, styledLine{text: meta, style: styles.Value})
	}
	for _, check := range r.Checks {
		mark, style := "✗", styles.CheckFail
		if check.Passed {
			mark, style = "✓", styles.CheckPass
		}
		text := mark + " " + check.Name
		if !check.Passed && check.Hint != "" {
			text += "  " + check.Hint
		}
		lines = append(lines, styledLine{text: text, style: style})
	}
	if r.Ready {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: "Ready to launch.", style: styles.CheckPass})
	}
	return lines
}

func (m *Model) releasesBody() []styledLine {
	data := m.session.Releases
	if data == nil || !data.Settled {
		return []styledLine{{text: "Loading releases…", style: styles.Loading}}
	}
	if data.Absent {
		return []styledLine{{text: "Release history is unavailable.", style: styles.Placeholder}}
	}
	page := data.Page
	if page == nil || len(page.Items) == 0 {
		return []styledLine{{text: "No releases yet.", style: styles.Placeholder}}
	}
	rows := make([][]string, 0, len(page.Items))
	for _, dep := range page.Items {
		desc := derive.DeploymentStatus(dep.Status)
		badge := theme.ForState(desc.Color, desc.Pulse)
		started := ""
		if !dep.StartedAt.IsZero() {
			started = humanize.Time(dep.StartedAt)
		}
		releases := ""
		if total := dep.Releases.Total(); total > 0 {
			releases = fmt.Sprintf("%d", total)
			if pct, ok := derive.DeployHealth(dep.Releases); ok {
				releases = fmt.Sprintf("%d (%d%% ok)", total, pct)
			}
		}
		rows = append(rows, []string{
			styledText(styles.Value, dep.Service),
			badge.Render(desc.Label),
			styledText(styles.Hint, started),
			styledText(styles.Hint, releases),
		})
	}
	header := []string{
		styledText(styles.Label, "SERVICE"),
		styledText(styles.Label, "STATUS"),
		styledText(styles.Label, "STARTED"),
		styledText(styles.Label, "RELEASES"),
	}
	alignments := []table.Alignment{table.AlignLeft, table.AlignLeft, table.AlignLeft, table.AlignRight}
	lines := make([]styledLine, 0, len(rows)+4)
	for _, row := range table.FormatWithHeader(header, rows, alignments) {
		lines = append(lines, styledLine{text: row, raw: true})
	}
	if page.PageSize > 0 && page.Total > page.PageSize {
		pages := (page.Total + page.PageSize - 1) / page.PageSize
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{
			text:  fmt.Sprintf("page %d/%d, %s", page.Page, pages, english.Plural(page.Total, "deployment", "")),
			style: styles.Hint,
		})
	}
	return lines
}

func (m *Model) resourcesBody() []styledLine {
	data := m.session.Resources
	if data == nil || !data.ResourcesSettled {
		return []styledLine{{text: "Loading resources…", style: styles.Loading}}
	}
	lines := make([]styledLine, 0, 16)
	switch {
	case data.ResourcesAbsent:
		lines = append(lines, styledLine{text: "Resource details are unavailable.", style: styles.Placeholder})
	case len(data.Resources) == 0:
		lines = append(lines, styledLine{text: "No resources found.", style: styles.Placeholder})
	default:
		rows := make([][]string, 0, len(data.Resources))
		for _, res := range data.Resources {
			rows = append(rows, []string{
				styledText(styles.Value, res.Name),
				styledText(styles.Hint, strings.ToLower(res.Type)),
				styledText(styles.Value, res.Status),
			})
		}
		header := []string{
			styledText(styles.Label, "NAME"),
			styledText(styles.Label, "TYPE"),
			styledText(styles.Label, "STATUS"),
		}
		for _, row := range table.FormatWithHeader(header, rows, nil) {
			lines = append(lines, styledLine{text: row, raw: true})
		}
	}
	if data.IngressSkipped {
		return lines
	}
	lines = append(lines, styledLine{})
	lines = append(lines, styledLine{text: "Ingress", style: styles.SectionTitle})
	switch {
	case !data.IngressSettled:
		lines = append(lines, styledLine{text: "Loading ingress rules…", style: styles.Loading})
	case data.IngressAbsent:
		lines = append(lines, styledLine{text: "Ingress rules are unavailable.", style: styles.Placeholder})
	case len(data.Ingress) == 0:
		lines = append(lines, styledLine{text: "No ingress rules.", style: styles.Placeholder})
	default:
		rows := make([][]string, 0, len(data.Ingress))
		for _, rule := range data.Ingress {
			rows = append(rows, []string{
				styledText(styles.Value, rule.Host),
				styledText(styles.Hint, rule.Path),
				styledText(styles.Value, rule.Service),
				styledText(styles.Hint, fmt.Sprintf("%d", rule.Port)),
			})
		}
		header := []string{
			styledText(styles.Label, "HOST"),
			styledText(styles.Label, "PATH"),
			styledText(styles.Label, "SERVICE"),
			styledText(styles.Label, "PORT"),
		}
		alignments := []table.Alignment{table.AlignLeft, table.AlignLeft, table.AlignLeft, table.AlignRight}
		for _, row := range table.FormatWithHeader(header, rows, alignments) {
			lines = append(lines, styledLine{text: row, raw: true})
		}
	}
	return lines
}

func (m *Model) configBody() []styledLine {
	sess := m.session
	ov := sess.Overview
	lines := make([]styledLine, 0, 8)
	rows := make([][]string, 0, 5)
	if counts := sess.Counts; counts != nil {
		rows = append(rows, styledRow("variables", fmt.Sprintf("%d", counts.Total)))
		rows = append(rows, styledRow("secrets", fmt.Sprintf("%d", counts.Secrets)))
	} else {
		lines = append(lines, styledLine{text: "Variable counts are unavailable.", style: styles.Placeholder})
	}
	state := "incomplete"
	if ov.ConfigComplete {
		state = "complete"
	}
	rows = append(rows, styledRow("configuration", state))
	if bp := ov.Blueprint; bp != nil {
		rows = append(rows, styledRow("blueprint", strings.TrimSpace(bp.Name+" "+bp.Version)))
		if bp.Schema != "" {
			rows = append(rows, styledRow("schema", bp.Schema))
		}
	}
	for _, row := range table.Format(rows, nil) {
		lines = append(lines, styledLine{text: row, raw: true})
	}
	lines = append(lines, styledLine{})
	lines = append(lines, styledLine{text: "W variables  E settings", style: styles.Hint})
	return lines
}

func (m *Model) scheduleBody() []styledLine {
	data := m.session.Schedule
	if data == nil || !data.SchedulesSettled {
		return []styledLine{{text: "Loading schedules…", style: styles.Loading}}
	}
	lines := make([]styledLine, 0, 16)
	switch {
	case data.SchedulesAbsent:
		lines = append(lines, styledLine{text: "Schedules are unavailable.", style: styles.Placeholder})
	case len(data.Schedules) == 0:
		lines = append(lines, styledLine{text: "No schedules configured.", style: styles.Placeholder})
	default:
		rows := make([][]string, 0, len(data.Schedules))
		for _, sched := range data.Schedules {
			state, style := "enabled", styles.CheckPass
			if !sched.Enabled {
				state, style = "disabled", styles.Hint
			}
			rows = append(rows, []string{
				styledText(styles.Value, sched.Action),
				styledText(styles.Value, sched.Cron),
				styledText(styles.Hint, sched.Timezone),
				styledText(style, state),
			})
		}
		header := []string{
			styledText(styles.Label, "ACTION"),
			styledText(styles.Label, "CRON"),
			styledText(styles.Label, "TIMEZONE"),
			styledText(styles.Label, "STATE"),
		}
		for _, row := range table.FormatWithHeader(header, rows, nil) {
			lines = append(lines, styledLine{text: row, raw: true})
		}
	}
	lines = append(lines, styledLine{})
	lines = append(lines, styledLine{text: "Maintenance window", style: styles.SectionTitle})
	switch {
	case !data.WindowSettled:
		lines = append(lines, styledLine{text: "Loading maintenance window…", style: styles.Loading})
	case data.WindowAbsent:
		lines = append(lines, styledLine{text: "Maintenance window is unavailable.", style: styles.Placeholder})
	case data.Window == nil || !data.Window.Enabled:
		lines = append(lines, styledLine{text: "No maintenance window set.", style: styles.Placeholder})
	default:
		w := data.Window
		text := fmt.Sprintf("%s %s, %s", w.Day, w.Start, english.Plural(w.DurationHours, "hour", ""))
		lines = append(lines, styledLine{text: text, style: styles.Value})
	}
	return lines
}

// hasSidePreview reports whether the picker should be rendered with the
// preview panel on the right rather than inline below the items.
func (m *Model) hasSidePreview() bool {
	current := m.currentLevel()
	if current == nil {
		return false
	}
	if !previewEligible(current.ID) {
		return false
	}
	return m.previewPanelWidth() > 0
}

// previewPanelWidth returns the width in columns for the right-hand
// preview panel. Returns 0 when the terminal is too narrow to split.
func (m *Model) previewPanelWidth() int {
	if m.width <= 0 {
		return 0
	}
	w := int(float64(m.width) * previewPanelFraction)
	if w < previewPanelMinWidth {
		return 0
	}
	return w
}

// menuColumnWidth returns the width available for the left-hand picker column.
func (m *Model) menuColumnWidth() int {
	return m.width - m.previewPanelWidth()
}

func (m *Model) pickerHeader() string {
	segments := []string{"environments"}
	for _, lvl := range m.stack {
		if lvl.ID != picker.LevelEnvironments {
			continue
		}
		if title := strings.TrimSpace(lvl.Title); title != "" {
			segments = append(segments, title)
		}
	}
	if m.loading && m.pendingID == picker.LevelEnvironments {
		if label := strings.TrimSpace(m.pendingLabel); label != "" {
			segments = append(segments, label)
		}
	}
	return strings.Join(segments, " → ")
}

func (m *Model) viewPicker() string {
	lines := make([]styledLine, 0, 16)
	if header := m.pickerHeader(); header != "" {
		lines = append(lines, styledLine{text: header, style: styles.Header})
	}
	lines = append(lines, m.pickerItemLines(m.width)...)
	if preview := m.activePreview(); shouldRenderPreview(preview) {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: previewTitleText(preview), style: styles.SectionTitle})
		if preview.err != "" {
			lines = append(lines, styledLine{text: preview.err, style: styles.Error})
		} else {
			for _, line := range previewDisplayLines(preview) {
				lines = append(lines, styledLine{text: line, style: styles.Info})
			}
		}
	}
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: pickerFooterText, style: styles.Footer})
	}
	// Reserve 2 rows for the bottom bar (error/status + prompt).
	lines = limitHeight(lines, m.height-2, m.width)
	lines = applyWidth(lines, m.width)

	var status styledLine
	if m.errMsg != "" {
		status = styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	}
	bottomLines := []styledLine{
		status,
		{text: m.filterPrompt()},
	}
	bottomLines = applyWidth(bottomLines, m.width)
	lines = append(lines, bottomLines...)
	return renderLines(lines)
}

// viewPickerSideBySide renders the picker items on the left and a preview
// panel on the right.
func (m *Model) viewPickerSideBySide() string {
	menuW := m.menuColumnWidth()
	prevW := m.previewPanelWidth()

	// Bottom bar: status/error line + filter prompt.
	// These span the full terminal width beneath both columns.
	const bottomBarRows = 2

	contentLines := make([]styledLine, 0, 16)
	if header := m.pickerHeader(); header != "" {
		contentLines = append(contentLines, styledLine{text: header, style: styles.Header})
	}
	contentLines = append(contentLines, m.pickerItemLines(menuW)...)
	if info := m.currentInfo(); info != "" {
		contentLines = append(contentLines, styledLine{})
		contentLines = append(contentLines, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		contentLines = append(contentLines, styledLine{})
		contentLines = append(contentLines, styledLine{text: pickerFooterText, style: styles.Footer})
	}

	// Pad content lines so the columns fill the space above the bottom bar.
	panelH := m.height - bottomBarRows
	if panelH < 1 {
		panelH = 1
	}
	if len(contentLines) > panelH {
		contentLines = contentLines[:panelH]
	}
	for len(contentLines) < panelH {
		contentLines = append(contentLines, styledLine{})
	}

	contentLines = applyWidth(contentLines, menuW)
	leftStr := renderLines(contentLines)

	// Pad/truncate every rendered row to exactly menuW visible columns so
	// JoinHorizontal keeps the preview panel flush to the right edge
	// regardless of content length or cursor-blink state.
	leftRows := strings.Split(leftStr, "\n")
	for i, row := range leftRows {
		w := lipgloss.Width(row)
		if w > menuW {
			leftRows[i] = truncate.StringWithTail(row, uint(menuW-1), "…")
		} else if w < menuW {
			leftRows[i] = row + strings.Repeat(" ", menuW-w)
		}
	}
	leftStr = strings.Join(leftRows, "\n")

	rightStr := m.renderPreviewPanel(m.activePreview(), prevW, panelH)

	topSection := lipgloss.JoinHorizontal(lipgloss.Top, leftStr, rightStr)

	var status styledLine
	if m.errMsg != "" {
		status = styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	}
	bottomLines := []styledLine{
		status,
		{text: m.filterPrompt()},
	}
	bottomLines = applyWidth(bottomLines, m.width)
	bottomStr := renderLines(bottomLines)

	return topSection + "\n" + bottomStr
}

func (m *Model) pickerItemLines(width int) []styledLine {
	current := m.currentLevel()
	if current == nil {
		return []styledLine{{text: fmt.Sprintf("Loading %s…", m.loadingLabel()), style: styles.Loading}}
	}
	m.syncViewport(current)
	lines := make([]styledLine, 0, len(current.Items)+2)
	start := 0
	displayItems := current.Items
	if maxItems := m.maxVisibleItems(); maxItems > 0 && len(displayItems) > maxItems {
		start = current.ViewportOffset
		if start < 0 {
			start = 0
		}
		if start+maxItems > len(displayItems) {
			start = len(displayItems) - maxItems
			if start < 0 {
				start = 0
			}
			current.ViewportOffset = start
		}
		displayItems = displayItems[start : start+maxItems]
	}
	if len(current.Items) == 0 {
		msg := "(no entries)"
		if current.Filter != "" {
			msg = fmt.Sprintf("No matches for %q", current.Filter)
		}
		lines = append(lines, styledLine{text: msg, style: styles.Info})
	} else {
		for i, item := range displayItems {
			idx := start + i
			lines = append(lines, m.buildItemLine(item.Label, idx, current, width))
		}
	}
	if m.loading {
		lines = append(lines, styledLine{text: fmt.Sprintf("Loading %s…", m.loadingLabel()), style: styles.Loading})
	}
	return lines
}

func (m *Model) loadingLabel() string {
	if label := strings.TrimSpace(m.pendingLabel); label != "" {
		return label
	}
	return "entries"
}

// buildItemLine constructs a single styledLine for a picker item.
// width is the target column width; when > 0 the text is padded so that
// the selected item's background spans the full container.
func (m *Model) buildItemLine(label string, idx int, current *level, width int) styledLine {
	indicator := "▌"
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	if idx == current.Cursor {
		indicatorStyle = styles.SelectedItem
		lineStyle = styles.SelectedItem
	}
	fullText := indicator + " " + label
	if width > 0 {
		if pad := width - len([]rune(fullText)); pad > 0 {
			fullText += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          fullText,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1, // just the ▌ character
	}
}

// renderPreviewPanel builds the bordered preview box as a string with
// exactly height rows and totalWidth columns.
func (m *Model) renderPreviewPanel(preview *previewData, totalWidth, height int) string {
	const (
		tlc = "╭"
		trc = "╮"
		blc = "╰"
		brc = "╯"
		hz  = "─"
		vt  = "│"
	)

	innerW := totalWidth - 2
	innerH := height - 2
	if innerW < 1 {
		innerW = 1
	}
	if innerH < 1 {
		innerH = 1
	}

	titleLabel := "Preview"
	scrollInfo := ""
	var contentLines []string
	var errLine string

	if preview != nil {
		lbl := strings.TrimSpace(preview.label)
		if lbl == "" {
			lbl = strings.TrimSpace(preview.target)
		}
		if lbl != "" {
			titleLabel = "Preview: " + lbl
		}

		if preview.err != "" {
			errLine = preview.err
		} else if len(preview.lines) > 0 {
			maxOffset := len(preview.lines) - innerH
			if maxOffset < 0 {
				maxOffset = 0
			}
			if preview.scrollOffset > maxOffset {
				preview.scrollOffset = maxOffset
			}
			if preview.scrollOffset < 0 {
				preview.scrollOffset = 0
			}
			end := preview.scrollOffset + innerH
			if end > len(preview.lines) {
				end = len(preview.lines)
			}
			contentLines = preview.lines[preview.scrollOffset:end]
			lastVisible := preview.scrollOffset + len(contentLines)
			scrollInfo = fmt.Sprintf(" %d/%d ", lastVisible, len(preview.lines))
		} else if preview.loading {
			contentLines = []string{"Loading…"}
		}
	} else {
		contentLines = []string{"Loading…"}
	}

	// Build top border: ╭─ title ──────────── scrollInfo ─╮
	// Fixed chars are the corners plus one dash on each side of the
	// title and scroll segments, so
	// dashes = totalWidth - 4 - len(titleSeg) - len(scrollSeg).
	titleSeg := " " + titleLabel + " "
	scrollSeg := scrollInfo
	dashes := totalWidth - 4 - len([]rune(titleSeg)) - len([]rune(scrollSeg))
	if dashes < 0 {
		// Too narrow for scroll info; drop it.
		scrollSeg = ""
		dashes = totalWidth - 4 - len([]rune(titleSeg))
	}
	if dashes < 0 {
		// Still too narrow; truncate title.
		titleSeg = " … "
		dashes = totalWidth - 4 - len([]rune(titleSeg))
	}
	if dashes < 0 {
		dashes = 0
	}
	topLine := previewBorderStyle.Render(tlc+hz) +
		styles.SectionTitle.Render(titleSeg) +
		previewBorderStyle.Render(strings.Repeat(hz, dashes)) +
		previewScrollStyle.Render(scrollSeg) +
		previewBorderStyle.Render(hz+trc)

	bottomLine := previewBorderStyle.Render(blc + strings.Repeat(hz, innerW) + brc)

	bodyStyle := styles.Info
	if errLine != "" {
		bodyStyle = styles.Error
		contentLines = []string{errLine}
	}

	// Build content rows, padded/truncated to innerH rows of innerW columns.
	rows := make([]string, 0, height)
	rows = append(rows, topLine)
	for i := 0; i < innerH; i++ {
		var content string
		if i < len(contentLines) {
			content = contentLines[i]
		}
		w := lipgloss.Width(content)
		if w > innerW {
			content = truncate.StringWithTail(content, uint(innerW-1), "…")
			w = lipgloss.Width(content)
		}
		if w < innerW {
			content = content + strings.Repeat(" ", innerW-w)
		}
		styledContent := content
		if bodyStyle != nil {
			styledContent = bodyStyle.Render(content)
		}
		rows = append(rows, previewBorderStyle.Render(vt)+styledContent+previewBorderStyle.Render(vt))
	}
	rows = append(rows, bottomLine)
	return strings.Join(rows, "\n")
}

// handleMouseMsg handles mouse wheel events to scroll the preview panel.
func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	if !m.hasSidePreview() {
		return nil
	}
	preview := m.activePreview()
	if preview == nil || preview.loading {
		return nil
	}
	innerH := m.height - 2
	if innerH < 1 {
		innerH = 1
	}
	switch ev.Button {
	case tea.MouseButtonWheelUp:
		preview.scrollOffset -= 3
		if preview.scrollOffset < 0 {
			preview.scrollOffset = 0
		}
	case tea.MouseButtonWheelDown:
		maxOffset := len(preview.lines) - innerH
		if maxOffset < 0 {
			maxOffset = 0
		}
		preview.scrollOffset += 3
		if preview.scrollOffset > maxOffset {
			preview.scrollOffset = maxOffset
		}
	}
	return nil
}

func shouldRenderPreview(data *previewData) bool {
	if data == nil {
		return false
	}
	if data.err != "" {
		return true
	}
	if len(data.lines) > 0 {
		return true
	}
	return data.loading
}

func previewTitleText(data *previewData) string {
	label := strings.TrimSpace(data.label)
	if label == "" {
		label = strings.TrimSpace(data.target)
	}
	if label == "" {
		label = "(unknown)"
	}
	status := ""
	if data.loading && data.err == "" {
		status = " (loading…)"
	}
	return fmt.Sprintf("Preview: %s%s", label, status)
}

func previewDisplayLines(data *previewData) []string {
	lines := data.lines
	if len(lines) == 0 {
		if data.loading {
			return []string{"Loading preview…"}
		}
		return []string{}
	}
	if previewMaxDisplayLines > 0 && len(lines) > previewMaxDisplayLines {
		return lines[:previewMaxDisplayLines]
	}
	return lines
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	if current := m.currentLevel(); current != nil {
		m.syncViewport(current)
	}
	return nil
}

func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := 2 // bottom bar: error/status + filter prompt
	if header := m.pickerHeader(); header != "" {
		used++
	}
	if info := m.currentInfo(); info != "" {
		used += 2
	}
	if m.showFooter {
		used += 2
	}
	// In side-by-side mode the full height is available for the left
	// column; no preview rows need to be reserved.
	if !m.hasSidePreview() {
		if preview := m.activePreview(); shouldRenderPreview(preview) {
			used += 2 // blank separator + title line
			if preview.err != "" {
				used++ // one line for the error text
			} else {
				used += len(previewDisplayLines(preview))
			}
		} else if current := m.currentLevel(); current != nil && previewEligible(current.ID) {
			// Reserve space for the preview that is about to load.
			used += 3 // blank + title + "Loading preview…"
		}
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) clearInfo() {
	if m.infoMsg == "" {
		return
	}
	if !m.infoExpire.IsZero() && time.Now().Before(m.infoExpire) {
		return
	}
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			w := lipgloss.Width(text)
			if w > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		result[i] = styledLine{
			text:          text,
			style:         line.style,
			prefixStyle:   line.prefixStyle,
			highlightFrom: line.highlightFrom,
			raw:           line.raw,
		}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			// Text already contains ANSI escapes; pass through as-is.
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
