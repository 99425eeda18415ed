package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stackmill/env-dashboard/internal/logging"
	"github.com/stackmill/env-dashboard/internal/picker"
	"github.com/stackmill/env-dashboard/internal/platform"
)

const releasesPageSize = 20

// Every fetch result names the session token it was issued under. The
// dispatcher compares tokens, so replies landing after a hard reload die
// quietly instead of resurrecting a dead session.
type environmentResolvedMsg struct {
	token   string
	env     *platform.Environment
	present bool
}

type overviewFetchedMsg struct {
	token    string
	overview *platform.Overview
	present  bool
}

type statsFetchedMsg struct {
	token   string
	stats   *platform.ResourceStats
	present bool
}

type countsFetchedMsg struct {
	token   string
	counts  *platform.VariableCounts
	present bool
}

type costProbeMsg struct {
	token   string
	enabled bool
	present bool
}

type releasesFetchedMsg struct {
	token   string
	page    *platform.ReleasePage
	present bool
}

type resourceListMsg struct {
	token     string
	resources []platform.Resource
	present   bool
}

type ingressRulesMsg struct {
	token   string
	rules   []platform.IngressRule
	present bool
}

type schedulesFetchedMsg struct {
	token     string
	schedules []platform.Schedule
	present   bool
}

type maintenanceWindowMsg struct {
	token   string
	window  *platform.MaintenanceWindow
	present bool
}

// pickerLoadedMsg mirrors the async picker loader response.
type pickerLoadedMsg struct {
	id    string
	title string
	items []picker.Item
	err   error
}

func (m *Model) resolveEnvironmentCmd(token string) tea.Cmd {
	client := m.client
	stack, cluster := m.session.Identity.Stack, m.session.Identity.Cluster
	return func() tea.Msg {
		env, ok := client.ResolveEnvironment(context.Background(), stack, cluster)
		return environmentResolvedMsg{token: token, env: env, present: ok}
	}
}

func (m *Model) fetchOverviewCmd(token, id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		overview, ok := client.Overview(context.Background(), id)
		return overviewFetchedMsg{token: token, overview: overview, present: ok}
	}
}

func (m *Model) fetchStatsCmd(token, id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		stats, ok := client.ResourceStats(context.Background(), id)
		return statsFetchedMsg{token: token, stats: stats, present: ok}
	}
}

func (m *Model) fetchCountsCmd(token, id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		counts, ok := client.VariableCounts(context.Background(), id)
		return countsFetchedMsg{token: token, counts: counts, present: ok}
	}
}

func (m *Model) probeCostExplorerCmd(token, id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		enabled, ok := client.CostExplorerEnabled(context.Background(), id)
		return costProbeMsg{token: token, enabled: enabled, present: ok}
	}
}

func (m *Model) fetchReleasesCmd(token, id string, page int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		result, ok := client.Releases(context.Background(), id, page, releasesPageSize)
		return releasesFetchedMsg{token: token, page: result, present: ok}
	}
}

func (m *Model) fetchResourcesCmd(token, id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		resources, ok := client.Resources(context.Background(), id)
		return resourceListMsg{token: token, resources: resources, present: ok}
	}
}

func (m *Model) fetchIngressCmd(token, id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		rules, ok := client.IngressRules(context.Background(), id)
		return ingressRulesMsg{token: token, rules: rules, present: ok}
	}
}

func (m *Model) fetchSchedulesCmd(token, id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		schedules, ok := client.Schedules(context.Background(), id)
		return schedulesFetchedMsg{token: token, schedules: schedules, present: ok}
	}
}

func (m *Model) fetchWindowCmd(token, id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		window, ok := client.MaintenanceWindow(context.Background(), id)
		return maintenanceWindowMsg{token: token, window: window, present: ok}
	}
}

func (m *Model) loadPickerCmd(id, title string, loader picker.Loader, parent picker.Item) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		items, err := loader(context.Background(), client, parent)
		if err != nil {
			logging.Error(err)
		}
		return pickerLoadedMsg{id: id, title: title, items: items, err: err}
	}
}
