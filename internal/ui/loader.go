package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stackmill/env-dashboard/internal/data/dispatcher"
	"github.com/stackmill/env-dashboard/internal/derive"
	"github.com/stackmill/env-dashboard/internal/envid"
	"github.com/stackmill/env-dashboard/internal/logging/events"
	"github.com/stackmill/env-dashboard/internal/platform"
	"github.com/stackmill/env-dashboard/internal/session"
)

// bootCmds starts the load pipeline for the current session: straight
// into the critical fetches when an id is already known, through name
// resolution otherwise.
func (m *Model) bootCmds() tea.Cmd {
	sess := m.session
	if sess.State == session.Failed {
		return nil
	}
	if sess.Identity.Direct() {
		sess.StartCritical()
		events.Loader.Critical(sess.Token, sess.Identity.ID)
		return m.criticalCmds()
	}
	sess.StartResolving()
	events.Loader.Resolve(sess.Token, sess.Identity.Stack, sess.Identity.Cluster)
	return m.resolveEnvironmentCmd(sess.Token)
}

// criticalCmds fires the three gating fetches plus the cost explorer
// probe, which rides along but never holds up readiness.
func (m *Model) criticalCmds() tea.Cmd {
	token, id := m.session.Token, m.session.Identity.ID
	return tea.Batch(
		m.fetchOverviewCmd(token, id),
		m.fetchStatsCmd(token, id),
		m.fetchCountsCmd(token, id),
		m.probeCostExplorerCmd(token, id),
	)
}

// reloadSession drops every cached answer and boots the current identity
// from scratch under a fresh token. The active tab survives.
func (m *Model) reloadSession() tea.Cmd {
	if m.scheduler != nil {
		m.scheduler.Stop()
	}
	old := m.session.Token
	m.session.Reset(m.inbound)
	if m.noContext {
		m.session.ResolveFailed(noContextHint)
	}
	events.Loader.Reload(old, m.session.Token)
	m.errMsg = ""
	m.forceClearInfo()
	return m.bootCmds()
}

// switchEnvironment retargets the dashboard at a different environment,
// as picked from the picker. Reload from here on means the new target.
func (m *Model) switchEnvironment(identity envid.Identity) tea.Cmd {
	m.inbound = identity
	m.noContext = false
	return m.reloadSession()
}

// afterDispatch reacts to whatever the dispatcher changed: the poll loop
// follows the latest snapshot, and the moment the critical phase settles
// the active tab's lazy fetch fires.
func (m *Model) afterDispatch(res dispatcher.Result) tea.Cmd {
	if res.Stale {
		return nil
	}
	m.syncPolling()
	if res.CriticalReady {
		return m.ensureTabCmd(m.session.ActiveTab)
	}
	return nil
}

// ensureTabCmd fires the lazy fetch backing a tab the first time the tab
// is shown in this session. Overview and config render entirely from the
// critical payloads, so they need no extra trip.
func (m *Model) ensureTabCmd(tab session.Tab) tea.Cmd {
	sess := m.session
	if sess.State != session.Ready {
		return nil
	}
	if !sess.MarkTabRequested(tab) {
		return nil
	}
	token, id := sess.Token, sess.Identity.ID
	switch tab {
	case session.TabReleases:
		sess.StartReleases()
		events.Loader.TabFetch(token, string(tab))
		return m.fetchReleasesCmd(token, id, 1)
	case session.TabResources:
		skip := !derive.KubernetesCapable(sess.Overview)
		sess.StartResources(skip)
		events.Loader.TabFetch(token, string(tab))
		if skip {
			return m.fetchResourcesCmd(token, id)
		}
		return tea.Batch(m.fetchResourcesCmd(token, id), m.fetchIngressCmd(token, id))
	case session.TabSchedule:
		sess.StartSchedule()
		events.Loader.TabFetch(token, string(tab))
		return tea.Batch(m.fetchSchedulesCmd(token, id), m.fetchWindowCmd(token, id))
	}
	return nil
}

// releasesPageCmd refetches the releases tab one page over. Steps past
// either end of the history are ignored.
func (m *Model) releasesPageCmd(delta int) tea.Cmd {
	sess := m.session
	if sess.State != session.Ready || sess.ActiveTab != session.TabReleases {
		return nil
	}
	data := sess.Releases
	if data == nil || !data.Settled || data.Absent || data.Page == nil {
		return nil
	}
	page := data.Page.Page + delta
	if page < 1 {
		return nil
	}
	if data.Page.PageSize > 0 && (page-1)*data.Page.PageSize >= data.Page.Total {
		return nil
	}
	sess.StartReleases()
	events.Loader.TabFetch(sess.Token, string(session.TabReleases))
	return m.fetchReleasesCmd(sess.Token, sess.Identity.ID, page)
}

// syncPolling aligns the scheduler with the session's polling flag.
// Start is idempotent per session, so only the running edge matters.
func (m *Model) syncPolling() {
	if m.scheduler == nil {
		return
	}
	sess := m.session
	if !sess.PollingActive {
		m.scheduler.Stop()
		return
	}
	if m.scheduler.Running() {
		return
	}
	client, id := m.client, sess.Identity.ID
	m.scheduler.Start(sess.Token, func(ctx context.Context) (*platform.Overview, bool) {
		return client.Overview(ctx, id)
	})
}

func (m *Model) handleEnvironmentResolvedMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(environmentResolvedMsg)
	if !ok {
		return nil
	}
	res := m.dispatcher.Handle(dispatcher.Update{
		Token:       update.token,
		Kind:        dispatcher.KindEnvironment,
		Present:     update.present,
		Environment: update.env,
	})
	if !res.IdentityResolved {
		return nil
	}
	sess := m.session
	sess.StartCritical()
	events.Loader.Critical(sess.Token, sess.Identity.ID)
	return m.criticalCmds()
}

func (m *Model) handleOverviewFetchedMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(overviewFetchedMsg)
	if !ok {
		return nil
	}
	return m.afterDispatch(m.dispatcher.Handle(dispatcher.Update{
		Token:    update.token,
		Kind:     dispatcher.KindOverview,
		Present:  update.present,
		Overview: update.overview,
	}))
}

func (m *Model) handleStatsFetchedMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(statsFetchedMsg)
	if !ok {
		return nil
	}
	return m.afterDispatch(m.dispatcher.Handle(dispatcher.Update{
		Token:   update.token,
		Kind:    dispatcher.KindStats,
		Present: update.present,
		Stats:   update.stats,
	}))
}

func (m *Model) handleCountsFetchedMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(countsFetchedMsg)
	if !ok {
		return nil
	}
	return m.afterDispatch(m.dispatcher.Handle(dispatcher.Update{
		Token:   update.token,
		Kind:    dispatcher.KindCounts,
		Present: update.present,
		Counts:  update.counts,
	}))
}

func (m *Model) handleCostProbeMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(costProbeMsg)
	if !ok {
		return nil
	}
	return m.afterDispatch(m.dispatcher.Handle(dispatcher.Update{
		Token:       update.token,
		Kind:        dispatcher.KindCostExplorer,
		Present:     update.present,
		CostEnabled: update.enabled,
	}))
}

func (m *Model) handleReleasesFetchedMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(releasesFetchedMsg)
	if !ok {
		return nil
	}
	return m.afterDispatch(m.dispatcher.Handle(dispatcher.Update{
		Token:    update.token,
		Kind:     dispatcher.KindReleases,
		Present:  update.present,
		Releases: update.page,
	}))
}

func (m *Model) handleResourceListMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(resourceListMsg)
	if !ok {
		return nil
	}
	return m.afterDispatch(m.dispatcher.Handle(dispatcher.Update{
		Token:     update.token,
		Kind:      dispatcher.KindResourceList,
		Present:   update.present,
		Resources: update.resources,
	}))
}

func (m *Model) handleIngressRulesMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(ingressRulesMsg)
	if !ok {
		return nil
	}
	return m.afterDispatch(m.dispatcher.Handle(dispatcher.Update{
		Token:   update.token,
		Kind:    dispatcher.KindIngressRules,
		Present: update.present,
		Ingress: update.rules,
	}))
}

func (m *Model) handleSchedulesFetchedMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(schedulesFetchedMsg)
	if !ok {
		return nil
	}
	return m.afterDispatch(m.dispatcher.Handle(dispatcher.Update{
		Token:     update.token,
		Kind:      dispatcher.KindSchedules,
		Present:   update.present,
		Schedules: update.schedules,
	}))
}

func (m *Model) handleMaintenanceWindowMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(maintenanceWindowMsg)
	if !ok {
		return nil
	}
	return m.afterDispatch(m.dispatcher.Handle(dispatcher.Update{
		Token:   update.token,
		Kind:    dispatcher.KindMaintenanceWindow,
		Present: update.present,
		Window:  update.window,
	}))
}
