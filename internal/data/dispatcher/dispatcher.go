// Package dispatcher funnels every async fetch result into the session
// record. Updates carry the session token they were issued under; the
// dispatcher drops anything stale before it can touch newer state.
package dispatcher

import (
	"github.com/stackmill/env-dashboard/internal/logging/events"
	"github.com/stackmill/env-dashboard/internal/platform"
	"github.com/stackmill/env-dashboard/internal/session"
)

type Kind int

const (
	KindEnvironment Kind = iota
	KindOverview
	KindStats
	KindCounts
	KindCostExplorer
	KindReleases
	KindResourceList
	KindIngressRules
	KindSchedules
	KindMaintenanceWindow
)

func (k Kind) String() string {
	switch k {
	case KindEnvironment:
		return "environment"
	case KindOverview:
		return "overview"
	case KindStats:
		return "stats"
	case KindCounts:
		return "counts"
	case KindCostExplorer:
		return "cost-explorer"
	case KindReleases:
		return "releases"
	case KindResourceList:
		return "resource-list"
	case KindIngressRules:
		return "ingress-rules"
	case KindSchedules:
		return "schedules"
	case KindMaintenanceWindow:
		return "maintenance-window"
	}
	return "unknown"
}

// Update is one settled fetch. Present reports whether the payload named
// by Kind arrived; absent slices stay distinguishable from empty ones.
type Update struct {
	Token   string
	Kind    Kind
	Present bool

	Environment *platform.Environment
	Overview    *platform.Overview
	Stats       *platform.ResourceStats
	Counts      *platform.VariableCounts
	CostEnabled bool
	Releases    *platform.ReleasePage
	Resources   []platform.Resource
	Ingress     []platform.IngressRule
	Schedules   []platform.Schedule
	Window      *platform.MaintenanceWindow
}

// Result tells the UI what changed so it can refresh the affected
// sections and re-sync the poll loop.
type Result struct {
	Stale            bool
	IdentityResolved bool
	BootFailed       bool
	CriticalReady    bool
	OverviewUpdated  bool
	TabUpdated       session.Tab
}

type Dispatcher struct {
	session *session.Session
}

func New(s *session.Session) *Dispatcher {
	return &Dispatcher{session: s}
}

func (d *Dispatcher) Handle(u Update) Result {
	var res Result
	sess := d.session
	if u.Token != sess.Token {
		events.Loader.StaleDrop(u.Token, sess.Token, u.Kind.String())
		res.Stale = true
		return res
	}

	switch u.Kind {
	case KindEnvironment:
		if !u.Present || u.Environment == nil || u.Environment.ID == "" {
			sess.ResolveFailed("environment could not be resolved")
			events.Loader.ResolveFailed(sess.Token, sess.Identity.Stack, sess.Identity.Cluster)
			res.BootFailed = true
			return res
		}
		sess.Resolved(u.Environment)
		res.IdentityResolved = true
	case KindOverview:
		wasReady := sess.State == session.Ready
		sess.SettleOverview(u.Overview)
		res.OverviewUpdated = true
		if !wasReady && sess.State == session.Ready {
			res.CriticalReady = true
			events.Loader.Ready(sess.Token)
		}
	case KindStats:
		wasReady := sess.State == session.Ready
		sess.SettleStats(u.Stats)
		if !wasReady && sess.State == session.Ready {
			res.CriticalReady = true
			events.Loader.Ready(sess.Token)
		}
	case KindCounts:
		wasReady := sess.State == session.Ready
		sess.SettleCounts(u.Counts)
		if !wasReady && sess.State == session.Ready {
			res.CriticalReady = true
			events.Loader.Ready(sess.Token)
		}
	case KindCostExplorer:
		sess.SettleCostExplorer(u.CostEnabled, u.Present)
	case KindReleases:
		sess.SettleReleases(u.Releases)
		res.TabUpdated = session.TabReleases
	case KindResourceList:
		sess.SettleResourceList(u.Resources, u.Present)
		res.TabUpdated = session.TabResources
	case KindIngressRules:
		sess.SettleIngress(u.Ingress, u.Present)
		res.TabUpdated = session.TabResources
	case KindSchedules:
		sess.SettleSchedules(u.Schedules, u.Present)
		res.TabUpdated = session.TabSchedule
	case KindMaintenanceWindow:
		sess.SettleWindow(u.Window)
		res.TabUpdated = session.TabSchedule
	}
	return res
}
