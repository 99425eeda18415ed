// Package session owns everything fetched for one target environment.
// A session is identified by a token; async results carry the token they
// were issued under so anything that outlives a hard reload is discarded
// instead of overwriting newer state.
package session

import (
	"github.com/google/uuid"

	"github.com/stackmill/env-dashboard/internal/derive"
	"github.com/stackmill/env-dashboard/internal/envid"
	"github.com/stackmill/env-dashboard/internal/platform"
)

// LoadState tracks the boot lifecycle. Failed is reachable only from the
// identity phase; fetch failures after that degrade sections instead.
type LoadState int

const (
	Idle LoadState = iota
	ResolvingIdentity
	LoadingCritical
	Ready
	Failed
)

func (s LoadState) String() string {
	switch s {
	case Idle:
		return "idle"
	case ResolvingIdentity:
		return "resolving-identity"
	case LoadingCritical:
		return "loading-critical"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return "unknown"
}

type Tab string

const (
	TabOverview  Tab = "overview"
	TabReleases  Tab = "releases"
	TabResources Tab = "resources"
	TabConfig    Tab = "config"
	TabSchedule  Tab = "schedule"
)

// Tabs returns all tabs in display order.
func Tabs() []Tab {
	return []Tab{TabOverview, TabReleases, TabResources, TabConfig, TabSchedule}
}

func ParseTab(value string) (Tab, bool) {
	for _, tab := range Tabs() {
		if string(tab) == value {
			return tab, true
		}
	}
	return "", false
}

const criticalFetches = 3

// ReleasesData caches the releases tab. A nil holder means the tab was
// never requested; Settled distinguishes in-flight from landed.
type ReleasesData struct {
	Settled bool
	Absent  bool
	Page    *platform.ReleasePage
}

// ResourcesData caches the resources tab. The ingress slot stays
// permanently skipped when the environment has no orchestration platform.
type ResourcesData struct {
	ResourcesSettled bool
	ResourcesAbsent  bool
	Resources        []platform.Resource
	IngressSettled   bool
	IngressAbsent    bool
	IngressSkipped   bool
	Ingress          []platform.IngressRule
}

// ScheduleData caches the schedule tab.
type ScheduleData struct {
	SchedulesSettled bool
	SchedulesAbsent  bool
	Schedules        []platform.Schedule
	WindowSettled    bool
	WindowAbsent     bool
	Window           *platform.MaintenanceWindow
}

// Session is the versioned state record for one environment. All methods
// run on the UI event loop; nothing here is safe for concurrent use.
type Session struct {
	Token     string
	Identity  envid.Identity
	State     LoadState
	ActiveTab Tab
	BootErr   string

	Overview         *platform.Overview
	OverviewDegraded bool
	Stats            *platform.ResourceStats
	Counts           *platform.VariableCounts
	CostExplorer     *bool
	PollingActive    bool

	Releases  *ReleasesData
	Resources *ResourcesData
	Schedule  *ScheduleData

	pending      int
	tabRequested map[Tab]bool
}

func New(identity envid.Identity) *Session {
	return &Session{
		Token:        uuid.NewString(),
		Identity:     identity,
		State:        Idle,
		ActiveTab:    TabOverview,
		tabRequested: make(map[Tab]bool),
	}
}

// Reset discards every cached field and issues a fresh token, so async
// results from the previous incarnation no longer match. The active tab
// survives a reload; everything else starts cold.
func (s *Session) Reset(identity envid.Identity) {
	tab := s.ActiveTab
	*s = Session{
		Token:        uuid.NewString(),
		Identity:     identity,
		State:        Idle,
		ActiveTab:    tab,
		tabRequested: make(map[Tab]bool),
	}
}

func (s *Session) StartResolving() {
	s.State = ResolvingIdentity
}

// ResolveFailed is the only terminal failure: without an id there is
// nothing to render under the boot error.
func (s *Session) ResolveFailed(msg string) {
	s.State = Failed
	s.BootErr = msg
}

// Resolved completes the identity with the canonical record. Names
// already present from the inbound context are kept.
func (s *Session) Resolved(env *platform.Environment) {
	s.Identity.ID = env.ID
	if s.Identity.Cluster == "" {
		s.Identity.Cluster = env.Name
	}
	if s.Identity.Stack == "" {
		s.Identity.Stack = env.Project
	}
}

func (s *Session) StartCritical() {
	s.State = LoadingCritical
	s.pending = criticalFetches
}

// SettleOverview lands the overview slot. During the critical phase a nil
// snapshot degrades the section; once Ready, nil keeps the previous
// snapshot (poll ticks never blank the dashboard).
func (s *Session) SettleOverview(ov *platform.Overview) {
	if s.State == LoadingCritical {
		s.Overview = ov
		s.settleCritical()
		return
	}
	if ov != nil {
		s.Overview = ov
		s.OverviewDegraded = false
	}
	s.RecomputePolling()
}

func (s *Session) SettleStats(stats *platform.ResourceStats) {
	s.Stats = stats
	s.settleCritical()
}

func (s *Session) SettleCounts(counts *platform.VariableCounts) {
	s.Counts = counts
	s.settleCritical()
}

func (s *Session) settleCritical() {
	if s.State != LoadingCritical {
		return
	}
	s.pending--
	if s.pending > 0 {
		return
	}
	if s.Overview == nil {
		s.Overview = &platform.Overview{ID: s.Identity.ID, ClusterState: "UNKNOWN"}
		s.OverviewDegraded = true
	}
	s.State = Ready
	s.RecomputePolling()
}

func (s *Session) SettleCostExplorer(enabled, present bool) {
	if !present {
		return
	}
	s.CostExplorer = &enabled
}

// RecomputePolling refreshes the polling flag from the current snapshot.
func (s *Session) RecomputePolling() {
	s.PollingActive = s.State == Ready && derive.PollingActive(s.Overview)
}

// MarkTabRequested reports whether the tab's lazy fetch should fire. It
// answers true exactly once per tab per session.
func (s *Session) MarkTabRequested(tab Tab) bool {
	if s.tabRequested[tab] {
		return false
	}
	s.tabRequested[tab] = true
	return true
}

func (s *Session) StartReleases() {
	s.Releases = &ReleasesData{}
}

func (s *Session) SettleReleases(page *platform.ReleasePage) {
	if s.Releases == nil {
		s.Releases = &ReleasesData{}
	}
	s.Releases.Settled = true
	s.Releases.Page = page
	s.Releases.Absent = page == nil
}

func (s *Session) StartResources(ingressSkipped bool) {
	s.Resources = &ResourcesData{IngressSkipped: ingressSkipped}
}

func (s *Session) SettleResourceList(resources []platform.Resource, present bool) {
	if s.Resources == nil {
		s.Resources = &ResourcesData{}
	}
	s.Resources.ResourcesSettled = true
	s.Resources.Resources = resources
	s.Resources.ResourcesAbsent = !present
}

func (s *Session) SettleIngress(rules []platform.IngressRule, present bool) {
	if s.Resources == nil {
		s.Resources = &ResourcesData{}
	}
	s.Resources.IngressSettled = true
	s.Resources.Ingress = rules
	s.Resources.IngressAbsent = !present
}

func (s *Session) StartSchedule() {
	s.Schedule = &ScheduleData{}
}

func (s *Session) SettleSchedules(schedules []platform.Schedule, present bool) {
	if s.Schedule == nil {
		s.Schedule = &ScheduleData{}
	}
	s.Schedule.SchedulesSettled = true
	s.Schedule.Schedules = schedules
	s.Schedule.SchedulesAbsent = !present
}

func (s *Session) SettleWindow(window *platform.MaintenanceWindow) {
	if s.Schedule == nil {
		s.Schedule = &ScheduleData{}
	}
	s.Schedule.WindowSettled = true
	s.Schedule.Window = window
	s.Schedule.WindowAbsent = window == nil
}

// RouteNames returns the (stack, cluster) pair intents are routed with,
// falling back to overview metadata when the inbound context only
// carried an id.
func (s *Session) RouteNames() (string, string) {
	stack, cluster := s.Identity.Stack, s.Identity.Cluster
	if s.Overview != nil {
		if stack == "" {
			stack = s.Overview.Project
		}
		if cluster == "" {
			cluster = s.Overview.Name
		}
	}
	return stack, cluster
}
