package ui

import (
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stackmill/env-dashboard/internal/data/dispatcher"
	"github.com/stackmill/env-dashboard/internal/envid"
	"github.com/stackmill/env-dashboard/internal/picker"
	"github.com/stackmill/env-dashboard/internal/platform"
	"github.com/stackmill/env-dashboard/internal/poll"
	"github.com/stackmill/env-dashboard/internal/session"
	"github.com/stackmill/env-dashboard/internal/theme"
	"github.com/stackmill/env-dashboard/internal/ui/command"
	uistate "github.com/stackmill/env-dashboard/internal/ui/state"
)

type level = uistate.Level

type Mode int

const (
	ModeDashboard Mode = iota
	ModePicker
	ModeConfirm
)

const noContextHint = "pass --cluster-id, --stack and --cluster, or --url"

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

func newLevel(id, title string, items []picker.Item) *level {
	return uistate.NewLevel(id, title, items)
}

// Model implements the Bubble Tea model for the environment dashboard.
type Model struct {
	session    *session.Session
	dispatcher *dispatcher.Dispatcher
	client     *platform.Client
	scheduler  *poll.Scheduler

	inbound   envid.Identity
	noContext bool

	stack        []*level
	preview      map[string]*previewData
	previewSeq   int
	loading      bool
	pendingID    string
	pendingLabel string

	confirm *confirmState
	route   string

	errMsg     string
	infoMsg    string
	infoExpire time.Time

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool

	filterCursor      cursor.Model
	filterCursorDirty bool

	handlers map[reflect.Type]msgHandler

	bus  *command.Bus
	mode Mode
}

// NewModel initialises the UI state for one target environment. The
// scheduler may be nil, in which case transitional states simply do not
// auto-refresh.
func NewModel(client *platform.Client, scheduler *poll.Scheduler, identity envid.Identity, hasContext bool, initialTab session.Tab, width, height int, showFooter bool, verbose bool) *Model {
	sess := session.New(identity)
	if initialTab != "" {
		sess.ActiveTab = initialTab
	}
	m := &Model{
		session:    sess,
		dispatcher: dispatcher.New(sess),
		client:     client,
		scheduler:  scheduler,
		inbound:    identity,
		noContext:  !hasContext,
		preview:    map[string]*previewData{},
		showFooter: showFooter,
		verbose:    verbose,
		bus:        command.New(),
		mode:       ModeDashboard,
	}
	if m.noContext {
		sess.ResolveFailed(noContextHint)
	}
	if width > 0 {
		m.width = width
		m.fixedWidth = true
	}
	if height > 0 {
		m.height = height
		m.fixedHeight = true
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.registerHandlers()
	return m
}

// Route returns the navigation target accepted before the program quit,
// or an empty string when the user just closed the dashboard.
func (m *Model) Route() string {
	return m.route
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if cmd := m.bootCmds(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if m.scheduler != nil {
		cmds = append(cmds, waitForRefreshEvent(m.scheduler))
	}
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):             m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):           m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):      m.handleWindowSizeMsg,
		reflect.TypeOf(environmentResolvedMsg{}): m.handleEnvironmentResolvedMsg,
		reflect.TypeOf(overviewFetchedMsg{}):     m.handleOverviewFetchedMsg,
		reflect.TypeOf(statsFetchedMsg{}):        m.handleStatsFetchedMsg,
		reflect.TypeOf(countsFetchedMsg{}):       m.handleCountsFetchedMsg,
		reflect.TypeOf(costProbeMsg{}):           m.handleCostProbeMsg,
		reflect.TypeOf(releasesFetchedMsg{}):     m.handleReleasesFetchedMsg,
		reflect.TypeOf(resourceListMsg{}):        m.handleResourceListMsg,
		reflect.TypeOf(ingressRulesMsg{}):        m.handleIngressRulesMsg,
		reflect.TypeOf(schedulesFetchedMsg{}):    m.handleSchedulesFetchedMsg,
		reflect.TypeOf(maintenanceWindowMsg{}):   m.handleMaintenanceWindowMsg,
		reflect.TypeOf(refreshTickMsg{}):         m.handleRefreshTickMsg,
		reflect.TypeOf(pickerLoadedMsg{}):        m.handlePickerLoadedMsg,
		reflect.TypeOf(previewLoadedMsg{}):       m.handlePreviewLoadedMsg,
		reflect.TypeOf(command.Navigation{}):     m.handleNavigationMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleNavigationMsg(msg tea.Msg) tea.Cmd {
	nav, ok := msg.(command.Navigation)
	if !ok {
		return nil
	}
	if nav.Route == "" {
		m.errMsg = "nothing to open for " + nav.Action
		m.forceClearInfo()
		return nil
	}
	m.route = nav.Route
	return tea.Quit
}
