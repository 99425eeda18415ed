package app

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stackmill/env-dashboard/internal/envid"
	"github.com/stackmill/env-dashboard/internal/logging/events"
	"github.com/stackmill/env-dashboard/internal/platform"
	"github.com/stackmill/env-dashboard/internal/poll"
	"github.com/stackmill/env-dashboard/internal/session"
	"github.com/stackmill/env-dashboard/internal/ui"
)

// Config describes user-provided application options.
type Config struct {
	APIURL     string
	APIToken   string
	URL        string
	ClusterID  string
	Stack      string
	Cluster    string
	InitialTab string
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
}

// refreshInterval paces the background overview poll.
const refreshInterval = 15 * time.Second

// Run bootstraps and executes the Bubble Tea program. The returned route is
// the console location of the action the user committed to, empty when they
// simply quit.
func Run(cfg Config) (string, error) {
	explicit := envid.Identity{ID: cfg.ClusterID, Stack: cfg.Stack, Cluster: cfg.Cluster}
	identity, hasContext := envid.Resolve(explicit, cfg.URL)

	initialTab, _ := session.ParseTab(cfg.InitialTab)

	client := platform.NewClient(cfg.APIURL, cfg.APIToken)
	scheduler := poll.NewScheduler(refreshInterval)
	defer scheduler.Stop()

	model := ui.NewModel(client, scheduler, identity, hasContext, initialTab, cfg.Width, cfg.Height, cfg.ShowFooter, cfg.Verbose)
	program := tea.NewProgram(model, tea.WithAltScreen())
	final, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	finished, ok := final.(*ui.Model)
	if !ok {
		return "", nil
	}
	route := finished.Route()
	if route != "" {
		events.App.Navigate(route)
	}
	return route, nil
}
