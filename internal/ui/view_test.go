package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stackmill/env-dashboard/internal/envid"
	"github.com/stackmill/env-dashboard/internal/platform"
	"github.com/stackmill/env-dashboard/internal/testutil"
)

func TestViewShowsLoadPhases(t *testing.T) {
	m := offlineModel()
	if view := m.View(); !strings.Contains(view, "Starting…") {
		t.Fatalf("expected the idle phase, got:\n%s", view)
	}
	m.session.StartResolving()
	if view := m.View(); !strings.Contains(view, "Resolving environment…") {
		t.Fatalf("expected the resolving phase, got:\n%s", view)
	}
	m.session.StartCritical()
	if view := m.View(); !strings.Contains(view, "Loading environment…") {
		t.Fatalf("expected the loading phase, got:\n%s", view)
	}
}

func TestViewShowsBootFailure(t *testing.T) {
	client := platform.NewClient("http://127.0.0.1:1", "")
	m := NewModel(client, nil, envid.Identity{}, false, "", 100, 30, false, false)
	view := m.View()
	for _, want := range []string{"Unable to load environment", noContextHint, "r retry  q quit"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in the failure view, got:\n%s", want, view)
		}
	}
}

func TestViewReadyOverview(t *testing.T) {
	api := testutil.StartAPI(t)
	overview := runningOverview("env-1", "prod-eu")
	overview["installedComponents"] = map[string]string{
		"cert-manager": "v1.2",
		"external-dns": "v0.14",
	}
	overview["latestDeployment"] = map[string]interface{}{
		"id":              "dep-1",
		"status":          "SUCCESS",
		"service":         "api",
		"startedAt":       "2026-08-21T08:00:00Z",
		"successReleases": 4,
	}
	respondCritical(api, "env-1", overview)

	h := bootedHarness(t, api)
	view := h.View()
	for _, want := range []string{
		"Acme / prod-eu",
		"Running",
		"updated ",
		"[R] Redeploy",
		"[S] Stop",
		"[D] Destroy",
		"1 Overview",
		"5 Schedule",
		"AWS (acct-1)",
		"3 services, 1 database, 2 volumes",
		"Installed components",
		"cert-manager",
		"Latest deployment",
		"100% healthy (4 releases)",
	} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in the overview, got:\n%s", want, view)
		}
	}
}

func TestViewDegradedOverview(t *testing.T) {
	api := testutil.StartAPI(t)

	h := bootedHarness(t, api)
	view := h.View()
	for _, want := range []string{
		"Unknown",
		"details unavailable",
		"Environment details are unavailable right now.",
	} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in the degraded view, got:\n%s", want, view)
		}
	}
}

func TestViewLaunchChecklist(t *testing.T) {
	api := testutil.StartAPI(t)
	respondCritical(api, "env-1", map[string]interface{}{
		"id":            "env-1",
		"name":          "prod-eu",
		"project":       "Acme",
		"clusterState":  "NEW",
		"neverLaunched": true,
	})

	h := bootedHarness(t, api)
	view := h.View()
	for _, want := range []string{
		"Not launched",
		"[L] Launch",
		"Launch checklist",
		"✗ Configuration  Complete the environment configuration",
		"✗ Cloud account  Link a cloud account",
		"✓ Variables",
	} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in the checklist view, got:\n%s", want, view)
		}
	}
	if strings.Contains(view, "Ready to launch.") {
		t.Fatalf("expected unfinished checklist, got:\n%s", view)
	}
}

func TestViewReleasesTable(t *testing.T) {
	api := testutil.StartAPI(t)
	respondCritical(api, "env-1", runningOverview("env-1", "prod-eu"))
	api.Respond("/environments/env-1/deployments", map[string]interface{}{
		"items": []map[string]interface{}{
			{"id": "dep-1", "status": "SUCCESS", "service": "api", "successReleases": 3},
			{"id": "dep-2", "status": "FAILED", "service": "worker", "failedReleases": 1},
		},
		"page":     1,
		"pageSize": 20,
		"total":    45,
	})

	h := bootedHarness(t, api)
	h.Send(keyRunes("2"))
	view := h.View()
	for _, want := range []string{
		"SERVICE",
		"STATUS",
		"api",
		"Success",
		"worker",
		"Failed",
		"page 1/3, 45 deployments",
	} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in the releases view, got:\n%s", want, view)
		}
	}
}

func TestViewConfigTab(t *testing.T) {
	api := testutil.StartAPI(t)
	respondCritical(api, "env-1", runningOverview("env-1", "prod-eu"))

	h := bootedHarness(t, api)
	h.Send(keyRunes("4"))
	view := h.View()
	for _, want := range []string{
		"variables",
		"12",
		"secrets",
		"incomplete",
		"W variables  E settings",
	} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in the config view, got:\n%s", want, view)
		}
	}
}

func TestViewScheduleTab(t *testing.T) {
	api := testutil.StartAPI(t)
	respondCritical(api, "env-1", runningOverview("env-1", "prod-eu"))
	api.Respond("/environments/env-1/schedules", []map[string]interface{}{
		{"id": "sch-1", "action": "STOP", "cron": "0 20 * * 5", "timezone": "UTC", "enabled": true},
	})
	api.Respond("/environments/env-1/maintenance-window", map[string]interface{}{
		"enabled":       true,
		"day":           "SUNDAY",
		"start":         "03:00",
		"durationHours": 4,
	})

	h := bootedHarness(t, api)
	h.Send(keyRunes("5"))
	view := h.View()
	for _, want := range []string{
		"ACTION",
		"STOP",
		"0 20 * * 5",
		"UTC",
		"enabled",
		"Maintenance window",
		"SUNDAY 03:00, 4 hours",
	} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in the schedule view, got:\n%s", want, view)
		}
	}
}

func TestViewConfirmPromptInStatusLine(t *testing.T) {
	api := testutil.StartAPI(t)
	respondCritical(api, "env-1", runningOverview("env-1", "prod-eu"))

	h := bootedHarness(t, api)
	h.Send(keyRunes("D"))
	if view := h.View(); !strings.Contains(view, "Destroy prod-eu? (y/n)") {
		t.Fatalf("expected the confirm prompt, got:\n%s", view)
	}
}

func TestViewErrorInStatusLine(t *testing.T) {
	m := offlineModel()
	m.session.StartCritical()
	m.errMsg = "boom"
	if view := m.View(); !strings.Contains(view, "Error: boom") {
		t.Fatalf("expected the error line, got:\n%s", view)
	}
}

func TestViewPickerInlineForProjects(t *testing.T) {
	api := testutil.StartAPI(t)
	respondCritical(api, "env-1", runningOverview("env-1", "prod-eu"))
	respondPicker(api)

	h := bootedHarness(t, api)
	h.Send(keyRunes("p"))
	view := h.View()
	for _, want := range []string{"environments", "▌ acme", "▌ beta", "»", "(type to search)"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in the picker view, got:\n%s", want, view)
		}
	}
	if strings.Contains(view, "╭") {
		t.Fatalf("expected no preview panel on the projects level, got:\n%s", view)
	}
}

func TestViewPickerSideBySideForEnvironments(t *testing.T) {
	api := testutil.StartAPI(t)
	respondCritical(api, "env-1", runningOverview("env-1", "prod-eu"))
	respondPicker(api)
	api.Respond("/environments/env-7/overview", map[string]interface{}{
		"id":           "env-7",
		"name":         "staging",
		"clusterState": "STOPPED",
	})

	h := bootedHarness(t, api)
	h.Send(keyRunes("p"))
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})

	view := h.View()
	for _, want := range []string{
		"environments → beta",
		"▌ staging",
		"╭",
		"Preview: staging",
		"state      Stopped",
	} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in the side-by-side picker, got:\n%s", want, view)
		}
	}
}

func TestViewPickerReportsNoMatches(t *testing.T) {
	api := testutil.StartAPI(t)
	respondCritical(api, "env-1", runningOverview("env-1", "prod-eu"))
	respondPicker(api)

	h := bootedHarness(t, api)
	h.Send(keyRunes("p"))
	h.Model().stack[0].SetFilter("zz", 2)
	if view := h.View(); !strings.Contains(view, `No matches for "zz"`) {
		t.Fatalf("expected the no-match line, got:\n%s", view)
	}
}

func TestWindowSizeAdjustsUnlessFixed(t *testing.T) {
	client := platform.NewClient("http://127.0.0.1:1", "")
	flexible := NewModel(client, nil, envid.Identity{ID: "env-1"}, true, "", 0, 0, false, false)
	flexible.handleWindowSizeMsg(tea.WindowSizeMsg{Width: 120, Height: 40})
	if flexible.width != 120 || flexible.height != 40 {
		t.Fatalf("expected the resize applied, got %dx%d", flexible.width, flexible.height)
	}

	fixed := NewModel(client, nil, envid.Identity{ID: "env-1"}, true, "", 100, 30, false, false)
	fixed.handleWindowSizeMsg(tea.WindowSizeMsg{Width: 120, Height: 40})
	if fixed.width != 100 || fixed.height != 30 {
		t.Fatalf("expected fixed dimensions kept, got %dx%d", fixed.width, fixed.height)
	}
}

func TestViewShowsFooterWhenEnabled(t *testing.T) {
	api := testutil.StartAPI(t)
	respondCritical(api, "env-1", runningOverview("env-1", "prod-eu"))

	client := platform.NewClient(api.URL(), "")
	h := NewHarness(NewModel(client, nil, envid.Identity{ID: "env-1"}, true, "", 100, 30, true, false))
	h.Boot()
	if view := h.View(); !strings.Contains(view, dashboardFooterText) {
		t.Fatalf("expected the footer, got:\n%s", view)
	}
}
