package platform

import (
	"context"
	"net/http"
	"testing"

	"github.com/stackmill/env-dashboard/internal/testutil"
)

func TestOverviewNormalizesVariantSpellings(t *testing.T) {
	api := testutil.StartAPI(t)
	api.Respond("/environments/env-1/overview", map[string]interface{}{
		"id":                    "env-1",
		"name":                  "prod-1",
		"project":               "Acme",
		"state":                 "RUNNING",
		"components":            map[string]string{"kubernetes-dashboard": "v2"},
		"configurationComplete": true,
		"latestDeployment": map[string]interface{}{
			"id":                "dep-9",
			"status":            "SUCCESS",
			"succeededReleases": 3,
			"failedReleases":    1,
			"unchangedReleases": 2,
		},
	})

	client := NewClient(api.URL(), "")
	ov, ok := client.Overview(context.Background(), "env-1")
	if !ok {
		t.Fatal("expected overview to be present")
	}
	if ov.ClusterState != "RUNNING" {
		t.Fatalf("expected state spelling normalized, got %q", ov.ClusterState)
	}
	if !ov.ConfigComplete {
		t.Fatal("expected configurationComplete spelling normalized")
	}
	if ov.InstalledComponents["kubernetes-dashboard"] != "v2" {
		t.Fatalf("expected components spelling normalized, got %#v", ov.InstalledComponents)
	}
	if ov.LatestDeployment == nil {
		t.Fatal("expected latest deployment")
	}
	counters := ov.LatestDeployment.Releases
	if counters.Success != 3 || counters.Failed != 1 || counters.NoChange != 2 {
		t.Fatalf("expected release counter spellings normalized, got %#v", counters)
	}
}

func TestOverviewPrefersCanonicalSpellings(t *testing.T) {
	api := testutil.StartAPI(t)
	api.Respond("/environments/env-1/overview", map[string]interface{}{
		"id":             "env-1",
		"clusterState":   "STOPPED",
		"state":          "RUNNING",
		"configComplete": false,
		"latestDeployment": map[string]interface{}{
			"successReleases":   5,
			"succeededReleases": 99,
		},
	})

	client := NewClient(api.URL(), "")
	ov, ok := client.Overview(context.Background(), "env-1")
	if !ok {
		t.Fatal("expected overview to be present")
	}
	if ov.ClusterState != "STOPPED" {
		t.Fatalf("expected clusterState to win over state, got %q", ov.ClusterState)
	}
	if ov.LatestDeployment.Releases.Success != 5 {
		t.Fatalf("expected successReleases to win, got %d", ov.LatestDeployment.Releases.Success)
	}
}

func TestFetchNormalizesFailuresToAbsence(t *testing.T) {
	api := testutil.StartAPI(t)
	api.Fail("/environments/env-1/overview", http.StatusInternalServerError)
	api.RespondRaw("/environments/env-1/resources/stats", "{not json")

	client := NewClient(api.URL(), "")
	if _, ok := client.Overview(context.Background(), "env-1"); ok {
		t.Fatal("expected server error to report absence")
	}
	if _, ok := client.ResourceStats(context.Background(), "env-1"); ok {
		t.Fatal("expected malformed body to report absence")
	}
	if _, ok := client.VariableCounts(context.Background(), "env-1"); ok {
		t.Fatal("expected missing fixture to report absence")
	}
}

func TestFetchAbsentOnUnreachableServer(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "")
	if _, ok := client.Overview(context.Background(), "env-1"); ok {
		t.Fatal("expected transport failure to report absence")
	}
}

func TestClientSendsBearerToken(t *testing.T) {
	api := testutil.StartAPI(t)
	api.Respond("/environments/env-1/variables/counts", map[string]int{"total": 4, "secrets": 1})

	client := NewClient(api.URL()+"/", "secret-token")
	counts, ok := client.VariableCounts(context.Background(), "env-1")
	if !ok {
		t.Fatal("expected counts to be present")
	}
	if counts.Total != 4 || counts.Secrets != 1 {
		t.Fatalf("unexpected counts %#v", counts)
	}
	if got := api.LastAuthorization(); got != "Bearer secret-token" {
		t.Fatalf("expected bearer header, got %q", got)
	}
}

func TestResolveEnvironmentEscapesNames(t *testing.T) {
	api := testutil.StartAPI(t)
	api.Respond("/projects/My Stack/environments/east/prod", map[string]string{
		"id": "env-7", "name": "east/prod", "project": "My Stack",
	})

	client := NewClient(api.URL(), "")
	env, ok := client.ResolveEnvironment(context.Background(), "My Stack", "east/prod")
	if !ok {
		t.Fatal("expected resolution fixture to be served")
	}
	if env.ID != "env-7" {
		t.Fatalf("unexpected environment %#v", env)
	}
}

func TestReleasesCarriesPagingQuery(t *testing.T) {
	api := testutil.StartAPI(t)
	api.Respond("/environments/env-1/deployments", map[string]interface{}{
		"items": []map[string]interface{}{
			{"id": "dep-1", "status": "SUCCESS", "service": "api", "successReleases": 2},
		},
		"page": 1, "pageSize": 20, "total": 41,
	})

	client := NewClient(api.URL(), "")
	page, ok := client.Releases(context.Background(), "env-1", 1, 20)
	if !ok {
		t.Fatal("expected release page to be present")
	}
	if page.Total != 41 || len(page.Items) != 1 {
		t.Fatalf("unexpected page %#v", page)
	}
	if page.Items[0].Releases.Success != 2 {
		t.Fatalf("expected item counters normalized, got %#v", page.Items[0])
	}
}

func TestCostExplorerProbe(t *testing.T) {
	api := testutil.StartAPI(t)
	api.Respond("/environments/env-1/cost-explorer", map[string]bool{"enabled": true})

	client := NewClient(api.URL(), "")
	enabled, ok := client.CostExplorerEnabled(context.Background(), "env-1")
	if !ok || !enabled {
		t.Fatalf("expected enabled probe, got enabled=%v ok=%v", enabled, ok)
	}

	api.Fail("/environments/env-1/cost-explorer", http.StatusForbidden)
	if _, ok := client.CostExplorerEnabled(context.Background(), "env-1"); ok {
		t.Fatal("expected forbidden probe to report absence")
	}
}
