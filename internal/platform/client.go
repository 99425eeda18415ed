// Package platform is the gateway to the console API. Every read is an
// idempotent GET whose failure modes all collapse into a single absence
// value: callers receive data or a false flag, never an error. The reason
// a fetch came back absent survives only in the trace log.
package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/stackmill/env-dashboard/internal/logging/events"
)

const defaultTimeout = 15 * time.Second

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// fetchJSON issues a GET and decodes the body into dst. Transport errors,
// non-2xx statuses, and undecodable bodies all report false.
func (c *Client) fetchJSON(ctx context.Context, path string, dst interface{}) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		events.Fetch.Absent(path, err.Error())
		return false
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		events.Fetch.Absent(path, err.Error())
		return false
	}
	defer resp.Body.Close()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		events.Fetch.Absent(path, fmt.Sprintf("status %d", resp.StatusCode))
		return false
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		events.Fetch.Absent(path, err.Error())
		return false
	}
	events.Fetch.Done(path, resp.StatusCode)
	return true
}

func environmentPath(id, suffix string) string {
	return "/environments/" + url.PathEscape(id) + suffix
}

// ResolveEnvironment exchanges a (stack, cluster) name pair for the
// canonical environment record.
func (c *Client) ResolveEnvironment(ctx context.Context, stack, cluster string) (*Environment, bool) {
	path := fmt.Sprintf("/projects/%s/environments/%s", url.PathEscape(stack), url.PathEscape(cluster))
	var env Environment
	if !c.fetchJSON(ctx, path, &env) {
		return nil, false
	}
	return &env, true
}

func (c *Client) Overview(ctx context.Context, id string) (*Overview, bool) {
	var payload overviewPayload
	if !c.fetchJSON(ctx, environmentPath(id, "/overview"), &payload) {
		return nil, false
	}
	return payload.normalize(), true
}

func (c *Client) ResourceStats(ctx context.Context, id string) (*ResourceStats, bool) {
	var stats ResourceStats
	if !c.fetchJSON(ctx, environmentPath(id, "/resources/stats"), &stats) {
		return nil, false
	}
	return &stats, true
}

func (c *Client) VariableCounts(ctx context.Context, id string) (*VariableCounts, bool) {
	var counts VariableCounts
	if !c.fetchJSON(ctx, environmentPath(id, "/variables/counts"), &counts) {
		return nil, false
	}
	return &counts, true
}

func (c *Client) Releases(ctx context.Context, id string, page, pageSize int) (*ReleasePage, bool) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("pageSize", strconv.Itoa(pageSize))
	var payload releasePagePayload
	if !c.fetchJSON(ctx, environmentPath(id, "/deployments?"+query.Encode()), &payload) {
		return nil, false
	}
	return payload.normalize(), true
}

func (c *Client) Resources(ctx context.Context, id string) ([]Resource, bool) {
	var resources []Resource
	if !c.fetchJSON(ctx, environmentPath(id, "/resources"), &resources) {
		return nil, false
	}
	return resources, true
}

func (c *Client) IngressRules(ctx context.Context, id string) ([]IngressRule, bool) {
	var rules []IngressRule
	if !c.fetchJSON(ctx, environmentPath(id, "/ingress-rules"), &rules) {
		return nil, false
	}
	return rules, true
}

func (c *Client) Schedules(ctx context.Context, id string) ([]Schedule, bool) {
	var schedules []Schedule
	if !c.fetchJSON(ctx, environmentPath(id, "/schedules"), &schedules) {
		return nil, false
	}
	return schedules, true
}

func (c *Client) MaintenanceWindow(ctx context.Context, id string) (*MaintenanceWindow, bool) {
	var window MaintenanceWindow
	if !c.fetchJSON(ctx, environmentPath(id, "/maintenance-window"), &window) {
		return nil, false
	}
	return &window, true
}

// CostExplorerEnabled probes whether the optional cost section should be
// offered. The first return is the flag, the second is presence.
func (c *Client) CostExplorerEnabled(ctx context.Context, id string) (bool, bool) {
	var payload struct {
		Enabled bool `json:"enabled"`
	}
	if !c.fetchJSON(ctx, environmentPath(id, "/cost-explorer"), &payload) {
		return false, false
	}
	return payload.Enabled, true
}

func (c *Client) Projects(ctx context.Context) ([]Project, bool) {
	var projects []Project
	if !c.fetchJSON(ctx, "/projects", &projects) {
		return nil, false
	}
	return projects, true
}

func (c *Client) ProjectEnvironments(ctx context.Context, projectID string) ([]EnvironmentSummary, bool) {
	var envs []EnvironmentSummary
	if !c.fetchJSON(ctx, "/projects/"+url.PathEscape(projectID)+"/environments", &envs) {
		return nil, false
	}
	return envs, true
}
