// Package intent maps named dashboard actions to console navigation
// targets. The mapping is a static table: unknown actions are a checked
// no-op, never a malformed route.
package intent

import (
	"fmt"
	"net/url"
)

const (
	ActionLaunch       = "launch"
	ActionStop         = "stop"
	ActionRedeploy     = "redeploy"
	ActionDestroy      = "destroy"
	ActionLogs         = "logs"
	ActionSettings     = "settings"
	ActionVariables    = "variables"
	ActionCostExplorer = "costExplorer"
	ActionApprove      = "approve"
	ActionReject       = "reject"
	ActionAbort        = "abort"
)

// Context carries the names an intent route is built from. DeploymentID
// is consulted only by the three deployment actions.
type Context struct {
	Stack        string
	Cluster      string
	DeploymentID string
}

// Intent is the outbound navigation signal consumed by an external
// navigator. The core never follows the route itself.
type Intent struct {
	Route string
}

var environmentSegments = map[string]string{
	ActionLaunch:       "launch",
	ActionStop:         "stop",
	ActionRedeploy:     "redeploy",
	ActionDestroy:      "destroy",
	ActionLogs:         "logs",
	ActionSettings:     "settings",
	ActionVariables:    "variables",
	ActionCostExplorer: "cost-explorer",
}

var deploymentSegments = map[string]string{
	ActionApprove: "approve",
	ActionReject:  "reject",
	ActionAbort:   "abort",
}

// Emit resolves an action name against the route table. Unknown actions
// and deployment actions missing their id report false with no intent.
func Emit(action string, ctx Context) (Intent, bool) {
	base := fmt.Sprintf("/projects/%s/environments/%s",
		url.PathEscape(ctx.Stack), url.PathEscape(ctx.Cluster))
	if segment, ok := environmentSegments[action]; ok {
		return Intent{Route: base + "/" + segment}, true
	}
	if segment, ok := deploymentSegments[action]; ok {
		if ctx.DeploymentID == "" {
			return Intent{}, false
		}
		query := url.Values{}
		query.Set("deploymentId", ctx.DeploymentID)
		return Intent{Route: base + "/deployments/" + segment + "?" + query.Encode()}, true
	}
	return Intent{}, false
}
