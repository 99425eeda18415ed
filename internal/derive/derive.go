// Package derive turns raw console payloads into UI-ready facts. Every
// function is pure: absent inputs degrade the answer, they never panic or
// error.
package derive

import (
	"fmt"
	"math"
	"strings"

	"github.com/stackmill/env-dashboard/internal/platform"
)

// Descriptor fixes how a state value renders: label, terminal color token,
// and whether it pulses to mark an in-flight transition.
type Descriptor struct {
	Label string
	Color string
	Pulse bool
}

var clusterStates = map[string]Descriptor{
	"NEW":            {Label: "Not launched", Color: "245"},
	"LAUNCHING":      {Label: "Launching", Color: "33", Pulse: true},
	"RUNNING":        {Label: "Running", Color: "42"},
	"SCALING_UP":     {Label: "Scaling up", Color: "33", Pulse: true},
	"SCALING_DOWN":   {Label: "Scaling down", Color: "33", Pulse: true},
	"DESTROYING":     {Label: "Destroying", Color: "196", Pulse: true},
	"STOPPED":        {Label: "Stopped", Color: "245"},
	"LAUNCH_FAILED":  {Label: "Launch failed", Color: "196"},
	"DESTROY_FAILED": {Label: "Destroy failed", Color: "196"},
}

var deploymentStatuses = map[string]Descriptor{
	"QUEUED":           {Label: "Queued", Color: "245"},
	"IN_PROGRESS":      {Label: "In progress", Color: "33", Pulse: true},
	"WAITING_APPROVAL": {Label: "Waiting approval", Color: "178"},
	"SUCCESS":          {Label: "Success", Color: "42"},
	"FAILED":           {Label: "Failed", Color: "196"},
	"CANCELLED":        {Label: "Cancelled", Color: "245"},
	"NO_CHANGE":        {Label: "No change", Color: "245"},
}

var unknownDescriptor = Descriptor{Label: "Unknown", Color: "245"}

// ClusterState classifies an environment state value. Values outside the
// table map to the Unknown descriptor.
func ClusterState(state string) Descriptor {
	if d, ok := clusterStates[state]; ok {
		return d
	}
	return unknownDescriptor
}

// DeploymentStatus classifies a deployment status value with the same
// unknown fallback.
func DeploymentStatus(status string) Descriptor {
	if d, ok := deploymentStatuses[status]; ok {
		return d
	}
	return unknownDescriptor
}

var transitionalStates = map[string]bool{
	"LAUNCHING":    true,
	"DESTROYING":   true,
	"SCALING_UP":   true,
	"SCALING_DOWN": true,
}

// PollingActive reports whether the refresh loop should keep running: a
// deployment is in flight or the cluster is mid-transition.
func PollingActive(ov *platform.Overview) bool {
	if ov == nil {
		return false
	}
	if len(ov.InProgressDeployments) > 0 {
		return true
	}
	return transitionalStates[ov.ClusterState]
}

type Check struct {
	Name   string
	Passed bool
	Hint   string
}

// Readiness is the pre-launch checklist. Blueprint environments carry
// descriptive metadata instead of pass/fail checks and always count as
// ready.
type Readiness struct {
	Blueprint bool
	Meta      []string
	Checks    []Check
	Ready     bool
}

// ReadinessChecklist computes the launch checklist. It applies only to
// environments that have never launched; the second return reports
// whether a checklist exists at all. The credentials check is included
// only when an orchestration platform is detected, and a missing counts
// payload fails the variables check rather than hiding it.
func ReadinessChecklist(ov *platform.Overview, counts *platform.VariableCounts) (Readiness, bool) {
	if ov == nil || !ov.NeverLaunched {
		return Readiness{}, false
	}
	if ov.Blueprint != nil {
		r := Readiness{Blueprint: true, Ready: true}
		r.Meta = append(r.Meta, fmt.Sprintf("Blueprint %s", ov.Blueprint.Name))
		if ov.Blueprint.Version != "" {
			r.Meta = append(r.Meta, fmt.Sprintf("Version %s", ov.Blueprint.Version))
		}
		if ov.Blueprint.Schema != "" {
			r.Meta = append(r.Meta, fmt.Sprintf("Schema %s", ov.Blueprint.Schema))
		}
		return r, true
	}
	checks := []Check{
		{Name: "Configuration", Passed: ov.ConfigComplete, Hint: "Complete the environment configuration"},
		{Name: "Cloud account", Passed: ov.CloudAccountID != "", Hint: "Link a cloud account"},
	}
	if KubernetesCapable(ov) {
		checks = append(checks, Check{
			Name:   "Orchestrator credentials",
			Passed: ov.HasOrchestratorCredentials,
			Hint:   "Provide cluster credentials",
		})
	}
	checks = append(checks, Check{
		Name:   "Variables",
		Passed: counts != nil && counts.Total > 0,
		Hint:   "Define at least one variable",
	})
	r := Readiness{Checks: checks, Ready: true}
	for _, c := range checks {
		if !c.Passed {
			r.Ready = false
		}
	}
	return r, true
}

// Action is one permitted header call-to-action for the current state.
type Action struct {
	Name    string
	Label   string
	Key     string
	Primary bool
	Danger  bool
}

// HeaderActions maps a cluster state to its permitted actions, in display
// order. Transitional and unrecognized states permit none.
func HeaderActions(state string) []Action {
	switch state {
	case "NEW":
		return []Action{
			{Name: "launch", Label: "Launch", Key: "L", Primary: true},
			{Name: "settings", Label: "Settings", Key: "E"},
		}
	case "RUNNING":
		return []Action{
			{Name: "redeploy", Label: "Redeploy", Key: "R", Primary: true},
			{Name: "stop", Label: "Stop", Key: "S"},
			{Name: "destroy", Label: "Destroy", Key: "D", Danger: true},
		}
	case "STOPPED":
		return []Action{
			{Name: "launch", Label: "Start", Key: "L", Primary: true},
			{Name: "destroy", Label: "Destroy", Key: "D", Danger: true},
		}
	case "LAUNCH_FAILED":
		return []Action{
			{Name: "launch", Label: "Retry launch", Key: "L", Primary: true},
			{Name: "logs", Label: "Logs", Key: "V"},
			{Name: "destroy", Label: "Destroy", Key: "D", Danger: true},
		}
	case "DESTROY_FAILED":
		return []Action{
			{Name: "destroy", Label: "Retry destroy", Key: "D", Primary: true, Danger: true},
			{Name: "logs", Label: "Logs", Key: "V"},
		}
	}
	return nil
}

// DeployHealth returns the success percentage across a deployment's
// releases. The flag is false when there is no data to divide.
func DeployHealth(c platform.ReleaseCounters) (int, bool) {
	total := c.Total()
	if total <= 0 {
		return 0, false
	}
	return int(math.Round(float64(c.Success) / float64(total) * 100)), true
}

// KubernetesCapable reports whether the environment runs on an
// orchestration platform: the cloud type says so, credentials are
// attached, or any installed component name mentions kubernetes.
func KubernetesCapable(ov *platform.Overview) bool {
	if ov == nil {
		return false
	}
	if ov.CloudProvider == "KUBERNETES" || ov.HasOrchestratorCredentials {
		return true
	}
	for name := range ov.InstalledComponents {
		if strings.Contains(strings.ToLower(name), "kubernetes") {
			return true
		}
	}
	return false
}
