package platform

import "time"

// Environment is the canonical record returned by name-pair resolution.
type Environment struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Project string `json:"project"`
}

// Overview is the environment's live snapshot after payload normalization.
type Overview struct {
	ID                         string
	Name                       string
	Project                    string
	ClusterState               string
	CloudProvider              string
	CloudAccountID             string
	HasOrchestratorCredentials bool
	InstalledComponents        map[string]string
	NeverLaunched              bool
	Blueprint                  *BlueprintRef
	ConfigComplete             bool
	InProgressDeployments      []Deployment
	QueuedReleases             int
	LatestDeployment           *Deployment
	DeploymentsByType          map[string]int
	DownstreamEnvironments     []string
	UpdatedAt                  time.Time
}

// BlueprintRef describes the schema-driven provisioning source for
// blueprint environments.
type BlueprintRef struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Schema  string `json:"schema"`
}

type Deployment struct {
	ID        string
	Status    string
	Service   string
	StartedAt time.Time
	Releases  ReleaseCounters
}

type ReleaseCounters struct {
	Success  int
	Failed   int
	NoChange int
}

// Total returns the release denominator used for health percentages.
func (c ReleaseCounters) Total() int {
	return c.Success + c.Failed + c.NoChange
}

type ResourceStats struct {
	Services  int `json:"services"`
	Databases int `json:"databases"`
	Jobs      int `json:"jobs"`
	Volumes   int `json:"volumes"`
}

type VariableCounts struct {
	Total   int `json:"total"`
	Secrets int `json:"secrets"`
}

type ReleasePage struct {
	Items    []Deployment
	Page     int
	PageSize int
	Total    int
}

type Resource struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Status string `json:"status"`
}

type IngressRule struct {
	ID      string `json:"id"`
	Host    string `json:"host"`
	Path    string `json:"path"`
	Service string `json:"service"`
	Port    int    `json:"port"`
}

type Schedule struct {
	ID       string `json:"id"`
	Action   string `json:"action"`
	Cron     string `json:"cron"`
	Timezone string `json:"timezone"`
	Enabled  bool   `json:"enabled"`
}

type MaintenanceWindow struct {
	Enabled       bool   `json:"enabled"`
	Day           string `json:"day"`
	Start         string `json:"start"`
	DurationHours int    `json:"durationHours"`
}

type Project struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	EnvironmentCount int    `json:"environmentCount"`
}

type EnvironmentSummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ClusterState string `json:"clusterState"`
}

// The console API spells several overview fields more than one way
// depending on backend version. The payload structs accept every known
// spelling and normalize() narrows them to the canonical shape, so the
// variants never leak past this package.

type overviewPayload struct {
	ID                         string              `json:"id"`
	Name                       string              `json:"name"`
	Project                    string              `json:"project"`
	ClusterState               string              `json:"clusterState"`
	State                      string              `json:"state"`
	CloudProvider              string              `json:"cloudProvider"`
	CloudAccountID             string              `json:"cloudAccountId"`
	HasOrchestratorCredentials bool                `json:"hasOrchestratorCredentials"`
	InstalledComponents        map[string]string   `json:"installedComponents"`
	Components                 map[string]string   `json:"components"`
	NeverLaunched              bool                `json:"neverLaunched"`
	Blueprint                  *BlueprintRef       `json:"blueprint"`
	ConfigComplete             *bool               `json:"configComplete"`
	ConfigurationComplete      *bool               `json:"configurationComplete"`
	InProgressDeployments      []deploymentPayload `json:"inProgressDeployments"`
	QueuedReleases             int                 `json:"queuedReleases"`
	LatestDeployment           *deploymentPayload  `json:"latestDeployment"`
	DeploymentsByType          map[string]int      `json:"deploymentsByType"`
	DownstreamEnvironments     []string            `json:"downstreamEnvironments"`
	UpdatedAt                  time.Time           `json:"updatedAt"`
}

type deploymentPayload struct {
	ID                string    `json:"id"`
	Status            string    `json:"status"`
	Service           string    `json:"service"`
	StartedAt         time.Time `json:"startedAt"`
	SuccessReleases   *int      `json:"successReleases"`
	SucceededReleases *int      `json:"succeededReleases"`
	FailedReleases    int       `json:"failedReleases"`
	NoChangeReleases  *int      `json:"noChangeReleases"`
	UnchangedReleases *int      `json:"unchangedReleases"`
}

type releasePagePayload struct {
	Items    []deploymentPayload `json:"items"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"pageSize"`
	Total    int                 `json:"total"`
}

func (p overviewPayload) normalize() *Overview {
	ov := &Overview{
		ID:                         p.ID,
		Name:                       p.Name,
		Project:                    p.Project,
		ClusterState:               firstString(p.ClusterState, p.State),
		CloudProvider:              p.CloudProvider,
		CloudAccountID:             p.CloudAccountID,
		HasOrchestratorCredentials: p.HasOrchestratorCredentials,
		InstalledComponents:        firstMap(p.InstalledComponents, p.Components),
		NeverLaunched:              p.NeverLaunched,
		Blueprint:                  p.Blueprint,
		ConfigComplete:             firstBool(p.ConfigComplete, p.ConfigurationComplete),
		QueuedReleases:             p.QueuedReleases,
		DeploymentsByType:          p.DeploymentsByType,
		DownstreamEnvironments:     p.DownstreamEnvironments,
		UpdatedAt:                  p.UpdatedAt,
	}
	for _, d := range p.InProgressDeployments {
		ov.InProgressDeployments = append(ov.InProgressDeployments, d.normalize())
	}
	if p.LatestDeployment != nil {
		latest := p.LatestDeployment.normalize()
		ov.LatestDeployment = &latest
	}
	return ov
}

func (p deploymentPayload) normalize() Deployment {
	return Deployment{
		ID:        p.ID,
		Status:    p.Status,
		Service:   p.Service,
		StartedAt: p.StartedAt,
		Releases: ReleaseCounters{
			Success:  firstInt(p.SuccessReleases, p.SucceededReleases),
			Failed:   p.FailedReleases,
			NoChange: firstInt(p.NoChangeReleases, p.UnchangedReleases),
		},
	}
}

func (p releasePagePayload) normalize() *ReleasePage {
	page := &ReleasePage{Page: p.Page, PageSize: p.PageSize, Total: p.Total}
	for _, d := range p.Items {
		page.Items = append(page.Items, d.normalize())
	}
	return page
}

func firstString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstInt(values ...*int) int {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return 0
}

func firstBool(values ...*bool) bool {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return false
}

func firstMap(values ...map[string]string) map[string]string {
	for _, v := range values {
		if len(v) > 0 {
			return v
		}
	}
	return nil
}
