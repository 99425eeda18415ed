// Package picker supplies the environment selection flow used when the
// dashboard starts without any identity context.
package picker

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize/english"

	"github.com/stackmill/env-dashboard/internal/derive"
	"github.com/stackmill/env-dashboard/internal/format/table"
	"github.com/stackmill/env-dashboard/internal/platform"
)

// Item is a selectable picker entry. Name carries the raw name used to
// build an identity, Label the aligned display row.
type Item struct {
	ID    string
	Label string
	Name  string
}

// Loader populates one picker level from the console API. Loaders return
// an error instead of the gateway's absence value because the picker has
// no section to degrade; the error line is its feedback.
type Loader func(ctx context.Context, client *platform.Client, parent Item) ([]Item, error)

const (
	LevelProjects     = "picker:projects"
	LevelEnvironments = "picker:environments"
)

// LoadProjects lists projects with their environment counts.
func LoadProjects(ctx context.Context, client *platform.Client, _ Item) ([]Item, error) {
	projects, ok := client.Projects(ctx)
	if !ok {
		return nil, fmt.Errorf("project list unavailable")
	}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{p.Name, english.Plural(p.EnvironmentCount, "environment", "")})
	}
	lines := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignRight})
	items := make([]Item, 0, len(projects))
	for i, p := range projects {
		items = append(items, Item{ID: p.ID, Label: lines[i], Name: p.Name})
	}
	return items, nil
}

// LoadEnvironments lists the environments under the picked project.
func LoadEnvironments(ctx context.Context, client *platform.Client, parent Item) ([]Item, error) {
	envs, ok := client.ProjectEnvironments(ctx, parent.ID)
	if !ok {
		return nil, fmt.Errorf("environment list unavailable for %s", parent.Name)
	}
	rows := make([][]string, 0, len(envs))
	for _, e := range envs {
		rows = append(rows, []string{e.Name, derive.ClusterState(e.ClusterState).Label})
	}
	lines := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft})
	items := make([]Item, 0, len(envs))
	for i, e := range envs {
		items = append(items, Item{ID: e.ID, Label: lines[i], Name: e.Name})
	}
	return items, nil
}
