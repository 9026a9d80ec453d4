package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/samber/lo"
	"github.com/trebuchet-org/scide/internal/domain"
)

// ListProjects lists the SDK projects of the workspace.
type ListProjects struct {
	scanner MetadataScanner
}

// NewListProjects creates a new project listing use case
func NewListProjects(scanner MetadataScanner) *ListProjects {
	return &ListProjects{scanner: scanner}
}

// ProjectListResult contains the projects and the languages they use
type ProjectListResult struct {
	Projects  []*domain.ProjectMetadata
	Languages []string
}

// Run scans project descriptors. Descriptors that cannot be read are skipped
// by the scanner, so one broken project never hides the others.
func (l *ListProjects) Run(ctx context.Context) (*ProjectListResult, error) {
	projects, err := l.scanner.ScanMetadata(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to scan projects: %w", err)
	}

	sort.Slice(projects, func(i, j int) bool {
		return projects[i].ProjectPathInWorkspace < projects[j].ProjectPathInWorkspace
	})

	languages := lo.Uniq(lo.FilterMap(projects, func(p *domain.ProjectMetadata, _ int) (string, bool) {
		return p.Language, p.Language != ""
	}))
	sort.Strings(languages)

	return &ProjectListResult{Projects: projects, Languages: languages}, nil
}
