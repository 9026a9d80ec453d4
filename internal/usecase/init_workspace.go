package usecase

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/trebuchet-org/scide/internal/domain"
	"github.com/trebuchet-org/scide/internal/domain/config"
)

// InitWorkspace creates the files that mark a workspace root.
type InitWorkspace struct {
	writer   WorkspaceWriter
	cfg      *config.RuntimeConfig
	progress ProgressSink
}

// NewInitWorkspace creates a new workspace setup use case
func NewInitWorkspace(writer WorkspaceWriter, cfg *config.RuntimeConfig, progress ProgressSink) *InitWorkspace {
	return &InitWorkspace{
		writer:   writer,
		cfg:      cfg,
		progress: progress,
	}
}

// InitWorkspaceResult lists what was created; existing files are left alone.
type InitWorkspaceResult struct {
	Root    string
	Created []string
}

// Run ensures the data directory and the workspace definition file exist.
func (i *InitWorkspace) Run(ctx context.Context) (*InitWorkspaceResult, error) {
	result := &InitWorkspaceResult{Root: i.cfg.ProjectRoot}

	created, err := i.writer.EnsureDirectory(ctx, i.cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", i.cfg.DataDir, err)
	}
	if created {
		result.Created = append(result.Created, i.cfg.DataDir)
	}

	definition := filepath.Join(i.cfg.ProjectRoot, domain.WorkspaceFileName)
	created, err = i.writer.EnsureFile(ctx, definition, []byte("{}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", domain.WorkspaceFileName, err)
	}
	if created {
		result.Created = append(result.Created, definition)
	}

	if len(result.Created) == 0 {
		i.progress.Info("Workspace already set up.")
	} else {
		i.progress.Info("Workspace has been set up.")
	}

	return result, nil
}
