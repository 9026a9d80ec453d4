package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/trebuchet-org/scide/internal/domain"
	"github.com/trebuchet-org/scide/internal/domain/config"
	"github.com/trebuchet-org/scide/internal/usecase"
)

// MetadataScannerAdapter reads every elrond.json project descriptor of the workspace
type MetadataScannerAdapter struct {
	scanner *WorkspaceScannerAdapter
	root    string
	log     *slog.Logger
}

// NewMetadataScannerAdapter creates a new metadata scanner
func NewMetadataScannerAdapter(scanner *WorkspaceScannerAdapter, cfg *config.RuntimeConfig, log *slog.Logger) *MetadataScannerAdapter {
	return &MetadataScannerAdapter{
		scanner: scanner,
		root:    cfg.ProjectRoot,
		log:     log.With("component", "MetadataScanner"),
	}
}

type metadataFile struct {
	Language string `json:"language"`
}

// ScanMetadata returns one entry per readable descriptor. A descriptor that
// cannot be read or parsed is logged and skipped.
func (m *MetadataScannerAdapter) ScanMetadata(ctx context.Context) ([]*domain.ProjectMetadata, error) {
	paths, err := m.scanner.ListNamed(ctx, domain.MetadataFileName)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.ProjectMetadata, 0, len(paths))
	for _, path := range paths {
		metadata, err := m.load(path)
		if err != nil {
			m.log.Warn("could not read project metadata", "path", path, "error", err)
			continue
		}
		result = append(result, metadata)
	}

	return result, nil
}

func (m *MetadataScannerAdapter) load(path string) (*domain.ProjectMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var parsed metadataFile
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", domain.MetadataFileName, err)
	}

	projectPath := filepath.Dir(path)
	return &domain.ProjectMetadata{
		Path:                   path,
		ProjectPath:            projectPath,
		ProjectPathInWorkspace: strings.TrimPrefix(projectPath, m.root),
		ProjectName:            filepath.Base(projectPath),
		Language:               parsed.Language,
	}, nil
}

// Ensure the adapter implements the interface
var _ usecase.MetadataScanner = (*MetadataScannerAdapter)(nil)
