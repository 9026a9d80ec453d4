package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/trebuchet-org/scide/internal/domain"
)

// rootMarkers identify a workspace root, checked in order in every directory.
var rootMarkers = []string{ProjectFileName, domain.WorkspaceFileName}

// FindProjectRoot walks up from the current directory to the first directory
// holding scide.toml or elrond.workspace.json.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return FindProjectRootFrom(dir)
}

// FindProjectRootFrom is FindProjectRoot starting at dir.
func FindProjectRootFrom(dir string) (string, error) {
	start := dir
	for {
		for _, marker := range rootMarkers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: no %s or %s above %s", domain.ErrWorkspaceNotOpen,
				ProjectFileName, domain.WorkspaceFileName, start)
		}
		dir = parent
	}
}
