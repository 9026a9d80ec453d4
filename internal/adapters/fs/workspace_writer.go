package fs

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/trebuchet-org/scide/internal/usecase"
)

// WorkspaceWriterAdapter creates workspace files without touching existing ones
type WorkspaceWriterAdapter struct{}

// NewWorkspaceWriterAdapter creates a new workspace writer
func NewWorkspaceWriterAdapter() *WorkspaceWriterAdapter {
	return &WorkspaceWriterAdapter{}
}

// EnsureDirectory creates path (and parents) when missing
func (w *WorkspaceWriterAdapter) EnsureDirectory(ctx context.Context, path string) (bool, error) {
	if info, err := os.Stat(path); err == nil {
		if !info.IsDir() {
			return false, &os.PathError{Op: "mkdir", Path: path, Err: errors.New("exists and is not a directory")}
		}
		return false, nil
	}
	if err := os.MkdirAll(path, 0755); err != nil {
		return false, err
	}
	return true, nil
}

// EnsureFile writes content to path only if no file exists there yet
func (w *WorkspaceWriterAdapter) EnsureFile(ctx context.Context, path string, content []byte) (bool, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if _, err := f.Write(content); err != nil {
		return false, err
	}
	return true, nil
}

// Ensure the adapter implements the interface
var _ usecase.WorkspaceWriter = (*WorkspaceWriterAdapter)(nil)
