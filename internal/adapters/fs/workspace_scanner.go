package fs

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/trebuchet-org/scide/internal/domain/config"
	"github.com/trebuchet-org/scide/internal/usecase"
)

// WorkspaceScannerAdapter implements FileSystem over the workspace directory tree
type WorkspaceScannerAdapter struct {
	root   string
	ignore map[string]bool
}

// NewWorkspaceScannerAdapter creates a scanner rooted at the project root
func NewWorkspaceScannerAdapter(cfg *config.RuntimeConfig) *WorkspaceScannerAdapter {
	ignore := make(map[string]bool, len(cfg.IgnoreDirs))
	for _, dir := range cfg.IgnoreDirs {
		ignore[dir] = true
	}
	return &WorkspaceScannerAdapter{
		root:   cfg.ProjectRoot,
		ignore: ignore,
	}
}

// ListFiles walks the workspace and returns absolute paths of files ending in
// extension. Ignored directories are not entered.
func (w *WorkspaceScannerAdapter) ListFiles(ctx context.Context, extension string) ([]string, error) {
	return w.walk(ctx, func(path string, d fs.DirEntry) bool {
		return strings.EqualFold(filepath.Ext(d.Name()), extension)
	})
}

// ListNamed returns absolute paths of files with exactly the given name.
func (w *WorkspaceScannerAdapter) ListNamed(ctx context.Context, name string) ([]string, error) {
	return w.walk(ctx, func(path string, d fs.DirEntry) bool {
		return d.Name() == name
	})
}

func (w *WorkspaceScannerAdapter) walk(ctx context.Context, match func(path string, d fs.DirEntry) bool) ([]string, error) {
	var files []string

	err := filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are skipped, an unreadable root is fatal
			if path == w.root {
				return err
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if d.IsDir() {
			if path != w.root && w.ignore[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		if match(path, d) {
			abs, err := filepath.Abs(path)
			if err != nil {
				return err
			}
			files = append(files, abs)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", w.root, err)
	}

	return files, nil
}

// Exists reports whether path names an existing regular file
func (w *WorkspaceScannerAdapter) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ReadBinary reads the whole file
func (w *WorkspaceScannerAdapter) ReadBinary(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Ensure the adapter implements the interface
var _ usecase.FileSystem = (*WorkspaceScannerAdapter)(nil)
