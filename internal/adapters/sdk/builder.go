// Package sdk runs the smart-contract SDK toolchain.
package sdk

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/creack/pty"
	"github.com/trebuchet-org/scide/internal/domain"
	"github.com/trebuchet-org/scide/internal/domain/config"
	"github.com/trebuchet-org/scide/internal/usecase"
)

// Argument placeholders expanded per build
const (
	dirPlaceholder    = "{dir}"
	sourcePlaceholder = "{source}"
)

// BuilderAdapter compiles contracts with the configured SDK command
type BuilderAdapter struct {
	command     string
	args        []string
	projectRoot string
	debug       bool
	log         *slog.Logger
}

// NewBuilderAdapter creates a new SDK builder
func NewBuilderAdapter(cfg *config.RuntimeConfig, log *slog.Logger) *BuilderAdapter {
	return &BuilderAdapter{
		command:     cfg.Builder.Command,
		args:        cfg.Builder.Args,
		projectRoot: cfg.ProjectRoot,
		debug:       cfg.Debug,
		log:         log.With("component", "BuilderAdapter"),
	}
}

// Build runs the SDK build for the project holding sourcePath. The artifact
// lands next to the source; the registry picks it up on the next sync.
func (b *BuilderAdapter) Build(ctx context.Context, sourcePath string) error {
	start := time.Now()
	dir := b.projectDir(sourcePath)
	args := expandArgs(b.args, dir, sourcePath)

	b.log.Debug("running sdk build", "command", b.command, "args", args, "dir", dir)

	cmd := exec.CommandContext(ctx, b.command, args...)
	cmd.Dir = dir
	cmd.Env = os.Environ()

	// Start with PTY so the SDK keeps its colored output
	ptyFile, err := pty.Start(cmd)
	if err != nil {
		return fmt.Errorf("failed to start %s: %w", b.command, err)
	}
	defer func() {
		_ = ptyFile.Close()
	}()

	var output bytes.Buffer
	var sink io.Writer = &output
	if b.debug {
		sink = io.MultiWriter(&output, os.Stderr)
	}
	// Reading a closed PTY fails with EIO once the child exits
	_, _ = io.Copy(sink, ptyFile)

	waitErr := cmd.Wait()
	duration := time.Since(start)
	if waitErr != nil {
		b.log.Error("sdk build failed", "error", waitErr, "output", output.String(), "duration", duration)
		return fmt.Errorf("%s build failed: %w\nOutput: %s", b.command, waitErr, strings.TrimSpace(output.String()))
	}

	b.log.Debug("sdk build completed successfully", "duration", duration)
	return nil
}

// projectDir is the closest ancestor of sourcePath holding a project
// descriptor, or the source directory when there is none inside the workspace.
func (b *BuilderAdapter) projectDir(sourcePath string) string {
	sourceDir := filepath.Dir(sourcePath)
	for dir := sourceDir; ; dir = filepath.Dir(dir) {
		if info, err := os.Stat(filepath.Join(dir, domain.MetadataFileName)); err == nil && !info.IsDir() {
			return dir
		}
		if dir == b.projectRoot || dir == filepath.Dir(dir) {
			return sourceDir
		}
	}
}

func expandArgs(args []string, dir, source string) []string {
	expanded := make([]string, len(args))
	for i, arg := range args {
		arg = strings.ReplaceAll(arg, dirPlaceholder, dir)
		expanded[i] = strings.ReplaceAll(arg, sourcePlaceholder, source)
	}
	return expanded
}

// Ensure the adapter implements the interface
var _ usecase.Builder = (*BuilderAdapter)(nil)
