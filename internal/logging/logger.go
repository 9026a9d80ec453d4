package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/google/wire"
	"github.com/trebuchet-org/scide/internal/domain/config"
)

var LoggingSet = wire.NewSet(
	NewLogger,
)

// LogFileName is the log written while the terminal panel owns the screen
const LogFileName = "scide.log"

// NewLogger creates a new logger based on runtime configuration
func NewLogger(cfg *config.RuntimeConfig) *slog.Logger {
	return newLogger(logWriter(cfg), cfg.Debug, os.Getenv("SCIDE_LOG_LEVEL"))
}

// logWriter is stderr, or a file in the data directory when the terminal
// panel is drawn on the same terminal.
func logWriter(cfg *config.RuntimeConfig) io.Writer {
	if !cfg.Bridge.Terminal {
		return os.Stderr
	}
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return io.Discard
	}
	f, err := os.OpenFile(filepath.Join(cfg.DataDir, LogFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return io.Discard
	}
	return f
}

func newLogger(w io.Writer, debug bool, envLevel string) *slog.Logger {
	level := parseLevel(envLevel)
	if debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Remove time in non-debug mode for cleaner output
			if a.Key == slog.TimeKey && !debug {
				return slog.Attr{}
			}
			// Shorten source paths
			if a.Key == slog.SourceKey {
				if source, ok := a.Value.Any().(*slog.Source); ok {
					source.File = shortPath(source.File)
				}
			}
			return a
		},
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(val string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		// unknown value, keep default
		return slog.LevelInfo
	}
}

// shortPath returns a shortened version of the file path
func shortPath(file string) string {
	// Try to make paths relative to project root
	if idx := strings.Index(file, "scide/"); idx != -1 {
		return file[idx+len("scide/"):]
	}
	// Otherwise, just return the file name
	_, f, _, _ := runtime.Caller(0)
	if idx := strings.LastIndex(f, "/"); idx != -1 {
		if idx2 := strings.LastIndex(file, f[:idx]); idx2 != -1 {
			return file[idx2+len(f[:idx])+1:]
		}
	}
	// Last resort: just the filename
	parts := strings.Split(file, "/")
	if len(parts) > 0 {
		return parts[len(parts)-1]
	}
	return file
}
