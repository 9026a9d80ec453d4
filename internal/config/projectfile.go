package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/trebuchet-org/scide/internal/domain/config"
)

// ProjectFileName is the optional per-workspace settings file.
const ProjectFileName = "scide.toml"

// loadEnvFiles loads .env files from the workspace root so that scide.toml
// values can reference ${VARS}.
func loadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				// Log warning but don't fail
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}

// loadProjectFile loads and parses scide.toml if it exists.
// Returns (nil, "", nil) when scide.toml does not exist.
func loadProjectFile(projectRoot string) (*config.ProjectFile, string, error) {
	path := filepath.Join(projectRoot, ProjectFileName)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, "", nil
	}

	var file config.ProjectFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, "", fmt.Errorf("failed to parse %s: %w", ProjectFileName, err)
	}

	return &file, path, nil
}

// mergeProjectFile overlays non-empty scide.toml values onto cfg, expanding
// environment variables in string fields.
func mergeProjectFile(cfg *config.RuntimeConfig, file *config.ProjectFile) error {
	if file.SourceExtension != "" {
		cfg.SourceExtension = file.SourceExtension
	}
	if file.ArtifactExtension != "" {
		cfg.ArtifactExtension = file.ArtifactExtension
	}
	if len(file.IgnoreDirs) > 0 {
		cfg.IgnoreDirs = file.IgnoreDirs
	}

	if d := file.Debugger; d != nil {
		if d.URL != "" {
			cfg.Debugger.URL = os.ExpandEnv(d.URL)
		}
		if d.Binary != "" {
			cfg.Debugger.Binary = os.ExpandEnv(d.Binary)
		}
		if d.Args != nil {
			cfg.Debugger.Args = expandAll(d.Args)
		}
		if d.Sender != "" {
			cfg.Debugger.Sender = os.ExpandEnv(d.Sender)
		}
		if d.Timeout != "" {
			timeout, err := time.ParseDuration(d.Timeout)
			if err != nil {
				return fmt.Errorf("debugger.timeout: %w", err)
			}
			cfg.Debugger.Timeout = timeout
		}
	}

	if b := file.Builder; b != nil {
		if b.Command != "" {
			cfg.Builder.Command = os.ExpandEnv(b.Command)
		}
		if b.Args != nil {
			cfg.Builder.Args = expandAll(b.Args)
		}
	}

	if br := file.Bridge; br != nil && br.Addr != "" {
		cfg.Bridge.Addr = os.ExpandEnv(br.Addr)
	}

	return nil
}

func expandAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = os.ExpandEnv(v)
	}
	return out
}
