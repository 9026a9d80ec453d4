package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/scide/internal/domain"
	"github.com/trebuchet-org/scide/internal/domain/config"
)

// Defaults applied when neither scide.toml, the environment nor a flag set a value.
const (
	DefaultSourceExtension   = ".c"
	DefaultArtifactExtension = ".wasm"
	DefaultDebuggerURL       = "http://localhost:5000"
	DefaultDebuggerBinary    = "arwendebug"
	DefaultDebuggerSender    = "erd1qyu5wthldzr8wx5c9ucg8kjagg0jfs53s8nr3zpz3hypefsdd8ssycr6th"
	DefaultBuilderCommand    = "erdpy"
	DefaultBridgeAddr        = "127.0.0.1:7755"
)

var (
	DefaultDebuggerArgs = []string{"server", "--address=:5000"}
	DefaultBuilderArgs  = []string{"contract", "build", "{dir}"}
	DefaultIgnoreDirs   = []string{".git", "node_modules", "target", "output", ".scide"}
)

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, err
		}
	}

	absRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root: %w", err)
	}
	if info, err := os.Stat(absRoot); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrWorkspaceNotOpen, absRoot)
	}

	loadEnvFiles(absRoot)

	cfg := &config.RuntimeConfig{
		ProjectRoot:       absRoot,
		DataDir:           filepath.Join(absRoot, ".scide"),
		Debug:             v.GetBool("debug"),
		NonInteractive:    v.GetBool("non_interactive"),
		Timeout:           v.GetDuration("timeout"),
		SourceExtension:   DefaultSourceExtension,
		ArtifactExtension: DefaultArtifactExtension,
		IgnoreDirs:        append([]string{}, DefaultIgnoreDirs...),
		Debugger: config.DebuggerConfig{
			URL:     DefaultDebuggerURL,
			Binary:  DefaultDebuggerBinary,
			Args:    append([]string{}, DefaultDebuggerArgs...),
			Sender:  DefaultDebuggerSender,
			Timeout: v.GetDuration("debugger_timeout"),
		},
		Builder: config.BuilderConfig{
			Command: DefaultBuilderCommand,
			Args:    append([]string{}, DefaultBuilderArgs...),
		},
		Bridge: config.BridgeConfig{
			Addr:     DefaultBridgeAddr,
			Terminal: v.GetBool("tui"),
		},
	}

	projectFile, path, err := loadProjectFile(absRoot)
	if err != nil {
		return nil, err
	}
	if projectFile != nil {
		if err := mergeProjectFile(cfg, projectFile); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", ProjectFileName, err)
		}
		cfg.ConfigFile = path
	}

	// Explicit flags and SCIDE_* variables win over scide.toml
	if url := v.GetString("debugger_url"); url != "" {
		cfg.Debugger.URL = url
	}
	if sender := v.GetString("sender"); sender != "" {
		cfg.Debugger.Sender = sender
	}
	if addr := v.GetString("addr"); addr != "" {
		cfg.Bridge.Addr = addr
	}

	cfg.SourceExtension = normalizeExtension(cfg.SourceExtension)
	cfg.ArtifactExtension = normalizeExtension(cfg.ArtifactExtension)
	cfg.Debugger.URL = strings.TrimRight(cfg.Debugger.URL, "/")

	return cfg, nil
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up config file
	v.SetConfigName("config.local")
	v.SetConfigType("json")
	if projectRoot != "" {
		v.AddConfigPath(filepath.Join(projectRoot, ".scide"))
	}

	// Set up environment variables
	v.SetEnvPrefix("SCIDE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Set defaults
	v.SetDefault("timeout", "5m")
	v.SetDefault("debugger_timeout", "30s")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("tui", false)
	v.SetDefault("project_root", projectRoot)

	// Try to read config file (ignore error if not found)
	_ = v.ReadInConfig()

	if cmd != nil {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			if !f.Changed {
				return
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			if f.Name == "root" {
				key = "project_root"
			}
			v.Set(key, f.Value.String())
		})
	}

	return v
}

func normalizeExtension(ext string) string {
	ext = strings.TrimSpace(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
