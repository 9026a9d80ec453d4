package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	DataDir     string

	// Execution settings
	Debug          bool
	NonInteractive bool
	Timeout        time.Duration

	// Contract discovery
	SourceExtension   string
	ArtifactExtension string
	IgnoreDirs        []string

	Debugger DebuggerConfig
	Builder  BuilderConfig
	Bridge   BridgeConfig

	// Config source tracking
	ConfigFile string // path of scide.toml, empty when absent
}

// DebuggerConfig locates the REST debugger and the process that serves it.
type DebuggerConfig struct {
	URL     string
	Binary  string
	Args    []string
	Sender  string
	Timeout time.Duration
}

// BuilderConfig is the SDK command used to compile a contract.
type BuilderConfig struct {
	Command string
	Args    []string
}

// BridgeConfig configures the rendering surface.
type BridgeConfig struct {
	Addr     string
	Terminal bool // render in the terminal instead of serving the browser panel
}
