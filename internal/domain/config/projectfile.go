package config

// ProjectFile is the schema of scide.toml
//
//	source_extension = ".c"
//	artifact_extension = ".wasm"
//
//	[debugger]
//	url = "http://localhost:5000"
//	binary = "arwendebug"
//	args = ["server", "--address=:5000"]
//	sender = "erd1..."
//
//	[builder]
//	command = "erdpy"
//	args = ["contract", "build", "{dir}"]
type ProjectFile struct {
	SourceExtension   string              `toml:"source_extension"`
	ArtifactExtension string              `toml:"artifact_extension"`
	IgnoreDirs        []string            `toml:"ignore_dirs"`
	Debugger          *DebuggerFileConfig `toml:"debugger"`
	Builder           *BuilderFileConfig  `toml:"builder"`
	Bridge            *BridgeFileConfig   `toml:"bridge"`
}

type DebuggerFileConfig struct {
	URL     string   `toml:"url"`
	Binary  string   `toml:"binary"`
	Args    []string `toml:"args"`
	Sender  string   `toml:"sender"`
	Timeout string   `toml:"timeout"`
}

type BuilderFileConfig struct {
	Command string   `toml:"command"`
	Args    []string `toml:"args"`
}

type BridgeFileConfig struct {
	Addr string `toml:"addr"`
}
