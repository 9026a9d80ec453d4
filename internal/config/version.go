package config

import "fmt"

// Build information, set through -ldflags "-X"
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

func SetBuildFlags(version, commit, date string) {
	Version = version
	Commit = commit
	Date = date
}

// VersionString is the version line printed by the CLI
func VersionString() string {
	if Commit == "unknown" {
		return fmt.Sprintf("scide version %s", Version)
	}
	return fmt.Sprintf("scide version %s (commit %s, built %s)", Version, Commit, Date)
}
