package domain

import (
	"path/filepath"
	"strings"
)

// Contract is one smart-contract source file tracked by the registry, together
// with its derived build, deploy and run state.
type Contract struct {
	// ID is the source file name without its extension. It is the primary key
	// of the registry and stays stable across reconciliations.
	ID string `json:"id" yaml:"id"`

	// SourcePath is the absolute path of the source file.
	SourcePath string `json:"sourcePath" yaml:"sourcePath"`

	// BytecodePath is the compiled artifact, empty until one is found on disk.
	BytecodePath string `json:"bytecodePath,omitempty" yaml:"bytecodePath,omitempty"`

	// Address is set after a successful deployment to the debugger.
	Address string `json:"address,omitempty" yaml:"address,omitempty"`

	LatestRun *Run `json:"latestRun" yaml:"latestRun"`
}

// NewContract creates a contract for a freshly discovered source file.
func NewContract(sourcePath string) *Contract {
	return &Contract{
		ID:         ContractIDFromPath(sourcePath),
		SourcePath: sourcePath,
		LatestRun:  NewRun(DefaultRunOptions()),
	}
}

// ContractIDFromPath derives the contract ID from a source path.
func ContractIDFromPath(sourcePath string) string {
	base := filepath.Base(sourcePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// IsBuilt reports whether a bytecode artifact is currently known.
func (c *Contract) IsBuilt() bool {
	return c.BytecodePath != ""
}

// IsDeployed reports whether the contract has an address on the debugger.
func (c *Contract) IsDeployed() bool {
	return c.Address != ""
}

// ArtifactPath returns the source path with its extension replaced by ext.
func (c *Contract) ArtifactPath(ext string) string {
	return strings.TrimSuffix(c.SourcePath, filepath.Ext(c.SourcePath)) + ext
}

// Clone returns a copy that shares no mutable state with c.
func (c *Contract) Clone() *Contract {
	if c == nil {
		return nil
	}
	clone := *c
	clone.LatestRun = c.LatestRun.Clone()
	return &clone
}
