package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrContractNotFound is returned when no contract has the requested ID
	ErrContractNotFound = fmt.Errorf("contract %w", ErrNotFound)

	// ErrContractNotBuilt is returned when an operation needs a bytecode artifact
	ErrContractNotBuilt = errors.New("contract is not built")

	// ErrWorkspaceNotOpen is returned when no workspace root can be located
	ErrWorkspaceNotOpen = errors.New("workspace not available")

	// ErrDebuggerRunning is returned when starting a debugger server twice
	ErrDebuggerRunning = errors.New("debugger server is already running")

	// ErrDebuggerNotRunning is returned when the debugger server is required but stopped
	ErrDebuggerNotRunning = errors.New("debugger server is not running")
)

// UnknownContractErr reports a contract ID that did not match, with the
// closest known IDs as suggestions.
type UnknownContractErr struct {
	ID          string
	Suggestions []string
}

func (e UnknownContractErr) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("contract %q not found", e.ID)
	}
	return fmt.Sprintf("contract %q not found, did you mean: %s", e.ID, strings.Join(e.Suggestions, ", "))
}

func (e UnknownContractErr) Unwrap() error {
	return ErrContractNotFound
}

// DebuggerError is a failed request against the debugger process.
type DebuggerError struct {
	Op     string // deploy, run, start, stop
	Status int    // HTTP status, zero when the request never got a response
	Reason string
}

func (e *DebuggerError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("debugger %s failed (HTTP %d): %s", e.Op, e.Status, e.Reason)
	}
	return fmt.Sprintf("debugger %s failed: %s", e.Op, e.Reason)
}
