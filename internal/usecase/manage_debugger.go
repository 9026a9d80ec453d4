package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/trebuchet-org/scide/internal/domain"
)

// ManageDebugger starts and stops the debugger server process.
type ManageDebugger struct {
	debugger DebuggerClient
	progress ProgressSink
}

// NewManageDebugger creates a new debugger management use case
func NewManageDebugger(debugger DebuggerClient, progress ProgressSink) *ManageDebugger {
	return &ManageDebugger{
		debugger: debugger,
		progress: progress,
	}
}

// ManageDebuggerResult contains the result of a debugger operation
type ManageDebuggerResult struct {
	Operation string
	Running   bool
	Message   string
}

// Start launches the server. Output, errors and its exit arrive on the event
// bus.
func (m *ManageDebugger) Start(ctx context.Context) (*ManageDebuggerResult, error) {
	m.progress.Info("🔨 Starting debugger server...")

	if err := m.debugger.StartServer(ctx); err != nil {
		if errors.Is(err, domain.ErrDebuggerRunning) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to start debugger: %w", err)
	}

	return &ManageDebuggerResult{
		Operation: "start",
		Running:   true,
		Message:   "Debugger server started",
	}, nil
}

// Stop signals the server; sig nil uses the default termination signal.
// Stopping a server that is not running succeeds.
func (m *ManageDebugger) Stop(ctx context.Context, sig os.Signal) (*ManageDebuggerResult, error) {
	if !m.debugger.Running() {
		return &ManageDebuggerResult{
			Operation: "stop",
			Message:   "Debugger server is not running",
		}, nil
	}

	m.progress.Info("🛑 Stopping debugger server...")
	if err := m.debugger.StopServer(ctx, sig); err != nil {
		return nil, fmt.Errorf("failed to stop debugger: %w", err)
	}

	return &ManageDebuggerResult{
		Operation: "stop",
		Message:   "Debugger server stopped",
	}, nil
}
