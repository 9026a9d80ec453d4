package usecase

import (
	"context"
	"os"

	"github.com/trebuchet-org/scide/internal/domain"
)

// FileSystem is the workspace scanner used by reconciliation and deployment.
type FileSystem interface {
	// ListFiles returns the absolute paths of all workspace files with the
	// given extension. The order is unspecified.
	ListFiles(ctx context.Context, extension string) ([]string, error)
	Exists(path string) bool
	ReadBinary(path string) ([]byte, error)
}

// ContractStore owns the contract collection of the current workspace.
// Readers get copies; the collection changes only through Replace and Update.
type ContractStore interface {
	// Replace swaps the whole collection in one step.
	Replace(contracts []*domain.Contract)
	// Reconcile derives the next collection from the current one and swaps
	// it in atomically with respect to Update.
	Reconcile(fn func(current []*domain.Contract) []*domain.Contract)
	Get(id string) (*domain.Contract, bool)
	List() []*domain.Contract
	// Update applies fn to the stored contract with the given ID.
	Update(id string, fn func(c *domain.Contract)) error
}

// Builder compiles a contract source through the external SDK.
type Builder interface {
	Build(ctx context.Context, sourcePath string) error
}

// DebuggerClient talks to the REST VM debugger and manages the process that
// serves it. Output, errors and termination of that process are published on
// the event bus, independently of the per-call results.
type DebuggerClient interface {
	Deploy(ctx context.Context, sender string, hexCode string) (address string, err error)
	Run(ctx context.Context, options domain.RunOptions) (domain.VMOutput, error)
	StartServer(ctx context.Context) error
	// StopServer signals the server process; nil sig means the default
	// termination signal. A close event follows once the process exits.
	StopServer(ctx context.Context, sig os.Signal) error
	Running() bool
}

// EventPublisher is the publishing half of the event bus.
type EventPublisher interface {
	Publish(topic domain.Topic, payload any)
}

// EventSubscriber is the subscribing half of the event bus.
type EventSubscriber interface {
	Subscribe(topic domain.Topic, handler func(payload any)) (unsubscribe func())
}

// Surface is a rendering surface: a panel that displays bridge messages and
// sends commands back.
type Surface interface {
	Post(message domain.Message) error
	// Reveal brings the surface to the foreground.
	Reveal()
	OnCommand(handler func(command domain.Command))
	OnDispose(handler func())
}

// SurfaceFactory creates rendering surfaces.
type SurfaceFactory interface {
	Create(ctx context.Context) (Surface, error)
}

// ContractSelector lets the user pick a contract when none was named.
type ContractSelector interface {
	SelectContract(ctx context.Context, contracts []*domain.Contract, prompt string) (*domain.Contract, error)
}

// MetadataScanner finds the SDK project descriptors of the workspace.
type MetadataScanner interface {
	ScanMetadata(ctx context.Context) ([]*domain.ProjectMetadata, error)
}

// WorkspaceWriter creates the files that mark and configure a workspace.
type WorkspaceWriter interface {
	EnsureDirectory(ctx context.Context, path string) (created bool, err error)
	EnsureFile(ctx context.Context, path string, content []byte) (created bool, err error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    string
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
