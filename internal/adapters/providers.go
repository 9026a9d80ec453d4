package adapters

import (
	"context"
	"log/slog"

	"github.com/google/wire"
	"github.com/trebuchet-org/scide/internal/adapters/debugger"
	"github.com/trebuchet-org/scide/internal/adapters/fs"
	"github.com/trebuchet-org/scide/internal/adapters/interactive"
	"github.com/trebuchet-org/scide/internal/adapters/registry"
	"github.com/trebuchet-org/scide/internal/adapters/sdk"
	"github.com/trebuchet-org/scide/internal/adapters/terminal"
	"github.com/trebuchet-org/scide/internal/adapters/webview"
	"github.com/trebuchet-org/scide/internal/domain/config"
	"github.com/trebuchet-org/scide/internal/events"
	"github.com/trebuchet-org/scide/internal/usecase"
)

// SurfaceProvider is a surface factory that owns the surfaces it creates
type SurfaceProvider interface {
	usecase.SurfaceFactory
	// Done is closed when the surfaces are gone for good
	Done() <-chan struct{}
	Close(ctx context.Context) error
}

// ProvideSurfaceProvider picks the terminal or the browser panel
func ProvideSurfaceProvider(cfg *config.RuntimeConfig, log *slog.Logger) SurfaceProvider {
	if cfg.Bridge.Terminal {
		return terminal.NewFactory(log)
	}
	return webview.NewFactory(cfg, log)
}

// ProvideSurfaceFactory exposes the provider as the bridge's factory
func ProvideSurfaceFactory(provider SurfaceProvider) usecase.SurfaceFactory {
	return provider
}

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewWorkspaceScannerAdapter,
	wire.Bind(new(usecase.FileSystem), new(*fs.WorkspaceScannerAdapter)),

	fs.NewMetadataScannerAdapter,
	wire.Bind(new(usecase.MetadataScanner), new(*fs.MetadataScannerAdapter)),

	fs.NewWorkspaceWriterAdapter,
	wire.Bind(new(usecase.WorkspaceWriter), new(*fs.WorkspaceWriterAdapter)),
)

// RegistrySet provides the in-memory contract registry
var RegistrySet = wire.NewSet(
	registry.NewContractStore,
	wire.Bind(new(usecase.ContractStore), new(*registry.ContractStore)),
)

// EventsSet provides the process-wide event bus
var EventsSet = wire.NewSet(
	events.NewBus,
	wire.Bind(new(usecase.EventPublisher), new(*events.Bus)),
	wire.Bind(new(usecase.EventSubscriber), new(*events.Bus)),
)

// DebuggerSet provides the REST debugger client
var DebuggerSet = wire.NewSet(
	debugger.NewClient,
	wire.Bind(new(usecase.DebuggerClient), new(*debugger.Client)),
)

// SDKSet provides the contract builder
var SDKSet = wire.NewSet(
	sdk.NewBuilderAdapter,
	wire.Bind(new(usecase.Builder), new(*sdk.BuilderAdapter)),
)

// InteractiveSet provides interactive prompts
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.ContractSelector), new(*interactive.SelectorAdapter)),
)

// SurfaceSet provides the rendering surfaces
var SurfaceSet = wire.NewSet(
	ProvideSurfaceProvider,
	ProvideSurfaceFactory,
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	FSSet,
	RegistrySet,
	EventsSet,
	DebuggerSet,
	SDKSet,
	InteractiveSet,
	SurfaceSet,
)
