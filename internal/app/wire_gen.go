// Injector for the providers in wire.go, kept in step with them by hand.
// Running go generate replaces it with the wire output.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package app

import (
	"github.com/spf13/viper"
	"github.com/trebuchet-org/scide/internal/adapters"
	"github.com/trebuchet-org/scide/internal/adapters/debugger"
	"github.com/trebuchet-org/scide/internal/adapters/fs"
	"github.com/trebuchet-org/scide/internal/adapters/interactive"
	"github.com/trebuchet-org/scide/internal/adapters/registry"
	"github.com/trebuchet-org/scide/internal/adapters/sdk"
	"github.com/trebuchet-org/scide/internal/bridge"
	"github.com/trebuchet-org/scide/internal/config"
	"github.com/trebuchet-org/scide/internal/events"
	"github.com/trebuchet-org/scide/internal/logging"
	"github.com/trebuchet-org/scide/internal/usecase"
)

// Injectors from wire.go:

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, error) {
	runtimeConfig, err := config.Provider(v)
	if err != nil {
		return nil, err
	}
	logger := logging.NewLogger(runtimeConfig)
	workspaceScannerAdapter := fs.NewWorkspaceScannerAdapter(runtimeConfig)
	contractStore := registry.NewContractStore()
	syncContracts := usecase.NewSyncContracts(workspaceScannerAdapter, contractStore, runtimeConfig, logger, sink)
	getContract := usecase.NewGetContract(contractStore)
	selectorAdapter := interactive.NewSelectorAdapter(runtimeConfig)
	resolveContract := usecase.NewResolveContract(contractStore, selectorAdapter)
	listContracts := usecase.NewListContracts(contractStore)
	builderAdapter := sdk.NewBuilderAdapter(runtimeConfig, logger)
	buildContract := usecase.NewBuildContract(contractStore, builderAdapter, logger, sink)
	bus := events.NewBus()
	client := debugger.NewClient(runtimeConfig, bus, logger)
	deployContract := usecase.NewDeployContract(contractStore, workspaceScannerAdapter, client, runtimeConfig, logger)
	runContract := usecase.NewRunContract(contractStore, client, logger)
	manageDebugger := usecase.NewManageDebugger(client, sink)
	metadataScannerAdapter := fs.NewMetadataScannerAdapter(workspaceScannerAdapter, runtimeConfig, logger)
	listProjects := usecase.NewListProjects(metadataScannerAdapter)
	workspaceWriterAdapter := fs.NewWorkspaceWriterAdapter()
	initWorkspace := usecase.NewInitWorkspace(workspaceWriterAdapter, runtimeConfig, sink)
	surfaceProvider := adapters.ProvideSurfaceProvider(runtimeConfig, logger)
	surfaceFactory := adapters.ProvideSurfaceFactory(surfaceProvider)
	bridgeBridge := bridge.NewBridge(surfaceFactory, bus, syncContracts, buildContract, deployContract, runContract, manageDebugger, logger)
	appApp, err := NewApp(runtimeConfig, logger, syncContracts, getContract, resolveContract, listContracts, buildContract, deployContract, runContract, manageDebugger, listProjects, initWorkspace, bridgeBridge, surfaceProvider)
	if err != nil {
		return nil, err
	}
	return appApp, nil
}
