package app

import (
	"log/slog"

	"github.com/trebuchet-org/scide/internal/adapters"
	"github.com/trebuchet-org/scide/internal/bridge"
	"github.com/trebuchet-org/scide/internal/domain/config"
	"github.com/trebuchet-org/scide/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Use cases
	SyncContracts   *usecase.SyncContracts
	GetContract     *usecase.GetContract
	ResolveContract *usecase.ResolveContract
	ListContracts   *usecase.ListContracts
	BuildContract   *usecase.BuildContract
	DeployContract  *usecase.DeployContract
	RunContract     *usecase.RunContract
	ManageDebugger  *usecase.ManageDebugger
	ListProjects    *usecase.ListProjects
	InitWorkspace   *usecase.InitWorkspace

	// Bridge and the surfaces it renders on
	Bridge   *bridge.Bridge
	Surfaces adapters.SurfaceProvider
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	syncContracts *usecase.SyncContracts,
	getContract *usecase.GetContract,
	resolveContract *usecase.ResolveContract,
	listContracts *usecase.ListContracts,
	buildContract *usecase.BuildContract,
	deployContract *usecase.DeployContract,
	runContract *usecase.RunContract,
	manageDebugger *usecase.ManageDebugger,
	listProjects *usecase.ListProjects,
	initWorkspace *usecase.InitWorkspace,
	bridge *bridge.Bridge,
	surfaces adapters.SurfaceProvider,
) (*App, error) {
	return &App{
		Config:          cfg,
		Log:             log,
		SyncContracts:   syncContracts,
		GetContract:     getContract,
		ResolveContract: resolveContract,
		ListContracts:   listContracts,
		BuildContract:   buildContract,
		DeployContract:  deployContract,
		RunContract:     runContract,
		ManageDebugger:  manageDebugger,
		ListProjects:    listProjects,
		InitWorkspace:   initWorkspace,
		Bridge:          bridge,
		Surfaces:        surfaces,
	}, nil
}
