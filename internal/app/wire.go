//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/scide/internal/adapters"
	"github.com/trebuchet-org/scide/internal/bridge"
	"github.com/trebuchet-org/scide/internal/config"
	"github.com/trebuchet-org/scide/internal/logging"
	"github.com/trebuchet-org/scide/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewSyncContracts,
		usecase.NewGetContract,
		usecase.NewResolveContract,
		usecase.NewListContracts,
		usecase.NewBuildContract,
		usecase.NewDeployContract,
		usecase.NewRunContract,
		usecase.NewManageDebugger,
		usecase.NewListProjects,
		usecase.NewInitWorkspace,

		// Bridge
		bridge.NewBridge,

		// App
		NewApp,
	)
	return nil, nil
}
