package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/scide/internal/adapters/progress"
	"github.com/trebuchet-org/scide/internal/app"
	"github.com/trebuchet-org/scide/internal/config"
	"github.com/trebuchet-org/scide/internal/usecase"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "scide",
		Short: "Smart contract workspace companion",
		Long: `scide tracks the smart contracts of an SDK workspace, builds them, and
deploys and runs them against a local REST VM debugger.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			projectRoot, err := resolveProjectRoot(cmd)
			if err != nil {
				return err
			}

			v := config.SetupViper(projectRoot, cmd)

			appInstance, err := app.InitApp(v, newProgressSink(cmd))
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			// Store app in context
			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			// serve runs until interrupted, everything else is bounded
			if appInstance.Config.Timeout > 0 && cmd.Name() != "serve" {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				cmd.PostRun = func(cmd *cobra.Command, args []string) {
					cancel()
				}
			}

			cmd.SetContext(ctx)

			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().String("root", "", "Workspace root (defaults to the nearest scide.toml or elrond.workspace.json)")
	rootCmd.PersistentFlags().String("debugger-url", "", "Base URL of the REST debugger")
	rootCmd.PersistentFlags().String("sender", "", "Account that deploys contracts")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	// Main commands
	for _, c := range []*cobra.Command{
		NewContractsCmd(),
		NewShowCmd(),
		NewBuildCmd(),
		NewDeployCmd(),
		NewRunCmd(),
		NewServeCmd(),
	} {
		c.GroupID = "main"
		rootCmd.AddCommand(c)
	}

	// Management commands
	for _, c := range []*cobra.Command{
		NewProjectsCmd(),
		NewInitCmd(),
	} {
		c.GroupID = "management"
		rootCmd.AddCommand(c)
	}

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// resolveProjectRoot honours --root, then searches upwards. init may run
// outside a workspace and then sets one up in the current directory.
func resolveProjectRoot(cmd *cobra.Command) (string, error) {
	if f := cmd.Flag("root"); f != nil && f.Changed {
		return f.Value.String(), nil
	}

	projectRoot, err := config.FindProjectRoot()
	if err == nil {
		return projectRoot, nil
	}
	if cmd.Name() != "init" {
		return "", err
	}
	return os.Getwd()
}

// newProgressSink picks a spinner for interactive commands and stays quiet
// otherwise
func newProgressSink(cmd *cobra.Command) usecase.ProgressSink {
	if cmd.Name() == "serve" {
		return progress.NewNopSink()
	}
	if f := cmd.Flag("non-interactive"); f != nil && f.Value.String() == "true" {
		return progress.NewNopSink()
	}
	if f := cmd.Flag("output"); f != nil && f.Value.String() != "table" {
		return progress.NewNopSink()
	}
	return progress.NewSpinnerSink()
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}

// syncWorkspace reconciles the registry before a command looks at it
func syncWorkspace(cmd *cobra.Command, a *app.App) error {
	if _, err := a.SyncContracts.Run(cmd.Context()); err != nil {
		return err
	}
	return nil
}
