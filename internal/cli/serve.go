package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/scide/internal/app"
)

// shutdownTimeout bounds the cleanup after serve is asked to stop
const shutdownTimeout = 10 * time.Second

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	var startDebugger bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Open the contracts panel",
		Long: `Open the contracts panel and keep it in sync with the workspace and the
debugger. The panel is served to the browser by default, or drawn in the
terminal with --tui. Runs until interrupted or the terminal panel quits.`,
		Example: `  # Serve the panel on the default address
  scide serve

  # Terminal panel, debugger started up front
  scide serve --tui --start-debugger`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServe(ctx, a, startDebugger)
		},
	}

	cmd.Flags().String("addr", "", "Address the browser panel listens on")
	cmd.Flags().Bool("tui", false, "Draw the panel in the terminal instead of the browser")
	cmd.Flags().BoolVar(&startDebugger, "start-debugger", false, "Start the debugger server before opening the panel")

	return cmd
}

func runServe(ctx context.Context, a *app.App, startDebugger bool) error {
	log := a.Log.With("component", "serve")

	if startDebugger {
		if _, err := a.ManageDebugger.Start(ctx); err != nil {
			return err
		}
	}

	if err := a.Bridge.Show(ctx); err != nil {
		return fmt.Errorf("failed to open panel: %w", err)
	}

	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case <-a.Surfaces.Done():
		log.Info("panel closed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	_, stopErr := a.ManageDebugger.Stop(shutdownCtx, nil)
	closeErr := a.Surfaces.Close(shutdownCtx)
	a.Bridge.Close()

	return errors.Join(stopErr, closeErr)
}
