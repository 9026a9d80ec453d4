package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/scide/internal/cli/render"
)

// NewBuildCmd creates the build command
func NewBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [contract]",
		Short: "Build a contract with the SDK",
		Long: `Build a contract with the configured SDK command. Without an argument the
contract is picked interactively.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			if err := syncWorkspace(cmd, app); err != nil {
				return err
			}

			contract, err := app.ResolveContract.Run(cmd.Context(), argOrEmpty(args), "Build which contract?", nil)
			if err != nil {
				return err
			}

			if _, err := app.BuildContract.Run(cmd.Context(), contract.ID); err != nil {
				return err
			}

			// Pick up the fresh artifact
			if err := syncWorkspace(cmd, app); err != nil {
				return err
			}
			built, err := app.GetContract.Run(cmd.Context(), contract.ID)
			if err != nil {
				return err
			}
			if !built.IsBuilt() {
				fmt.Fprintln(cmd.OutOrStdout(), render.FormatWarning(fmt.Sprintf("Build finished but no %s artifact was found for %s", app.Config.ArtifactExtension, built.ID)))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), render.FormatSuccess(fmt.Sprintf("%s built: %s", built.ID, built.BytecodePath)))
			return nil
		},
	}

	return cmd
}
