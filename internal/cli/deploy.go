package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/scide/internal/cli/render"
	"github.com/trebuchet-org/scide/internal/domain"
	"github.com/trebuchet-org/scide/internal/usecase"
)

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy [contract]",
		Short: "Deploy a built contract to the debugger",
		Long: `Deploy the bytecode of a built contract to the running REST debugger and
print the address it was given.`,
		Example: `  scide deploy adder
  scide deploy adder --sender erd1...`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			if err := syncWorkspace(cmd, app); err != nil {
				return err
			}

			contract, err := app.ResolveContract.Run(cmd.Context(), argOrEmpty(args), "Deploy which contract?", (*domain.Contract).IsBuilt)
			if err != nil {
				return err
			}

			deployed, err := app.DeployContract.Run(cmd.Context(), usecase.DeployContractParams{ID: contract.ID})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), render.FormatSuccess(fmt.Sprintf("%s deployed at %s", deployed.ID, deployed.Address)))
			return nil
		},
	}

	return cmd
}
