package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/scide/internal/cli/render"
)

// NewContractsCmd creates the contracts command
func NewContractsCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "contracts",
		Aliases: []string{"ls", "list"},
		Short:   "List the contracts of the workspace",
		Long: `Scan the workspace for contract sources and list them with their build
state, deployment address and latest run.`,
		Example: `  # List contracts as a table
  scide contracts

  # Machine readable output
  scide contracts --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := render.ValidateFormat(output); err != nil {
				return err
			}

			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			if err := syncWorkspace(cmd, app); err != nil {
				return err
			}

			result := app.ListContracts.Run(cmd.Context())
			renderer := render.NewContractsRenderer(cmd.OutOrStdout(), app.Config.ProjectRoot, output)
			return renderer.Render(result)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", render.FormatTable, "Output format (table, json, yaml)")

	return cmd
}

// NewShowCmd creates the show command
func NewShowCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show [contract]",
		Short: "Show one contract in detail",
		Example: `  scide show adder
  scide show adder -o yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := render.ValidateFormat(output); err != nil {
				return err
			}

			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			if err := syncWorkspace(cmd, app); err != nil {
				return err
			}

			contract, err := app.ResolveContract.Run(cmd.Context(), argOrEmpty(args), "Select a contract", nil)
			if err != nil {
				return err
			}

			renderer := render.NewContractRenderer(cmd.OutOrStdout(), app.Config.ProjectRoot, output)
			return renderer.Render(contract)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", render.FormatTable, "Output format (table, json, yaml)")

	return cmd
}

func argOrEmpty(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
