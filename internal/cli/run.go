package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/scide/internal/cli/render"
	"github.com/trebuchet-org/scide/internal/domain"
	"github.com/trebuchet-org/scide/internal/usecase"
)

// runFlags holds the function call options of the run command
type runFlags struct {
	function string
	args     []string
	value    string
	gasLimit uint64
	gasPrice uint64
	output   string
}

// NewRunCmd creates the run command
func NewRunCmd() *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run [contract]",
		Short: "Call a function of a deployed contract",
		Long: `Call a function of a deployed contract on the debugger. A failed call is
recorded as the contract's latest run with an empty output.`,
		Example: `  # Call the default function
  scide run adder

  # Call add(7) with a higher gas limit
  scide run adder -f add --arg 7 --gas-limit 100000`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := render.ValidateFormat(flags.output); err != nil {
				return err
			}

			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			if err := syncWorkspace(cmd, app); err != nil {
				return err
			}

			contract, err := app.ResolveContract.Run(cmd.Context(), argOrEmpty(args), "Run which contract?", (*domain.Contract).IsDeployed)
			if err != nil {
				return err
			}

			run, err := app.RunContract.Run(cmd.Context(), usecase.RunContractParams{
				ID: contract.ID,
				Options: domain.RunOptions{
					FunctionName: flags.function,
					FunctionArgs: flags.args,
					Value:        flags.value,
					GasLimit:     flags.gasLimit,
					GasPrice:     flags.gasPrice,
				},
			})
			if err != nil {
				return err
			}

			renderer := render.NewRunRenderer(cmd.OutOrStdout(), flags.output)
			return renderer.Render(run)
		},
	}

	cmd.Flags().StringVarP(&flags.function, "function", "f", "", fmt.Sprintf("Function to call (default %q)", domain.DefaultFunctionName))
	cmd.Flags().StringArrayVar(&flags.args, "arg", nil, "Function argument, repeatable")
	cmd.Flags().StringVar(&flags.value, "value", "", fmt.Sprintf("Value sent with the call (default %s)", domain.DefaultValue))
	cmd.Flags().Uint64Var(&flags.gasLimit, "gas-limit", 0, fmt.Sprintf("Gas limit (default %d)", domain.DefaultGasLimit))
	cmd.Flags().Uint64Var(&flags.gasPrice, "gas-price", 0, fmt.Sprintf("Gas price (default %d)", domain.DefaultGasPrice))
	cmd.Flags().StringVarP(&flags.output, "output", "o", render.FormatTable, "Output format (table, json, yaml)")

	return cmd
}
