package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/scide/internal/cli/render"
)

// NewProjectsCmd creates the projects command
func NewProjectsCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List the SDK projects of the workspace",
		Long: `List every SDK project of the workspace, found through its elrond.json
descriptor. Descriptors that cannot be read are skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := render.ValidateFormat(output); err != nil {
				return err
			}

			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListProjects.Run(cmd.Context())
			if err != nil {
				return err
			}

			return render.NewProjectsRenderer(cmd.OutOrStdout(), output).Render(result)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", render.FormatTable, "Output format (table, json, yaml)")

	return cmd
}
