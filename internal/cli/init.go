package cli

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/scide/internal/cli/render"
)

// NewInitCmd creates the init command
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Set up a scide workspace",
		Long: `Create the .scide data directory and the elrond.workspace.json file that
mark the workspace root. Existing files are left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd)
		},
	}

	return cmd
}

// runInit executes the init command
func runInit(cmd *cobra.Command) error {
	app, err := getApp(cmd)
	if err != nil {
		return err
	}

	if !app.Config.NonInteractive {
		prompt := promptui.Prompt{
			Label:     fmt.Sprintf("Set up a workspace in %s", app.Config.ProjectRoot),
			IsConfirm: true,
		}
		if _, err := prompt.Run(); err != nil {
			if errors.Is(err, promptui.ErrAbort) {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
			return err
		}
	}

	result, err := app.InitWorkspace.Run(cmd.Context())
	if err != nil {
		return err
	}

	renderer := render.NewInitRenderer(cmd.OutOrStdout())
	return renderer.Render(result)
}
