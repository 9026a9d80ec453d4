package render

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/trebuchet-org/scide/internal/usecase"
)

// InitRenderer renders the result of workspace setup
type InitRenderer struct {
	out io.Writer
}

// NewInitRenderer creates a new init renderer
func NewInitRenderer(out io.Writer) *InitRenderer {
	return &InitRenderer{out: out}
}

// Render renders the init result
func (r *InitRenderer) Render(result *usecase.InitWorkspaceResult) error {
	if len(result.Created) == 0 {
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Workspace already set up in %s", result.Root)))
		return nil
	}

	for _, path := range result.Created {
		rel, err := filepath.Rel(result.Root, path)
		if err != nil {
			rel = path
		}
		fmt.Fprintf(r.out, "  %s %s\n", color.GreenString("created"), rel)
	}
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Workspace has been set up in %s", result.Root)))
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "Next steps:")
	fmt.Fprintln(r.out, "  scide contracts    list the contracts of the workspace")
	fmt.Fprintln(r.out, "  scide serve        open the contracts panel")
	return nil
}
