package render

import (
	"fmt"
	"io"

	"github.com/trebuchet-org/scide/internal/domain"
)

// RunRenderer renders the outcome of a function call
type RunRenderer struct {
	out    io.Writer
	format string
}

// NewRunRenderer creates a new run renderer
func NewRunRenderer(out io.Writer, format string) *RunRenderer {
	return &RunRenderer{out: out, format: format}
}

// Render renders the run. A failed call is shown as a warning next to its
// empty output, not as an error.
func (r *RunRenderer) Render(run *domain.Run) error {
	if r.format != FormatTable && r.format != "" {
		return writeStructured(r.out, r.format, run)
	}

	if run.Err != "" {
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("%s failed: %s", run.Options.FunctionName, run.Err)))
	} else {
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("%s called on %s", run.Options.FunctionName, run.Options.ContractAddress)))
	}
	fmt.Fprintln(r.out, formatOutput(run.Output))
	return nil
}
