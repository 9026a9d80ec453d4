package render

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/trebuchet-org/scide/internal/domain"
	"github.com/trebuchet-org/scide/internal/usecase"
)

// Color styles for table format
var (
	idStyle         = color.New(color.FgCyan, color.Bold)
	builtStyle      = color.New(color.FgGreen)
	notBuiltStyle   = color.New(color.FgRed)
	addressStyle    = color.New(color.FgWhite)
	pendingStyle    = color.New(color.FgYellow)
	pathStyle       = color.New(color.Faint)
	summaryStyle    = color.New(color.Bold, color.FgHiWhite)
	runFailedStyle  = color.New(color.FgRed)
	runSucceedStyle = color.New(color.FgGreen)
)

// contractView is the structured form of a contract for json/yaml output
type contractView struct {
	ID           string      `json:"id" yaml:"id"`
	SourcePath   string      `json:"sourcePath" yaml:"sourcePath"`
	BytecodePath string      `json:"bytecodePath,omitempty" yaml:"bytecodePath,omitempty"`
	Built        bool        `json:"built" yaml:"built"`
	Address      string      `json:"address,omitempty" yaml:"address,omitempty"`
	LatestRun    *domain.Run `json:"latestRun,omitempty" yaml:"latestRun,omitempty"`
}

// ContractsRenderer renders the contract registry
type ContractsRenderer struct {
	out    io.Writer
	root   string
	format string
}

// NewContractsRenderer creates a new contracts renderer. Paths in the table are
// shown relative to root.
func NewContractsRenderer(out io.Writer, root string, format string) *ContractsRenderer {
	return &ContractsRenderer{
		out:    out,
		root:   root,
		format: format,
	}
}

// Render renders the contract list
func (r *ContractsRenderer) Render(result *usecase.ContractListResult) error {
	if r.format != FormatTable && r.format != "" {
		views := make([]contractView, len(result.Contracts))
		for i, c := range result.Contracts {
			views[i] = contractView{
				ID:           c.ID,
				SourcePath:   c.SourcePath,
				BytecodePath: c.BytecodePath,
				Built:        c.IsBuilt(),
				Address:      c.Address,
				LatestRun:    c.LatestRun,
			}
		}
		return writeStructured(r.out, r.format, views)
	}

	if len(result.Contracts) == 0 {
		fmt.Fprintln(r.out, "No contracts found")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateHeader = true
	t.Style().Box.PaddingRight = "   "
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft},
		{Number: 3, Align: text.AlignLeft},
		{Number: 4, Align: text.AlignLeft, WidthMax: 60},
	})

	t.AppendHeader(table.Row{"CONTRACT", "BUILD", "ADDRESS", "LATEST RUN"})
	for _, c := range result.Contracts {
		t.AppendRow(table.Row{
			idStyle.Sprint(c.ID) + "\n" + pathStyle.Sprint(r.relative(c.SourcePath)),
			buildCell(c),
			addressCell(c),
			runCell(c.LatestRun),
		})
	}
	t.Render()

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, summaryStyle.Sprintf("%d contracts, %d built, %d deployed",
		result.Summary.Total, result.Summary.Built, result.Summary.Deployed))
	return nil
}

func (r *ContractsRenderer) relative(path string) string {
	if r.root == "" {
		return path
	}
	if rel, err := filepath.Rel(r.root, path); err == nil {
		return rel
	}
	return path
}

func buildCell(c *domain.Contract) string {
	if c.IsBuilt() {
		return builtStyle.Sprint("✓ built")
	}
	return notBuiltStyle.Sprint("✗ not built")
}

func addressCell(c *domain.Contract) string {
	if c.IsDeployed() {
		return addressStyle.Sprint(c.Address)
	}
	return pendingStyle.Sprint("not deployed")
}

// runCell summarizes the latest run; the default run that never executed is blank
func runCell(run *domain.Run) string {
	if run == nil || (run.Err == "" && run.Output.IsEmpty()) {
		return ""
	}
	if run.Err != "" {
		return runFailedStyle.Sprintf("%s: %s", run.Options.FunctionName, run.Err)
	}
	data, err := json.Marshal(run.Output)
	if err != nil {
		return run.Options.FunctionName
	}
	return runSucceedStyle.Sprint(run.Options.FunctionName) + " → " + string(data)
}
