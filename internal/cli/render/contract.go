package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/trebuchet-org/scide/internal/domain"
)

// ContractRenderer renders a single contract in detail
type ContractRenderer struct {
	out    io.Writer
	root   string
	format string
}

// NewContractRenderer creates a new contract renderer
func NewContractRenderer(out io.Writer, root string, format string) *ContractRenderer {
	return &ContractRenderer{
		out:    out,
		root:   root,
		format: format,
	}
}

// Render renders the contract
func (r *ContractRenderer) Render(contract *domain.Contract) error {
	if r.format != FormatTable && r.format != "" {
		return writeStructured(r.out, r.format, contract)
	}

	fmt.Fprintln(r.out, idStyle.Sprint(contract.ID))

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateRows = false
	t.Style().Options.SeparateHeader = false

	paths := &ContractsRenderer{root: r.root}
	t.AppendRow(table.Row{"Source", paths.relative(contract.SourcePath)})
	if contract.IsBuilt() {
		t.AppendRow(table.Row{"Bytecode", paths.relative(contract.BytecodePath)})
	} else {
		t.AppendRow(table.Row{"Bytecode", notBuiltStyle.Sprint("not built")})
	}
	t.AppendRow(table.Row{"Address", addressCell(contract)})

	if run := contract.LatestRun; run != nil {
		t.AppendSeparator()
		t.AppendRow(table.Row{"Function", run.Options.FunctionName})
		if len(run.Options.FunctionArgs) > 0 {
			t.AppendRow(table.Row{"Arguments", strings.Join(run.Options.FunctionArgs, ", ")})
		}
		t.AppendRow(table.Row{"Value", run.Options.Value})
		t.AppendRow(table.Row{"Gas", fmt.Sprintf("%d @ %d", run.Options.GasLimit, run.Options.GasPrice)})
		if run.Err != "" {
			t.AppendRow(table.Row{"Error", runFailedStyle.Sprint(run.Err)})
		}
		t.AppendRow(table.Row{"Output", formatOutput(run.Output)})
	}

	t.Render()
	return nil
}

// formatOutput pretty prints a VM output, "{}" when empty
func formatOutput(output domain.VMOutput) string {
	if output.IsEmpty() {
		return "{}"
	}
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", map[string]any(output))
	}
	return string(data)
}
