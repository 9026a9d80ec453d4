package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/trebuchet-org/scide/internal/usecase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ProjectsRenderer renders the SDK projects of the workspace
type ProjectsRenderer struct {
	out    io.Writer
	format string
	title  cases.Caser
}

// NewProjectsRenderer creates a new projects renderer
func NewProjectsRenderer(out io.Writer, format string) *ProjectsRenderer {
	return &ProjectsRenderer{
		out:    out,
		format: format,
		title:  cases.Title(language.English),
	}
}

// Render renders the project list
func (r *ProjectsRenderer) Render(result *usecase.ProjectListResult) error {
	if r.format != FormatTable && r.format != "" {
		return writeStructured(r.out, r.format, result.Projects)
	}

	if len(result.Projects) == 0 {
		fmt.Fprintln(r.out, "No projects found")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Box.PaddingRight = "   "

	t.AppendHeader(table.Row{"PROJECT", "LANGUAGE", "PATH"})
	for _, p := range result.Projects {
		lang := "-"
		if p.Language != "" {
			lang = r.title.String(p.Language)
		}
		t.AppendRow(table.Row{
			color.New(color.FgCyan, color.Bold).Sprint(p.ProjectName),
			lang,
			color.New(color.Faint).Sprint(p.ProjectPathInWorkspace),
		})
	}
	t.Render()

	if len(result.Languages) > 0 {
		languages := make([]string, len(result.Languages))
		for i, l := range result.Languages {
			languages[i] = r.title.String(l)
		}
		fmt.Fprintln(r.out)
		fmt.Fprintf(r.out, "Languages: %s\n", strings.Join(languages, ", "))
	}
	return nil
}
