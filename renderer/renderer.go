// Package renderer renders the views of a collection of sets as markdown.
//
// Each view is a struct of display ready values (see NewTable, NewDetail,
// NewImportSummary) executed against embedded templates.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed *.md
var templates embed.FS

// RenderTable renders the set list.
func RenderTable(t *Table) string {
	partials := map[string]string{
		"table_row": "table_row.md",
	}
	return renderTemplate("table", "table.md", partials, t)
}

// RenderDetail renders a single set with its metrics and links.
func RenderDetail(d *Detail) string {
	partials := map[string]string{
		"detail_metrics": "detail_metrics.md",
		"detail_ranks":   "detail_ranks.md",
	}
	return renderTemplate("detail", "detail.md", partials, d)
}

// RenderImportSummary renders the outcome of an import.
func RenderImportSummary(s *ImportSummary) string {
	return renderTemplate("importSummary", "import_summary.md", nil, s)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			var readErr error
			content, readErr = fs.ReadFile(templates, file)
			if readErr != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}

var funcs = template.FuncMap{
	"cell": cell,
}

// cell escapes s to fit in a markdown table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}
