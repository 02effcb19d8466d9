// Package terminal renders assembled reports as formatted console text.
package terminal

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/customs-atlas/pkg/models/domain"
)

const columnWidth = 22

// Reporter writes reports to the console in a tabular text form.
type Reporter struct {
	writer io.Writer
}

// NewReporter creates a new console reporter.
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

func (c *Reporter) Render(_ context.Context, report *domain.Report) error {
	funcMap := template.FuncMap{
		"headerRow": func(cols []domain.Column) string {
			cells := make([]string, 0, len(cols))
			for _, col := range cols {
				cells = append(cells, fmt.Sprintf("%-*s", columnWidth, truncate(col.Name)))
			}
			return "| " + strings.Join(cells, " | ") + " |"
		},
		"formatRow": func(row []interface{}) string {
			cells := make([]string, 0, len(row))
			for _, v := range row {
				cells = append(cells, fmt.Sprintf("%-*s", columnWidth, truncate(formatValue(v))))
			}
			return "| " + strings.Join(cells, " | ") + " |"
		},
		"separator": func(n int) string {
			parts := make([]string, 0, n)
			for i := 0; i < n; i++ {
				parts = append(parts, strings.Repeat("-", columnWidth+2))
			}
			return "+" + strings.Join(parts, "+") + "+"
		},
	}

	tmpl := `
{{.Title}}
{{if .Subtitle}}{{.Subtitle}}
{{end}}
{{range .Cover.Metrics}}{{.Label}}: {{.Value}}{{if .Note}} ({{.Note}}){{end}}
{{end}}{{range .Sheets}}
=== {{.Title}} ===

{{separator (len .Table.Columns)}}
{{headerRow .Table.Columns}}
{{separator (len .Table.Columns)}}
{{range .Table.Rows}}{{formatRow .}}
{{end}}{{separator (len .Table.Columns)}}
{{range .Footnotes}}{{.}}
{{end}}{{end}}{{if .Cover.Footer}}
{{.Cover.Footer}}
{{end}}`

	t, err := template.New("report").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return t.Execute(c.writer, report)
}

func formatValue(v interface{}) string {
	switch n := v.(type) {
	case float64:
		return fmt.Sprintf("%.2f", n)
	case float32:
		return fmt.Sprintf("%.2f", n)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func truncate(s string) string {
	if len(s) <= columnWidth {
		return s
	}
	return s[:columnWidth-3] + "..."
}
