package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/canadavotes/canadavotes/internal/view"
)

func init() {
	RegisterFormatter(NewMarkdownFormatter())
}

// MarkdownFormatter writes riding tables as GitHub-flavoured Markdown.
type MarkdownFormatter struct{}

// Compile-time interface check.
var _ Formatter = (*MarkdownFormatter)(nil)

// NewMarkdownFormatter returns a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Name returns the format name.
func (m *MarkdownFormatter) Name() string {
	return "markdown"
}

// Extension returns the file extension.
func (m *MarkdownFormatter) Extension() string {
	return ".md"
}

// Format writes a title, the legend and one table per riding.
func (m *MarkdownFormatter) Format(r *view.Rendering, w io.Writer) error {
	if err := nilRendering(r); err != nil {
		return err
	}
	v := r.View

	var b strings.Builder
	fmt.Fprintf(&b, "# Election %d: %s\n\n", v.Year, v.City)
	fmt.Fprintf(&b, "%s. Parties: %s.\n\n", v.Mode.Description(), partiesLabel(v))

	b.WriteString("## Legend\n\n| Colour | Value |\n|---|---|\n")
	for _, e := range r.Legend {
		if e.Label == "" {
			continue
		}
		fmt.Fprintf(&b, "| `%s` | %s |\n", e.Color, escapeCell(e.Label))
	}

	for _, l := range r.Ridings {
		writeMarkdownTable(&b, l.Table)
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

func writeMarkdownTable(b *strings.Builder, t view.Table) {
	fmt.Fprintf(b, "\n## %s\n\n", escapeCell(t.Title))
	headers := make([]string, len(t.Columns))
	aligns := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		headers[i] = c.Header
		aligns[i] = "---"
		if c.Numeric {
			aligns[i] = "---:"
		}
	}
	fmt.Fprintf(b, "| %s |\n|%s|\n", strings.Join(headers, " | "), strings.Join(aligns, "|"))
	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = escapeCell(c)
		}
		fmt.Fprintf(b, "| %s |\n", strings.Join(cells, " | "))
	}
}

// escapeCell escapes characters that break a Markdown table cell.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
