package output

import (
	"fmt"
	"io"

	"golang.org/x/text/language"

	"github.com/canadavotes/canadavotes/internal/colorscale"
	"github.com/canadavotes/canadavotes/internal/report"
	"github.com/canadavotes/canadavotes/internal/view"
)

func init() {
	RegisterFormatter(NewTextFormatter())
}

// TextFormatter writes the legend and riding tables for a terminal.
type TextFormatter struct {
	// Lang selects digit grouping. Defaults to English.
	Lang language.Tag
	// Palette colours party names. Defaults to the built-in palette.
	Palette *colorscale.Palette
}

// Compile-time interface check.
var _ Formatter = (*TextFormatter)(nil)

// NewTextFormatter returns a new TextFormatter.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{Lang: language.English}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format writes a heading, the legend and one table per riding.
func (f *TextFormatter) Format(r *view.Rendering, w io.Writer) error {
	if err := nilRendering(r); err != nil {
		return err
	}
	p := f.Palette
	if p == nil {
		p = colorscale.DefaultPalette()
	}
	v := r.View

	if _, err := fmt.Fprintf(w, "%s\n%s\n", report.SectionTitle(fmt.Sprintf("Election %d: %s", v.Year, v.City)), v.Mode.Description()); err != nil {
		return fmt.Errorf("write text: %w", err)
	}
	if _, err := fmt.Fprintf(w, "Parties: %s\n", partiesLabel(v)); err != nil {
		return fmt.Errorf("write text: %w", err)
	}
	if r.Bounds.EmptyPolls > 0 {
		if _, err := fmt.Fprintf(w, "Polls without votes: %d of %d\n", r.Bounds.EmptyPolls, r.Bounds.Polls); err != nil {
			return fmt.Errorf("write text: %w", err)
		}
	}

	if _, err := fmt.Fprintf(w, "\n%s\n", report.SectionTitle("Legend")); err != nil {
		return fmt.Errorf("write text: %w", err)
	}
	for _, e := range r.Legend {
		if _, err := fmt.Fprintf(w, "  %s %s %s\n", report.Swatch(e.Color), e.Color, e.Label); err != nil {
			return fmt.Errorf("write text: %w", err)
		}
	}

	for _, l := range r.Ridings {
		if _, err := fmt.Fprintln(w); err != nil {
			return fmt.Errorf("write text: %w", err)
		}
		if err := report.FromView(l.Table, f.Lang, report.PartyColor(p)).Render(w); err != nil {
			return err
		}
	}
	return nil
}

// partiesLabel describes the party selection.
func partiesLabel(v view.View) string {
	if v.OneParty() {
		return v.Parties[0]
	}
	return fmt.Sprintf("%s vs %s", v.Parties[0], v.Parties[1])
}
