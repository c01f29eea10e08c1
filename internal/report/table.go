// Package report renders riding results as aligned terminal tables.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/canadavotes/canadavotes/internal/view"
)

// Alignment controls how a column's content is justified.
type Alignment int

const (
	// AlignLeft pads on the right (default).
	AlignLeft Alignment = iota
	// AlignRight pads on the left.
	AlignRight
)

// ColorFunc maps a cell value to a coloured string. If nil, no colour is applied.
type ColorFunc func(value string) string

// Column describes a single table column.
type Column struct {
	Header string
	Align  Alignment
	Color  ColorFunc
}

// Table renders aligned text tables to an io.Writer. Widths are measured in
// terminal cells, so accented party names line up.
type Table struct {
	title   string
	columns []Column
	rows    [][]string
}

// NewTable creates a table with the given column definitions.
func NewTable(columns ...Column) *Table {
	return &Table{columns: columns}
}

// SetTitle sets a bold line printed above the header.
func (t *Table) SetTitle(title string) {
	t.title = title
}

// AddRow appends a row. Values beyond the column count are ignored; missing
// values are empty.
func (t *Table) AddRow(values ...string) {
	row := make([]string, len(t.columns))
	copy(row, values)
	t.rows = append(t.rows, row)
}

// FromView builds a table for a riding's results. Numeric columns are right
// aligned and grouped with thousands separators for the given language.
func FromView(vt view.Table, lang language.Tag, partyColor ColorFunc) *Table {
	p := message.NewPrinter(lang)
	cols := make([]Column, len(vt.Columns))
	for i, c := range vt.Columns {
		cols[i] = Column{Header: c.Header}
		if c.Numeric {
			cols[i].Align = AlignRight
		}
		if c.Header == "Party" {
			cols[i].Color = partyColor
		}
	}
	t := NewTable(cols...)
	t.SetTitle(vt.Title)
	for _, row := range vt.Rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = cell
			if i < len(vt.Columns) && vt.Columns[i].Numeric {
				if n, err := strconv.Atoi(cell); err == nil {
					cells[i] = p.Sprintf("%d", n)
				}
			}
		}
		t.AddRow(cells...)
	}
	return t
}

// Render writes the table to w with computed column widths.
func (t *Table) Render(w io.Writer) error {
	if len(t.columns) == 0 {
		return nil
	}

	widths := make([]int, len(t.columns))
	for i, col := range t.columns {
		widths[i] = runewidth.StringWidth(col.Header)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if n := runewidth.StringWidth(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}

	if t.title != "" {
		if _, err := fmt.Fprintf(w, "%s\n", color.New(color.Bold).Sprint(t.title)); err != nil {
			return fmt.Errorf("render table: %w", err)
		}
	}

	bold := color.New(color.Bold)
	header := make([]string, len(t.columns))
	for i, col := range t.columns {
		header[i] = bold.Sprint(pad(col.Header, widths[i], col.Align))
	}
	if err := writeLine(w, header); err != nil {
		return err
	}

	sep := make([]string, len(t.columns))
	for i, width := range widths {
		sep[i] = strings.Repeat("-", width)
	}
	if err := writeLine(w, sep); err != nil {
		return err
	}

	for _, row := range t.rows {
		parts := make([]string, len(t.columns))
		for i, col := range t.columns {
			// Padding is based on the raw value, not the ANSI-coloured one.
			padded := pad(row[i], widths[i], col.Align)
			if col.Color != nil && row[i] != "" {
				padded = strings.Replace(padded, row[i], col.Color(row[i]), 1)
			}
			parts[i] = padded
		}
		if err := writeLine(w, parts); err != nil {
			return err
		}
	}
	return nil
}

func pad(s string, width int, align Alignment) string {
	gap := width - runewidth.StringWidth(s)
	if gap < 0 {
		gap = 0
	}
	if align == AlignRight {
		return strings.Repeat(" ", gap) + s
	}
	return s + strings.Repeat(" ", gap)
}

func writeLine(w io.Writer, parts []string) error {
	line := strings.TrimRight("  "+strings.Join(parts, "  "), " ")
	if _, err := fmt.Fprintln(w, line); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	return nil
}
