package view

import (
	"strconv"

	"github.com/canadavotes/canadavotes/internal/colorscale"
	"github.com/canadavotes/canadavotes/internal/election"
	"github.com/canadavotes/canadavotes/internal/tally"
)

// Column is one table header.
type Column struct {
	Header  string `json:"header"`
	Numeric bool   `json:"numeric,omitempty"`
}

// Table is a riding's results as plain rows.
type Table struct {
	RidingID string     `json:"riding_id"`
	Title    string     `json:"title"`
	Columns  []Column   `json:"columns"`
	Rows     [][]string `json:"rows"`
}

// TableFor maps a riding summary to table rows. Special votes are a column
// only in federal modes.
func TableFor(s tally.RidingSummary, mode election.Mode) Table {
	cols := []Column{
		{Header: "Candidate"},
		{Header: "Party"},
		{Header: "Election Day", Numeric: true},
		{Header: "Advance Poll", Numeric: true},
	}
	if !mode.Ontario {
		cols = append(cols, Column{Header: "Special Votes", Numeric: true})
	}
	cols = append(cols, Column{Header: "Total", Numeric: true})

	rows := make([][]string, 0, len(s.Rows))
	for _, r := range s.Rows {
		row := []string{
			r.Candidate,
			colorscale.TrimParty(r.Party),
			strconv.Itoa(r.Eday),
			strconv.Itoa(r.Advance),
		}
		if !mode.Ontario {
			row = append(row, strconv.Itoa(r.Special))
		}
		row = append(row, strconv.Itoa(r.Total))
		rows = append(rows, row)
	}
	return Table{RidingID: s.ID, Title: s.Name, Columns: cols, Rows: rows}
}
