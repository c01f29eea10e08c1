package report

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/canadavotes/canadavotes/internal/colorscale"
	"github.com/canadavotes/canadavotes/internal/view"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestTable_BasicRender(t *testing.T) {
	tbl := NewTable(
		Column{Header: "Name"},
		Column{Header: "Count", Align: AlignRight},
	)
	tbl.AddRow("alpha", "10")
	tbl.AddRow("bravo-long", "5")

	var buf bytes.Buffer
	require.NoError(t, tbl.Render(&buf))

	lines := splitLines(buf.String())
	require.Len(t, lines, 4)
	assert.Equal(t, "  Name        Count", lines[0])
	assert.Equal(t, "  ----------  -----", lines[1])
	assert.Equal(t, "  alpha          10", lines[2])
	assert.Equal(t, "  bravo-long      5", lines[3])
}

func TestTable_WideRunes(t *testing.T) {
	tbl := NewTable(Column{Header: "Party"}, Column{Header: "Total", Align: AlignRight})
	tbl.AddRow("Bloc Québécois", "7")
	tbl.AddRow("Liberal", "12")

	var buf bytes.Buffer
	require.NoError(t, tbl.Render(&buf))
	lines := splitLines(buf.String())
	assert.Equal(t, "  Bloc Québécois      7", lines[2])
	assert.Equal(t, "  Liberal            12", lines[3])
}

func TestTable_MissingAndExtraValues(t *testing.T) {
	tbl := NewTable(Column{Header: "A"}, Column{Header: "B"})
	tbl.AddRow("only-one")
	tbl.AddRow("x", "y", "extra-ignored")

	var buf bytes.Buffer
	require.NoError(t, tbl.Render(&buf))
	assert.Contains(t, buf.String(), "only-one")
	assert.NotContains(t, buf.String(), "extra-ignored")
}

func TestTable_NoColumns(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTable().Render(&buf))
	assert.Empty(t, buf.String())
}

func TestFromView(t *testing.T) {
	vt := view.Table{
		Title: "Don Valley North",
		Columns: []view.Column{
			{Header: "Candidate"}, {Header: "Party"}, {Header: "Total", Numeric: true},
		},
		Rows: [][]string{
			{"Han Dong", "Liberal", "18500"},
			{"Sabrina Zuniga", "Conservative", "950"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, FromView(vt, language.English, nil).Render(&buf))
	lines := splitLines(buf.String())
	require.Len(t, lines, 5)
	assert.Equal(t, "Don Valley North", lines[0])
	assert.True(t, strings.HasSuffix(lines[3], "18,500"), lines[3])
	assert.True(t, strings.HasSuffix(lines[4], "   950"), lines[4])
}

func TestFromView_French(t *testing.T) {
	vt := view.Table{
		Columns: []view.Column{{Header: "Total", Numeric: true}},
		Rows:    [][]string{{"18500"}},
	}
	var buf bytes.Buffer
	require.NoError(t, FromView(vt, language.French, nil).Render(&buf))
	assert.NotContains(t, buf.String(), "18,500")
}

func TestPartyColor_PlainWithoutColor(t *testing.T) {
	withColor(t, false)
	f := PartyColor(colorscale.DefaultPalette())
	assert.Equal(t, "Liberal", f("Liberal"))
	assert.Equal(t, "Independent", f("Independent"))
}

func TestSwatch_PlainWithoutColor(t *testing.T) {
	withColor(t, false)
	assert.Equal(t, "  ", Swatch("#ff0000"))
	assert.Equal(t, "  ", Swatch("nonsense"))
}

func splitLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
