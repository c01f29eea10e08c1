package view

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canadavotes/canadavotes/internal/colorscale"
	"github.com/canadavotes/canadavotes/internal/election"
	et "github.com/canadavotes/canadavotes/internal/election/electiontest"
	"github.com/canadavotes/canadavotes/internal/interaction"
	"github.com/canadavotes/canadavotes/internal/tally"
)

func loadedView(t *testing.T, mode election.Mode, parties [2]string) View {
	t.Helper()
	v, fetch := Transition(New(mode), Selection{City: "north_toronto", Year: 2021, Parties: parties})
	require.True(t, fetch)
	v, ok := v.WithBundle(v.Generation, et.Bundle())
	require.True(t, ok)
	return v
}

func TestTransition_FetchOnFirstSelection(t *testing.T) {
	v, fetch := Transition(New(election.ModeEday), Selection{City: "north_toronto", Year: 2021, Parties: [2]string{et.Liberal}})
	assert.True(t, fetch)
	assert.Equal(t, uint64(1), v.Generation)
	assert.Nil(t, v.Bundle)
	assert.Equal(t, [2]string{et.Liberal, et.Liberal}, v.Parties)
	assert.True(t, v.OneParty())
}

func TestTransition_PartyChangeReusesBundle(t *testing.T) {
	v := loadedView(t, election.ModeEday, [2]string{et.Liberal, et.Conservative})
	next, fetch := Transition(v, Selection{City: "north_toronto", Year: 2021, Parties: [2]string{et.NDP, et.Liberal}})
	assert.False(t, fetch)
	assert.Same(t, v.Bundle, next.Bundle)
	assert.Equal(t, v.Generation, next.Generation)
	assert.Equal(t, [2]string{et.NDP, et.Liberal}, next.Parties)

	// the previous value is untouched
	assert.Equal(t, [2]string{et.Liberal, et.Conservative}, v.Parties)
}

func TestTransition_CityOrYearChangeFetches(t *testing.T) {
	v := loadedView(t, election.ModeEday, [2]string{et.Liberal, et.Conservative})

	next, fetch := Transition(v, Selection{City: "south_ottawa", Year: 2021, Parties: v.Parties})
	assert.True(t, fetch)
	assert.Nil(t, next.Bundle)
	assert.Equal(t, v.Generation+1, next.Generation)

	next, fetch = Transition(v, Selection{City: "north_toronto", Year: 2019, Parties: v.Parties})
	assert.True(t, fetch)
	assert.Equal(t, 2019, next.Year)
}

func TestWithBundle_RefusesOlderGeneration(t *testing.T) {
	v, _ := Transition(New(election.ModeEday), Selection{City: "a", Year: 2021, Parties: [2]string{et.Liberal}})
	v, _ = Transition(v, Selection{City: "b", Year: 2021, Parties: [2]string{et.Liberal}})
	require.Equal(t, uint64(2), v.Generation)

	_, ok := v.WithBundle(1, et.Bundle())
	assert.False(t, ok)

	got, ok := v.WithBundle(2, et.Bundle())
	assert.True(t, ok)
	assert.True(t, got.Loaded())
	assert.Equal(t, "b", got.Selection().City)
}

func TestRender_NoData(t *testing.T) {
	_, err := Render(New(election.ModeEday), nil)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestRender_NoParties(t *testing.T) {
	v := loadedView(t, election.ModeEday, [2]string{})
	_, err := Render(v, nil)
	assert.ErrorIs(t, err, ErrNoParties)
}

func TestRender_TwoParty(t *testing.T) {
	v := loadedView(t, election.ModeEday, [2]string{et.Liberal, et.Conservative})
	r, err := Render(v, colorscale.DefaultPalette())
	require.NoError(t, err)

	assert.InDelta(t, 0.5, r.Bounds.MaxShare[0], 1e-9)
	require.Len(t, r.Ridings, 2)
	assert.Equal(t, "35001", r.Ridings[0].ID)
	assert.Equal(t, "Don Valley North", r.Ridings[0].Name)
	assert.Len(t, r.Ridings[1].Polls, 3)
	assert.Len(t, r.Legend, 9)
	assert.Len(t, r.Boundaries, 2)
	assert.Len(t, r.Labels, 2)
	assert.Equal(t, Label{Text: "Willowdale", Lon: 3.5, Lat: 0.5}, r.Labels[1])

	// Liberal leads Conservative by exactly the maximum diff at 35001 poll 1
	p := r.Poll(interaction.PollRef{Riding: "35001", Index: 0})
	require.NotNil(t, p)
	assert.InDelta(t, 0.1, p.Value, 1e-9)
	assert.False(t, p.Empty)

	// Conservative's widest lead paints pure blue
	p = r.Poll(interaction.PollRef{Riding: "35002", Index: 0})
	assert.InDelta(t, -0.3, p.Value, 1e-9)
	assert.Equal(t, "#0000ff", p.Fill)

	assert.Equal(t, 0.0, r.Extent.Min(0))
	assert.Equal(t, 5.0, r.Extent.Max(0))
	assert.Equal(t, map[string]int{"35001": 2, "35002": 3}, r.PollCounts())
}

func TestRender_OnePartyPureColourAtMax(t *testing.T) {
	v := loadedView(t, election.ModeEday, [2]string{et.Conservative, et.Conservative})
	r, err := Render(v, nil)
	require.NoError(t, err)
	assert.True(t, r.Scale.IsOneParty())

	p := r.Poll(interaction.PollRef{Riding: "35002", Index: 0})
	assert.InDelta(t, 0.6, p.Value, 1e-9)
	assert.Equal(t, "#0000ff", p.Fill)
}

func TestRender_EmptyPoll(t *testing.T) {
	b := et.Bundle()
	ds := b.Riding("35001")
	ds.Votes.Features = append(ds.Votes.Features,
		et.Poll("Don Valley North", "3", et.Square(0, 1, 1), election.VoteCount{}, nil))
	v, _ := Transition(New(election.ModeEday), Selection{City: "x", Year: 2021, Parties: [2]string{et.Liberal, et.Conservative}})
	v, _ = v.WithBundle(v.Generation, b)

	r, err := Render(v, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Bounds.EmptyPolls)
	p := r.Poll(interaction.PollRef{Riding: "35001", Index: 2})
	require.NotNil(t, p)
	assert.True(t, p.Empty)
	assert.Equal(t, "#ffffff", p.Fill)
}

func TestRendering_Locate(t *testing.T) {
	r, err := Render(loadedView(t, election.ModeEday, [2]string{et.Liberal, et.Conservative}), nil)
	require.NoError(t, err)

	ref, ok := r.Locate(3.5, 0.5)
	require.True(t, ok)
	assert.Equal(t, interaction.PollRef{Riding: "35002", Index: 1}, ref)

	_, ok = r.Locate(10, 10)
	assert.False(t, ok)
}

func TestRendering_Extents(t *testing.T) {
	r, err := Render(loadedView(t, election.ModeEday, [2]string{et.Liberal, et.Conservative}), nil)
	require.NoError(t, err)

	b := r.PollExtent(interaction.PollRef{Riding: "35001", Index: 1})
	require.NotNil(t, b)
	assert.Equal(t, 1.0, b.Min(0))
	assert.Equal(t, 2.0, b.Max(0))

	b = r.RidingExtent("Willowdale")
	require.NotNil(t, b)
	assert.Equal(t, 2.0, b.Min(0))
	assert.Equal(t, 5.0, b.Max(0))

	assert.Nil(t, r.RidingExtent("Nowhere"))
	assert.Nil(t, r.PollExtent(interaction.PollRef{Riding: "35001", Index: 9}))
}

func TestTableFor_Federal(t *testing.T) {
	s := tally.RidingSummary{ID: "35001", Name: "Don Valley North", Rows: []tally.RidingVoteSummary{
		{Candidate: "Han Dong", Party: et.Liberal, Eday: 150, Advance: 30, Special: 5, Total: 185},
		{Candidate: "Jo Smith", Party: "Independent (Jo Smith)", Eday: 3, Total: 3},
	}}
	got := TableFor(s, election.ModeEday)

	want := Table{
		RidingID: "35001",
		Title:    "Don Valley North",
		Columns: []Column{
			{Header: "Candidate"}, {Header: "Party"},
			{Header: "Election Day", Numeric: true}, {Header: "Advance Poll", Numeric: true},
			{Header: "Special Votes", Numeric: true}, {Header: "Total", Numeric: true},
		},
		Rows: [][]string{
			{"Han Dong", et.Liberal, "150", "30", "5", "185"},
			{"Jo Smith", "Independent", "3", "0", "0", "3"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("TableFor() mismatch (-want +got):\n%s", diff)
	}
}

func TestTableFor_OntarioHasNoSpecialColumn(t *testing.T) {
	s := tally.RidingSummary{Rows: []tally.RidingVoteSummary{{Candidate: "A", Party: "B", Eday: 1, Advance: 2, Total: 3}}}
	got := TableFor(s, election.ModeOntario)
	require.Len(t, got.Columns, 5)
	assert.Equal(t, "Total", got.Columns[4].Header)
	assert.Equal(t, []string{"A", "B", "1", "2", "3"}, got.Rows[0])
}

func TestInfoPanel_Eday(t *testing.T) {
	v := loadedView(t, election.ModeEday, [2]string{et.Liberal, et.Conservative})
	ds := v.Bundle.Riding("35001")
	info := InfoPanel(v, ds, &ds.Votes.Features[0].Properties)

	assert.Equal(t, "Election 2021", info.Title)
	assert.Equal(t, "Don Valley North poll 1", info.Heading)
	assert.Equal(t, []string{"Han Dong (Liberal): 100", "Sabrina Zuniga (Conservative): 80"}, info.Lines)
	assert.Equal(t, TabHint, info.Hint)
	assert.False(t, info.Idle)
}

func TestInfoPanel_Advance(t *testing.T) {
	v := loadedView(t, election.ModeAdvance, [2]string{et.Liberal, et.Conservative})
	ds := v.Bundle.Riding("35001")
	info := InfoPanel(v, ds, &ds.Votes.Features[1].Properties)
	assert.Equal(t, "Han Dong (Liberal): 50 (eday), 5 (adv)", info.Lines[0])
}

func TestInfoPanel_OntarioUsesPollNumber(t *testing.T) {
	v := loadedView(t, election.ModeOntario, [2]string{et.Liberal, et.Conservative})
	ds := v.Bundle.Riding("35001")
	props := ds.Votes.Features[0].Properties
	props.PollNumber = "042"
	info := InfoPanel(v, ds, &props)
	assert.Equal(t, "Don Valley North poll 042", info.Heading)
}

func TestInfoPanel_Idle(t *testing.T) {
	v := loadedView(t, election.ModeEday, [2]string{et.Liberal, et.Liberal})
	info := InfoPanel(v, nil, nil)
	assert.True(t, info.Idle)
	assert.Equal(t, []string{IdleText}, info.Lines)

	r, err := Render(v, nil)
	require.NoError(t, err)
	assert.Equal(t, info, r.Info(nil))
	assert.Equal(t, "Don Valley North poll 2", r.Info(&interaction.PollRef{Riding: "35001", Index: 1}).Heading)
}
