package tally

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/canadavotes/canadavotes/internal/election"
	et "github.com/canadavotes/canadavotes/internal/election/electiontest"
)

func TestSummarize_FourRecipes(t *testing.T) {
	tests := []struct {
		name string
		mode election.Mode
		want []RidingVoteSummary
	}{
		{
			name: "ontario advance",
			mode: election.ModeOntario,
			want: []RidingVoteSummary{
				{Candidate: "Han Dong", Party: et.Liberal, Eday: 150, Advance: 15, Total: 195},
				{Candidate: "Sabrina Zuniga", Party: et.Conservative, Eday: 120, Advance: 10, Total: 150},
			},
		},
		{
			name: "ontario eday",
			mode: election.ModeOntarioEday,
			want: []RidingVoteSummary{
				{Candidate: "Han Dong", Party: et.Liberal, Eday: 150, Advance: 30, Total: 180},
				{Candidate: "Sabrina Zuniga", Party: et.Conservative, Eday: 120, Advance: 20, Total: 140},
			},
		},
		{
			name: "federal advance",
			mode: election.ModeAdvance,
			want: []RidingVoteSummary{
				{Candidate: "Han Dong", Party: et.Liberal, Eday: 150, Advance: 15, Special: 5, Total: 170},
				{Candidate: "Sabrina Zuniga", Party: et.Conservative, Eday: 120, Advance: 10, Special: 4, Total: 134},
			},
		},
		{
			name: "federal eday",
			mode: election.ModeEday,
			want: []RidingVoteSummary{
				{Candidate: "Han Dong", Party: et.Liberal, Eday: 150, Advance: 30, Special: 5, Total: 185},
				{Candidate: "Sabrina Zuniga", Party: et.Conservative, Eday: 120, Advance: 20, Special: 4, Total: 144},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(et.Bundle().Riding("35001"), tt.mode)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Summarize() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSummarize_SortedDescending(t *testing.T) {
	b := et.Bundle()
	for _, mode := range election.Modes() {
		for _, rs := range SummarizeBundle(b, mode) {
			for i := 0; i+1 < len(rs.Rows); i++ {
				assert.GreaterOrEqual(t, rs.Rows[i].Total, rs.Rows[i+1].Total,
					"mode %s riding %s", mode, rs.ID)
			}
		}
	}
}

func TestSummarize_Willowdale(t *testing.T) {
	rows := Summarize(et.Bundle().Riding("35002"), election.ModeEday)
	got := make([]string, len(rows))
	for i, r := range rows {
		got[i] = r.Party
	}
	assert.Equal(t, []string{et.Conservative, et.Liberal, et.NDP}, got)
	assert.Equal(t, 194, rows[0].Total)
	assert.Equal(t, 192, rows[1].Total)
}

// The riding's summed totals equal the summed poll totals plus the
// riding-level adjustments of each recipe.
func TestSummarize_TotalsBalance(t *testing.T) {
	b := et.Bundle()
	for _, mode := range election.Modes() {
		for _, id := range b.RidingIDs() {
			ds := b.Riding(id)
			pollSum := 0
			for _, poll := range ds.Polls() {
				for _, party := range poll.Properties.PartyNames() {
					pollSum += poll.Properties.Parties[party].Votes(mode.Advance)
				}
			}
			adjust := 0
			for _, party := range ds.Parties() {
				switch {
				case mode.Ontario:
					adjust += ds.AdvanceVotes[party]
				case mode.Advance:
					adjust += ds.SpecialVotes[party]
				default:
					adjust += ds.SpecialVotes[party] + ds.AdvanceVotes[party]
				}
			}

			sum := 0
			for _, r := range Summarize(ds, mode) {
				sum += r.Total
			}
			assert.Equal(t, pollSum+adjust, sum, "mode %s riding %s", mode, id)
		}
	}
}

func TestSummarize_MissingPartyInPoll(t *testing.T) {
	ds := et.Bundle().Riding("35001")
	ds.Candidates[et.NDP] = "Bruce Griffin"
	rows := Summarize(ds, election.ModeEday)
	last := rows[len(rows)-1]
	assert.Equal(t, et.NDP, last.Party)
	assert.Equal(t, 0, last.Eday)
	assert.Equal(t, 0, last.Total)
}

func TestSummarizeBundle_NamesAndOrder(t *testing.T) {
	got := SummarizeBundle(et.Bundle(), election.ModeEday)
	assert.Len(t, got, 2)
	assert.Equal(t, "35001", got[0].ID)
	assert.Equal(t, "Don Valley North", got[0].Name)
	assert.Equal(t, "Willowdale", got[1].Name)
}

func TestSummarizeBundle_EmptyRidingFallsBackToID(t *testing.T) {
	b := &election.Bundle{PollData: election.PollData{"99999": {Candidates: map[string]string{}}}}
	got := SummarizeBundle(b, election.ModeEday)
	assert.Equal(t, "99999", got[0].Name)
	assert.Empty(t, got[0].Rows)
}
