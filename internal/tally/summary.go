package tally

import (
	"sort"

	"github.com/canadavotes/canadavotes/internal/election"
)

// RidingVoteSummary is one candidate's riding-level vote totals.
type RidingVoteSummary struct {
	Candidate string `json:"candidate"`
	Party     string `json:"party"`
	Eday      int    `json:"eday"`
	Advance   int    `json:"advance"`
	// Special is only meaningful for federal modes.
	Special int `json:"special"`
	Total   int `json:"total"`
}

// RidingSummary is the sorted candidate table of one riding.
type RidingSummary struct {
	ID   string              `json:"id"`
	Name string              `json:"name"`
	Rows []RidingVoteSummary `json:"rows"`
}

// Summarize sums each candidate's poll-level votes over the riding and merges
// in the riding-level advance and special tallies:
//
//	Ontario, advance:  total = Σ poll.total + advance_votes
//	Ontario, eday:     advance = advance_votes; total = Σ poll.eday + advance_votes
//	federal, advance:  special = special_votes; total = Σ poll.total + special_votes
//	federal, eday:     advance = advance_votes; special = special_votes;
//	                   total = Σ poll.eday + special_votes + advance_votes
//
// Parties missing from a poll or from a riding-level map count as zero.
// Rows are sorted by total, largest first, ties by party name.
func Summarize(ds *election.RidingDataset, mode election.Mode) []RidingVoteSummary {
	rows := make([]RidingVoteSummary, 0, len(ds.Candidates))
	for _, party := range ds.Parties() {
		s := RidingVoteSummary{
			Candidate: ds.Candidates[party],
			Party:     party,
		}
		for i := range ds.Votes.Features {
			vc, _ := ds.Votes.Features[i].Properties.Party(party)
			s.Eday += vc.Eday
			if mode.Advance {
				s.Advance += vc.Advance
				s.Total += vc.Total
			} else {
				s.Total += vc.Eday
			}
		}

		advance := ds.AdvanceVotes[party]
		switch {
		case mode.Ontario:
			if !mode.Advance {
				s.Advance = advance
			}
			s.Total += advance
		case mode.Advance:
			s.Special = ds.SpecialVotes[party]
			s.Total += s.Special
		default:
			s.Special = ds.SpecialVotes[party]
			s.Advance = advance
			s.Total += s.Special + s.Advance
		}
		rows = append(rows, s)
	}

	// Parties() is name-sorted, so a stable sort breaks ties by name.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Total > rows[j].Total
	})
	return rows
}

// SummarizeBundle summarizes every riding in id order.
func SummarizeBundle(b *election.Bundle, mode election.Mode) []RidingSummary {
	ids := b.RidingIDs()
	out := make([]RidingSummary, 0, len(ids))
	for _, id := range ids {
		ds := b.Riding(id)
		name := ds.DistrictName()
		if name == "" {
			name = id
		}
		out = append(out, RidingSummary{ID: id, Name: name, Rows: Summarize(ds, mode)})
	}
	return out
}
