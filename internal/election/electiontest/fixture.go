// Package electiontest builds small election bundles for tests.
package electiontest

import (
	"encoding/json"
	"testing"

	"github.com/twpayne/go-geom"

	"github.com/canadavotes/canadavotes/internal/election"
)

// Party names used by the fixtures.
const (
	Liberal      = "Liberal"
	Conservative = "Conservative"
	NDP          = "NDP-New Democratic Party"
)

// Square returns a closed unit-ish square polygon with its lower-left
// corner at (x, y).
func Square(x, y, size float64) *geom.Polygon {
	return geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{{
		{x, y}, {x + size, y}, {x + size, y + size}, {x, y + size}, {x, y},
	}})
}

// Poll builds a poll feature. counts maps party to its count; total is the
// poll's TotalVotes record.
func Poll(district, number string, g geom.T, total election.VoteCount, counts map[string]election.VoteCount, order ...string) election.PollFeature {
	props := election.PollProperties{
		DistrictName: district,
		Poll:         election.Label(number),
		PollNumber:   election.Label(number),
		TotalVotes:   total,
	}
	for _, party := range order {
		props.SetParty(party, counts[party])
	}
	return election.PollFeature{Geometry: g, Properties: props}
}

// Eday is shorthand for an election-day-only count.
func Eday(n int) election.VoteCount {
	return election.VoteCount{Eday: n, Total: n}
}

// Counts is shorthand for a full eday/advance/total count.
func Counts(eday, advance int) election.VoteCount {
	return election.VoteCount{Eday: eday, Advance: advance, Total: eday + advance}
}

// Bundle returns a two-riding bundle:
//
//   - riding 35001 "Don Valley North": two polls, Liberal 100/50 and
//     Conservative 80/40 election-day votes, totals 200/120.
//   - riding 35002 "Willowdale": three polls with Liberal, Conservative and NDP.
//
// Polls are unit squares laid out left to right; riding 35001 spans
// x in [0,2] and riding 35002 spans x in [2,5], y in [0,1].
func Bundle() *election.Bundle {
	dvn := &election.RidingDataset{
		Candidates: map[string]string{
			Liberal:      "Han Dong",
			Conservative: "Sabrina Zuniga",
		},
		AdvanceVotes: map[string]int{Liberal: 30, Conservative: 20},
		SpecialVotes: map[string]int{Liberal: 5, Conservative: 4},
	}
	dvn.Votes.Features = []election.PollFeature{
		Poll("Don Valley North", "1", Square(0, 0, 1),
			election.VoteCount{Eday: 200, Advance: 20, Total: 220},
			map[string]election.VoteCount{
				Liberal:      {Eday: 100, Advance: 10, Total: 110},
				Conservative: {Eday: 80, Advance: 6, Total: 86},
			}, Liberal, Conservative),
		Poll("Don Valley North", "2", Square(1, 0, 1),
			election.VoteCount{Eday: 120, Advance: 12, Total: 132},
			map[string]election.VoteCount{
				Liberal:      {Eday: 50, Advance: 5, Total: 55},
				Conservative: {Eday: 40, Advance: 4, Total: 44},
			}, Liberal, Conservative),
	}

	wd := &election.RidingDataset{
		Candidates: map[string]string{
			Liberal:      "Ali Ehsassi",
			Conservative: "Daniel Lee",
			NDP:          "Hal Berman",
		},
		AdvanceVotes: map[string]int{Liberal: 40, Conservative: 35, NDP: 10},
		SpecialVotes: map[string]int{Liberal: 7, Conservative: 9, NDP: 1},
	}
	wd.Votes.Features = []election.PollFeature{
		Poll("Willowdale", "1", Square(2, 0, 1),
			election.VoteCount{Eday: 100, Advance: 10, Total: 110},
			map[string]election.VoteCount{
				Liberal:      Counts(30, 3),
				Conservative: Counts(60, 6),
				NDP:          Counts(10, 1),
			}, Liberal, Conservative, NDP),
		Poll("Willowdale", "2", Square(3, 0, 1),
			election.VoteCount{Eday: 150, Advance: 15, Total: 165},
			map[string]election.VoteCount{
				Liberal:      Counts(75, 8),
				Conservative: Counts(60, 5),
				NDP:          Counts(15, 2),
			}, Liberal, Conservative, NDP),
		Poll("Willowdale", "3", Square(4, 0, 1),
			election.VoteCount{Eday: 80, Advance: 8, Total: 88},
			map[string]election.VoteCount{
				Liberal:      Counts(40, 4),
				Conservative: Counts(30, 3),
				NDP:          Counts(10, 1),
			}, Liberal, Conservative, NDP),
	}

	b := &election.Bundle{
		PollData: election.PollData{"35001": dvn, "35002": wd},
		Centroid: &election.LatLon{Latitude: 0.5, Longitude: 2.5},
	}
	b.Ridings.Features = []election.Feature{
		{Geometry: rect(0, 0, 2, 1), Properties: map[string]any{election.KeyDistrictName: "Don Valley North"}},
		{Geometry: rect(2, 0, 5, 1), Properties: map[string]any{election.KeyDistrictName: "Willowdale"}},
	}
	b.RidingCentroids.Features = []election.Feature{
		{Geometry: geom.NewPoint(geom.XY).MustSetCoords(geom.Coord{1, 0.5}), Properties: map[string]any{election.KeyDistrictName: "Don Valley North"}},
		{Geometry: geom.NewPoint(geom.XY).MustSetCoords(geom.Coord{3.5, 0.5}), Properties: map[string]any{election.KeyDistrictName: "Willowdale"}},
	}
	return b
}

func rect(x0, y0, x1, y1 float64) *geom.Polygon {
	return geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{{
		{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}, {x0, y0},
	}})
}

// JSON encodes b as bundle JSON.
func JSON(t testing.TB, b *election.Bundle) []byte {
	t.Helper()
	data, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal bundle: %v", err)
	}
	return data
}
