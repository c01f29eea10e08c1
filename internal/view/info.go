package view

import (
	"fmt"

	"github.com/canadavotes/canadavotes/internal/colorscale"
	"github.com/canadavotes/canadavotes/internal/election"
)

// Info panel text.
const (
	IdleText = "Hover over a poll division!"
	TabHint  = "press TAB to cycle through polls"
)

// Info is the content of the hover panel.
type Info struct {
	Title   string   `json:"title"`
	Heading string   `json:"heading,omitempty"`
	Lines   []string `json:"lines,omitempty"`
	Hint    string   `json:"hint,omitempty"`
	Idle    bool     `json:"idle,omitempty"`
}

// IdleInfo is the panel shown while no poll is hovered.
func IdleInfo(year int) Info {
	return Info{Title: electionTitle(year), Lines: []string{IdleText}, Idle: true}
}

// InfoPanel describes one poll: a line per party with the candidate, the
// party and its election-day votes, plus advance votes in advance modes.
func InfoPanel(v View, ds *election.RidingDataset, poll *election.PollProperties) Info {
	if poll == nil {
		return IdleInfo(v.Year)
	}
	info := Info{
		Title:   electionTitle(v.Year),
		Heading: fmt.Sprintf("%s poll %s", poll.DistrictName, poll.PollLabel(v.Mode.Ontario)),
		Hint:    TabHint,
	}
	for _, party := range poll.PartyNames() {
		vc, _ := poll.Party(party)
		candidate := "Unknown"
		if ds != nil {
			if name, ok := ds.Candidates[party]; ok {
				candidate = name
			}
		}
		line := fmt.Sprintf("%s (%s): %d", candidate, colorscale.TrimParty(party), vc.Eday)
		if v.Mode.Advance {
			line = fmt.Sprintf("%s (eday), %d (adv)", line, vc.Advance)
		}
		info.Lines = append(info.Lines, line)
	}
	return info
}

func electionTitle(year int) string {
	return fmt.Sprintf("Election %d", year)
}
