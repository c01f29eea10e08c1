// Package tally computes poll vote shares, the scale bounds used to colour
// them, and riding-level vote summaries.
package tally

import (
	"errors"

	"github.com/canadavotes/canadavotes/internal/election"
)

// ErrZeroTotal reports a poll with no recorded votes. Share returns 0
// alongside it so callers can render the poll as neutral.
var ErrZeroTotal = errors.New("poll has zero total votes")

// Share returns party's fraction of the votes cast at a poll. A party that
// the poll does not list has share 0. Advance modes divide total counts,
// other modes divide election-day counts.
func Share(p *election.PollProperties, party string, mode election.Mode) (float64, error) {
	vc, ok := p.Party(party)
	if !ok {
		return 0, nil
	}
	total := p.TotalVotes.Votes(mode.Advance)
	if total == 0 {
		return 0, ErrZeroTotal
	}
	return float64(vc.Votes(mode.Advance)) / float64(total), nil
}

// Shares returns the shares of both selected parties at a poll. The error is
// ErrZeroTotal when the poll has no votes, in which case both shares are 0.
func Shares(p *election.PollProperties, parties [2]string, mode election.Mode) ([2]float64, error) {
	if p.TotalVotes.Votes(mode.Advance) == 0 {
		return [2]float64{}, ErrZeroTotal
	}
	s0, err := Share(p, parties[0], mode)
	if err != nil {
		return [2]float64{}, err
	}
	s1, err := Share(p, parties[1], mode)
	if err != nil {
		return [2]float64{}, err
	}
	return [2]float64{s0, s1}, nil
}
