package tally

import (
	"errors"

	"github.com/canadavotes/canadavotes/internal/election"
)

// MinDiff is the floor of both MaxDiff entries, so a two-party colour
// scale always spans at least ±5 points.
const MinDiff = 0.05

// Bounds are the running maxima that calibrate the colour scale domain.
type Bounds struct {
	// MaxShare holds the largest share seen for each selected party.
	MaxShare [2]float64
	// MaxDiff[0] is the largest share0-share1, MaxDiff[1] the largest
	// share1-share0.
	MaxDiff [2]float64

	// Polls counts observed polls; EmptyPolls those with zero total votes.
	Polls      int
	EmptyPolls int
}

// NewBounds returns bounds seeded with their floors.
func NewBounds() Bounds {
	return Bounds{MaxDiff: [2]float64{MinDiff, MinDiff}}
}

// Observe folds one poll's pair of shares into the maxima. Updates use
// strict comparisons; ties leave the bounds unchanged.
func (b *Bounds) Observe(s0, s1 float64) {
	b.Polls++
	if s0 > b.MaxShare[0] {
		b.MaxShare[0] = s0
	}
	if s1 > b.MaxShare[1] {
		b.MaxShare[1] = s1
	}
	if s0-s1 > b.MaxDiff[0] {
		b.MaxDiff[0] = s0 - s1
	}
	if s1-s0 > b.MaxDiff[1] {
		b.MaxDiff[1] = s1 - s0
	}
}

// ObservePoll computes a poll's shares and folds them in. Polls without
// votes count as zero shares.
func (b *Bounds) ObservePoll(p *election.PollProperties, parties [2]string, mode election.Mode) {
	s, err := Shares(p, parties, mode)
	if errors.Is(err, ErrZeroTotal) {
		b.EmptyPolls++
	}
	b.Observe(s[0], s[1])
}

// Scan makes one pass over every poll in every riding of the bundle.
func Scan(bundle *election.Bundle, parties [2]string, mode election.Mode) Bounds {
	b := NewBounds()
	for _, ds := range bundle.PollData {
		for i := range ds.Votes.Features {
			b.ObservePoll(&ds.Votes.Features[i].Properties, parties, mode)
		}
	}
	return b
}
