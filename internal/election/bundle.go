// Package election decodes the leaflet_data bundles that carry per-poll
// election results, riding boundaries and candidate lists.
package election

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
)

// ErrDuplicateRiding is returned when a bundle lists the same riding id twice.
var ErrDuplicateRiding = errors.New("duplicate riding id")

// RidingDataset holds one riding's poll results and riding-level tallies.
type RidingDataset struct {
	Votes      Collection[PollFeature] `json:"votes"`
	Candidates map[string]string       `json:"candidates"`

	// AdvanceVotes and SpecialVotes are riding-level, out-of-poll tallies
	// keyed by party. Which ones are present depends on the mode.
	AdvanceVotes map[string]int `json:"advance_votes,omitempty"`
	SpecialVotes map[string]int `json:"special_votes,omitempty"`
}

// Polls returns the riding's poll features in file order.
func (d *RidingDataset) Polls() []PollFeature {
	return d.Votes.Features
}

// DistrictName returns the riding name taken from its first poll, or "" if
// the riding has no polls.
func (d *RidingDataset) DistrictName() string {
	if len(d.Votes.Features) == 0 {
		return ""
	}
	return d.Votes.Features[0].Properties.DistrictName
}

// Parties returns the riding's candidate parties sorted by name.
func (d *RidingDataset) Parties() []string {
	out := make([]string, 0, len(d.Candidates))
	for party := range d.Candidates {
		out = append(out, party)
	}
	sort.Strings(out)
	return out
}

// PollData maps riding id to its dataset.
type PollData map[string]*RidingDataset

// UnmarshalJSON decodes the polldata object, rejecting duplicate riding ids.
func (pd *PollData) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("polldata must be an object")
	}
	out := make(PollData)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		id, _ := tok.(string)
		if _, dup := out[id]; dup {
			return fmt.Errorf("polldata: %w %q", ErrDuplicateRiding, id)
		}
		var ds RidingDataset
		if err := dec.Decode(&ds); err != nil {
			return fmt.Errorf("polldata %q: %w", id, err)
		}
		out[id] = &ds
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*pd = out
	return nil
}

// LatLon is a map centre.
type LatLon struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Bundle is the root object of a leaflet_data_<mode>_<city>_<year>.json file.
type Bundle struct {
	Ridings         Collection[Feature] `json:"ridings"`
	RidingCentroids Collection[Feature] `json:"riding_centroids"`
	PollData        PollData            `json:"polldata"`
	Centroid        *LatLon             `json:"centroid,omitempty"`
}

// RidingIDs returns the bundle's riding ids in sorted order.
func (b *Bundle) RidingIDs() []string {
	ids := make([]string, 0, len(b.PollData))
	for id := range b.PollData {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Riding returns the dataset for id, or nil.
func (b *Bundle) Riding(id string) *RidingDataset {
	return b.PollData[id]
}

// PollCount returns the number of polls across all ridings.
func (b *Bundle) PollCount() int {
	n := 0
	for _, ds := range b.PollData {
		n += len(ds.Votes.Features)
	}
	return n
}

// Decode reads a bundle from r.
func Decode(r io.Reader) (*Bundle, error) {
	var b Bundle
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return nil, fmt.Errorf("decode bundle: %w", err)
	}
	if b.PollData == nil {
		return nil, fmt.Errorf("decode bundle: missing polldata")
	}
	return &b, nil
}
