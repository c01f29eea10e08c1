package view

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/twpayne/go-geom"

	"github.com/canadavotes/canadavotes/internal/colorscale"
	"github.com/canadavotes/canadavotes/internal/election"
	"github.com/canadavotes/canadavotes/internal/geo"
	"github.com/canadavotes/canadavotes/internal/interaction"
	"github.com/canadavotes/canadavotes/internal/tally"
)

// PollStyle is one poll as drawn.
type PollStyle struct {
	Ref        interaction.PollRef
	Geometry   geom.T
	Properties *election.PollProperties

	Shares [2]float64
	Value  float64
	Fill   string
	// Empty marks polls with no recorded votes; they are drawn as zero share.
	Empty bool
}

// RidingLayer is a riding's polls and results table.
type RidingLayer struct {
	ID      string
	Name    string
	Dataset *election.RidingDataset
	Polls   []PollStyle
	Summary tally.RidingSummary
	Table   Table
}

// Boundary is a riding outline.
type Boundary struct {
	Name     string
	Geometry geom.T
}

// Label is a riding name anchored at its centroid.
type Label struct {
	Text string
	Lon  float64
	Lat  float64
}

// Rendering is everything a host needs to draw one view.
type Rendering struct {
	View       View
	Bounds     tally.Bounds
	Scale      colorscale.Scale
	Legend     []colorscale.LegendEntry
	Ridings    []RidingLayer
	Boundaries []Boundary
	Labels     []Label
	Extent     *geom.Bounds
}

// Render computes the scale bounds, colour scale, poll styles, legend and
// riding tables for v.
func Render(v View, p *colorscale.Palette) (*Rendering, error) {
	if v.Bundle == nil {
		return nil, ErrNoData
	}
	if v.Parties[0] == "" {
		return nil, ErrNoParties
	}
	if p == nil {
		p = colorscale.DefaultPalette()
	}

	bounds := tally.Scan(v.Bundle, v.Parties, v.Mode)
	if bounds.EmptyPolls > 0 {
		slog.Debug("polls with zero total votes drawn as zero share",
			"empty", bounds.EmptyPolls, "polls", bounds.Polls)
	}
	scale := colorscale.Build(v.Parties, bounds, p)

	r := &Rendering{
		View:   v,
		Bounds: bounds,
		Scale:  scale,
		Legend: scale.Legend(v.Parties, bounds, p),
	}

	var outlines []geom.T
	for _, f := range v.Bundle.Ridings.Features {
		if f.Geometry == nil {
			continue
		}
		r.Boundaries = append(r.Boundaries, Boundary{Name: f.DistrictName(), Geometry: f.Geometry})
		outlines = append(outlines, f.Geometry)
	}
	for _, f := range v.Bundle.RidingCentroids.Features {
		pt, ok := f.Geometry.(*geom.Point)
		if !ok {
			continue
		}
		r.Labels = append(r.Labels, Label{Text: f.DistrictName(), Lon: pt.X(), Lat: pt.Y()})
	}

	summaries := tally.SummarizeBundle(v.Bundle, v.Mode)
	for i, id := range v.Bundle.RidingIDs() {
		ds := v.Bundle.Riding(id)
		layer := RidingLayer{
			ID:      id,
			Name:    summaries[i].Name,
			Dataset: ds,
			Summary: summaries[i],
			Table:   TableFor(summaries[i], v.Mode),
		}
		for j := range ds.Votes.Features {
			f := &ds.Votes.Features[j]
			shares, err := tally.Shares(&f.Properties, v.Parties, v.Mode)
			if err != nil && !errors.Is(err, tally.ErrZeroTotal) {
				return nil, fmt.Errorf("riding %s poll %d: %w", id, j, err)
			}
			value := scale.Input(shares)
			layer.Polls = append(layer.Polls, PollStyle{
				Ref:        interaction.PollRef{Riding: id, Index: j},
				Geometry:   f.Geometry,
				Properties: &f.Properties,
				Shares:     shares,
				Value:      value,
				Fill:       scale.Hex(value),
				Empty:      err != nil,
			})
			if len(r.Boundaries) == 0 && f.Geometry != nil {
				outlines = append(outlines, f.Geometry)
			}
		}
		r.Ridings = append(r.Ridings, layer)
	}
	r.Extent = geo.Bounds(outlines...)
	return r, nil
}

// PollCounts returns the number of polls per riding, as the interaction
// controller expects.
func (r *Rendering) PollCounts() map[string]int {
	out := make(map[string]int, len(r.Ridings))
	for _, l := range r.Ridings {
		out[l.ID] = len(l.Polls)
	}
	return out
}

// Riding returns the layer for a riding id.
func (r *Rendering) Riding(id string) *RidingLayer {
	for i := range r.Ridings {
		if r.Ridings[i].ID == id {
			return &r.Ridings[i]
		}
	}
	return nil
}

// Poll returns the styled poll for ref.
func (r *Rendering) Poll(ref interaction.PollRef) *PollStyle {
	l := r.Riding(ref.Riding)
	if l == nil || ref.Index < 0 || ref.Index >= len(l.Polls) {
		return nil
	}
	return &l.Polls[ref.Index]
}

// Locate returns the poll containing (lon, lat).
func (r *Rendering) Locate(lon, lat float64) (interaction.PollRef, bool) {
	for _, l := range r.Ridings {
		for _, p := range l.Polls {
			if p.Geometry != nil && geo.Contains(p.Geometry, lon, lat) {
				return p.Ref, true
			}
		}
	}
	return interaction.PollRef{}, false
}

// Info returns the info panel for ref, or the idle panel when ref is nil.
func (r *Rendering) Info(ref *interaction.PollRef) Info {
	if ref == nil {
		return IdleInfo(r.View.Year)
	}
	p := r.Poll(*ref)
	if p == nil {
		return IdleInfo(r.View.Year)
	}
	return InfoPanel(r.View, r.Riding(ref.Riding).Dataset, p.Properties)
}

// PollExtent returns the bounds to zoom to for a poll.
func (r *Rendering) PollExtent(ref interaction.PollRef) *geom.Bounds {
	p := r.Poll(ref)
	if p == nil {
		return nil
	}
	return geo.Bounds(p.Geometry)
}

// RidingExtent returns the bounds of the riding outline named name, falling
// back to the riding's polls.
func (r *Rendering) RidingExtent(name string) *geom.Bounds {
	var gs []geom.T
	for _, b := range r.Boundaries {
		if b.Name == name {
			gs = append(gs, b.Geometry)
		}
	}
	if len(gs) == 0 {
		for _, l := range r.Ridings {
			if l.Name != name {
				continue
			}
			for _, p := range l.Polls {
				gs = append(gs, p.Geometry)
			}
		}
	}
	if len(gs) == 0 {
		return nil
	}
	return geo.Bounds(gs...)
}
