package tui

import (
	"math"

	"github.com/twpayne/go-geom"

	"github.com/canadavotes/canadavotes/internal/geo"
	"github.com/canadavotes/canadavotes/internal/interaction"
	"github.com/canadavotes/canadavotes/internal/view"
)

// cellAspect is the height of a terminal cell in units of its width.
const cellAspect = 2

type cell struct {
	ref   interaction.PollRef
	ok    bool
	edge  bool
	label rune
}

// grid is a rasterised choropleth: each terminal cell knows the poll under
// its centre.
type grid struct {
	w, h  int
	cells []cell
	proj  *geo.Projector
}

type candidate struct {
	ref    interaction.PollRef
	g      geom.T
	bounds *geom.Bounds
}

// rasterize samples r over extent at w×h cells. Cells on a riding border get
// edge set; riding labels are written centred on their centroid.
func rasterize(r *view.Rendering, extent *geom.Bounds, w, h int) *grid {
	if w <= 0 || h <= 0 {
		return &grid{}
	}
	g := &grid{w: w, h: h, cells: make([]cell, w*h), proj: geo.NewProjector(extent, w, h, cellAspect)}
	if r == nil {
		return g
	}

	var polls []candidate
	for _, l := range r.Ridings {
		for _, p := range l.Polls {
			if p.Geometry == nil {
				continue
			}
			polls = append(polls, candidate{ref: p.Ref, g: p.Geometry, bounds: p.Geometry.Bounds()})
		}
	}

	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			lon, lat := g.proj.CellCentre(col, row)
			for _, c := range polls {
				if lon < c.bounds.Min(0) || lon > c.bounds.Max(0) || lat < c.bounds.Min(1) || lat > c.bounds.Max(1) {
					continue
				}
				if geo.Contains(c.g, lon, lat) {
					g.cells[row*w+col] = cell{ref: c.ref, ok: true}
					break
				}
			}
		}
	}

	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			c := &g.cells[row*w+col]
			if !c.ok {
				continue
			}
			if col+1 < w {
				if n := g.cells[row*w+col+1]; n.ok && n.ref.Riding != c.ref.Riding {
					c.edge = true
				}
			}
			if row+1 < h {
				if n := g.cells[(row+1)*w+col]; n.ok && n.ref.Riding != c.ref.Riding {
					c.edge = true
				}
			}
		}
	}

	for _, lb := range r.Labels {
		fc, fr := g.proj.Forward(lb.Lon, lb.Lat)
		row := int(math.Floor(fr))
		if row < 0 || row >= h {
			continue
		}
		text := []rune(lb.Text)
		start := int(math.Floor(fc)) - len(text)/2
		for i, ch := range text {
			col := start + i
			if col >= 0 && col < w {
				g.cells[row*w+col].label = ch
			}
		}
	}
	return g
}

// at returns the cell at (col, row), or false outside the grid.
func (g *grid) at(col, row int) (cell, bool) {
	if g == nil || col < 0 || row < 0 || col >= g.w || row >= g.h {
		return cell{}, false
	}
	return g.cells[row*g.w+col], true
}

// find returns the first cell showing ref.
func (g *grid) find(ref interaction.PollRef) (col, row int, ok bool) {
	if g == nil {
		return 0, 0, false
	}
	for i, c := range g.cells {
		if c.ok && c.ref == ref {
			return i % g.w, i / g.w, true
		}
	}
	return 0, 0, false
}
