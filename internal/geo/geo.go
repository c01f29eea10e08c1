// Package geo provides the planar geometry the renderers need: point in
// polygon tests, bounding boxes and a projection from lon/lat onto a grid.
package geo

import (
	"math"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
)

// Contains reports whether (x, y) lies inside g. Polygon holes are honoured.
// Geometries without area never contain a point.
func Contains(g geom.T, x, y float64) bool {
	switch g := g.(type) {
	case *geom.Polygon:
		return polygonContains(g, x, y)
	case *geom.MultiPolygon:
		for i := 0; i < g.NumPolygons(); i++ {
			if polygonContains(g.Polygon(i), x, y) {
				return true
			}
		}
	case *geom.GeometryCollection:
		for _, sub := range g.Geoms() {
			if Contains(sub, x, y) {
				return true
			}
		}
	}
	return false
}

func polygonContains(p *geom.Polygon, x, y float64) bool {
	if p.NumLinearRings() == 0 {
		return false
	}
	pt := geom.Coord{x, y}
	if !xy.IsPointInRing(p.Layout(), pt, p.LinearRing(0).FlatCoords()) {
		return false
	}
	for i := 1; i < p.NumLinearRings(); i++ {
		if xy.IsPointInRing(p.Layout(), pt, p.LinearRing(i).FlatCoords()) {
			return false
		}
	}
	return true
}

// Bounds returns the 2D bounding box of gs. Nil geometries are skipped; the
// result is empty when nothing was added.
func Bounds(gs ...geom.T) *geom.Bounds {
	b := geom.NewBounds(geom.XY)
	for _, g := range gs {
		if g == nil {
			continue
		}
		gb := g.Bounds()
		if gb.IsEmpty() {
			continue
		}
		b.Extend(geom.NewPointFlat(geom.XY, []float64{gb.Min(0), gb.Min(1)}))
		b.Extend(geom.NewPointFlat(geom.XY, []float64{gb.Max(0), gb.Max(1)}))
	}
	return b
}

// Centre returns the midpoint of b.
func Centre(b *geom.Bounds) (x, y float64) {
	return (b.Min(0) + b.Max(0)) / 2, (b.Min(1) + b.Max(1)) / 2
}

// Projector maps lon/lat onto a Width×Height grid with north up. Longitude is
// shrunk by the cosine of the mid latitude so shapes keep their proportions.
// CellAspect is the height of one grid cell in units of its width: 1 for SVG
// pixels, about 2 for terminal cells.
type Projector struct {
	Width, Height int
	CellAspect    float64

	minX, maxY float64
	scale      float64
	lonFactor  float64
	offX, offY float64
}

// NewProjector fits b into a width×height grid, centred.
func NewProjector(b *geom.Bounds, width, height int, cellAspect float64) *Projector {
	if cellAspect <= 0 {
		cellAspect = 1
	}
	p := &Projector{Width: width, Height: height, CellAspect: cellAspect}
	if b == nil || b.IsEmpty() {
		p.scale, p.lonFactor = 1, 1
		return p
	}
	p.minX, p.maxY = b.Min(0), b.Max(1)
	midLat := (b.Min(1) + b.Max(1)) / 2
	p.lonFactor = math.Cos(midLat * math.Pi / 180)
	if p.lonFactor <= 0 {
		p.lonFactor = 1
	}

	dataW := (b.Max(0) - b.Min(0)) * p.lonFactor
	dataH := b.Max(1) - b.Min(1)
	gridW := float64(width)
	gridH := float64(height) * cellAspect

	switch {
	case dataW == 0 && dataH == 0:
		p.scale = 1
	case dataW == 0:
		p.scale = gridH / dataH
	case dataH == 0:
		p.scale = gridW / dataW
	default:
		p.scale = math.Min(gridW/dataW, gridH/dataH)
	}
	p.offX = (gridW - dataW*p.scale) / 2
	p.offY = (gridH - dataH*p.scale) / 2
	return p
}

// Forward projects (lon, lat) to fractional grid coordinates.
func (p *Projector) Forward(lon, lat float64) (col, row float64) {
	col = p.offX + (lon-p.minX)*p.lonFactor*p.scale
	row = (p.offY + (p.maxY-lat)*p.scale) / p.CellAspect
	return col, row
}

// Inverse maps fractional grid coordinates back to (lon, lat).
func (p *Projector) Inverse(col, row float64) (lon, lat float64) {
	lon = p.minX + (col-p.offX)/(p.lonFactor*p.scale)
	lat = p.maxY - (row*p.CellAspect-p.offY)/p.scale
	return lon, lat
}

// CellCentre returns the lon/lat at the centre of grid cell (col, row).
func (p *Projector) CellCentre(col, row int) (lon, lat float64) {
	return p.Inverse(float64(col)+0.5, float64(row)+0.5)
}
