package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/twpayne/go-geom"
)

func square(x, y, size float64) *geom.Polygon {
	return geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{{
		{x, y}, {x + size, y}, {x + size, y + size}, {x, y + size}, {x, y},
	}})
}

func TestContains_Polygon(t *testing.T) {
	p := square(0, 0, 2)
	assert.True(t, Contains(p, 1, 1))
	assert.False(t, Contains(p, 3, 1))
	assert.False(t, Contains(p, -0.5, 1))
}

func TestContains_Hole(t *testing.T) {
	p := geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{
		{{0, 0}, {4, 0}, {4, 4}, {0, 4}, {0, 0}},
		{{1, 1}, {3, 1}, {3, 3}, {1, 3}, {1, 1}},
	})
	assert.True(t, Contains(p, 0.5, 0.5))
	assert.False(t, Contains(p, 2, 2))
}

func TestContains_MultiPolygon(t *testing.T) {
	mp := geom.NewMultiPolygon(geom.XY).MustSetCoords([][][]geom.Coord{
		{{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}},
		{{{5, 5}, {6, 5}, {6, 6}, {5, 6}, {5, 5}}},
	})
	assert.True(t, Contains(mp, 0.5, 0.5))
	assert.True(t, Contains(mp, 5.5, 5.5))
	assert.False(t, Contains(mp, 3, 3))
}

func TestContains_NonAreal(t *testing.T) {
	pt := geom.NewPointFlat(geom.XY, []float64{1, 1})
	assert.False(t, Contains(pt, 1, 1))
	assert.False(t, Contains(nil, 1, 1))
}

func TestBounds(t *testing.T) {
	b := Bounds(square(0, 0, 1), nil, square(3, 2, 2))
	assert.Equal(t, 0.0, b.Min(0))
	assert.Equal(t, 0.0, b.Min(1))
	assert.Equal(t, 5.0, b.Max(0))
	assert.Equal(t, 4.0, b.Max(1))

	x, y := Centre(b)
	assert.Equal(t, 2.5, x)
	assert.Equal(t, 2.0, y)

	assert.True(t, Bounds().IsEmpty())
}

func TestProjector_RoundTrip(t *testing.T) {
	b := Bounds(square(-79.5, 43.6, 0.4))
	p := NewProjector(b, 80, 24, 2)

	for _, pt := range [][2]float64{{-79.5, 43.6}, {-79.3, 43.8}, {-79.1, 44.0}} {
		col, row := p.Forward(pt[0], pt[1])
		assert.GreaterOrEqual(t, col, 0.0)
		assert.LessOrEqual(t, col, 80.0)
		assert.GreaterOrEqual(t, row, 0.0)
		assert.LessOrEqual(t, row, 24.0)

		lon, lat := p.Inverse(col, row)
		assert.InDelta(t, pt[0], lon, 1e-9)
		assert.InDelta(t, pt[1], lat, 1e-9)
	}
}

func TestProjector_NorthUp(t *testing.T) {
	p := NewProjector(Bounds(square(0, 0, 1)), 10, 10, 1)
	_, top := p.Forward(0.5, 1)
	_, bottom := p.Forward(0.5, 0)
	assert.Less(t, top, bottom)
}

func TestProjector_FitsHeight(t *testing.T) {
	// a tall shape on a wide grid is limited by height and centred across
	p := NewProjector(Bounds(square(0, 0, 1)), 100, 10, 1)
	left, top := p.Forward(0, 1)
	right, bottom := p.Forward(1, 0)
	assert.InDelta(t, 0, top, 1e-9)
	assert.InDelta(t, 10, bottom, 1e-9)
	assert.InDelta(t, 50, (left+right)/2, 1e-9)
}

func TestProjector_EmptyBounds(t *testing.T) {
	p := NewProjector(nil, 10, 10, 2)
	col, row := p.Forward(0, 0)
	assert.Equal(t, 0.0, col)
	assert.Equal(t, 0.0, row)
}

func TestProjector_CellCentre(t *testing.T) {
	p := NewProjector(Bounds(square(0, 0, 10)), 10, 10, 1)
	lon, lat := p.CellCentre(0, 0)
	assert.True(t, Contains(square(0, 0, 10), lon, lat))
}
