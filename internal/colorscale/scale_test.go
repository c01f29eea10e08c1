package colorscale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canadavotes/canadavotes/internal/tally"
)

const (
	liberal      = "Liberal"
	conservative = "Conservative"
)

func mustColor(t *testing.T, s string) string {
	t.Helper()
	c, err := ParseColor(s)
	require.NoError(t, err)
	return c.Hex()
}

func TestTwoParty_EndpointsAndCentre(t *testing.T) {
	bounds := tally.Bounds{MaxShare: [2]float64{0.5, 0.6}, MaxDiff: [2]float64{0.125, 0.3}}
	s := Build([2]string{liberal, conservative}, bounds, DefaultPalette())

	assert.False(t, s.IsOneParty())
	assert.Equal(t, "#ffffff", s.Hex(0))
	assert.Equal(t, mustColor(t, "red"), s.Hex(0.125))
	assert.Equal(t, mustColor(t, "blue"), s.Hex(-0.3))
}

func TestTwoParty_Clamps(t *testing.T) {
	red, _ := ParseColor("red")
	blue, _ := ParseColor("blue")
	s := TwoParty(red, blue, [2]float64{0.1, 0.2})

	assert.Equal(t, red.Hex(), s.Hex(5))
	assert.Equal(t, blue.Hex(), s.Hex(-5))
}

func TestTwoParty_Midpoint(t *testing.T) {
	red, _ := ParseColor("red")
	blue, _ := ParseColor("blue")
	s := TwoParty(red, blue, [2]float64{0.2, 0.2})

	c := s.At(0.1)
	assert.InDelta(t, 1.0, c.R, 1e-9)
	assert.InDelta(t, 0.5, c.G, 1e-9)
	assert.InDelta(t, 0.5, c.B, 1e-9)
}

func TestOneParty(t *testing.T) {
	bounds := tally.Bounds{MaxShare: [2]float64{0.6, 0.6}, MaxDiff: [2]float64{tally.MinDiff, tally.MinDiff}}
	s := Build([2]string{conservative, conservative}, bounds, DefaultPalette())

	require.True(t, s.IsOneParty())
	assert.Equal(t, "#ffffff", s.Hex(0))
	assert.Equal(t, mustColor(t, "blue"), s.Hex(0.6))
	assert.Equal(t, mustColor(t, "blue"), s.Hex(0.9))
	assert.Equal(t, []float64{0, 0.6}, s.Domain())
}

func TestOneParty_ZeroWidthDomain(t *testing.T) {
	blue, _ := ParseColor("blue")
	s := OneParty(blue, 0)
	assert.Equal(t, "#ffffff", s.Hex(0))
	assert.Equal(t, "#ffffff", s.Hex(0.3))
}

func TestInput(t *testing.T) {
	one := OneParty(White, 1)
	two := TwoParty(White, White, [2]float64{1, 1})
	shares := [2]float64{0.5, 0.2}

	assert.InDelta(t, 0.5, one.Input(shares), 1e-9)
	assert.InDelta(t, 0.3, two.Input(shares), 1e-9)
}

func TestLegend_TwoParty(t *testing.T) {
	bounds := tally.Bounds{MaxDiff: [2]float64{0.2, 0.4}}
	p := DefaultPalette()
	parties := [2]string{"Ontario Liberal Party", "Progressive Conservative Party of Ontario"}
	s := Build(parties, bounds, p)

	legend := s.Legend(parties, bounds, p)
	require.Len(t, legend, 9)
	assert.Equal(t, "Liberal +20%", legend[0].Label)
	assert.Equal(t, "Equal", legend[4].Label)
	assert.Equal(t, "#ffffff", legend[4].Color)
	assert.Equal(t, "PCO +40%", legend[8].Label)
	assert.InDelta(t, -0.4, legend[8].Value, 1e-9)
	assert.Empty(t, legend[1].Label)
}

func TestLegend_OneParty(t *testing.T) {
	bounds := tally.Bounds{MaxShare: [2]float64{0.8, 0.8}}
	p := DefaultPalette()
	parties := [2]string{liberal, liberal}
	s := Build(parties, bounds, p)

	legend := s.Legend(parties, bounds, p)
	require.Len(t, legend, 9)
	assert.Equal(t, "80% Liberal", legend[0].Label)
	assert.Equal(t, "40% ", legend[4].Label)
	assert.Equal(t, "0", legend[8].Label)
	assert.Equal(t, "#ffffff", legend[8].Color)
	assert.InDelta(t, 0.1, legend[7].Value, 1e-9)
}

func TestLegend_HalfPercentRoundsUp(t *testing.T) {
	bounds := tally.Bounds{MaxShare: [2]float64{0.25, 0.25}, MaxDiff: [2]float64{0.125, 0.625}}
	p := DefaultPalette()

	one := [2]string{liberal, liberal}
	legend := Build(one, bounds, p).Legend(one, bounds, p)
	assert.Equal(t, "25% Liberal", legend[0].Label)
	assert.Equal(t, "13% ", legend[4].Label)

	two := [2]string{"Ontario Liberal Party", "Progressive Conservative Party of Ontario"}
	legend = Build(two, bounds, p).Legend(two, bounds, p)
	assert.Equal(t, "Liberal +13%", legend[0].Label)
	assert.Equal(t, "PCO +63%", legend[8].Label)
}
