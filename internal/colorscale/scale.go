// Package colorscale maps vote shares to display colours.
package colorscale

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/canadavotes/canadavotes/internal/tally"
)

// Scale is a piecewise-linear map from a scalar domain to RGB colours.
type Scale struct {
	domain []float64
	stops  []colorful.Color

	oneParty bool
}

// OneParty scales a single party's share: white at 0, the party colour at
// maxShare.
func OneParty(c colorful.Color, maxShare float64) Scale {
	return Scale{
		domain:   []float64{0, maxShare},
		stops:    []colorful.Color{White, c},
		oneParty: true,
	}
}

// TwoParty scales share0-share1: c1 at -maxDiff[1], white at 0 and c0 at
// +maxDiff[0].
func TwoParty(c0, c1 colorful.Color, maxDiff [2]float64) Scale {
	return Scale{
		domain: []float64{-maxDiff[1], 0, maxDiff[0]},
		stops:  []colorful.Color{c1, White, c0},
	}
}

// Build returns the scale for the selected parties. Identical parties give a
// one-party scale.
func Build(parties [2]string, bounds tally.Bounds, p *Palette) Scale {
	for _, party := range parties {
		if _, ok := p.Lookup(party); !ok {
			slog.Warn("no colour assigned to party, using fallback",
				"party", party, "color", FallbackColor(party).Hex())
		}
	}
	if parties[0] == parties[1] {
		return OneParty(p.Color(parties[0]), bounds.MaxShare[0])
	}
	return TwoParty(p.Color(parties[0]), p.Color(parties[1]), bounds.MaxDiff)
}

// IsOneParty reports whether the scale maps a single party's share.
func (s Scale) IsOneParty() bool {
	return s.oneParty
}

// Domain returns a copy of the scale's domain stops.
func (s Scale) Domain() []float64 {
	return append([]float64(nil), s.domain...)
}

// Input returns the value a poll with the given shares is coloured by.
func (s Scale) Input(shares [2]float64) float64 {
	if s.oneParty {
		return shares[0]
	}
	return shares[0] - shares[1]
}

// At interpolates the colour for v. Values outside the domain clamp to the
// end stops; a zero-width segment yields its first stop.
func (s Scale) At(v float64) colorful.Color {
	n := len(s.domain)
	if n == 0 {
		return White
	}
	if v <= s.domain[0] {
		return s.stops[0]
	}
	if v >= s.domain[n-1] {
		if s.domain[n-1] == s.domain[0] {
			return s.stops[0]
		}
		return s.stops[n-1]
	}
	for i := 1; i < n; i++ {
		lo, hi := s.domain[i-1], s.domain[i]
		if v > hi {
			continue
		}
		if v == hi {
			return s.stops[i]
		}
		t := (v - lo) / (hi - lo)
		return s.stops[i-1].BlendRgb(s.stops[i], t).Clamped()
	}
	return s.stops[n-1]
}

// Hex returns At(v) as a #rrggbb string.
func (s Scale) Hex(v float64) string {
	return s.At(v).Hex()
}

// LegendEntry is one swatch of the legend.
type LegendEntry struct {
	Value float64 `json:"value"`
	Color string  `json:"color"`
	Label string  `json:"label"`
}

// Legend returns the nine legend swatches, top to bottom. One-party legends
// step down from the maximum share in eighths; two-party legends step from
// party0's lead through "Equal" to party1's lead in quarters.
func (s Scale) Legend(parties [2]string, bounds tally.Bounds, p *Palette) []LegendEntry {
	name0, name1 := p.ShortName(parties[0]), p.ShortName(parties[1])
	var values []float64
	var labels []string
	if s.oneParty {
		m := bounds.MaxShare[0]
		values = []float64{m, 0.875 * m, 0.75 * m, 0.625 * m, 0.5 * m, 0.375 * m, 0.25 * m, 0.125 * m, 0}
		labels = []string{
			fmt.Sprintf("%s%% %s", pct(m), name0), "", "", "",
			fmt.Sprintf("%s%% ", pct(0.5*m)), "", "", "",
			"0",
		}
	} else {
		d0, d1 := bounds.MaxDiff[0], bounds.MaxDiff[1]
		values = []float64{d0, 0.75 * d0, 0.5 * d0, 0.25 * d0, 0, -0.25 * d1, -0.5 * d1, -0.75 * d1, -d1}
		labels = []string{
			fmt.Sprintf("%s +%s%%", name0, pct(d0)), "", "", "",
			"Equal", "", "", "",
			fmt.Sprintf("%s +%s%%", name1, pct(d1)),
		}
	}
	out := make([]LegendEntry, len(values))
	for i, v := range values {
		out[i] = LegendEntry{Value: v, Color: s.Hex(v), Label: labels[i]}
	}
	return out
}

// pct formats a fraction as a whole-number percentage. Halves round up.
func pct(f float64) string {
	return strconv.FormatFloat(math.Round(100*f), 'f', 0, 64)
}
