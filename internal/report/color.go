package report

import (
	"github.com/fatih/color"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/canadavotes/canadavotes/internal/colorscale"
)

// Swatch returns a two-cell block painted in hex, or "  " when hex is not a
// valid colour.
func Swatch(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return "  "
	}
	r, g, b := c.RGB255()
	return color.BgRGB(int(r), int(g), int(b)).Sprint("  ")
}

// PartyColor returns a ColorFunc that prints party names in their palette
// colour. Names are matched after TrimParty, so independents stay plain.
func PartyColor(p *colorscale.Palette) ColorFunc {
	return func(party string) string {
		c, ok := p.Lookup(party)
		if !ok {
			return party
		}
		r, g, b := c.RGB255()
		return color.RGB(int(r), int(g), int(b)).Sprint(party)
	}
}

// SectionTitle renders a bold section title.
func SectionTitle(title string) string {
	return color.New(color.Bold).Sprint(title)
}
