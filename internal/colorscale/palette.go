package colorscale

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// DefaultPartyColors assigns CSS colour names to the parties that appear in
// federal and Ontario results.
var DefaultPartyColors = map[string]string{
	"Conservative": "blue",
	"Progressive Conservative Party of Ontario": "blue",
	"Liberal":                         "red",
	"Ontario Liberal Party":           "red",
	"NDP-New Democratic Party":        "orange",
	"New Democratic Party of Ontario": "orange",
	"Green Party":                     "green",
	"Green Party of Ontario":          "green",
	"Communist":                       "darkred",
	"People's Party - PPC":            "orchid",
	"Bloc Québécois":                  "lightblue",
}

// DefaultShortNames abbreviates long provincial party names in legends.
var DefaultShortNames = map[string]string{
	"Progressive Conservative Party of Ontario": "PCO",
	"Ontario Liberal Party":                     "Liberal",
	"New Democratic Party of Ontario":           "NDP",
	"Green Party of Ontario":                    "Greens",
}

// fallbackColors are handed out to parties missing from the palette.
var fallbackColors = []string{
	"slategray", "teal", "goldenrod", "sienna", "purple", "olive", "darkcyan", "indianred",
}

// White is the neutral end of every scale.
var White = colorful.Color{R: 1, G: 1, B: 1}

// Palette resolves party names to colours.
type Palette struct {
	colors map[string]colorful.Color
	short  map[string]string
}

// NewPalette builds a palette from party→colour and party→short-name maps.
// Colours may be CSS names or hex strings. Unknown colour strings are errors.
func NewPalette(colors, shortNames map[string]string) (*Palette, error) {
	p := &Palette{
		colors: make(map[string]colorful.Color, len(colors)),
		short:  make(map[string]string, len(shortNames)),
	}
	for party, name := range colors {
		c, err := ParseColor(name)
		if err != nil {
			return nil, fmt.Errorf("party %q: %w", party, err)
		}
		p.colors[party] = c
	}
	for party, short := range shortNames {
		p.short[party] = short
	}
	return p, nil
}

// DefaultPalette returns the built-in palette.
func DefaultPalette() *Palette {
	p, err := NewPalette(DefaultPartyColors, DefaultShortNames)
	if err != nil {
		panic(err) // built-in names are valid CSS colours
	}
	return p
}

// WithOverrides returns a copy of p with extra colours and short names.
func (p *Palette) WithOverrides(colors, shortNames map[string]string) (*Palette, error) {
	merged := make(map[string]string, len(p.colors)+len(colors))
	for party, c := range p.colors {
		merged[party] = c.Hex()
	}
	for party, c := range colors {
		merged[party] = c
	}
	short := make(map[string]string, len(p.short)+len(shortNames))
	for party, s := range p.short {
		short[party] = s
	}
	for party, s := range shortNames {
		short[party] = s
	}
	return NewPalette(merged, short)
}

// Lookup returns a party's colour and whether the palette defines it.
func (p *Palette) Lookup(party string) (colorful.Color, bool) {
	c, ok := p.colors[party]
	return c, ok
}

// Color returns a party's colour. Parties missing from the palette get a
// deterministic fallback chosen by hashing the name.
func (p *Palette) Color(party string) colorful.Color {
	if c, ok := p.colors[party]; ok {
		return c
	}
	return FallbackColor(party)
}

// ShortName returns the legend label for a party.
func (p *Palette) ShortName(party string) string {
	if s, ok := p.short[party]; ok {
		return s
	}
	return party
}

// FallbackColor returns the colour assigned to a party outside the palette.
func FallbackColor(party string) colorful.Color {
	h := fnv.New32a()
	_, _ = h.Write([]byte(party))
	c, _ := ParseColor(fallbackColors[h.Sum32()%uint32(len(fallbackColors))])
	return c
}

// ParseColor accepts a CSS colour name or a #rrggbb hex string.
func ParseColor(s string) (colorful.Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return colorful.Color{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
		}
		return c, nil
	}
	rgba, ok := colornames.Map[strings.ToLower(s)]
	if !ok {
		return colorful.Color{}, fmt.Errorf("unknown colour name %q", s)
	}
	c, _ := colorful.MakeColor(rgba)
	return c, nil
}

// TrimParty shows every independent candidate's party as "Independent".
func TrimParty(party string) string {
	if strings.HasPrefix(party, "Independent") {
		return "Independent"
	}
	return party
}
