package election

import (
	"fmt"
	"strings"
)

// Mode selects which data file a page reads and how its vote counts combine.
type Mode struct {
	// Ontario marks provincial (Elections Ontario) results. Federal otherwise.
	Ontario bool
	// Advance marks files whose poll records carry advance votes and
	// precomputed totals.
	Advance bool
}

// Named modes.
var (
	ModeEday        = Mode{}
	ModeAdvance     = Mode{Advance: true}
	ModeOntario     = Mode{Ontario: true, Advance: true}
	ModeOntarioEday = Mode{Ontario: true}
)

// Modes lists every named mode in display order.
func Modes() []Mode {
	return []Mode{ModeEday, ModeAdvance, ModeOntario, ModeOntarioEday}
}

// String returns the mode name accepted by ParseMode.
func (m Mode) String() string {
	switch {
	case m.Ontario && m.Advance:
		return "ontario"
	case m.Ontario:
		return "ontario-eday"
	case m.Advance:
		return "advance"
	default:
		return "eday"
	}
}

// FileTag returns the <mode> segment of leaflet_data_<mode>_<city>_<year>.json.
// Ontario pages read the ontario file whether or not they include advance votes.
func (m Mode) FileTag() string {
	switch {
	case m.Ontario:
		return "ontario"
	case m.Advance:
		return "advance"
	default:
		return "eday"
	}
}

// Description returns page-description text from which DetectMode recovers m.
func (m Mode) Description() string {
	var b strings.Builder
	if m.Ontario {
		b.WriteString("Ontario provincial election results by poll")
	} else {
		b.WriteString("Canadian federal election results by poll")
	}
	if m.Advance {
		b.WriteString(", including advance votes")
	} else {
		b.WriteString(", election-day votes")
	}
	return b.String()
}

// ParseMode parses a mode name as produced by Mode.String.
func ParseMode(s string) (Mode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, m := range Modes() {
		if m.String() == name {
			return m, nil
		}
	}
	return Mode{}, fmt.Errorf("unknown mode %q (must be eday, advance, ontario, or ontario-eday)", s)
}

// DetectMode derives a mode from page-description text: "dvance" selects
// advance votes and "ntario" selects provincial results.
func DetectMode(description string) Mode {
	return Mode{
		Ontario: strings.Contains(description, "ntario"),
		Advance: strings.Contains(description, "dvance"),
	}
}
