// Package view holds the immutable render state and turns it into a
// Rendering: styled polls, legend, riding tables and labels. Hosts (the
// terminal browser, the HTML exporter) only consume Renderings.
package view

import (
	"errors"
	"strings"

	"github.com/canadavotes/canadavotes/internal/election"
)

// ErrNoData is returned when rendering a view whose bundle has not loaded.
var ErrNoData = errors.New("no election data loaded")

// ErrNoParties is returned when rendering a view without a selected party.
var ErrNoParties = errors.New("no party selected")

// Selection is the state of the form controls.
type Selection struct {
	City    string
	Year    int
	Parties [2]string
}

// Normalize trims names and fills an empty second party with the first,
// which selects the one-party scale.
func (s Selection) Normalize() Selection {
	s.City = strings.TrimSpace(s.City)
	s.Parties[0] = strings.TrimSpace(s.Parties[0])
	s.Parties[1] = strings.TrimSpace(s.Parties[1])
	if s.Parties[1] == "" {
		s.Parties[1] = s.Parties[0]
	}
	if s.Parties[0] == "" {
		s.Parties[0] = s.Parties[1]
	}
	return s
}

// View is the current render state. Values are never mutated in place; every
// change produces a new View through Transition or WithBundle.
type View struct {
	Mode    election.Mode
	City    string
	Year    int
	Parties [2]string

	// Generation is the load generation Bundle came from, or the one the
	// view is waiting for while Bundle is nil.
	Generation uint64
	Bundle     *election.Bundle
}

// New returns an empty view for mode.
func New(mode election.Mode) View {
	return View{Mode: mode}
}

// OneParty reports whether both selected parties are the same.
func (v View) OneParty() bool {
	return v.Parties[0] == v.Parties[1]
}

// Loaded reports whether the view has data to render.
func (v View) Loaded() bool {
	return v.Bundle != nil
}

// Transition applies a form selection to cur. A fetch is needed when the
// city or year changed or nothing is loaded yet; the returned view then
// carries no bundle and the next generation number.
func Transition(cur View, sel Selection) (next View, needsFetch bool) {
	sel = sel.Normalize()
	next = cur
	next.Parties = sel.Parties
	if sel.City != cur.City || sel.Year != cur.Year || cur.Bundle == nil {
		next.City = sel.City
		next.Year = sel.Year
		next.Bundle = nil
		next.Generation = cur.Generation + 1
		return next, true
	}
	return next, false
}

// WithBundle attaches a loaded bundle. Bundles from a generation older than
// the one v waits for are refused.
func (v View) WithBundle(gen uint64, b *election.Bundle) (View, bool) {
	if gen < v.Generation {
		return v, false
	}
	v.Generation = gen
	v.Bundle = b
	return v, true
}

// Selection returns the form state that produced v.
func (v View) Selection() Selection {
	return Selection{City: v.City, Year: v.Year, Parties: v.Parties}
}
