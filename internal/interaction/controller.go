// Package interaction tracks which poll is highlighted in each riding and
// turns pointer and keyboard events into display effects.
//
// The Controller holds no rendering state of its own. Every event returns an
// Update describing what the host should do: restyle polls, refresh the info
// panel, zoom the map or swallow the key press.
package interaction

import (
	"sort"
	"strings"
)

// KeyTab is the key name that cycles through a riding's polls.
const KeyTab = "tab"

// PollRef identifies one poll by riding id and its index within the riding's
// vote collection.
type PollRef struct {
	Riding string
	Index  int
}

// RidingContext is the selection state of one riding. Selected is -1 until a
// poll in the riding has been hovered.
type RidingContext struct {
	ID       string
	Polls    int
	Selected int
}

// Update lists the effects of one event.
type Update struct {
	// Unhighlight polls restored to their base style.
	Unhighlight []PollRef
	// ResetAll restores every poll in every riding.
	ResetAll bool
	// Highlight is the poll drawn with the highlight style.
	Highlight *PollRef
	// Info is the poll shown in the info panel.
	Info *PollRef
	// InfoIdle switches the info panel to its idle text.
	InfoIdle bool
	// ZoomTo asks the host to fit the viewport to a poll.
	ZoomTo *PollRef
	// PreventDefault tells the host to swallow the key press.
	PreventDefault bool
}

// Empty reports whether the update has no effects.
func (u Update) Empty() bool {
	return len(u.Unhighlight) == 0 && !u.ResetAll && u.Highlight == nil &&
		u.Info == nil && !u.InfoIdle && u.ZoomTo == nil && !u.PreventDefault
}

// Controller is the per-render interaction state machine. It is not safe for
// concurrent use; hosts drive it from their single event loop.
type Controller struct {
	ridings map[string]*RidingContext
	active  string
}

// NewController returns a controller for ridings keyed by id with the given
// poll counts.
func NewController(polls map[string]int) *Controller {
	c := &Controller{}
	c.Reset(polls)
	return c
}

// Reset discards all selection state and rebuilds it for a new render cycle.
func (c *Controller) Reset(polls map[string]int) {
	c.ridings = make(map[string]*RidingContext, len(polls))
	for id, n := range polls {
		c.ridings[id] = &RidingContext{ID: id, Polls: n, Selected: -1}
	}
	c.active = ""
}

// Active returns the riding the pointer last entered, or "" if none.
func (c *Controller) Active() string {
	return c.active
}

// Riding returns a copy of a riding's selection state.
func (c *Controller) Riding(id string) (RidingContext, bool) {
	rc, ok := c.ridings[id]
	if !ok {
		return RidingContext{}, false
	}
	return *rc, true
}

// Ridings returns the ids of every tracked riding in sorted order.
func (c *Controller) Ridings() []string {
	ids := make([]string, 0, len(c.ridings))
	for id := range c.ridings {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (c *Controller) valid(ref PollRef) bool {
	rc, ok := c.ridings[ref.Riding]
	return ok && ref.Index >= 0 && ref.Index < rc.Polls
}

// HoverEnter highlights the poll under the pointer and makes its riding the
// target of Tab cycling.
func (c *Controller) HoverEnter(ref PollRef) Update {
	if !c.valid(ref) {
		return Update{}
	}
	c.ridings[ref.Riding].Selected = ref.Index
	c.active = ref.Riding
	return Update{Highlight: &ref, Info: &ref}
}

// HoverExit clears every highlight and deactivates Tab cycling.
func (c *Controller) HoverExit(PollRef) Update {
	c.active = ""
	return Update{ResetAll: true, InfoIdle: true}
}

// Click zooms to the poll without touching selection state.
func (c *Controller) Click(ref PollRef) Update {
	if !c.valid(ref) {
		return Update{}
	}
	return Update{ZoomTo: &ref}
}

// Key handles a key press. Tab is always swallowed; it advances the active
// riding's selection circularly when a riding is active.
func (c *Controller) Key(name string) Update {
	if !strings.EqualFold(name, KeyTab) {
		return Update{}
	}
	u := Update{PreventDefault: true}
	rc, ok := c.ridings[c.active]
	if !ok || rc.Polls == 0 {
		return u
	}
	if rc.Selected >= 0 {
		u.Unhighlight = []PollRef{{Riding: rc.ID, Index: rc.Selected}}
	}
	rc.Selected = (rc.Selected + 1) % rc.Polls
	next := PollRef{Riding: rc.ID, Index: rc.Selected}
	u.Highlight = &next
	u.Info = &next
	return u
}
