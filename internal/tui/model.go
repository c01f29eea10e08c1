// Package tui is an interactive terminal choropleth. Hovering a poll shows
// its results, Tab cycles through the polls of the hovered riding and a
// click zooms to the poll. f fits the map to a riding.
package tui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/twpayne/go-geom"
	"golang.org/x/text/language"

	"github.com/canadavotes/canadavotes/internal/catalog"
	"github.com/canadavotes/canadavotes/internal/colorscale"
	"github.com/canadavotes/canadavotes/internal/election"
	"github.com/canadavotes/canadavotes/internal/interaction"
	"github.com/canadavotes/canadavotes/internal/loader"
	"github.com/canadavotes/canadavotes/internal/report"
	"github.com/canadavotes/canadavotes/internal/view"
)

// UnavailableText replaces the map when a bundle cannot be loaded.
const UnavailableText = "data unavailable"

const (
	panelWidth   = 44
	headerHeight = 1
	footerHeight = 2
)

// Options configures a Model.
type Options struct {
	Mode      election.Mode
	Selection view.Selection
	Catalog   *catalog.Catalog
	Source    loader.Source
	Palette   *colorscale.Palette
	Context   context.Context
}

// loadedMsg carries the result of one bundle load.
type loadedMsg struct {
	gen    uint64
	bundle *election.Bundle
	err    error
}

// Model is the bubbletea model of the browser.
type Model struct {
	ctx     context.Context
	catalog *catalog.Catalog
	loader  *loader.Loader
	palette *colorscale.Palette

	view      view.View
	rendering *view.Rendering
	ctrl      *interaction.Controller
	highlight map[interaction.PollRef]bool
	hover     *interaction.PollRef
	info      view.Info
	zoom      *geom.Bounds
	focus     string
	grid      *grid

	width, height int
	status        string
	err           error

	keys keyMap
	help help.Model
}

// New returns a model for opts. The first load starts from Init.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	cat := opts.Catalog
	if cat == nil {
		cat = catalog.Default()
	}
	palette := opts.Palette
	if palette == nil {
		palette = colorscale.DefaultPalette()
	}
	sel := opts.Selection
	sel.City, sel.Year, _ = cat.Resolve(opts.Mode, sel.City, sel.Year)
	if sel.Parties[0] == "" && sel.Parties[1] == "" {
		if parties := cat.For(opts.Mode).Parties; len(parties) > 0 {
			sel.Parties[0] = parties[0]
		}
	}

	v, _ := view.Transition(view.New(opts.Mode), sel)
	return Model{
		ctx:       ctx,
		catalog:   cat,
		loader:    loader.New(opts.Source),
		palette:   palette,
		view:      v,
		ctrl:      interaction.NewController(nil),
		highlight: map[interaction.PollRef]bool{},
		info:      view.IdleInfo(v.Year),
		status:    "loading…",
		keys:      defaultKeys(),
		help:      help.New(),
	}
}

// Init starts loading the initial selection.
func (m Model) Init() tea.Cmd {
	return m.load(m.view)
}

func (m Model) load(v view.View) tea.Cmd {
	l, ctx := m.loader, m.ctx
	req := loader.Request{Generation: v.Generation, Mode: v.Mode, City: v.City, Year: v.Year}
	return func() tea.Msg {
		b, err := l.Load(ctx, req)
		return loadedMsg{gen: req.Generation, bundle: b, err: err}
	}
}

// Update handles one message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.relayout()
	case loadedMsg:
		return m.loaded(msg), nil
	case tea.MouseMsg:
		return m.mouse(msg), nil
	case tea.KeyMsg:
		return m.key(msg)
	}
	return m, nil
}

func (m Model) loaded(msg loadedMsg) Model {
	if errors.Is(msg.err, loader.ErrStale) {
		return m
	}
	if msg.err != nil {
		if msg.gen == m.view.Generation {
			slog.Warn("load failed", "error", msg.err)
			m.err = msg.err
			m.status = UnavailableText
			m.rendering = nil
			m.relayout()
		}
		return m
	}
	v, ok := m.view.WithBundle(msg.gen, msg.bundle)
	if !ok {
		return m
	}
	m.view = v
	m.err = nil
	m.zoom = nil
	m.focus = ""
	return m.rerender()
}

// rerender rebuilds the rendering for the current view and resets all
// interaction state.
func (m Model) rerender() Model {
	r, err := view.Render(m.view, m.palette)
	if err != nil {
		m.err = err
		m.status = err.Error()
		m.rendering = nil
		m.relayout()
		return m
	}
	m.rendering = r
	m.ctrl.Reset(r.PollCounts())
	m.highlight = map[interaction.PollRef]bool{}
	m.hover = nil
	m.info = r.Info(nil)
	m.status = fmt.Sprintf("%d polls", r.Bounds.Polls)
	if r.Bounds.EmptyPolls > 0 {
		m.status += fmt.Sprintf(", %d without votes", r.Bounds.EmptyPolls)
	}
	m.relayout()
	return m
}

func (m *Model) relayout() {
	w, h := m.mapSize()
	extent := m.zoom
	if extent == nil && m.rendering != nil {
		extent = m.rendering.Extent
	}
	m.grid = rasterize(m.rendering, extent, w, h)
}

func (m Model) mapSize() (w, h int) {
	w = max(10, m.width-panelWidth-1)
	h = max(4, m.height-headerHeight-footerHeight)
	return w, h
}

// applySelection applies a form change, fetching when the city or year changed.
func (m Model) applySelection(sel view.Selection) (Model, tea.Cmd) {
	next, fetch := view.Transition(m.view, sel)
	m.view = next
	if fetch {
		m.status = "loading…"
		return m, m.load(next)
	}
	return m.rerender(), nil
}

func (m Model) key(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sel := m.view.Selection()
	j := m.catalog.For(m.view.Mode)
	switch {
	case key.Matches(msg, m.keys.Tab):
		// Tab never reaches anything else.
		return m.apply(m.ctrl.Key(msg.String())), nil
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.City):
		sel.City = catalog.Next(j.CityIDs(), sel.City)
		return m.applySelection(sel)
	case key.Matches(msg, m.keys.Year):
		sel.Year = catalog.Next(j.Years, sel.Year)
		return m.applySelection(sel)
	case key.Matches(msg, m.keys.Party1):
		sel.Parties[0] = catalog.Next(m.partyChoices(), sel.Parties[0])
		return m.applySelection(sel)
	case key.Matches(msg, m.keys.Party2):
		sel.Parties[1] = catalog.Next(m.partyChoices(), sel.Parties[1])
		return m.applySelection(sel)
	case key.Matches(msg, m.keys.Refresh):
		cur := m.view
		cur.Bundle = nil
		next, _ := view.Transition(cur, sel)
		m.view = next
		m.status = "loading…"
		return m, m.load(next)
	case key.Matches(msg, m.keys.ResetZoom):
		m.zoom = nil
		m.focus = ""
		m.relayout()
	case key.Matches(msg, m.keys.FitRiding):
		return m.fitRiding(), nil
	}
	return m, nil
}

// fitRiding zooms to the hovered riding, or to the next riding in table
// order when none is hovered.
func (m Model) fitRiding() Model {
	if m.rendering == nil {
		return m
	}
	name := ""
	if l := m.rendering.Riding(m.ctrl.Active()); l != nil {
		name = l.Name
	} else {
		names := make([]string, len(m.rendering.Ridings))
		for i, l := range m.rendering.Ridings {
			names[i] = l.Name
		}
		name = catalog.Next(names, m.focus)
	}
	b := m.rendering.RidingExtent(name)
	if b == nil {
		return m
	}
	m.focus = name
	m.zoom = b
	m.relayout()
	return m
}

// partyChoices lists the parties the form cycles through: the catalog's
// list, or the parties present in the loaded bundle.
func (m Model) partyChoices() []string {
	if parties := m.catalog.For(m.view.Mode).Parties; len(parties) > 0 {
		return parties
	}
	if m.view.Bundle == nil {
		return nil
	}
	seen := map[string]bool{}
	var out []string
	for _, id := range m.view.Bundle.RidingIDs() {
		for _, p := range m.view.Bundle.Riding(id).Parties() {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return out
}

func (m Model) mouse(msg tea.MouseMsg) Model {
	if m.rendering == nil {
		return m
	}
	c, inside := m.grid.at(msg.X, msg.Y-headerHeight)
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if inside && c.ok {
			return m.apply(m.ctrl.Click(c.ref))
		}
	case msg.Action == tea.MouseActionMotion:
		if inside && c.ok {
			if m.hover != nil && *m.hover == c.ref {
				return m
			}
			if m.hover != nil {
				m = m.apply(m.ctrl.HoverExit(*m.hover))
			}
			ref := c.ref
			m.hover = &ref
			return m.apply(m.ctrl.HoverEnter(ref))
		}
		if m.hover != nil {
			prev := *m.hover
			m.hover = nil
			return m.apply(m.ctrl.HoverExit(prev))
		}
	}
	return m
}

// apply carries out the effects of a controller update.
func (m Model) apply(u interaction.Update) Model {
	if m.rendering == nil {
		return m
	}
	if u.ResetAll {
		m.highlight = map[interaction.PollRef]bool{}
	}
	for _, ref := range u.Unhighlight {
		delete(m.highlight, ref)
	}
	if u.Highlight != nil {
		m.highlight[*u.Highlight] = true
	}
	if u.Info != nil {
		m.info = m.rendering.Info(u.Info)
	}
	if u.InfoIdle {
		m.info = m.rendering.Info(nil)
	}
	if u.ZoomTo != nil {
		m.zoom = m.rendering.PollExtent(*u.ZoomTo)
		m.relayout()
	}
	return m
}

// View renders the screen.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	w, h := m.mapSize()
	mapView := lipgloss.NewStyle().Width(w).Height(h).Render(m.drawMap())
	body := lipgloss.JoinHorizontal(lipgloss.Top, mapView, " ", m.drawPanel())

	status := dimStyle.Render(" " + m.status)
	if m.err != nil {
		status = errorStyle.Render(" " + m.status)
	}
	footer := lipgloss.JoinVertical(lipgloss.Left, status, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, m.header(), body, footer)
}

func (m Model) header() string {
	j := m.catalog.For(m.view.Mode)
	parties := m.view.Parties[0]
	if !m.view.OneParty() {
		parties = fmt.Sprintf("%s vs %s", m.view.Parties[0], m.view.Parties[1])
	}
	return titleStyle.Render(fmt.Sprintf(" Canada votes  %s %d  %s  (%s)",
		j.CityName(m.view.City), m.view.Year, parties, m.view.Mode))
}

func (m Model) drawMap() string {
	if m.rendering == nil {
		if m.err != nil {
			return errorStyle.Render(UnavailableText)
		}
		return dimStyle.Render(m.status)
	}
	var b strings.Builder
	for row := 0; row < m.grid.h; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		var run strings.Builder
		var runStyle lipgloss.Style
		runKey := ""
		flush := func() {
			if run.Len() > 0 {
				b.WriteString(runStyle.Render(run.String()))
				run.Reset()
			}
		}
		for col := 0; col < m.grid.w; col++ {
			c, _ := m.grid.at(col, row)
			ch, style, k := m.cellStyle(c)
			if k != runKey {
				flush()
				runStyle, runKey = style, k
			}
			run.WriteRune(ch)
		}
		flush()
	}
	return b.String()
}

func (m Model) cellStyle(c cell) (rune, lipgloss.Style, string) {
	if !c.ok {
		if c.label != 0 {
			return c.label, dimStyle, "label"
		}
		return ' ', lipgloss.NewStyle(), ""
	}
	fill := "#ffffff"
	if p := m.rendering.Poll(c.ref); p != nil {
		fill = p.Fill
	}
	style := lipgloss.NewStyle().Background(lipgloss.Color(fill))
	switch {
	case c.label != 0:
		return c.label, style.Foreground(markFg).Bold(true), fill + "L"
	case m.highlight[c.ref]:
		return '▒', style.Foreground(markFg), fill + "H"
	case c.edge:
		return '│', style.Foreground(edgeFg), fill + "E"
	}
	return ' ', style, fill
}

func (m Model) drawPanel() string {
	inner := panelWidth - 4
	var info strings.Builder
	info.WriteString(headerStyle.Render(m.info.Title))
	if m.info.Heading != "" {
		info.WriteString("\n" + m.info.Heading)
	}
	for _, line := range m.info.Lines {
		info.WriteString("\n" + line)
	}
	if m.info.Hint != "" {
		info.WriteString("\n" + dimStyle.Render(m.info.Hint))
	}
	sections := []string{boxStyle.Width(inner).Render(info.String())}

	if m.rendering != nil {
		var legend strings.Builder
		for i, e := range m.rendering.Legend {
			if i > 0 {
				legend.WriteByte('\n')
			}
			legend.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(e.Color)).Render("  "))
			legend.WriteString(" " + e.Label)
		}
		sections = append(sections, boxStyle.Width(inner).Render(legend.String()))

		if table := m.activeTable(); table != "" {
			sections = append(sections, table)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// activeTable renders the results of the riding under the pointer.
func (m Model) activeTable() string {
	id := m.ctrl.Active()
	if id == "" {
		return ""
	}
	layer := m.rendering.Riding(id)
	if layer == nil {
		return ""
	}
	var buf bytes.Buffer
	t := report.FromView(layer.Table, language.English, report.PartyColor(m.palette))
	if err := t.Render(&buf); err != nil {
		return ""
	}
	return strings.TrimRight(buf.String(), "\n")
}

// Run starts the browser on the terminal and blocks until it quits.
func Run(opts Options) error {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(opts.Context))
	_, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("browse: %w", err)
	}
	return nil
}
