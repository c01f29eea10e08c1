package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/canadavotes/canadavotes/internal/interaction"
)

type keyMap struct {
	Tab       key.Binding
	City      key.Binding
	Year      key.Binding
	Party1    key.Binding
	Party2    key.Binding
	Refresh   key.Binding
	ResetZoom key.Binding
	FitRiding key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:       key.NewBinding(key.WithKeys(interaction.KeyTab), key.WithHelp("tab", "next poll")),
		City:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "city")),
		Year:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "year")),
		Party1:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "party 1")),
		Party2:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "party 2")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		ResetZoom: key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "reset zoom")),
		FitRiding: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fit riding")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.City, k.Year, k.Party1, k.Party2, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.FitRiding, k.ResetZoom},
		{k.City, k.Year, k.Party1, k.Party2, k.Refresh},
		{k.Help, k.Quit},
	}
}
