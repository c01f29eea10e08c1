// Package config handles .canadavotes.yaml configuration files.
package config

import (
	"fmt"

	"github.com/canadavotes/canadavotes/internal/colorscale"
	"github.com/canadavotes/canadavotes/internal/election"
)

// Config represents the contents of a .canadavotes.yaml file.
type Config struct {
	// DataURL is the base URL or directory holding leaflet_data files.
	DataURL string `yaml:"data_url,omitempty"`
	// Mode is eday, advance, ontario or ontario-eday.
	Mode string `yaml:"mode,omitempty"`
	// PageDescription selects the mode the way a page's meta description
	// does when Mode is unset.
	PageDescription string `yaml:"page_description,omitempty"`

	City    string   `yaml:"city,omitempty"`
	Year    int      `yaml:"year,omitempty"`
	Parties []string `yaml:"parties,omitempty"`

	OutputFormat string            `yaml:"output_format,omitempty"`
	PartyColors  map[string]string `yaml:"party_colors,omitempty"`
	ShortNames   map[string]string `yaml:"short_names,omitempty"`

	ExportConcurrency int `yaml:"export_concurrency,omitempty"`
}

// FileName is the expected config file name in the working directory.
const FileName = ".canadavotes.yaml"

// EnvDataURL overrides data_url from config files.
const EnvDataURL = "CANADAVOTES_DATA_URL"

// EnvDataToken holds a bearer token sent with HTTP data requests. It is
// never read from config files.
const EnvDataToken = "CANADAVOTES_DATA_TOKEN"

// DefaultDataURL is used when no data_url is configured.
const DefaultDataURL = "resources/data"

// ResolveMode returns the configured mode. An explicit mode wins over the
// page description; with neither, election-day federal results are shown.
func (c *Config) ResolveMode() (election.Mode, error) {
	switch {
	case c.Mode != "":
		return election.ParseMode(c.Mode)
	case c.PageDescription != "":
		return election.DetectMode(c.PageDescription), nil
	default:
		return election.ModeEday, nil
	}
}

// Palette returns the built-in palette with party_colors and short_names
// applied.
func (c *Config) Palette() (*colorscale.Palette, error) {
	p, err := colorscale.DefaultPalette().WithOverrides(c.PartyColors, c.ShortNames)
	if err != nil {
		return nil, fmt.Errorf("party_colors: %w", err)
	}
	return p, nil
}

// PartyPair returns the configured parties as the form's two selections.
func (c *Config) PartyPair() [2]string {
	var out [2]string
	copy(out[:], c.Parties)
	return out
}

// DataSource returns DataURL, or DefaultDataURL when unset.
func (c *Config) DataSource() string {
	if c.DataURL == "" {
		return DefaultDataURL
	}
	return c.DataURL
}
