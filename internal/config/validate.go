package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/canadavotes/canadavotes/internal/colorscale"
	"github.com/canadavotes/canadavotes/internal/election"
	"github.com/canadavotes/canadavotes/internal/output"
)

// MaxExportConcurrency caps export_concurrency.
const MaxExportConcurrency = 64

// Validate checks all fields in the config and returns all errors at once.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.OutputFormat != "" {
		if _, err := output.GetFormatter(cfg.OutputFormat); err != nil {
			errs = append(errs, fmt.Sprintf("output_format: %v", err))
		}
	}

	if cfg.Mode != "" {
		if _, err := election.ParseMode(cfg.Mode); err != nil {
			errs = append(errs, fmt.Sprintf("mode: %v", err))
		}
	}

	if cfg.Year != 0 && (cfg.Year < 1867 || cfg.Year > 2100) {
		errs = append(errs, fmt.Sprintf("year: must be an election year, got %d", cfg.Year))
	}

	if len(cfg.Parties) > 2 {
		errs = append(errs, fmt.Sprintf("parties: at most two parties can be compared, got %d", len(cfg.Parties)))
	}

	parties := make([]string, 0, len(cfg.PartyColors))
	for party := range cfg.PartyColors {
		parties = append(parties, party)
	}
	sort.Strings(parties)
	for _, party := range parties {
		if _, err := colorscale.ParseColor(cfg.PartyColors[party]); err != nil {
			errs = append(errs, fmt.Sprintf("party_colors.%s: %v", party, err))
		}
	}

	if cfg.ExportConcurrency < 0 || cfg.ExportConcurrency > MaxExportConcurrency {
		errs = append(errs, fmt.Sprintf("export_concurrency: must be between 0 and %d, got %d",
			MaxExportConcurrency, cfg.ExportConcurrency))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
