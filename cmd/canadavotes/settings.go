package main

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/canadavotes/canadavotes/internal/catalog"
	"github.com/canadavotes/canadavotes/internal/colorscale"
	"github.com/canadavotes/canadavotes/internal/config"
	"github.com/canadavotes/canadavotes/internal/election"
	"github.com/canadavotes/canadavotes/internal/loader"
	"github.com/canadavotes/canadavotes/internal/view"
)

// selectionFlags are the map selection flags shared by render, export and
// browse. Set flags override the config files.
type selectionFlags struct {
	mode    string
	city    string
	year    int
	parties []string
	data    string
}

// register adds the selection flags to fs.
func (f *selectionFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.mode, "mode", "m", "", "election mode: eday, advance, ontario, or ontario-eday")
	fs.StringVar(&f.city, "city", "", "metro area id (see 'canadavotes catalog')")
	fs.IntVar(&f.year, "year", 0, "election year (default: latest)")
	fs.StringSliceVarP(&f.parties, "party", "p", nil, "party to map; give twice to map the difference between two parties")
	fs.StringVar(&f.data, "data", "", "data directory or base URL (default: resources/data)")
}

// registerCompletions completes --mode, --city and --year from the
// built-in catalog.
func registerCompletions(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("mode", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		modes := election.Modes()
		names := make([]string, len(modes))
		for i, m := range modes {
			names[i] = m.String()
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("city", func(c *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return catalog.Default().For(completionMode(c)).CityIDs(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("year", func(c *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		years := catalog.Default().For(completionMode(c)).Years
		out := make([]string, len(years))
		for i, y := range years {
			out[i] = strconv.Itoa(y)
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	})
}

// completionMode returns the mode typed so far, or eday.
func completionMode(cmd *cobra.Command) election.Mode {
	name, _ := cmd.Flags().GetString("mode")
	if m, err := election.ParseMode(name); err == nil {
		return m
	}
	return election.ModeEday
}

// apply overlays the flags that were set on cmd onto cfg.
func (f *selectionFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("mode") {
		cfg.Mode = f.mode
	}
	if flags.Changed("city") {
		cfg.City = f.city
	}
	if flags.Changed("year") {
		cfg.Year = f.year
	}
	if flags.Changed("party") {
		cfg.Parties = f.parties
	}
	if flags.Changed("data") {
		cfg.DataURL = f.data
	}
}

// settings is the resolved configuration of one command run.
type settings struct {
	cfg     *config.Config
	mode    election.Mode
	palette *colorscale.Palette
	catalog *catalog.Catalog
	source  loader.Source
}

// loadSettings merges global config, repo config, environment and flags
// (lowest to highest precedence), validates the result and opens the data
// source. Local data directories may carry their own catalog.
func loadSettings(cmd *cobra.Command, sel *selectionFlags) (*settings, error) {
	cfg, err := config.Resolve(".", os.Getenv)
	if err != nil {
		return nil, exitError(ExitInvalidArgs, "canadavotes: %v", err)
	}
	if sel != nil {
		sel.apply(cmd, cfg)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, exitError(ExitInvalidArgs, "canadavotes: %v", err)
	}

	mode, err := cfg.ResolveMode()
	if err != nil {
		return nil, exitError(ExitInvalidArgs, "canadavotes: %v", err)
	}
	palette, err := cfg.Palette()
	if err != nil {
		return nil, exitError(ExitInvalidArgs, "canadavotes: %v", err)
	}

	s := &settings{cfg: cfg, mode: mode, palette: palette, catalog: catalog.Default()}
	s.source = loader.NewSource(cfg.DataSource(), cmdFS)
	switch src := s.source.(type) {
	case *loader.HTTPSource:
		src.Token = os.Getenv(config.EnvDataToken)
	case *loader.DirSource:
		cat, err := catalog.Load(cmdFS, src.Dir)
		if err != nil {
			return nil, exitError(ExitInvalidArgs, "canadavotes: %v", err)
		}
		s.catalog = cat
	}
	slog.Debug("resolved settings", "mode", mode, "data", cfg.DataSource())
	return s, nil
}

// selection returns the configured selection with unknown cities and years
// replaced by the catalog defaults and the first catalog party filled in
// when none is configured.
func (s *settings) selection() view.Selection {
	sel := view.Selection{City: s.cfg.City, Year: s.cfg.Year, Parties: s.cfg.PartyPair()}
	city, year, changed := s.catalog.Resolve(s.mode, sel.City, sel.Year)
	if changed && (sel.City != "" || sel.Year != 0) {
		slog.Warn("selection not in catalog, using default",
			"city", sel.City, "year", sel.Year, "using_city", city, "using_year", year)
	}
	sel.City, sel.Year = city, year
	if sel.Parties[0] == "" && sel.Parties[1] == "" {
		if parties := s.catalog.For(s.mode).Parties; len(parties) > 0 {
			sel.Parties[0] = parties[0]
		}
	}
	return sel.Normalize()
}
