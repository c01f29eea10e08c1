package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/canadavotes/canadavotes/internal/catalog"
	"github.com/canadavotes/canadavotes/internal/election"
	"github.com/canadavotes/canadavotes/internal/report"
)

// Catalog-specific flag values.
var catalogSel selectionFlags

// catalogCmd lists the published datasets.
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the cities and election years with published data",
	Long: `List the metro areas and election years a data file is published for.

The built-in catalog is used unless the data directory holds a catalog.toml.
Without --mode both the federal and the Ontario catalogs are listed.`,
	Args: cobra.NoArgs,
	RunE: runCatalog,
}

func init() {
	catalogCmd.Flags().StringVarP(&catalogSel.mode, "mode", "m", "", "only list the datasets of this election mode")
	catalogCmd.Flags().StringVar(&catalogSel.data, "data", "", "data directory or base URL (default: resources/data)")
}

func runCatalog(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd, &catalogSel)
	if err != nil {
		return err
	}

	sections := []catalogSection{
		{"Federal", election.ModeEday},
		{"Ontario", election.ModeOntario},
	}
	if cmd.Flags().Changed("mode") {
		sections = sections[:1]
		if s.mode.Ontario {
			sections = []catalogSection{{"Ontario", s.mode}}
		}
	}

	w := cmd.OutOrStdout()
	for i, sec := range sections {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := jurisdictionTable(sec.title, s.catalog.For(sec.mode)).Render(w); err != nil {
			return exitError(ExitTotalFailure, "canadavotes: %v", err)
		}
	}
	return nil
}

type catalogSection struct {
	title string
	mode  election.Mode
}

func jurisdictionTable(title string, j *catalog.Jurisdiction) *report.Table {
	years := make([]string, len(j.Years))
	for i, y := range j.Years {
		years[i] = strconv.Itoa(y)
	}
	tbl := report.NewTable(
		report.Column{Header: "City"},
		report.Column{Header: "Name"},
		report.Column{Header: "Years"},
	)
	tbl.SetTitle(title)
	for _, c := range j.Cities {
		id := c.ID
		if id == j.Default() {
			id += " *"
		}
		tbl.AddRow(id, j.CityName(c.ID), strings.Join(years, " "))
	}
	return tbl
}
