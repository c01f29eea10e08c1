package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/canadavotes/canadavotes/internal/election"
	"github.com/canadavotes/canadavotes/internal/export"
	"github.com/canadavotes/canadavotes/internal/output"
	"github.com/canadavotes/canadavotes/internal/report"
)

// DefaultSiteDir is where export writes and serve reads the static site.
const DefaultSiteDir = "site"

// Export-specific flag values.
var (
	exportSel         selectionFlags
	exportOut         string
	exportFormats     []string
	exportConcurrency int
	exportAllModes    bool
)

// exportCmd writes a static site of maps.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export maps for every city and year as a static site",
	Long: `Render a map for every city and election year in the catalog and write
them below the output directory as <mode>/<city>_<year>.html (and .geojson),
together with an index.html linking every page.

Setting --city or --year exports that selection only. A failed map does not
stop the others; the exit code is 2 when some maps failed and 3 when all did.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportSel.register(exportCmd.Flags())
	registerCompletions(exportCmd)
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", DefaultSiteDir, "output directory")
	exportCmd.Flags().StringSliceVarP(&exportFormats, "format", "f", nil, "output formats (default: html,geojson)")
	exportCmd.Flags().IntVarP(&exportConcurrency, "concurrency", "j", 0,
		fmt.Sprintf("maps rendered at once (default %d)", export.DefaultConcurrency))
	exportCmd.Flags().BoolVar(&exportAllModes, "all-modes", false, "export every election mode")
}

func runExport(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd, &exportSel)
	if err != nil {
		return err
	}

	formats := make([]output.Formatter, 0, len(exportFormats))
	for _, name := range exportFormats {
		f, err := output.GetFormatter(strings.TrimSpace(name))
		if err != nil {
			return exitError(ExitInvalidArgs, "canadavotes: %v", err)
		}
		formats = append(formats, f)
	}

	concurrency := s.cfg.ExportConcurrency
	if cmd.Flags().Changed("concurrency") {
		if exportConcurrency < 1 {
			return exitError(ExitInvalidArgs, "canadavotes: --concurrency must be at least 1, got %d", exportConcurrency)
		}
		concurrency = exportConcurrency
	}

	jobs := exportJobs(cmd, s)
	if len(jobs) == 0 {
		return exitError(ExitInvalidArgs, "canadavotes: the catalog lists no maps to export")
	}

	exp := &export.Exporter{
		Source:      s.source,
		Palette:     s.palette,
		Formats:     formats,
		OutDir:      exportOut,
		FS:          cmdFS,
		Concurrency: concurrency,
	}
	results, runErr := exp.Run(cmd.Context(), jobs)
	if err := printExportSummary(cmd, results); err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	switch {
	case failed == len(results):
		return exitError(ExitTotalFailure, "canadavotes: all %d exports failed: %v", failed, runErr)
	case failed > 0:
		return exitError(ExitPartialFailure, "canadavotes: %d of %d exports failed", failed, len(results))
	case runErr != nil:
		return exitError(ExitPartialFailure, "canadavotes: %v", runErr)
	}
	return nil
}

// exportJobs lists the maps to export: the flagged selection when --city or
// --year is set, otherwise every catalog pair of each requested mode.
func exportJobs(cmd *cobra.Command, s *settings) []export.Job {
	modes := []election.Mode{s.mode}
	if exportAllModes {
		modes = election.Modes()
	}

	var jobs []export.Job
	for _, mode := range modes {
		sel := s.selection()
		if cmd.Flags().Changed("city") || cmd.Flags().Changed("year") {
			city, year, _ := s.catalog.Resolve(mode, sel.City, sel.Year)
			jobs = append(jobs, export.Job{Mode: mode, City: city, Year: year, Parties: partiesFor(s, mode, sel.Parties)})
			continue
		}
		for _, p := range s.catalog.Pairs(mode) {
			jobs = append(jobs, export.Job{Mode: mode, City: p.City, Year: p.Year, Parties: partiesFor(s, mode, sel.Parties)})
		}
	}
	return jobs
}

// partiesFor keeps configured parties and otherwise picks the first party
// listed for the mode's jurisdiction.
func partiesFor(s *settings, mode election.Mode, parties [2]string) [2]string {
	if len(s.cfg.Parties) > 0 {
		return parties
	}
	var out [2]string
	if listed := s.catalog.For(mode).Parties; len(listed) > 0 {
		out = [2]string{listed[0], listed[0]}
	}
	return out
}

func printExportSummary(cmd *cobra.Command, results []export.Result) error {
	tbl := report.NewTable(
		report.Column{Header: "Map"},
		report.Column{Header: "Files", Align: report.AlignRight},
		report.Column{Header: "Time", Align: report.AlignRight},
		report.Column{Header: "Status", Color: colorStatus},
	)
	tbl.SetTitle(fmt.Sprintf("Exported to %s", exportOut))
	for _, res := range results {
		status := "ok"
		if res.Err != nil {
			status = "failed"
		}
		tbl.AddRow(res.Job.Path(), fmt.Sprint(len(res.Files)), res.Duration.Round(time.Millisecond).String(), status)
	}
	if err := tbl.Render(cmd.OutOrStdout()); err != nil {
		return exitError(ExitTotalFailure, "canadavotes: %v", err)
	}
	return nil
}

func colorStatus(status string) string {
	if status == "ok" {
		return color.GreenString(status)
	}
	return color.RedString(status)
}
