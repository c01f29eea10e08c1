package main

import (
	"io"

	"github.com/spf13/cobra"

	cvlog "github.com/canadavotes/canadavotes/internal/log"
	"github.com/canadavotes/canadavotes/internal/tui"
)

// Browse-specific flag values.
var (
	browseSel     selectionFlags
	browseLogFile string
)

// runBrowser starts the terminal browser. Tests replace it.
var runBrowser = tui.Run

// browseCmd opens the interactive terminal map.
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse election maps interactively in the terminal",
	Long: `Open an interactive choropleth in the terminal.

Hover a poll with the mouse to see its candidates, click to zoom to it and
press Tab to step through its riding. Keys: c city, y year, 1/2 parties,
r refresh, z reset zoom, ? help, q quit.

Logs would draw over the screen, so they are discarded unless --log-file
is given.`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func init() {
	browseSel.register(browseCmd.Flags())
	registerCompletions(browseCmd)
	browseCmd.Flags().StringVar(&browseLogFile, "log-file", "", "write logs to this file")
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd, &browseSel)
	if err != nil {
		return err
	}

	var logw io.Writer = io.Discard
	if browseLogFile != "" {
		f, err := cmdFS.Create(browseLogFile)
		if err != nil {
			return exitError(ExitInvalidArgs, "canadavotes: cannot create log file %q (%v)", browseLogFile, err)
		}
		defer f.Close() //nolint:errcheck // best-effort close on log file
		logw = f
	}
	cvlog.SetupWriter(logw, verbose, quiet)

	err = runBrowser(tui.Options{
		Mode:      s.mode,
		Selection: s.selection(),
		Catalog:   s.catalog,
		Source:    s.source,
		Palette:   s.palette,
		Context:   cmd.Context(),
	})
	if err != nil {
		return exitError(ExitTotalFailure, "canadavotes: %v", err)
	}
	return nil
}
