package main

import (
	"errors"
	"io/fs"
	"log/slog"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	cvlog "github.com/canadavotes/canadavotes/internal/log"
)

// EnvFile holds local environment overrides such as CANADAVOTES_DATA_URL.
// Variables already set in the environment win.
const EnvFile = ".env.local"

// Global flag values.
var (
	verbose bool
	quiet   bool
	noColor bool
)

// rootCmd is the base command for canadavotes.
var rootCmd = &cobra.Command{
	Use:   "canadavotes",
	Short: "Poll-level choropleth maps of Canadian election results",
	Long: `Canadavotes renders poll-by-poll results of Canadian federal and Ontario
provincial elections as choropleth maps. Each poll is shaded by one party's
vote share or by the share difference between two parties.

Maps can be printed as tables, exported as HTML and GeoJSON, served over
HTTP, or browsed interactively in the terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		cvlog.Setup(verbose, quiet)
		if noColor {
			color.NoColor = true
		}
		if err := godotenv.Load(EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("ignoring env file", "file", EnvFile, "error", err)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
