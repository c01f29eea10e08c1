package main

import (
	"errors"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/canadavotes/canadavotes/internal/loader"
	"github.com/canadavotes/canadavotes/internal/output"
	"github.com/canadavotes/canadavotes/internal/view"
)

// DefaultRenderFormat is used when neither --format nor output_format is set.
const DefaultRenderFormat = "text"

// Render-specific flag values.
var (
	renderSel    selectionFlags
	renderFormat string
	renderOutput string
)

// renderCmd renders a single map.
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render one election map",
	Long: `Load one city and election year and write the rendered map.

With one party, polls are shaded by that party's vote share. With two
parties, polls are shaded by the share difference between them.

Examples:
  canadavotes render --city south_ottawa --year 2019 --party Liberal
  canadavotes render -p Liberal -p Conservative --format html -o map.html
  canadavotes render --mode ontario --format geojson`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	renderSel.register(renderCmd.Flags())
	registerCompletions(renderCmd)
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "", "output format: "+strings.Join(output.Names(), ", "))
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "output file path (default: stdout)")
	_ = renderCmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return output.Names(), cobra.ShellCompDirectiveNoFileComp
	})
}

func runRender(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd, &renderSel)
	if err != nil {
		return err
	}

	format := s.cfg.OutputFormat
	if cmd.Flags().Changed("format") {
		format = renderFormat
	}
	if format == "" {
		format = DefaultRenderFormat
	}
	f, err := output.GetFormatter(format)
	if err != nil {
		return exitError(ExitInvalidArgs, "canadavotes: %v", err)
	}
	if tf, ok := f.(*output.TextFormatter); ok {
		withPalette := *tf
		withPalette.Palette = s.palette
		f = &withPalette
	}

	v, _ := view.Transition(view.New(s.mode), s.selection())
	b, err := loader.New(s.source).Load(cmd.Context(), loader.Request{
		Generation: v.Generation,
		Mode:       v.Mode,
		City:       v.City,
		Year:       v.Year,
	})
	if err != nil {
		return exitError(ExitTotalFailure, "canadavotes: %v", err)
	}
	v, _ = v.WithBundle(v.Generation, b)

	r, err := view.Render(v, s.palette)
	if err != nil {
		if errors.Is(err, view.ErrNoParties) {
			return exitError(ExitInvalidArgs, "canadavotes: %v (use --party)", err)
		}
		return exitError(ExitTotalFailure, "canadavotes: %v", err)
	}

	var w io.Writer = cmd.OutOrStdout()
	if renderOutput != "" {
		file, err := cmdFS.Create(renderOutput)
		if err != nil {
			return exitError(ExitTotalFailure, "canadavotes: cannot create output file %q (%v)", renderOutput, err)
		}
		defer file.Close() //nolint:errcheck // best-effort close on write path
		w = file
	}

	if err := f.Format(r, w); err != nil {
		return exitError(ExitTotalFailure, "canadavotes: %v", err)
	}
	return nil
}
