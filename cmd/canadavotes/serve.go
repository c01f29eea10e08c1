package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/canadavotes/canadavotes/internal/server"
)

// Serve-specific flag values.
var (
	serveAddr string
	serveData string
	serveSite string
)

// serveCmd serves exported maps and the raw data files over HTTP.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve exported maps and data files over HTTP",
	Long: `Serve a site written by 'canadavotes export' at / and the leaflet_data
files at /resources/data/. The server stops cleanly on interrupt.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", server.DefaultAddr, "listen address")
	serveCmd.Flags().StringVar(&serveData, "data", "", "data directory (default: data_url when it is a directory)")
	serveCmd.Flags().StringVar(&serveSite, "site", DefaultSiteDir, "exported site directory")
}

func runServe(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd, nil)
	if err != nil {
		return err
	}
	dataDir := serveData
	if dataDir == "" {
		dataDir = s.cfg.DataSource()
	}
	if strings.HasPrefix(dataDir, "http://") || strings.HasPrefix(dataDir, "https://") {
		return exitError(ExitInvalidArgs, "canadavotes: serve needs a local data directory, got %q (use --data)", dataDir)
	}
	for _, dir := range []string{dataDir, serveSite} {
		info, err := cmdFS.Stat(dir)
		if err != nil {
			return exitError(ExitInvalidArgs, "canadavotes: directory %q does not exist", dir)
		}
		if !info.IsDir() {
			return exitError(ExitInvalidArgs, "canadavotes: %q is not a directory", dir)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return serveUntilDone(ctx, cmd, server.Options{Addr: serveAddr, DataDir: dataDir, SiteDir: serveSite})
}

func serveUntilDone(ctx context.Context, cmd *cobra.Command, opts server.Options) error {
	err := server.Serve(ctx, opts, func(addr string) {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Serving %s on http://%s/\n", opts.SiteDir, addr)
	})
	if err != nil {
		return exitError(ExitTotalFailure, "canadavotes: %v", err)
	}
	return nil
}
