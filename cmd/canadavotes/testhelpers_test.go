package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canadavotes/canadavotes/internal/catalog"
	"github.com/canadavotes/canadavotes/internal/config"
	"github.com/canadavotes/canadavotes/internal/election"
	et "github.com/canadavotes/canadavotes/internal/election/electiontest"
	"github.com/canadavotes/canadavotes/internal/loader"
)

// newTestCmd returns rootCmd with its output redirected to buffers.
func newTestCmd() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd, stdout, stderr
}

// resetFlags restores every command flag to its default so tests do not see
// each other's values.
func resetFlags() {
	for _, cmd := range []*cobra.Command{renderCmd, exportCmd, browseCmd, serveCmd, catalogCmd} {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			f.Changed = false
			_ = f.Value.Set(f.DefValue)
		})
	}
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		f.Changed = false
		_ = f.Value.Set(f.DefValue)
	})
	resetConfigFlags()

	// StringSlice.Set appends after the first Set, so slices are cleared
	// explicitly.
	renderSel.parties = nil
	exportSel.parties = nil
	browseSel.parties = nil
	exportFormats = nil
}

// workspace isolates a test in an empty working directory with an empty
// global config and no data URL in the environment. It returns the
// working directory.
func workspace(t *testing.T) string {
	t.Helper()
	resetFlags()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	for _, key := range []string{config.EnvDataURL, config.EnvDataToken} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	return dir
}

// writeBundle writes the fixture bundle as the data file of one selection.
func writeBundle(t *testing.T, dataDir string, mode election.Mode, city string, year int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dataDir, 0o750))
	name := filepath.Join(dataDir, loader.FileName(mode, city, year))
	require.NoError(t, os.WriteFile(name, et.JSON(t, et.Bundle()), 0o600))
}

// writeCatalog writes a catalog.toml into dataDir.
func writeCatalog(t *testing.T, dataDir, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dataDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, catalog.FileName), []byte(body), 0o600))
}

// writeConfig writes a repo config into dir.
func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte(body), 0o600))
}

// requireExitCode asserts err carries the given exit code.
func requireExitCode(t *testing.T, err error, code int) *exitCodeError {
	t.Helper()
	require.Error(t, err)
	var ece *exitCodeError
	require.True(t, errors.As(err, &ece), "want exitCodeError, got %T: %v", err, err)
	assert.Equal(t, code, ece.ExitCode(), "message: %s", ece.msg)
	return ece
}
