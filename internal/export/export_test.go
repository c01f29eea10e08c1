package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/canadavotes/canadavotes/internal/election"
	et "github.com/canadavotes/canadavotes/internal/election/electiontest"
	"github.com/canadavotes/canadavotes/internal/loader"
	"github.com/canadavotes/canadavotes/internal/testable"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writeBundle(t *testing.T, dir string, mode election.Mode, city string, year int) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, loader.FileName(mode, city, year)), et.JSON(t, et.Bundle()), 0o644))
}

func TestRun(t *testing.T) {
	data, out := t.TempDir(), t.TempDir()
	writeBundle(t, data, election.ModeEday, "north_toronto", 2021)
	writeBundle(t, data, election.ModeEday, "south_ottawa", 2019)
	writeBundle(t, data, election.ModeOntario, "north_toronto", 2022)

	e := &Exporter{Source: &loader.DirSource{Dir: data}, OutDir: out, Concurrency: 2}
	jobs := []Job{
		{Mode: election.ModeEday, City: "north_toronto", Year: 2021, Parties: [2]string{et.Liberal, et.Conservative}},
		{Mode: election.ModeEday, City: "south_ottawa", Year: 2019, Parties: [2]string{et.Liberal}},
		{Mode: election.ModeOntario, City: "north_toronto", Year: 2022, Parties: [2]string{et.NDP, et.Liberal}},
	}
	results, err := e.Run(context.Background(), jobs)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, res := range results {
		assert.Equal(t, jobs[i], res.Job)
		assert.NoError(t, res.Err)
		assert.Len(t, res.Files, 2)
	}
	assert.FileExists(t, filepath.Join(out, "eday", "north_toronto_2021.html"))
	assert.FileExists(t, filepath.Join(out, "eday", "south_ottawa_2019.geojson"))
	assert.FileExists(t, filepath.Join(out, "ontario", "north_toronto_2022.html"))

	index, err := os.ReadFile(filepath.Join(out, IndexFile))
	require.NoError(t, err)
	assert.Contains(t, string(index), `<a href="eday/north_toronto_2021.html">north_toronto 2021</a>`)
	assert.Contains(t, string(index), `<a href="ontario/north_toronto_2022.html">`)
}

func TestRun_FailureDoesNotStopOthers(t *testing.T) {
	data, out := t.TempDir(), t.TempDir()
	writeBundle(t, data, election.ModeAdvance, "north_toronto", 2021)

	e := &Exporter{Source: &loader.DirSource{Dir: data}, OutDir: out}
	results, err := e.Run(context.Background(), []Job{
		{Mode: election.ModeAdvance, City: "missing", Year: 2021, Parties: [2]string{et.Liberal}},
		{Mode: election.ModeAdvance, City: "north_toronto", Year: 2021, Parties: [2]string{et.Liberal}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, loader.ErrUnavailable))
	assert.Contains(t, err.Error(), "advance/missing_2021")

	assert.Error(t, results[0].Err)
	assert.NoError(t, results[1].Err)
	assert.FileExists(t, filepath.Join(out, "advance", "north_toronto_2021.html"))

	index, rerr := os.ReadFile(filepath.Join(out, IndexFile))
	require.NoError(t, rerr)
	assert.NotContains(t, string(index), "missing")
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := &Exporter{Source: &loader.DirSource{Dir: t.TempDir()}, OutDir: t.TempDir()}
	results, err := e.Run(ctx, []Job{{Mode: election.ModeEday, City: "x", Year: 2021, Parties: [2]string{et.Liberal}}})
	require.Error(t, err)
	assert.ErrorIs(t, results[0].Err, context.Canceled)
}

func TestRun_WriteError(t *testing.T) {
	data := t.TempDir()
	writeBundle(t, data, election.ModeEday, "north_toronto", 2021)

	fsys := &testable.MockFileSystem{
		MkdirAllFn:  func(string, os.FileMode) error { return nil },
		WriteFileFn: func(string, []byte, os.FileMode) error { return errors.New("disk full") },
	}
	e := &Exporter{Source: &loader.DirSource{Dir: data}, OutDir: "/out", FS: fsys}
	_, err := e.Run(context.Background(), []Job{{Mode: election.ModeEday, City: "north_toronto", Year: 2021, Parties: [2]string{et.Liberal}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestJobPath(t *testing.T) {
	j := Job{Mode: election.ModeOntarioEday, City: "south_ottawa", Year: 2018}
	assert.Equal(t, filepath.Join("ontario-eday", "south_ottawa_2018"), j.Path())
}
