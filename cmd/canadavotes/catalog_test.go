package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Default(t *testing.T) {
	workspace(t)
	cmd, stdout, _ := newTestCmd()
	cmd.SetArgs([]string{"catalog"})
	require.NoError(t, cmd.Execute())

	out := stdout.String()
	assert.Contains(t, out, "Federal")
	assert.Contains(t, out, "Ontario")
	assert.Contains(t, out, "north_toronto *")
	assert.Contains(t, out, "Surrey and Burnaby")
	assert.Contains(t, out, "2008 2011 2015 2019 2021")
	assert.Contains(t, out, "2018 2022")
}

func TestCatalog_ModeFromDataDir(t *testing.T) {
	dir := workspace(t)
	data := filepath.Join(dir, "data")
	writeCatalog(t, data, testCatalog)

	cmd, stdout, _ := newTestCmd()
	cmd.SetArgs([]string{"catalog", "--data", data, "--mode", "ontario-eday"})
	require.NoError(t, cmd.Execute())

	out := stdout.String()
	assert.Contains(t, out, "Ontario")
	assert.NotContains(t, out, "Federal")
	assert.Contains(t, out, "2022")
	assert.NotContains(t, out, "2019")
}

func TestCatalog_Malformed(t *testing.T) {
	dir := workspace(t)
	data := filepath.Join(dir, "data")
	writeCatalog(t, data, "[federal\n")

	cmd, _, _ := newTestCmd()
	cmd.SetArgs([]string{"catalog", "--data", data})
	ece := requireExitCode(t, cmd.Execute(), ExitInvalidArgs)
	assert.Contains(t, ece.msg, "parse catalog")
}
