package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canadavotes/canadavotes/internal/election"
	et "github.com/canadavotes/canadavotes/internal/election/electiontest"
)

func TestTextFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTextFormatter().Format(rendering(t, election.ModeEday, libCon), &buf))

	out := buf.String()
	assert.Contains(t, out, "Election 2021: north_toronto")
	assert.Contains(t, out, election.ModeEday.Description())
	assert.Contains(t, out, "Parties: Liberal vs Conservative")
	assert.Contains(t, out, "Liberal +12%")
	assert.Contains(t, out, "Conservative +30%")
	assert.Contains(t, out, "Don Valley North")
	assert.Contains(t, out, "Special Votes")
	assert.Contains(t, out, "Han Dong")
	assert.NotContains(t, out, "Polls without votes")
}

func TestTextFormatter_OneParty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTextFormatter().Format(rendering(t, election.ModeOntario, [2]string{et.NDP, et.NDP}), &buf))
	out := buf.String()
	assert.Contains(t, out, "Parties: "+et.NDP+"\n")
	assert.NotContains(t, out, "Special Votes")
}
