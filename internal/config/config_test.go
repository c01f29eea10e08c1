package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/canadavotes/canadavotes/internal/election"
)

func TestConfig_YAMLRoundTrip(t *testing.T) {
	original := &Config{
		DataURL:           "https://example.com/resources/data",
		Mode:              "advance",
		City:              "south_ottawa",
		Year:              2019,
		Parties:           []string{"Liberal", "Conservative"},
		OutputFormat:      "json",
		PartyColors:       map[string]string{"Rhinoceros": "#808080"},
		ShortNames:        map[string]string{"Rhinoceros": "Rhino"},
		ExportConcurrency: 8,
	}

	data, err := yaml.Marshal(original)
	require.NoError(t, err)

	var decoded Config
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, *original, decoded)
}

func TestConfig_OmitsZeroValues(t *testing.T) {
	data, err := yaml.Marshal(&Config{City: "north_toronto"})
	require.NoError(t, err)
	assert.Equal(t, "city: north_toronto\n", string(data))
}

func TestResolveMode(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want election.Mode
	}{
		{name: "default", want: election.ModeEday},
		{name: "explicit", cfg: Config{Mode: "ontario-eday"}, want: election.ModeOntarioEday},
		{name: "description", cfg: Config{PageDescription: "Ontario results, with advance polls"}, want: election.ModeOntario},
		{name: "mode wins", cfg: Config{Mode: "eday", PageDescription: "advance"}, want: election.ModeEday},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cfg.ResolveMode()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := (&Config{Mode: "municipal"}).ResolveMode()
	assert.Error(t, err)
}

func TestPalette_AppliesOverrides(t *testing.T) {
	cfg := &Config{
		PartyColors: map[string]string{"Liberal": "#00ff00", "Rhinoceros": "gray"},
		ShortNames:  map[string]string{"Rhinoceros": "Rhino"},
	}
	p, err := cfg.Palette()
	require.NoError(t, err)
	assert.Equal(t, "#00ff00", p.Color("Liberal").Hex())
	assert.Equal(t, "Rhino", p.ShortName("Rhinoceros"))
	assert.Equal(t, "#0000ff", p.Color("Conservative").Hex())

	_, err = (&Config{PartyColors: map[string]string{"Liberal": "not-a-colour"}}).Palette()
	assert.ErrorContains(t, err, "party_colors")
}

func TestPartyPair(t *testing.T) {
	assert.Equal(t, [2]string{}, (&Config{}).PartyPair())
	assert.Equal(t, [2]string{"Liberal", ""}, (&Config{Parties: []string{"Liberal"}}).PartyPair())
	assert.Equal(t, [2]string{"A", "B"}, (&Config{Parties: []string{"A", "B"}}).PartyPair())
}

func TestDataSource(t *testing.T) {
	assert.Equal(t, DefaultDataURL, (&Config{}).DataSource())
	assert.Equal(t, "/srv/data", (&Config{DataURL: "/srv/data"}).DataSource())
}
