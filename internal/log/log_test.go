package log

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevel(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, Level(false, false))
	assert.Equal(t, slog.LevelDebug, Level(true, false))
	assert.Equal(t, slog.LevelWarn, Level(false, true))
	// quiet takes precedence
	assert.Equal(t, slog.LevelWarn, Level(true, true))
}

func TestSetup_DefaultLevel(t *testing.T) {
	Setup(false, false)

	ctx := context.Background()
	handler := slog.Default().Handler()
	assert.True(t, handler.Enabled(ctx, slog.LevelInfo), "INFO should be enabled in default mode")
	assert.True(t, handler.Enabled(ctx, slog.LevelWarn), "WARN should be enabled in default mode")
	assert.False(t, handler.Enabled(ctx, slog.LevelDebug), "DEBUG should not be enabled in default mode")
}

func TestSetup_VerboseLevel(t *testing.T) {
	Setup(true, false)

	handler := slog.Default().Handler()
	assert.True(t, handler.Enabled(context.Background(), slog.LevelDebug), "DEBUG should be enabled in verbose mode")
}

func TestSetup_QuietLevel(t *testing.T) {
	Setup(false, true)

	ctx := context.Background()
	handler := slog.Default().Handler()
	assert.False(t, handler.Enabled(ctx, slog.LevelInfo), "INFO should not be enabled in quiet mode")
	assert.True(t, handler.Enabled(ctx, slog.LevelWarn), "WARN should be enabled in quiet mode")
}

func TestSetupWriter(t *testing.T) {
	var buf bytes.Buffer
	SetupWriter(&buf, false, false)
	t.Cleanup(func() { Setup(false, false) })

	slog.Info("loaded bundle", "file", "leaflet_data_eday_north_toronto_2021.json", "polls", 5)
	slog.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, `msg="loaded bundle"`)
	assert.Contains(t, out, "polls=5")
	assert.NotContains(t, out, "hidden")
}

func TestSetupWriter_Discard(t *testing.T) {
	SetupWriter(io.Discard, true, false)
	t.Cleanup(func() { Setup(false, false) })
	assert.True(t, slog.Default().Handler().Enabled(context.Background(), slog.LevelDebug))
}
