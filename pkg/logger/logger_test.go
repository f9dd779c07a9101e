package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log, err := newWithWriter("", "warn", &buf)
	require.NoError(t, err)

	log.Info("hidden %d", 1)
	log.Warn("visible %d", 2)
	log.Error("visible %s", "three")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible 2")
	assert.Contains(t, out, "visible three")
	assert.Contains(t, out, "level=WARN")
}

func TestLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	var buf bytes.Buffer
	log, err := newWithWriter(path, "debug", &buf)
	require.NoError(t, err)

	log.Debug("CreateReservation: court=%d", 7)
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "CreateReservation: court=7")
	assert.Contains(t, buf.String(), "CreateReservation: court=7")
}

func TestParseLevel(t *testing.T) {
	_, err := ParseLevel("verbose")
	assert.Error(t, err)

	lvl, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, "INFO", lvl.String())
}
