package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	logger, closer, err := New("debug", path)
	require.NoError(t, err)
	logger.Info().Str("invoice_id", "abc").Msg("invoice created")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"invoice_id":"abc"`)
	assert.Contains(t, string(data), `"message":"invoice created"`)
}

func TestNew_EmptyLevelDefaultsToInfo(t *testing.T) {
	logger, closer, err := New("", "")
	require.NoError(t, err)
	defer closer.Close()
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}

func TestNew_InvalidLevel(t *testing.T) {
	_, _, err := New("loud", "")
	assert.Error(t, err)
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewConsole("warn", &buf)
	require.NoError(t, err)

	logger.Info().Msg("hidden")
	logger.Warn().Str("key", "invoices").Msg("discarding stored invoices")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "discarding stored invoices")
	assert.Contains(t, buf.String(), "invoices")
}
