package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingConfigDefaults(t *testing.T) {
	cfg := &LoggingConfig{}

	assert.True(t, cfg.IsFileEnabled(), "file logging should default to enabled")
	assert.Equal(t, 10, cfg.GetMaxSizeMB())
	assert.Equal(t, 7, cfg.GetMaxAgeDays())
	assert.Equal(t, 3, cfg.GetMaxBackups())
}

func TestLoggingConfigExplicit(t *testing.T) {
	disabled := false
	cfg := &LoggingConfig{
		FileEnabled: &disabled,
		MaxSizeMB:   100,
		MaxAgeDays:  30,
		MaxBackups:  5,
	}

	assert.False(t, cfg.IsFileEnabled())
	assert.Equal(t, 100, cfg.GetMaxSizeMB())
	assert.Equal(t, 30, cfg.GetMaxAgeDays())
	assert.Equal(t, 5, cfg.GetMaxBackups())
}

func TestInitLevels(t *testing.T) {
	Init(false)
	assert.Equal(t, zerolog.InfoLevel, Log.GetLevel())

	Init(true)
	assert.Equal(t, zerolog.DebugLevel, Log.GetLevel())
}

func TestInitWithFileCreatesLogFile(t *testing.T) {
	dir := t.TempDir()
	logsDir := filepath.Join(dir, "logs")

	err := InitWithFile(true, logsDir, &LoggingConfig{})
	require.NoError(t, err)
	t.Cleanup(func() { CloseFileWriter() })

	assert.Equal(t, filepath.Join(logsDir, "fcgen.log"), GetLogFilePath())

	Info().Str("source", "test").Msg("hello")

	data, err := os.ReadFile(GetLogFilePath())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"hello"`)
	assert.Contains(t, string(data), `"source":"test"`)
}

func TestInitWithFileDisabled(t *testing.T) {
	disabled := false
	err := InitWithFile(false, t.TempDir(), &LoggingConfig{FileEnabled: &disabled})
	require.NoError(t, err)

	assert.Empty(t, GetLogFilePath())
}

func TestCloseFileWriterIdempotent(t *testing.T) {
	require.NoError(t, InitWithFile(false, t.TempDir(), &LoggingConfig{}))
	require.NoError(t, CloseFileWriter())
	require.NoError(t, CloseFileWriter())
}
