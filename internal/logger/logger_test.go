package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aleister1102/outboundwatch/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultConfigWritesFile(t *testing.T) {
	cfg := config.NewDefaultLogConfig()
	cfg.LogFile = filepath.Join(t.TempDir(), "logs", "monitor.log")

	log, closer, err := NewLoggerBuilder().
		WithConsoleOutput(&bytes.Buffer{}).
		WithConfig(cfg).
		Build()
	require.NoError(t, err)

	log.Info().Str("process", "ACME").Msg("cycle finished")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "cycle finished")
	assert.Contains(t, string(data), "ACME")
}

func TestBuild_JSONConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.LogConfig{LogFormat: "json", LogLevel: "warn"}

	log, closer, err := NewLoggerBuilder().WithConsoleOutput(&buf).WithConfig(cfg).Build()
	require.NoError(t, err)
	defer closer.Close()

	log.Info().Msg("filtered out")
	log.Warn().Str("folder", "/data/hold").Msg("folder missing")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "/data/hold", entry["folder"])
	assert.Equal(t, "folder missing", entry["message"])
}

func TestBuild_InvalidLevel(t *testing.T) {
	_, closer, err := NewLoggerBuilder().WithConfig(config.LogConfig{LogLevel: "loud"}).Build()
	assert.Error(t, err)
	assert.NotNil(t, closer)
}

func TestBuild_NoWriters(t *testing.T) {
	b := NewLoggerBuilder().WithoutFile()
	b.config.EnableConsole = false

	_, _, err := b.Build()
	assert.EqualError(t, err, "no output writers configured")
}

func TestParseHelpers(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("JSON"))
	assert.Equal(t, FormatText, ParseFormat("text"))
	assert.Equal(t, FormatConsole, ParseFormat("unknown"))
	assert.Equal(t, "console", FormatConsole.String())

	level, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, level)

	level, err = ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, level)
}

func TestFromLogConfig_Fallbacks(t *testing.T) {
	lc, err := FromLogConfig(config.LogConfig{LogFile: "x.log"})
	require.NoError(t, err)

	assert.True(t, lc.EnableFile)
	assert.Equal(t, 100, lc.MaxSizeMB)
	assert.Equal(t, 3, lc.MaxBackups)
	assert.Equal(t, FormatConsole, lc.Format)
}
