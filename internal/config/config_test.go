package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "./tickets", cfg.InputDir)
	assert.Equal(t, "*.xlsx", cfg.FilePattern)
	assert.Equal(t, "LineItems", cfg.SheetName)
	assert.Equal(t, "Mix_Report.csv", cfg.ReportName)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.ArchiveProcessed)
	assert.Equal(t, "./processed", cfg.ArchiveDir)
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "LineItems", cfg.SheetName)
}

func TestLoad_OverridesAndDefaultsMix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mixreport.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
input_dir: ./nov_tickets
report_name: Nov_Report.csv
log_level: debug
archive_processed: true
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "./nov_tickets", cfg.InputDir)
	assert.Equal(t, "Nov_Report.csv", cfg.ReportName)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.ArchiveProcessed)
	// Unset fields still default.
	assert.Equal(t, "*.xlsx", cfg.FilePattern)
	assert.Equal(t, "LineItems", cfg.SheetName)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input_dir: [unclosed"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, (&Config{LogLevel: "debug"}).Level())
	assert.Equal(t, zerolog.WarnLevel, (&Config{LogLevel: "warn"}).Level())
	assert.Equal(t, zerolog.InfoLevel, (&Config{LogLevel: "chatty"}).Level(), "unknown level falls back to info")
	assert.Equal(t, zerolog.InfoLevel, (&Config{}).Level())
}
