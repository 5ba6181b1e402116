// =============================================================================
// Concrete Mix Report - Configuration Module
// =============================================================================
//
// This module loads the application configuration from a single optional
// YAML file. Every field has a default, so the tool works with no
// configuration file at all; the file only needs to name the settings it
// overrides.
//
// EXAMPLE (mixreport.yaml):
//   input_dir: ./tickets
//   file_pattern: "*.xlsx"
//   sheet_name: LineItems
//   report_name: Mix_Report.csv
//   log_level: info
//   archive_processed: false
//   archive_dir: ./processed
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	// InputDir is the default directory scanned for workbooks. The
	// report command's --input flag overrides it.
	// Default: "./tickets"
	InputDir string `yaml:"input_dir"`

	// FilePattern is the glob used to select workbooks in the input
	// directory.
	// Default: "*.xlsx"
	FilePattern string `yaml:"file_pattern"`

	// SheetName is the name of the data sheet read from each workbook.
	// Default: "LineItems"
	SheetName string `yaml:"sheet_name"`

	// ReportName is the default output file name, created inside the input
	// directory unless --output is given. It may contain {timestamp} and
	// {uuid} placeholders, expanded per run.
	// Default: "Mix_Report.csv"
	ReportName string `yaml:"report_name"`

	// LogLevel controls diagnostic verbosity.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// ArchiveProcessed moves workbooks that contributed rows to the report
	// into ArchiveDir after a successful run. Skipped workbooks stay put.
	// Default: false
	ArchiveProcessed bool `yaml:"archive_processed"`

	// ArchiveDir is the directory processed workbooks are moved to when
	// ArchiveProcessed is enabled.
	// Default: "./processed"
	ArchiveDir string `yaml:"archive_dir"`
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration from the given YAML file and applies
// defaults for every unset field. A missing file is not an error: the
// defaults are returned unchanged.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Optional file; fall through to defaults.
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.InputDir == "" {
		cfg.InputDir = "./tickets"
	}
	if cfg.FilePattern == "" {
		cfg.FilePattern = "*.xlsx"
	}
	if cfg.SheetName == "" {
		cfg.SheetName = "LineItems"
	}
	if cfg.ReportName == "" {
		cfg.ReportName = "Mix_Report.csv"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.ArchiveDir == "" {
		cfg.ArchiveDir = "./processed"
	}
}

// Level translates the configured log level name into a zerolog level.
// Unrecognized names fall back to Info.
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}
