// Package config provides configuration management for histclean.
//
// The configuration is stored in TOML format and supports validation
// and default values for all fields.
package config

import (
	"fmt"
	"time"

	"github.com/chazuruo/histclean/internal/report"
)

// Config is the top-level configuration struct for histclean.
type Config struct {
	History HistoryConfig `toml:"history"`
	Clean   CleanConfig   `toml:"clean"`
	Analyze AnalyzeConfig `toml:"analyze"`
	Time    TimeConfig    `toml:"time"`
	Output  OutputConfig  `toml:"output"`
	Journal JournalConfig `toml:"journal"`
}

// HistoryConfig contains history file settings.
type HistoryConfig struct {
	// Path is the history file. Empty means $HISTFILE or the first
	// existing of ~/.zsh_history, ~/.zhistory, ~/.histfile.
	Path string `toml:"path"`

	// Backup controls whether the original is copied before overwriting.
	Backup bool `toml:"backup"`
}

// CleanConfig contains cleaning settings.
type CleanConfig struct {
	// Dedupe selects the dedupe stage.
	// Valid values: "all", "consecutive", "none".
	Dedupe string `toml:"dedupe"`

	// Confirm asks before overwriting when running in a terminal.
	Confirm bool `toml:"confirm"`
}

// AnalyzeConfig contains analysis settings.
type AnalyzeConfig struct {
	// TopN is the ranking length.
	TopN int `toml:"top_n"`
}

// TimeConfig contains time zone settings.
type TimeConfig struct {
	// Timezone is used for day boundaries and monthly buckets.
	// "Local", "UTC" or an IANA name such as "Europe/Paris".
	Timezone string `toml:"timezone"`
}

// OutputConfig contains output settings.
type OutputConfig struct {
	// Format is the report format.
	// Valid values: "table", "json", "yaml".
	Format string `toml:"format"`
}

// JournalConfig contains operation journal settings.
type JournalConfig struct {
	// Enabled controls whether committed rewrites are journaled.
	Enabled bool `toml:"enabled"`

	// Path is the journal file. Empty means
	// $XDG_CONFIG_HOME/histclean/operations.log.
	Path string `toml:"path"`
}

// DefaultConfig returns a Config with all default values set.
func DefaultConfig() *Config {
	return &Config{
		History: HistoryConfig{
			Path:   "",
			Backup: true,
		},
		Clean: CleanConfig{
			Dedupe:  "all",
			Confirm: true,
		},
		Analyze: AnalyzeConfig{
			TopN: 10,
		},
		Time: TimeConfig{
			Timezone: "Local",
		},
		Output: OutputConfig{
			Format: "table",
		},
		Journal: JournalConfig{
			Enabled: true,
			Path:    "",
		},
	}
}

// Validate checks the configuration for valid values.
// Returns a nil error if the config is valid, or an error describing the problem.
func (c *Config) Validate() error {
	validDedupe := map[string]bool{
		"all":         true,
		"consecutive": true,
		"none":        true,
	}
	if !validDedupe[c.Clean.Dedupe] {
		return fmt.Errorf("clean.dedupe must be one of: all, consecutive, none; got %q", c.Clean.Dedupe)
	}

	if c.Analyze.TopN < 0 {
		return fmt.Errorf("analyze.top_n must be >= 0; got %d", c.Analyze.TopN)
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	if !report.Format(c.Output.Format).Valid() {
		return fmt.Errorf("output.format must be one of: %s; got %q", report.FormatList(), c.Output.Format)
	}

	return nil
}

// Location resolves Time.Timezone. An empty value means local time.
func (c *Config) Location() (*time.Location, error) {
	switch c.Time.Timezone {
	case "", "Local", "local":
		return time.Local, nil
	case "UTC", "utc":
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Time.Timezone)
	if err != nil {
		return nil, fmt.Errorf("time.timezone %q: %w", c.Time.Timezone, err)
	}
	return loc, nil
}
