package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	histerrors "github.com/chazuruo/histclean/internal/errors"
)

// DefaultPath returns $XDG_CONFIG_HOME/histclean/config.toml, falling back
// to ~/.config/histclean/config.toml. The file may not exist.
func DefaultPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configHome = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configHome, "histclean", "config.toml"), nil
}

// DetectConfigPath returns DefaultPath if that file exists, or empty string
// if none exists (caller should use defaults).
func DetectConfigPath() string {
	configPath, err := DefaultPath()
	if err != nil {
		return ""
	}
	if _, err := os.Stat(configPath); err == nil {
		return configPath
	}
	return ""
}

// Load loads a config from the specified path.
// If the file doesn't exist, returns an error.
// After loading, applies environment variable overrides and validates.
func Load(path string) (*Config, error) {
	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, &histerrors.ConfigError{Path: path, Err: fmt.Errorf("config file not found")}
	}

	// Read file contents
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &histerrors.ConfigError{Path: path, Err: fmt.Errorf("failed to read config file: %w", err)}
	}

	// Start with defaults
	cfg := DefaultConfig()

	// Parse TOML
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, &histerrors.ConfigError{Path: path, Err: fmt.Errorf("failed to parse config file: %w", err)}
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, &histerrors.ConfigError{Path: path, Err: fmt.Errorf("unknown key %q", undecoded[0].String())}
	}

	if err := finish(cfg); err != nil {
		return nil, &histerrors.ConfigError{Path: path, Err: err}
	}
	return cfg, nil
}

// LoadWithDefaults loads the config at path, or at DetectConfigPath when
// path is empty. If no config file is found, returns a config with all
// default values and environment overrides applied.
func LoadWithDefaults(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}

	configPath := DetectConfigPath()
	if configPath == "" {
		cfg := DefaultConfig()
		if err := finish(cfg); err != nil {
			return nil, &histerrors.ConfigError{Err: err}
		}
		return cfg, nil
	}

	return Load(configPath)
}

func finish(cfg *Config) error {
	// Apply environment variable overrides
	if err := applyEnvOverrides(cfg); err != nil {
		return err
	}

	// Expand tilde in paths
	if err := expandPaths(cfg); err != nil {
		return err
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables follow the pattern: HISTCLEAN_<SECTION>_<FIELD>
//
// Examples:
// - HISTCLEAN_HISTORY_PATH overrides [history].path
// - HISTCLEAN_CLEAN_DEDUPE overrides [clean].dedupe
// - HISTCLEAN_ANALYZE_TOP_N overrides [analyze].top_n
//
// Boolean fields: use "true"/"false" strings
func applyEnvOverrides(c *Config) error {
	var firstErr error
	fail := func(key, val, kind string) {
		if firstErr == nil {
			firstErr = fmt.Errorf("%s: %q is not a valid %s", key, val, kind)
		}
	}

	// Helper to lookup and apply string override
	applyString := func(key string, target *string) {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			*target = val
		}
	}

	// Helper to lookup and apply bool override
	applyBool := func(key string, target *bool) {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			switch strings.ToLower(val) {
			case "true", "1", "yes", "on":
				*target = true
			case "false", "0", "no", "off":
				*target = false
			default:
				fail(key, val, "boolean")
			}
		}
	}

	// Helper to lookup and apply int override
	applyInt := func(key string, target *int) {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			var i int
			if _, err := fmt.Sscanf(val, "%d", &i); err != nil {
				fail(key, val, "integer")
				return
			}
			*target = i
		}
	}

	// History section
	applyString("HISTCLEAN_HISTORY_PATH", &c.History.Path)
	applyBool("HISTCLEAN_HISTORY_BACKUP", &c.History.Backup)

	// Clean section
	applyString("HISTCLEAN_CLEAN_DEDUPE", &c.Clean.Dedupe)
	applyBool("HISTCLEAN_CLEAN_CONFIRM", &c.Clean.Confirm)

	// Analyze section
	applyInt("HISTCLEAN_ANALYZE_TOP_N", &c.Analyze.TopN)

	// Time section
	applyString("HISTCLEAN_TIME_TIMEZONE", &c.Time.Timezone)

	// Output section
	applyString("HISTCLEAN_OUTPUT_FORMAT", &c.Output.Format)

	// Journal section
	applyBool("HISTCLEAN_JOURNAL_ENABLED", &c.Journal.Enabled)
	applyString("HISTCLEAN_JOURNAL_PATH", &c.Journal.Path)

	return firstErr
}

// expandPaths expands ~ to the home directory in path settings.
func expandPaths(c *Config) error {
	for _, p := range []*string{&c.History.Path, &c.Journal.Path} {
		if *p != "~" && !strings.HasPrefix(*p, "~/") {
			continue
		}
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		*p = filepath.Join(homeDir, strings.TrimPrefix(strings.TrimPrefix(*p, "~"), "/"))
	}
	return nil
}
