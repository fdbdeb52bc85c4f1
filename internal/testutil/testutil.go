// Package testutil provides helper functions for testing.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TempDir creates a temporary directory and registers a cleanup function.
// The directory is automatically deleted when the test completes.
func TempDir(t *testing.T) string {
	t.Helper()

	dir, err := os.MkdirTemp("", "histclean-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	t.Cleanup(func() {
		if err := os.RemoveAll(dir); err != nil {
			t.Errorf("failed to cleanup temp dir %s: %v", dir, err)
		}
	})

	return dir
}

// WriteHistory writes content to a .zsh_history file in a new temporary
// directory and returns its path.
func WriteHistory(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(TempDir(t), ".zsh_history")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write history file: %v", err)
	}

	return path
}

// ReadFile returns the contents of path, failing the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(b)
}

// Backups returns the backup files made for the history file at path.
func Backups(t *testing.T, path string) []string {
	t.Helper()

	matches, err := filepath.Glob(path + ".*ms")
	if err != nil {
		t.Fatalf("failed to glob backups: %v", err)
	}
	backups := matches[:0]
	for _, m := range matches {
		if !strings.Contains(filepath.Base(m), ".tmp-") {
			backups = append(backups, m)
		}
	}
	return backups
}

// IsolateEnv points HOME and XDG_CONFIG_HOME at fresh temporary
// directories and clears HISTFILE, so tests never touch the real user
// configuration. It returns the config home.
func IsolateEnv(t *testing.T) string {
	t.Helper()

	configHome := TempDir(t)
	t.Setenv("HOME", TempDir(t))
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("HISTFILE", "")
	return configHome
}
