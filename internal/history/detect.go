package history

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DetectPath returns the history file to clean.
//
// $HISTFILE wins when set; otherwise the first existing file among the
// common zsh locations is returned, falling back to ~/.zsh_history even if
// it does not exist.
func DetectPath() (string, error) {
	if histfile := os.Getenv("HISTFILE"); histfile != "" {
		return ExpandPath(histfile)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	for _, path := range candidates(home) {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}

	return filepath.Join(home, ".zsh_history"), nil
}

// ExpandPath expands a leading ~ to the home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(strings.TrimPrefix(path, "~"), "/")), nil
}

func candidates(home string) []string {
	return []string{
		filepath.Join(home, ".zsh_history"),
		filepath.Join(home, ".zhistory"),
		filepath.Join(home, ".histfile"),
	}
}
