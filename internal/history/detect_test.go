package history

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectPath(t *testing.T) {
	t.Run("HISTFILE wins", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		t.Setenv("HISTFILE", "~/custom_history")

		path, err := DetectPath()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, "custom_history"), path)
	})

	t.Run("first existing candidate", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		t.Setenv("HISTFILE", "")
		require.NoError(t, os.WriteFile(filepath.Join(home, ".histfile"), []byte("ls\n"), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(home, ".zhistory"), []byte("ls\n"), 0o600))

		path, err := DetectPath()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".zhistory"), path)
	})

	t.Run("directories are skipped", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		t.Setenv("HISTFILE", "")
		require.NoError(t, os.Mkdir(filepath.Join(home, ".zsh_history"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(home, ".histfile"), []byte("ls\n"), 0o600))

		path, err := DetectPath()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".histfile"), path)
	})

	t.Run("defaults to zsh_history", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		t.Setenv("HISTFILE", "")

		path, err := DetectPath()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".zsh_history"), path)
	})
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := map[string]string{
		"~":                home,
		"~/.zsh_history":   filepath.Join(home, ".zsh_history"),
		"/tmp/history":     "/tmp/history",
		"relative/history": "relative/history",
		"~other/.history":  "~other/.history",
	}

	for input, want := range tests {
		t.Run(input, func(t *testing.T) {
			got, err := ExpandPath(input)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}
