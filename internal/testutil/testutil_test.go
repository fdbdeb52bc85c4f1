package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteHistory(t *testing.T) {
	path := WriteHistory(t, "ls\n")

	if filepath.Base(path) != ".zsh_history" {
		t.Errorf("WriteHistory() path = %s, want .zsh_history", path)
	}
	if got := ReadFile(t, path); got != "ls\n" {
		t.Errorf("ReadFile() = %q, want %q", got, "ls\n")
	}
}

func TestBackups(t *testing.T) {
	path := WriteHistory(t, "ls\n")
	backup := path + ".2024-01-01-10h00m00s000ms"
	if err := os.WriteFile(backup, []byte("ls\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	got := Backups(t, path)
	if len(got) != 1 || got[0] != backup {
		t.Errorf("Backups() = %v, want [%s]", got, backup)
	}
}

func TestIsolateEnv(t *testing.T) {
	configHome := IsolateEnv(t)

	if os.Getenv("XDG_CONFIG_HOME") != configHome {
		t.Errorf("XDG_CONFIG_HOME = %q, want %q", os.Getenv("XDG_CONFIG_HOME"), configHome)
	}
	if os.Getenv("HISTFILE") != "" {
		t.Errorf("HISTFILE = %q, want empty", os.Getenv("HISTFILE"))
	}
}
