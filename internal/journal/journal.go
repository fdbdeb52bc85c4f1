// Package journal appends a JSON lines record of every history rewrite.
package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// FileName is the journal file name inside the config directory.
const FileName = "operations.log"

// Record is one committed rewrite.
type Record struct {
	RunID             string    `json:"run_id"`
	Timestamp         time.Time `json:"timestamp"`
	Path              string    `json:"path"`
	BackupPath        string    `json:"backup_path,omitempty"`
	Before            int       `json:"before"`
	After             int       `json:"after"`
	RemovedByDate     int       `json:"removed_by_date"`
	RemovedDuplicates int       `json:"removed_duplicates"`
	DateRange         string    `json:"date_range,omitempty"`
	DedupeMode        string    `json:"dedupe_mode"`
}

// Logger records rewrites.
type Logger interface {
	Log(ctx context.Context, rec Record) error
}

type noopLogger struct{}

func (noopLogger) Log(context.Context, Record) error { return nil }

// NewNoopLogger returns a Logger that discards everything.
func NewNoopLogger() Logger { return noopLogger{} }

type fileLogger struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// DefaultPath returns $XDG_CONFIG_HOME/histclean/operations.log, falling
// back to ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "histclean", FileName), nil
}

// New returns a Logger appending to path. An empty path means DefaultPath.
// When disabled, the returned Logger does nothing.
func New(path string, disabled bool) (Logger, error) {
	if disabled {
		return noopLogger{}, nil
	}

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	return &fileLogger{path: path, now: time.Now}, nil
}

// Log appends rec as one JSON line. A missing RunID or Timestamp is filled in.
func (l *fileLogger) Log(_ context.Context, rec Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if rec.RunID == "" {
		rec.RunID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = l.now().UTC()
	}

	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode journal record: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("failed to create journal directory: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("failed to write journal: %w", err)
	}
	return nil
}
