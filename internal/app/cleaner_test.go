package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	histerrors "github.com/chazuruo/histclean/internal/errors"
	"github.com/chazuruo/histclean/internal/history"
	"github.com/chazuruo/histclean/internal/journal"
)

const historyPath = "/home/user/.zsh_history"

// memFS is an in-memory FileSystem that records every call.
type memFS struct {
	files    map[string][]byte
	calls    []string
	copyErr  error
	writeErr error
}

func newMemFS(content string) *memFS {
	return &memFS{files: map[string][]byte{historyPath: []byte(content)}}
}

func (m *memFS) ReadFile(path string) ([]byte, error) {
	m.calls = append(m.calls, "read "+path)
	b, ok := m.files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return b, nil
}

func (m *memFS) WriteFile(path string, data []byte) error {
	m.calls = append(m.calls, "write "+path)
	if m.writeErr != nil {
		return m.writeErr
	}
	m.files[path] = append([]byte(nil), data...)
	return nil
}

func (m *memFS) CopyFile(src, dst string) error {
	m.calls = append(m.calls, "copy "+src+" "+dst)
	if m.copyErr != nil {
		return m.copyErr
	}
	m.files[dst] = append([]byte(nil), m.files[src]...)
	return nil
}

// memJournal collects records.
type memJournal struct {
	records []journal.Record
	err     error
}

func (j *memJournal) Log(_ context.Context, rec journal.Record) error {
	j.records = append(j.records, rec)
	return j.err
}

var fixedNow = time.Date(2024, 3, 1, 14, 5, 9, 42_000_000, time.UTC)

func newTestCleaner(fs *memFS) (*Cleaner, *memJournal, *bytes.Buffer) {
	var logs bytes.Buffer
	j := &memJournal{}
	return &Cleaner{
		FS:      fs,
		Clock:   func() time.Time { return fixedNow },
		Logger:  log.NewWithOptions(&logs, log.Options{Level: log.DebugLevel}),
		Journal: j,
	}, j, &logs
}

func mustRange(t *testing.T, start, end string) *history.DateRange {
	t.Helper()
	r, err := history.ParseDateRange(start, end, time.UTC)
	require.NoError(t, err)
	return &r
}

func TestRunDedupe(t *testing.T) {
	fs := newMemFS("ls\nls \npwd\n")
	c, j, logs := newTestCleaner(fs)

	res, err := c.Run(context.Background(), Options{Path: historyPath})
	require.NoError(t, err)

	assert.Equal(t, 3, res.Before)
	assert.Equal(t, 2, res.After)
	assert.Equal(t, 1, res.RemovedDuplicates)
	assert.True(t, res.Written)
	assert.Equal(t, "ls\npwd\n", string(fs.files[historyPath]))

	backup := historyPath + ".2024-03-01-14h05m09s042ms"
	assert.Equal(t, backup, res.BackupPath)
	assert.Equal(t, "ls\nls \npwd\n", string(fs.files[backup]))
	assert.Equal(t, []string{
		"read " + historyPath,
		"copy " + historyPath + " " + backup,
		"write " + historyPath,
	}, fs.calls)

	require.Len(t, j.records, 1)
	assert.Equal(t, backup, j.records[0].BackupPath)
	assert.Equal(t, 1, j.records[0].RemovedDuplicates)

	assert.Contains(t, logs.String(), "2 entries after removing duplicates (33.33% of duplicates)")
	assert.Contains(t, logs.String(), "Backing up the history to '"+backup+"'")
}

func TestRunRemoveBetween(t *testing.T) {
	fs := newMemFS(": 1672531200:0;echo a\n: 1688083200:0;echo b\n: 1688169600:0;echo c\ngit status\n")
	c, j, _ := newTestCleaner(fs)

	res, err := c.Run(context.Background(), Options{
		Path:      historyPath,
		NoBackup:  true,
		DateRange: mustRange(t, "2023-01-01", "2023-06-30"),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, res.RemovedByDate)
	assert.Equal(t, 0, res.RemovedDuplicates)
	assert.Equal(t, ": 1688169600:0;echo c\ngit status\n", string(fs.files[historyPath]))
	assert.Empty(t, res.BackupPath)
	assert.Len(t, fs.files, 1, "no backup expected")
	require.Len(t, j.records, 1)
	assert.Equal(t, "2023-01-01..2023-06-30", j.records[0].DateRange)
}

func TestRunKeepDuplicates(t *testing.T) {
	content := "ls\nls \npwd\n"
	fs := newMemFS(content)
	c, j, _ := newTestCleaner(fs)

	res, err := c.Run(context.Background(), Options{Path: historyPath, KeepDuplicates: true})
	require.NoError(t, err)

	assert.Equal(t, DedupeNone, res.DedupeMode)
	assert.Equal(t, content, string(res.Output))
	assert.False(t, res.Written, "unchanged history should not be rewritten")
	assert.Equal(t, []string{"read " + historyPath}, fs.calls)
	assert.Empty(t, j.records)
}

func TestRunConsecutiveDedupe(t *testing.T) {
	fs := newMemFS("make\nmake\nls\nmake\n")
	c, _, _ := newTestCleaner(fs)

	res, err := c.Run(context.Background(), Options{Path: historyPath, DedupeMode: DedupeConsecutive, NoBackup: true})
	require.NoError(t, err)
	assert.Equal(t, 1, res.RemovedDuplicates)
	assert.Equal(t, "make\nls\nmake\n", string(fs.files[historyPath]))
}

func TestRunDryRun(t *testing.T) {
	content := "ls\nls\npwd\n"
	fs := newMemFS(content)
	c, j, _ := newTestCleaner(fs)

	res, err := c.Run(context.Background(), Options{Path: historyPath, DryRun: true})
	require.NoError(t, err)

	assert.True(t, res.DryRun)
	assert.False(t, res.Written)
	assert.Equal(t, "ls\npwd\n", string(res.Output))
	assert.Equal(t, content, string(fs.files[historyPath]))
	assert.Equal(t, []string{"read " + historyPath}, fs.calls)
	assert.Empty(t, j.records)
}

func TestRunAnalyze(t *testing.T) {
	fs := newMemFS("git status\ngit status\nls\n")
	c, j, _ := newTestCleaner(fs)

	res, err := c.Run(context.Background(), Options{Path: historyPath, Analyze: true, TopN: 1, Location: time.UTC})
	require.NoError(t, err)
	require.NotNil(t, res.Report)

	assert.Equal(t, historyPath, res.Report.Path)
	assert.Equal(t, 3, res.Report.TotalCommands)
	assert.Equal(t, 2, res.Report.UniqueCommands)
	require.Len(t, res.Report.TopExecutables, 1)
	assert.Equal(t, "git", res.Report.TopExecutables[0].Name)
	assert.Equal(t, 2, res.Report.TopExecutables[0].Count)

	assert.Equal(t, []string{"read " + historyPath}, fs.calls)
	assert.Empty(t, j.records)
}

func TestRunAnalyzeWithDateRange(t *testing.T) {
	fs := newMemFS("ls\n")
	c, _, _ := newTestCleaner(fs)

	opts := Options{Path: historyPath, Analyze: true, DateRange: mustRange(t, "2023-01-01", "2023-01-02")}
	_, err := c.Run(context.Background(), opts)
	require.Error(t, err)
	assert.True(t, histerrors.IsConfiguration(err))
	assert.Empty(t, fs.calls, "configuration errors happen before any I/O")
}

func TestRunAnalyzeIgnoresKeepDuplicates(t *testing.T) {
	fs := newMemFS("ls\nls\npwd\n")
	c, j, _ := newTestCleaner(fs)

	res, err := c.Run(context.Background(), Options{Path: historyPath, Analyze: true, KeepDuplicates: true, TopN: 3})
	require.NoError(t, err)
	require.NotNil(t, res.Report)
	assert.Equal(t, 1, res.Report.DuplicateCommands)

	assert.Equal(t, []string{"read " + historyPath}, fs.calls)
	assert.Empty(t, j.records)
}

func TestRunBackupFailureLeavesOriginal(t *testing.T) {
	content := "ls\nls\n"
	fs := newMemFS(content)
	fs.copyErr = errors.New("disk full")
	c, j, _ := newTestCleaner(fs)

	res, err := c.Run(context.Background(), Options{Path: historyPath})
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, histerrors.ErrIO)

	var ioErr *histerrors.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "backup", ioErr.Op)

	assert.Equal(t, content, string(fs.files[historyPath]))
	assert.NotContains(t, fs.calls, "write "+historyPath)
	assert.Empty(t, j.records)
}

func TestRunWriteFailure(t *testing.T) {
	fs := newMemFS("ls\nls\n")
	fs.writeErr = errors.New("read-only file system")
	c, _, _ := newTestCleaner(fs)

	_, err := c.Run(context.Background(), Options{Path: historyPath, NoBackup: true})
	require.Error(t, err)
	var ioErr *histerrors.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "write", ioErr.Op)
}

func TestRunReadFailure(t *testing.T) {
	fs := &memFS{files: map[string][]byte{}}
	c, _, _ := newTestCleaner(fs)

	_, err := c.Run(context.Background(), Options{Path: historyPath})
	require.Error(t, err)
	assert.ErrorIs(t, err, histerrors.ErrIO)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunInvalidEncoding(t *testing.T) {
	fs := &memFS{files: map[string][]byte{historyPath: []byte("ls\n\xff\n")}}
	c, _, _ := newTestCleaner(fs)

	_, err := c.Run(context.Background(), Options{Path: historyPath})
	require.Error(t, err)
	assert.ErrorIs(t, err, histerrors.ErrEncoding)
	assert.Contains(t, err.Error(), historyPath)
	assert.Equal(t, []string{"read " + historyPath}, fs.calls)
}

func TestRunConfirm(t *testing.T) {
	t.Run("declined", func(t *testing.T) {
		fs := newMemFS("ls\nls\n")
		c, _, _ := newTestCleaner(fs)

		var asked *Result
		res, err := c.Run(context.Background(), Options{
			Path: historyPath,
			Confirm: func(r *Result) (bool, error) {
				asked = r
				return false, nil
			},
		})
		require.ErrorIs(t, err, histerrors.ErrCanceled)
		require.NotNil(t, res)
		require.NotNil(t, asked)
		assert.Equal(t, 1, asked.RemovedDuplicates)
		assert.Equal(t, "ls\nls\n", string(fs.files[historyPath]))
	})

	t.Run("accepted", func(t *testing.T) {
		fs := newMemFS("ls\nls\n")
		c, _, _ := newTestCleaner(fs)

		res, err := c.Run(context.Background(), Options{
			Path:    historyPath,
			Confirm: func(*Result) (bool, error) { return true, nil },
		})
		require.NoError(t, err)
		assert.True(t, res.Written)
	})

	t.Run("not asked when nothing changes", func(t *testing.T) {
		fs := newMemFS("ls\npwd\n")
		c, _, _ := newTestCleaner(fs)

		_, err := c.Run(context.Background(), Options{
			Path: historyPath,
			Confirm: func(*Result) (bool, error) {
				t.Fatal("confirm should not be called")
				return false, nil
			},
		})
		require.NoError(t, err)
	})
}

func TestRunCanceledContext(t *testing.T) {
	fs := newMemFS("ls\nls\n")
	c, _, _ := newTestCleaner(fs)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Run(ctx, Options{Path: historyPath})
	require.Error(t, err)
	assert.True(t, histerrors.IsCanceled(err))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, fs.calls)
}

func TestRunJournalFailureIsNotFatal(t *testing.T) {
	fs := newMemFS("ls\nls\n")
	c, j, logs := newTestCleaner(fs)
	j.err = errors.New("permission denied")

	res, err := c.Run(context.Background(), Options{Path: historyPath})
	require.NoError(t, err)
	assert.True(t, res.Written)
	assert.Contains(t, logs.String(), "Failed to write operation journal")
}

func TestResultSummary(t *testing.T) {
	res := &Result{
		Path: historyPath, Before: 10, After: 7, RemovedByDate: 2, RemovedDuplicates: 1,
		DateRange: mustRange(t, "2023-01-01", "2023-06-30"), DedupeMode: DedupeAll, Written: true,
	}
	s := res.Summary()
	assert.Equal(t, "2023-01-01..2023-06-30", s.DateRange)
	assert.Equal(t, "all", s.DedupeMode)
	assert.Equal(t, 3, s.Removed())
}

func TestParseDedupeMode(t *testing.T) {
	tests := map[string]DedupeMode{
		"":            DedupeAll,
		"all":         DedupeAll,
		"Consecutive": DedupeConsecutive,
		"none":        DedupeNone,
	}
	for input, want := range tests {
		got, err := ParseDedupeMode(input)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseDedupeMode("some")
	require.Error(t, err)
	assert.True(t, histerrors.IsConfiguration(err))
}
