// Package app runs a history cleaning or analysis pass end to end.
package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/chazuruo/histclean/internal/analyze"
	histerrors "github.com/chazuruo/histclean/internal/errors"
	"github.com/chazuruo/histclean/internal/history"
	"github.com/chazuruo/histclean/internal/journal"
	"github.com/chazuruo/histclean/internal/report"
)

// DedupeMode selects how duplicate commands are removed.
type DedupeMode string

const (
	// DedupeAll keeps the first occurrence of every command.
	DedupeAll DedupeMode = "all"
	// DedupeConsecutive only collapses runs of the same command.
	DedupeConsecutive DedupeMode = "consecutive"
	// DedupeNone keeps duplicates.
	DedupeNone DedupeMode = "none"
)

// ParseDedupeMode parses a dedupe mode. The empty string is DedupeAll.
func ParseDedupeMode(s string) (DedupeMode, error) {
	switch m := DedupeMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return DedupeAll, nil
	case DedupeAll, DedupeConsecutive, DedupeNone:
		return m, nil
	default:
		return "", histerrors.Invalidf("--dedupe", "unsupported mode %q (want all, consecutive or none)", s)
	}
}

// Options contains the options for a run.
type Options struct {
	// Path is the history file.
	Path string
	// DryRun computes the result without writing anything.
	DryRun bool
	// NoBackup skips the backup copy before overwriting.
	NoBackup bool
	// KeepDuplicates skips the dedupe stage. Same as DedupeMode DedupeNone.
	KeepDuplicates bool
	// DedupeMode selects the dedupe stage. Empty means DedupeAll.
	DedupeMode DedupeMode
	// DateRange removes entries inside the range when set.
	DateRange *history.DateRange
	// Analyze builds a report instead of cleaning.
	Analyze bool
	// TopN is the ranking length of the report.
	TopN int
	// Location is used for the report's monthly activity.
	// Nil means local time.
	Location *time.Location
	// Confirm is asked before the file is overwritten. Returning false
	// cancels the run. Nil means always proceed.
	Confirm func(*Result) (bool, error)
}

func (o Options) dedupeMode() DedupeMode {
	if o.KeepDuplicates {
		return DedupeNone
	}
	if o.DedupeMode == "" {
		return DedupeAll
	}
	return o.DedupeMode
}

// Result contains the outcome of a run.
type Result struct {
	// Path is the history file.
	Path string
	// Report is set in analyze mode.
	Report *analyze.Report
	// Before is the number of entries read.
	Before int
	// After is the number of entries left.
	After int
	// RemovedByDate is the number of entries dropped by the date range.
	RemovedByDate int
	// RemovedDuplicates is the number of entries dropped as duplicates.
	RemovedDuplicates int
	// DateRange is the range that was applied, if any.
	DateRange *history.DateRange
	// DedupeMode is the dedupe stage that ran.
	DedupeMode DedupeMode
	// Output is the serialized result.
	Output []byte
	// DryRun is true when nothing was meant to be written.
	DryRun bool
	// Written is true when the history file was overwritten.
	Written bool
	// BackupPath is the backup copy, if one was made.
	BackupPath string
}

// Removed returns the total number of entries dropped.
func (r *Result) Removed() int {
	return r.Before - r.After
}

// Summary converts r for rendering.
func (r *Result) Summary() report.Summary {
	s := report.Summary{
		Path:              r.Path,
		Before:            r.Before,
		After:             r.After,
		RemovedByDate:     r.RemovedByDate,
		DedupeMode:        string(r.DedupeMode),
		RemovedDuplicates: r.RemovedDuplicates,
		DryRun:            r.DryRun,
		Written:           r.Written,
		BackupPath:        r.BackupPath,
	}
	if r.DateRange != nil {
		s.DateRange = r.DateRange.String()
	}
	return s
}

// Cleaner reads, filters and rewrites history files.
type Cleaner struct {
	FS      FileSystem
	Clock   func() time.Time
	Logger  *log.Logger
	Journal journal.Logger
}

// NewCleaner returns a Cleaner working on the real file system.
func NewCleaner(logger *log.Logger, j journal.Logger) *Cleaner {
	if j == nil {
		j = journal.NewNoopLogger()
	}
	return &Cleaner{
		FS:      OSFileSystem{},
		Clock:   time.Now,
		Logger:  logger,
		Journal: j,
	}
}

// Run executes one pass over opts.Path.
//
// In analyze mode the file is only read and KeepDuplicates has no effect.
// Otherwise the date range filter
// and the dedupe stage run in that order and, unless this is a dry run or
// nothing was removed, the file is backed up and overwritten.
func (c *Cleaner) Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Analyze && opts.DateRange != nil {
		return nil, histerrors.Invalidf("--analyze", "cannot be combined with --remove-between")
	}
	if opts.Path == "" {
		return nil, histerrors.Invalidf("--history-file", "no history file given")
	}

	logger := c.logger()

	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	// Read
	logger.Debug("Reading history", "path", opts.Path)
	data, err := c.FS.ReadFile(opts.Path)
	if err != nil {
		return nil, &histerrors.IOError{Op: "read", Path: opts.Path, Err: err}
	}

	f, err := history.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opts.Path, err)
	}
	logger.Debug("Parsed history", "entries", f.Len(), "bytes", len(data))

	if opts.Analyze {
		r := analyze.AnalyzeIn(f.Entries, opts.TopN, opts.Location)
		r.Path = opts.Path
		return &Result{Path: opts.Path, Report: r, Before: f.Len(), After: f.Len()}, nil
	}

	res := &Result{
		Path:       opts.Path,
		Before:     f.Len(),
		DateRange:  opts.DateRange,
		DedupeMode: opts.dedupeMode(),
		DryRun:     opts.DryRun,
	}

	// Filter
	entries := f.Entries
	if opts.DateRange != nil {
		if err := checkContext(ctx); err != nil {
			return nil, err
		}
		n := len(entries)
		entries = history.RemoveBetween(entries, *opts.DateRange)
		res.RemovedByDate = n - len(entries)
		logger.Info(fmt.Sprintf("%d entries after removing entries between %s and %s",
			len(entries), opts.DateRange.Start, opts.DateRange.End))
	}

	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	n := len(entries)
	switch res.DedupeMode {
	case DedupeAll:
		entries = history.Dedupe(entries)
	case DedupeConsecutive:
		entries = history.RemoveConsecutiveDuplicates(entries)
	}
	res.RemovedDuplicates = n - len(entries)
	if res.DedupeMode != DedupeNone {
		logger.Info(fmt.Sprintf("%d entries after removing duplicates (%.2f%% of duplicates)",
			len(entries), percent(res.RemovedDuplicates, n)))
	}

	res.After = len(entries)
	res.Output = f.WithEntries(entries).Bytes()

	if opts.DryRun {
		logger.Info("Dry run, not writing", "path", opts.Path)
		return res, nil
	}
	if res.Removed() == 0 {
		logger.Info("Nothing to remove, leaving history untouched", "path", opts.Path)
		return res, nil
	}

	if opts.Confirm != nil {
		ok, err := opts.Confirm(res)
		if err != nil {
			return nil, err
		}
		if !ok {
			return res, histerrors.ErrCanceled
		}
	}

	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	// Commit
	if !opts.NoBackup {
		res.BackupPath = BackupPath(opts.Path, c.now())
		logger.Info(fmt.Sprintf("Backing up the history to '%s'", res.BackupPath))
	}
	if err := Commit(c.FS, opts.Path, res.Output, res.BackupPath); err != nil {
		res.BackupPath = ""
		return nil, err
	}
	res.Written = true
	logger.Info("History written", "path", opts.Path, "entries", res.After)

	c.record(ctx, res)
	return res, nil
}

func (c *Cleaner) record(ctx context.Context, res *Result) {
	if c.Journal == nil {
		return
	}
	rec := journal.Record{
		Path:              res.Path,
		BackupPath:        res.BackupPath,
		Before:            res.Before,
		After:             res.After,
		RemovedByDate:     res.RemovedByDate,
		RemovedDuplicates: res.RemovedDuplicates,
		DedupeMode:        string(res.DedupeMode),
	}
	if res.DateRange != nil {
		rec.DateRange = res.DateRange.String()
	}
	if err := c.Journal.Log(ctx, rec); err != nil {
		c.logger().Warn("Failed to write operation journal", "err", err)
	}
}

func (c *Cleaner) logger() *log.Logger {
	if c.Logger == nil {
		return log.New(io.Discard)
	}
	return c.Logger
}

func (c *Cleaner) now() time.Time {
	if c.Clock == nil {
		return time.Now()
	}
	return c.Clock()
}

func checkContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", histerrors.ErrCanceled, err)
	}
	return nil
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
