package report

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
	"github.com/rodaine/table"
)

// Summary describes the outcome of a clean run.
type Summary struct {
	Path              string `json:"path" yaml:"path"`
	Before            int    `json:"before" yaml:"before"`
	After             int    `json:"after" yaml:"after"`
	DateRange         string `json:"date_range,omitempty" yaml:"date_range,omitempty"`
	RemovedByDate     int    `json:"removed_by_date" yaml:"removed_by_date"`
	DedupeMode        string `json:"dedupe_mode" yaml:"dedupe_mode"`
	RemovedDuplicates int    `json:"removed_duplicates" yaml:"removed_duplicates"`
	DryRun            bool   `json:"dry_run" yaml:"dry_run"`
	Written           bool   `json:"written" yaml:"written"`
	BackupPath        string `json:"backup_path,omitempty" yaml:"backup_path,omitempty"`
}

// Removed returns the total number of entries removed.
func (s Summary) Removed() int {
	return s.Before - s.After
}

// RemovedRatio returns the share of Before that was removed, or 0 for an
// empty history.
func (s Summary) RemovedRatio() float64 {
	if s.Before == 0 {
		return 0
	}
	return float64(s.Removed()) / float64(s.Before)
}

// WriteSummary writes s to w in the requested format.
func WriteSummary(w io.Writer, s Summary, format Format) error {
	switch format {
	case "", FormatTable:
		return writeSummaryText(w, s)
	default:
		return Encode(w, s, format)
	}
}

func writeSummaryText(w io.Writer, s Summary) error {
	st := newStyles(w)

	tbl := table.New("Stage", "Entries", "Detail").
		WithWriter(w).
		WithWidthFunc(runewidth.StringWidth).
		WithHeaderFormatter(func(format string, vals ...interface{}) string {
			return st.header.Render(fmt.Sprintf(format, vals...))
		})

	tbl.AddRow("read", formatCount(s.Before), s.Path)
	if s.DateRange != "" {
		tbl.AddRow("remove-between", removed(s.RemovedByDate), s.DateRange)
	}
	if s.DedupeMode != "" && s.DedupeMode != "none" {
		tbl.AddRow("dedupe", removed(s.RemovedDuplicates), s.DedupeMode)
	}
	tbl.AddRow("result", formatCount(s.After), formatPercent(s.RemovedRatio())+" removed")
	tbl.Print()

	var status string
	switch {
	case s.DryRun:
		status = fmt.Sprintf("Dry run: %s was not modified.", s.Path)
	case s.Written && s.BackupPath != "":
		status = fmt.Sprintf("Wrote %s entries to %s (backup: %s).",
			formatCount(s.After), s.Path, st.highlight.Render(s.BackupPath))
	case s.Written:
		status = fmt.Sprintf("Wrote %s entries to %s.", formatCount(s.After), s.Path)
	default:
		status = fmt.Sprintf("Nothing to remove: %s was left untouched.", s.Path)
	}

	_, err := fmt.Fprintf(w, "\n%s\n", status)
	return err
}

func removed(n int) string {
	if n == 0 {
		return "0"
	}
	return "-" + formatCount(n)
}
