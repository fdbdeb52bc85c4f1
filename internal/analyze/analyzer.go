// Package analyze computes frequency statistics over history entries.
package analyze

import (
	"sort"
	"time"

	"github.com/chazuruo/histclean/internal/history"
)

// MonthLayout is the layout of Bucket.Month.
const MonthLayout = "2006-01"

// Rank is a ranked command or executable.
type Rank struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

// Span is the interval covered by timestamped entries, in Unix seconds.
type Span struct {
	Earliest int64 `json:"earliest" yaml:"earliest"`
	Latest   int64 `json:"latest" yaml:"latest"`
}

// Bucket counts timestamped entries in one calendar month.
type Bucket struct {
	Month string `json:"month" yaml:"month"`
	Count int    `json:"count" yaml:"count"`
}

// Report is the result of analyzing a history.
type Report struct {
	Path              string   `json:"path,omitempty" yaml:"path,omitempty"`
	TotalCommands     int      `json:"total_commands" yaml:"total_commands"`
	UniqueCommands    int      `json:"unique_commands" yaml:"unique_commands"`
	DuplicateCommands int      `json:"duplicate_commands" yaml:"duplicate_commands"`
	Span              *Span    `json:"span" yaml:"span"`
	TopN              int      `json:"top_n" yaml:"top_n"`
	TopCommands       []Rank   `json:"top_commands" yaml:"top_commands"`
	TopExecutables    []Rank   `json:"top_executables" yaml:"top_executables"`
	Activity          []Bucket `json:"activity" yaml:"activity"`
}

// DuplicateRatio returns DuplicateCommands / TotalCommands, or 0 for an
// empty history.
func (r *Report) DuplicateRatio() float64 {
	if r.TotalCommands == 0 {
		return 0
	}
	return float64(r.DuplicateCommands) / float64(r.TotalCommands)
}

// Analyze builds a report with month buckets in the local time zone.
func Analyze(entries []history.Entry, topN int) *Report {
	return AnalyzeIn(entries, topN, time.Local)
}

// AnalyzeIn builds a report over entries, ranking the topN most frequent
// commands and executables. Months are computed in loc.
//
// Entries keep no identity beyond their Key: "ls" and "ls " count as the
// same command. Blank commands are counted in the totals but never ranked.
func AnalyzeIn(entries []history.Entry, topN int, loc *time.Location) *Report {
	if loc == nil {
		loc = time.Local
	}

	r := &Report{
		TotalCommands:  len(entries),
		TopN:           topN,
		TopCommands:    []Rank{},
		TopExecutables: []Rank{},
		Activity:       []Bucket{},
	}

	commands := newCounter()
	executables := newCounter()
	months := newCounter()
	for _, e := range entries {
		if key := e.Key(); key != "" {
			commands.add(key)
		}
		if exe := e.Executable(); exe != "" {
			executables.add(exe)
		}

		t, ok := e.Time(loc)
		if !ok {
			continue
		}
		months.add(t.Format(MonthLayout))

		if r.Span == nil {
			r.Span = &Span{Earliest: e.Timestamp, Latest: e.Timestamp}
			continue
		}
		r.Span.Earliest = min(r.Span.Earliest, e.Timestamp)
		r.Span.Latest = max(r.Span.Latest, e.Timestamp)
	}

	r.DuplicateCommands = history.CountDuplicates(entries)
	r.UniqueCommands = r.TotalCommands - r.DuplicateCommands

	if topN > 0 {
		r.TopCommands = commands.top(topN)
		r.TopExecutables = executables.top(topN)
	}

	for _, m := range months.order {
		r.Activity = append(r.Activity, Bucket{Month: m, Count: months.counts[m]})
	}
	sort.Slice(r.Activity, func(i, j int) bool {
		return r.Activity[i].Month < r.Activity[j].Month
	})

	return r
}

// counter counts names and remembers the order they were first seen in.
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(name string) {
	if _, ok := c.counts[name]; !ok {
		c.order = append(c.order, name)
	}
	c.counts[name]++
}

// top returns the n most frequent names, ties in first-seen order.
func (c *counter) top(n int) []Rank {
	ranks := make([]Rank, 0, len(c.order))
	for _, name := range c.order {
		ranks = append(ranks, Rank{Name: name, Count: c.counts[name]})
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		return ranks[i].Count > ranks[j].Count
	})
	if len(ranks) > n {
		ranks = ranks[:n]
	}
	return ranks
}
