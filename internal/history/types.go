// Package history reads, filters and writes zsh history files.
//
// A history file is a sequence of lines in one of two shapes:
//
//	: 1672531200:0;git status    structured record (timestamp, duration, command)
//	git status                   legacy line, or anything that fails to parse
//
// Every stage in this package is a pure function over a slice of entries:
// entries are never reordered or modified, only kept or dropped.
package history

import (
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Entry is a single line of a history file.
type Entry struct {
	// Raw is the original line as read, without its terminator.
	Raw string

	// Command is the command text. For structured records this is the text
	// after ';', for opaque lines it is the whole line.
	Command string

	// Timestamp is the Unix time the command started. Only set when Structured.
	Timestamp int64

	// Duration is the elapsed time in seconds. Only set when Structured.
	Duration int64

	// Structured is true for ": <ts>:<dur>;<cmd>" records and false for
	// legacy lines and lines that failed to parse.
	Structured bool
}

// NewEntry builds a structured entry that has no original line.
func NewEntry(ts, duration int64, command string) Entry {
	return Entry{Command: command, Timestamp: ts, Duration: duration, Structured: true}
}

// NewOpaqueEntry builds an entry with no metadata.
func NewOpaqueEntry(line string) Entry {
	return Entry{Raw: line, Command: line}
}

// Key returns the command with trailing whitespace removed. Two entries are
// duplicates iff their keys are equal.
func (e Entry) Key() string {
	return strings.TrimRightFunc(e.Command, unicode.IsSpace)
}

// Executable returns the first whitespace-delimited word of the command,
// or "" for a blank command.
func (e Entry) Executable() string {
	fields := strings.Fields(e.Command)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Time returns the entry timestamp in loc. ok is false for opaque entries.
func (e Entry) Time(loc *time.Location) (t time.Time, ok bool) {
	if !e.Structured {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	return time.Unix(e.Timestamp, 0).In(loc), true
}

// Line returns the entry in history file format.
func (e Entry) Line() string {
	if e.Raw != "" || !e.Structured {
		return e.Raw
	}
	var b strings.Builder
	b.WriteString(": ")
	b.WriteString(strconv.FormatInt(e.Timestamp, 10))
	b.WriteByte(':')
	b.WriteString(strconv.FormatInt(e.Duration, 10))
	b.WriteByte(';')
	b.WriteString(e.Command)
	return b.String()
}

// File is a parsed history file.
type File struct {
	// Entries holds one entry per line, in file order.
	Entries []Entry

	// Terminator is the line ending used when writing the file back.
	Terminator string
}

// WithEntries returns a copy of f holding entries, with the same terminator.
func (f *File) WithEntries(entries []Entry) *File {
	return &File{Entries: entries, Terminator: f.Terminator}
}

// Len returns the number of entries.
func (f *File) Len() int {
	return len(f.Entries)
}
