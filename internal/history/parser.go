package history

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	histerrors "github.com/chazuruo/histclean/internal/errors"
)

// zsh extended history format: ": <timestamp>:<elapsed>;<command>"
var structuredRegex = regexp.MustCompile(`(?s)^: (\d+):(\d+);(.*)$`)

// Parse reads the contents of a zsh history file.
//
// Lines are split on the terminator of the first line ("\n" or "\r\n").
// A single terminator at end of input does not produce an empty entry, but
// blank lines anywhere else are kept as empty opaque entries.
//
// Commands continued with a trailing backslash are not joined: every
// physical line is its own entry, e.g.
//
//	: 1616420200:0;echo "multi \
//	line"
//
// yields a structured entry followed by the opaque entry `line"`.
//
// Parse fails only when data is not valid UTF-8; malformed lines are kept
// as opaque entries.
func Parse(data []byte) (*File, error) {
	if !utf8.Valid(data) {
		return nil, &histerrors.EncodingError{Line: invalidLine(data)}
	}

	term := detectTerminator(data)
	f := &File{Terminator: term}
	if len(data) == 0 {
		return f, nil
	}

	text := strings.TrimSuffix(string(data), term)
	if term == "\r\n" {
		// A CRLF file may still end with a bare LF.
		text = strings.TrimSuffix(text, "\n")
	}
	lines := strings.Split(text, term)
	f.Entries = make([]Entry, 0, len(lines))
	for _, line := range lines {
		f.Entries = append(f.Entries, ParseLine(line))
	}

	return f, nil
}

// ParseLine parses a single history line without its terminator.
func ParseLine(line string) Entry {
	matches := structuredRegex.FindStringSubmatch(line)
	if matches == nil {
		return NewOpaqueEntry(line)
	}

	ts, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil {
		return NewOpaqueEntry(line)
	}
	elapsed, err := strconv.ParseInt(matches[2], 10, 64)
	if err != nil {
		return NewOpaqueEntry(line)
	}

	return Entry{
		Raw:        line,
		Command:    matches[3],
		Timestamp:  ts,
		Duration:   elapsed,
		Structured: true,
	}
}

// detectTerminator returns "\r\n" if the first line ends with it, "\n" otherwise.
func detectTerminator(data []byte) string {
	i := bytes.IndexByte(data, '\n')
	if i > 0 && data[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}

// invalidLine returns the 1-based line number of the first invalid UTF-8 sequence.
func invalidLine(data []byte) int {
	line := 1
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size <= 1 {
			return line
		}
		if r == '\n' {
			line++
		}
		data = data[size:]
	}
	return line
}
