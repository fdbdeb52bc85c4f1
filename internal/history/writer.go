package history

import "bytes"

// Serialize renders f in history file format: one line per entry, joined
// by the file terminator, with a single terminator at the end. An empty
// file serializes to no bytes.
func Serialize(f *File) []byte {
	if f == nil || len(f.Entries) == 0 {
		return nil
	}

	term := f.Terminator
	if term == "" {
		term = "\n"
	}

	var buf bytes.Buffer
	for _, e := range f.Entries {
		buf.WriteString(e.Line())
		buf.WriteString(term)
	}
	return buf.Bytes()
}

// Bytes is shorthand for Serialize(f).
func (f *File) Bytes() []byte {
	return Serialize(f)
}
