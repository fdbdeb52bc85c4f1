package history

import (
	"fmt"
	"time"

	histerrors "github.com/chazuruo/histclean/internal/errors"
)

// DateLayout is the layout accepted by ParseDate.
const DateLayout = "2006-01-02"

// Date is a calendar day with no time of day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, histerrors.Invalidf("date", "%q is not a YYYY-MM-DD date", s)
	}
	return DateOf(t), nil
}

// DateOf returns the calendar day of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// After reports whether d is a later day than other.
func (d Date) After(other Date) bool {
	if d.Year != other.Year {
		return d.Year > other.Year
	}
	if d.Month != other.Month {
		return d.Month > other.Month
	}
	return d.Day > other.Day
}

// StartOfDay returns midnight at the beginning of d in loc.
func (d Date) StartOfDay(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// EndOfDay returns the last second of d in loc: one second before the
// following midnight, so days shortened or lengthened by DST are covered.
func (d Date) EndOfDay(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day+1, 0, 0, 0, 0, loc).Add(-time.Second)
}

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	Start    Date
	End      Date
	Location *time.Location
}

// NewDateRange validates that start is not after end. Bounds are computed
// in loc, or the local time zone when loc is nil.
func NewDateRange(start, end Date, loc *time.Location) (DateRange, error) {
	if start.After(end) {
		return DateRange{}, histerrors.Invalidf("--remove-between",
			"start date %s is after end date %s", start, end)
	}
	if loc == nil {
		loc = time.Local
	}
	return DateRange{Start: start, End: end, Location: loc}, nil
}

// ParseDateRange parses two YYYY-MM-DD strings into a DateRange.
func ParseDateRange(start, end string, loc *time.Location) (DateRange, error) {
	s, err := ParseDate(start)
	if err != nil {
		return DateRange{}, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return DateRange{}, err
	}
	return NewDateRange(s, e, loc)
}

// Bounds returns the inclusive Unix-second interval covered by the range.
func (r DateRange) Bounds() (lo, hi int64) {
	loc := r.Location
	if loc == nil {
		loc = time.Local
	}
	return r.Start.StartOfDay(loc).Unix(), r.End.EndOfDay(loc).Unix()
}

// Contains reports whether ts falls inside the range.
func (r DateRange) Contains(ts int64) bool {
	lo, hi := r.Bounds()
	return ts >= lo && ts <= hi
}

func (r DateRange) String() string {
	return fmt.Sprintf("%s..%s", r.Start, r.End)
}
