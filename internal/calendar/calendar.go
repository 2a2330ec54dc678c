// Package calendar provides date arithmetic on calendar days.
//
// A Day is a date identity with no time-of-day or offset attached, so two
// instants that fall on the same local date always produce equal Days. All
// week math is Monday-first.
package calendar

import (
	"fmt"
	"iter"
	"time"
)

// Layout is the ISO date layout used for every serialized Day.
const Layout = "2006-01-02"

// Day is a calendar date. The zero value is not a valid day; use IsZero to
// detect it.
type Day struct {
	year  int
	month time.Month
	day   int
}

// Date returns the Day for year, month, day. Out-of-range values normalize
// the same way time.Date does (Jan 32 becomes Feb 1).
func Date(year int, month time.Month, day int) Day {
	return fromTime(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// Of returns the calendar day t falls on in t's own location.
func Of(t time.Time) Day {
	y, m, d := t.Date()
	return Day{year: y, month: m, day: d}
}

// Today returns the local calendar day of now. It is the only bridge from
// an instant to a Day; engine code takes the resulting Day as a parameter.
func Today(now time.Time) Day {
	return Of(now.Local())
}

// Parse parses an ISO "YYYY-MM-DD" date.
func Parse(s string) (Day, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Day{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return Of(t), nil
}

// MustParse is Parse for constants and tests.
func MustParse(s string) Day {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

func fromTime(t time.Time) Day {
	y, m, d := t.Date()
	return Day{year: y, month: m, day: d}
}

// Time returns midnight UTC of d. UTC keeps day arithmetic free of DST gaps.
func (d Day) Time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

// In returns local midnight of d in loc.
func (d Day) In(loc *time.Location) time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, loc)
}

func (d Day) Year() int             { return d.year }
func (d Day) Month() time.Month     { return d.month }
func (d Day) Day() int              { return d.day }
func (d Day) IsZero() bool          { return d == Day{} }
func (d Day) Weekday() time.Weekday { return d.Time().Weekday() }

// ISOWeekday returns 1 for Monday through 7 for Sunday.
func (d Day) ISOWeekday() int {
	wd := int(d.Weekday())
	if wd == 0 {
		wd = 7
	}
	return wd
}

// YearDay returns the day of the year, 1 through 365 or 366.
func (d Day) YearDay() int {
	return d.Time().YearDay()
}

// String formats d as YYYY-MM-DD.
func (d Day) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

// Format formats d with a time layout.
func (d Day) Format(layout string) string {
	return d.Time().Format(layout)
}

// MarshalText implements encoding.TextMarshaler.
func (d Day) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Day) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// AddDays returns d shifted by n days.
func (d Day) AddDays(n int) Day {
	return Date(d.year, d.month, d.day+n)
}

// AddWeeks returns d shifted by n weeks.
func (d Day) AddWeeks(n int) Day {
	return d.AddDays(7 * n)
}

// Compare returns -1, 0 or +1 as d is before, equal to or after o.
func (d Day) Compare(o Day) int {
	switch {
	case d.year != o.year:
		return cmpInt(d.year, o.year)
	case d.month != o.month:
		return cmpInt(int(d.month), int(o.month))
	default:
		return cmpInt(d.day, o.day)
	}
}

func (d Day) Before(o Day) bool { return d.Compare(o) < 0 }
func (d Day) After(o Day) bool  { return d.Compare(o) > 0 }

// Between reports whether lo <= d <= hi.
func (d Day) Between(lo, hi Day) bool {
	return !d.Before(lo) && !d.After(hi)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Min returns the earliest of the given days.
func Min(first Day, rest ...Day) Day {
	m := first
	for _, d := range rest {
		if d.Before(m) {
			m = d
		}
	}
	return m
}

// Max returns the latest of the given days.
func Max(first Day, rest ...Day) Day {
	m := first
	for _, d := range rest {
		if d.After(m) {
			m = d
		}
	}
	return m
}

// Diff returns b - a in whole calendar days.
func Diff(a, b Day) int {
	// Both sides are UTC midnight, so the difference is a whole number of days.
	return int(b.Time().Sub(a.Time()) / (24 * time.Hour))
}

// StartOfWeek returns the Monday of the week containing d.
func StartOfWeek(d Day) Day {
	return d.AddDays(-(d.ISOWeekday() - 1))
}

// EndOfWeek returns the Sunday of the week containing d.
func EndOfWeek(d Day) Day {
	return d.AddDays(7 - d.ISOWeekday())
}

// StartOfMonth returns the first day of d's month.
func StartOfMonth(d Day) Day {
	return Date(d.year, d.month, 1)
}

// EndOfMonth returns the last day of d's month.
func EndOfMonth(d Day) Day {
	return Date(d.year, d.month+1, 0)
}

// StartOfYear returns January 1st of year.
func StartOfYear(year int) Day {
	return Date(year, time.January, 1)
}

// EndOfYear returns December 31st of year.
func EndOfYear(year int) Day {
	return Date(year, time.December, 31)
}

// DaysInYear returns 365 or 366.
func DaysInYear(year int) int {
	return EndOfYear(year).YearDay()
}

// InvalidRangeError is returned by Days when start is after end.
type InvalidRangeError struct {
	Start, End Day
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range: start %s is after end %s", e.Start, e.End)
}

// Days returns the consecutive days from start through end, inclusive.
// The sequence is lazy and can be ranged over any number of times.
func Days(start, end Day) (iter.Seq[Day], error) {
	if start.After(end) {
		return nil, &InvalidRangeError{Start: start, End: end}
	}
	return func(yield func(Day) bool) {
		for d := start; !d.After(end); d = d.AddDays(1) {
			if !yield(d) {
				return
			}
		}
	}, nil
}

// Count returns the number of days in [start, end], or 0 when start > end.
func Count(start, end Day) int {
	if start.After(end) {
		return 0
	}
	return Diff(start, end) + 1
}
