// Package grid lays trackers out as week-aligned calendar grids.
//
// Resolve decides which days a tracker's grid shows, Classify decides how a
// single day looks, and Build does both. Everything here is a pure function
// of a tracker snapshot and the caller's "today".
package grid

import (
	"iter"

	"github.com/rnwolfe/tally/internal/calendar"
	"github.com/rnwolfe/tally/internal/tracker"
)

// Minimum lookahead a grid shows past today and past the start.
const (
	weeksAfterToday = 2
	weeksAfterStart = 3
	weeksAfterEvent = 1
)

// Range is an inclusive, week-aligned span of days. Start is always a
// Monday and End a Sunday.
type Range struct {
	Start calendar.Day
	End   calendar.Day
}

// Days iterates the range in ascending order.
func (r Range) Days() iter.Seq[calendar.Day] {
	days, err := calendar.Days(r.Start, r.End)
	if err != nil {
		return func(func(calendar.Day) bool) {}
	}
	return days
}

// Len is the number of days in the range, always a multiple of 7.
func (r Range) Len() int {
	return calendar.Count(r.Start, r.End)
}

// Weeks is the number of grid rows.
func (r Range) Weeks() int {
	return r.Len() / 7
}

// Contains reports whether d falls inside the range.
func (r Range) Contains(d calendar.Day) bool {
	return d.Between(r.Start, r.End)
}

// Resolve returns the smallest week-aligned range a tracker's grid needs.
//
// Habits show from min(today, start) through the furthest of their end,
// goal end, two weeks past today and three weeks past the start. Events
// with an end show through a week past it; open events show two weeks past
// today. The result always contains both today and the start day.
func Resolve(t tracker.Tracker, today calendar.Day) Range {
	start := t.Start
	if start.IsZero() {
		start = today
	}

	var lo, hi calendar.Day
	switch k := t.Kind.(type) {
	case tracker.Habit:
		lo = calendar.Min(today, start)
		hi = calendar.Max(
			orDay(k.End, today),
			orDay(k.GoalEnd(start), today),
			today.AddWeeks(weeksAfterToday),
			start.AddWeeks(weeksAfterStart),
		)
	case tracker.Event:
		if k.End != nil {
			lo = calendar.Min(today, start)
			hi = calendar.Max(today, *k.End, k.End.AddWeeks(weeksAfterEvent))
		} else {
			lo = start
			hi = calendar.Max(today, today.AddWeeks(weeksAfterToday))
		}
	default:
		lo = today
		hi = today
	}

	// Start may sit after an event's end or far past today; keep both
	// reference days visible regardless.
	lo = calendar.Min(lo, today, start)
	hi = calendar.Max(hi, today, start)

	return Range{
		Start: calendar.StartOfWeek(lo),
		End:   calendar.EndOfWeek(hi),
	}
}

func orDay(d *calendar.Day, fallback calendar.Day) calendar.Day {
	if d == nil || d.IsZero() {
		return fallback
	}
	return *d
}
