package grid

import (
	"github.com/rnwolfe/tally/internal/calendar"
	"github.com/rnwolfe/tally/internal/tracker"
)

// ResolvedDay is a day placed on a grid.
type ResolvedDay struct {
	Date         calendar.Day
	Weekday      int // Monday = 1 ... Sunday = 7
	FirstOfMonth bool
}

func resolveDay(d calendar.Day) ResolvedDay {
	return ResolvedDay{Date: d, Weekday: d.ISOWeekday(), FirstOfMonth: d.Day() == 1}
}

// Cell pairs a grid day with its presentation.
type Cell struct {
	Day   ResolvedDay
	State CellState
}

// Grid is the ordered set of cells for one tracker.
type Grid struct {
	Start calendar.Day
	End   calendar.Day
	Cells []Cell
}

// Weeks splits the cells into Monday-first rows of seven.
func (g Grid) Weeks() [][]Cell {
	weeks := make([][]Cell, 0, len(g.Cells)/7)
	for i := 0; i+7 <= len(g.Cells); i += 7 {
		weeks = append(weeks, g.Cells[i:i+7])
	}
	return weeks
}

// Find returns the cell for d, if the grid shows it.
func (g Grid) Find(d calendar.Day) (Cell, bool) {
	if len(g.Cells) == 0 || d.Before(g.Start) || d.After(g.End) {
		return Cell{}, false
	}
	return g.Cells[calendar.Diff(g.Start, d)], true
}

// Build resolves t's range as of today and classifies every day in it.
func Build(t tracker.Tracker, today calendar.Day) Grid {
	return build(t, Resolve(t, today), today)
}

// Recent classifies only the last weeks rows ending with today's week. It
// backs the compact preview shown next to each tracker in listings.
func Recent(t tracker.Tracker, today calendar.Day, weeks int) Grid {
	if weeks < 1 {
		weeks = 1
	}
	end := calendar.EndOfWeek(today)
	r := Range{Start: calendar.StartOfWeek(today).AddWeeks(-(weeks - 1)), End: end}
	return build(t, r, today)
}

func build(t tracker.Tracker, r Range, today calendar.Day) Grid {
	g := Grid{Start: r.Start, End: r.End, Cells: make([]Cell, 0, r.Len())}
	for d := range r.Days() {
		g.Cells = append(g.Cells, Cell{Day: resolveDay(d), State: Classify(t, d, today)})
	}
	return g
}
