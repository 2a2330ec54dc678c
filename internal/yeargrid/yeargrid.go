// Package yeargrid builds the tracker-independent year calendar: twelve
// Monday-first month blocks whose days are marked past, today or future.
package yeargrid

import (
	"math"
	"time"

	"github.com/rnwolfe/tally/internal/calendar"
)

// Status of one year cell.
type Status int

const (
	Empty Status = iota // padding before the 1st of a month
	Past
	Today
	Future
)

func (s Status) String() string {
	switch s {
	case Past:
		return "past"
	case Today:
		return "today"
	case Future:
		return "future"
	}
	return "empty"
}

// Cell is one slot of a month block.
type Cell struct {
	Status     Status
	Date       calendar.Day // zero for Empty cells
	DayOfYear  int
	DayOfMonth int
	Weekday    int     // Monday = 1 ... Sunday = 7
	Progress   float64 // share of the year elapsed at this day, one decimal
}

// Month is one month block, padded so its first real day falls on its
// weekday column.
type Month struct {
	Month time.Month
	Cells []Cell
}

// Days returns only the real (non-padding) cells.
func (m Month) Days() []Cell {
	for i, c := range m.Cells {
		if c.Status != Empty {
			return m.Cells[i:]
		}
	}
	return nil
}

// Build returns the twelve month blocks of year relative to today.
func Build(year int, today calendar.Day) []Month {
	total := calendar.DaysInYear(year)
	months := make([]Month, 0, 12)

	for m := time.January; m <= time.December; m++ {
		first := calendar.Date(year, m, 1)
		last := calendar.EndOfMonth(first)
		pad := first.ISOWeekday() - 1

		block := Month{Month: m, Cells: make([]Cell, 0, pad+last.Day())}
		for i := range pad {
			block.Cells = append(block.Cells, Cell{Status: Empty, Weekday: i + 1})
		}

		days, _ := calendar.Days(first, last)
		for d := range days {
			block.Cells = append(block.Cells, Cell{
				Status:     status(d, today),
				Date:       d,
				DayOfYear:  d.YearDay(),
				DayOfMonth: d.Day(),
				Weekday:    d.ISOWeekday(),
				Progress:   round1(float64(d.YearDay()) / float64(total) * 100),
			})
		}
		months = append(months, block)
	}
	return months
}

// YearProgress is the share of today's year that has elapsed through today,
// as a percentage with one decimal.
func YearProgress(today calendar.Day) float64 {
	return round1(float64(today.YearDay()) / float64(calendar.DaysInYear(today.Year())) * 100)
}

// DaysLeft is the number of days after today until the end of its year.
func DaysLeft(today calendar.Day) int {
	return calendar.Diff(today, calendar.EndOfYear(today.Year()))
}

func status(d, today calendar.Day) Status {
	switch {
	case d == today:
		return Today
	case d.Before(today):
		return Past
	}
	return Future
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
