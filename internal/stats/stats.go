// Package stats reduces a tracker and its activity log to summary numbers:
// streaks, completion rates and day counts.
package stats

import (
	"fmt"
	"math"

	"github.com/rnwolfe/tally/internal/calendar"
	"github.com/rnwolfe/tally/internal/tracker"
)

// Phase is where a tracker is in its lifecycle.
type Phase int

const (
	Active    Phase = iota
	Pending         // start is still in the future
	Completed       // an event whose end has passed
)

func (p Phase) String() string {
	switch p {
	case Pending:
		return "pending"
	case Completed:
		return "completed"
	}
	return "active"
}

// SubStat is one labeled secondary figure.
type SubStat struct {
	Label string
	Value string
}

// Record is the summary of one tracker as of a given day. MainValue and
// MainLabel are the headline; Sub holds the secondary figures in display
// order. The typed fields carry the same numbers for callers that need them.
type Record struct {
	Phase     Phase
	MainValue int
	MainLabel string
	Sub       []SubStat

	CurrentStreak int // consecutive marked days (build) or clean days (quit)
	BestStreak    int // longest run that has already been broken
	Completed     int // marked days, build habits only
	Relapses      int // marked days, quit habits only
	TotalDays     int
	Passed        int // days since start, events only
	Percentage    int
}

// Compute summarizes t as of today. It reads t and never modifies it; a
// record is only valid for the day it was computed on.
func Compute(t tracker.Tracker, today calendar.Day) Record {
	if t.Start.IsZero() {
		return Record{Phase: Active, MainLabel: "days"}
	}
	if today.Before(t.Start) {
		return pending(t, today)
	}

	switch k := t.Kind.(type) {
	case tracker.Habit:
		if k.Behavior == tracker.Quit {
			return quitHabit(t, k, today)
		}
		return buildHabit(t, k, today)
	case tracker.Event:
		return event(t, k, today)
	}
	return Record{Phase: Active, MainLabel: "days"}
}

func pending(t tracker.Tracker, today calendar.Day) Record {
	return Record{
		Phase:     Pending,
		MainValue: calendar.Diff(today, t.Start),
		MainLabel: "days to start",
		Sub:       []SubStat{{Label: "starts", Value: t.Start.String()}},
	}
}

func event(t tracker.Tracker, e tracker.Event, today calendar.Day) Record {
	end := today
	if e.End != nil && !e.End.IsZero() {
		end = *e.End
	}

	r := Record{
		Phase:     Active,
		TotalDays: max(1, abs(calendar.Diff(t.Start, end))),
		Passed:    calendar.Diff(t.Start, today),
	}
	r.Percentage = clamp(percent(r.Passed, r.TotalDays), 0, 100)
	if e.End != nil && today.After(end) {
		r.Phase = Completed
	}

	if e.CountDown {
		r.MainValue = max(0, calendar.Diff(today, end))
		r.MainLabel = "days left"
		r.Sub = []SubStat{
			{Label: "target", Value: end.String()},
			{Label: "elapsed", Value: fmt.Sprintf("%d of %d days", max(0, r.Passed), r.TotalDays)},
			{Label: "progress", Value: fmt.Sprintf("%d%%", r.Percentage)},
		}
		return r
	}

	r.MainValue = max(0, r.Passed)
	r.MainLabel = "days since"
	r.Sub = []SubStat{
		{Label: "since", Value: t.Start.String()},
		{Label: "weeks", Value: fmt.Sprintf("%.1f", float64(r.MainValue)/7)},
	}
	if e.End != nil {
		r.Sub = append(r.Sub, SubStat{Label: "progress", Value: fmt.Sprintf("%d%%", r.Percentage)})
	}
	return r
}

// quitHabit walks start..today: a marked day is a relapse and resets the
// clean streak, any other day extends it. The best streak is the record the
// current run is measured against, so it only takes runs a relapse ended.
func quitHabit(t tracker.Tracker, h tracker.Habit, today calendar.Day) Record {
	r := Record{Phase: Active, TotalDays: calendar.Count(t.Start, today)}
	var lastRelapse calendar.Day

	days, _ := calendar.Days(t.Start, today)
	for d := range days {
		if t.Log.Marked(d) {
			r.BestStreak = max(r.BestStreak, r.CurrentStreak)
			r.CurrentStreak = 0
			r.Relapses++
			lastRelapse = d
			continue
		}
		r.CurrentStreak++
	}

	clean := r.TotalDays - r.Relapses
	r.Percentage = percent(clean, r.TotalDays)
	r.MainValue = r.CurrentStreak
	r.MainLabel = "clean days"
	r.Sub = []SubStat{
		{Label: "record", Value: pluralDays(max(r.BestStreak, r.CurrentStreak))},
		{Label: "relapses", Value: fmt.Sprintf("%d", r.Relapses)},
		{Label: "clean rate", Value: fmt.Sprintf("%d%%", r.Percentage)},
	}
	if h.LastReset != nil && h.LastReset.After(lastRelapse) {
		lastRelapse = *h.LastReset
	}
	if !lastRelapse.IsZero() {
		r.Sub = append(r.Sub, SubStat{Label: "last relapse", Value: lastRelapse.String()})
	}
	r.Sub = appendGoal(r.Sub, h, r.CurrentStreak)
	return r
}

// buildHabit walks start..today: a marked day extends the streak and an
// unmarked day resets it. Today is still open: left unmarked it counts
// toward a live streak but not toward completed days, and never breaks it.
func buildHabit(t tracker.Tracker, h tracker.Habit, today calendar.Day) Record {
	r := Record{Phase: Active, TotalDays: calendar.Count(t.Start, today)}

	days, _ := calendar.Days(t.Start, today)
	for d := range days {
		switch {
		case t.Log.Marked(d):
			r.Completed++
			r.CurrentStreak++
		case d == today:
			if r.CurrentStreak > 0 {
				r.CurrentStreak++
			}
		default:
			r.BestStreak = max(r.BestStreak, r.CurrentStreak)
			r.CurrentStreak = 0
		}
	}

	r.Percentage = percent(r.Completed, r.TotalDays)
	r.MainValue = r.CurrentStreak
	r.MainLabel = "day streak"
	r.Sub = []SubStat{
		{Label: "record", Value: pluralDays(max(r.BestStreak, r.CurrentStreak))},
		{Label: "completed", Value: fmt.Sprintf("%d of %d days", r.Completed, r.TotalDays)},
		{Label: "rate", Value: fmt.Sprintf("%d%%", r.Percentage)},
	}
	r.Sub = appendGoal(r.Sub, h, r.Completed)
	return r
}

func appendGoal(sub []SubStat, h tracker.Habit, progress int) []SubStat {
	if !h.Goal.Enabled || h.Goal.TargetDays <= 0 {
		return sub
	}
	return append(sub, SubStat{Label: "goal", Value: fmt.Sprintf("%d/%d", min(progress, h.Goal.TargetDays), h.Goal.TargetDays)})
}

func percent(n, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(n) / float64(total) * 100))
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func clamp(n, lo, hi int) int {
	return min(max(n, lo), hi)
}
