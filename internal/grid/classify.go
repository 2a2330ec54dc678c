package grid

import (
	"github.com/rnwolfe/tally/internal/calendar"
	"github.com/rnwolfe/tally/internal/tracker"
)

// Status is the semantic meaning of a cell, independent of how it is drawn.
type Status int

const (
	StatusNone        Status = iota
	StatusBeforeStart        // before the tracker started
	StatusMarked             // build habit done on this day
	StatusMissed             // build habit day in the past, not done
	StatusOpen               // build habit today, not done yet
	StatusGoalPath           // future day on a goal path
	StatusFinish             // last day of the goal path, not done
	StatusClean              // quit habit day without a relapse
	StatusRelapse            // quit habit day with a relapse
	StatusUpcoming           // future habit day off any goal path
	StatusElapsed            // event day already passed
	StatusRemaining          // event day still to come
	StatusTarget             // the event's reference day
	StatusOffPath            // outside an event's span
)

var statusNames = [...]string{
	StatusNone:        "none",
	StatusBeforeStart: "before-start",
	StatusMarked:      "marked",
	StatusMissed:      "missed",
	StatusOpen:        "open",
	StatusGoalPath:    "goal-path",
	StatusFinish:      "finish",
	StatusClean:       "clean",
	StatusRelapse:     "relapse",
	StatusUpcoming:    "upcoming",
	StatusElapsed:     "elapsed",
	StatusRemaining:   "remaining",
	StatusTarget:      "target",
	StatusOffPath:     "off-path",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "unknown"
	}
	return statusNames[s]
}

// Tone selects the color family of a filled cell.
type Tone int

const (
	ToneNone    Tone = iota
	ToneTheme        // the tracker's own color
	ToneRelapse      // the broken-streak color
)

// Border is the emphasis drawn around a cell.
type Border int

const (
	BorderNone Border = iota
	BorderThin
	BorderThick
)

// Marker is a symbol drawn inside a cell.
type Marker int

const (
	MarkerNone Marker = iota
	MarkerTarget
	MarkerFinish
)

// CellState describes how one day of a grid is presented.
type CellState struct {
	Status  Status
	Filled  bool
	Opacity float64 // 0..1
	Tone    Tone
	Border  Border
	Marker  Marker
}

// Opacity levels used across cell kinds.
const (
	opacityDim     = 0.3 // before start, off an event's span
	opacityFaded   = 0.4 // unmarked habit day
	opacityPath    = 0.6 // event span or future goal path
	opacityReduced = 0.7 // marked or clean day that is not today
	opacityFull    = 1.0
)

// Classify returns the presentation of day d for t as of today. It never
// fails; configurations it can't make sense of come back unfilled with no
// marker.
func Classify(t tracker.Tracker, d, today calendar.Day) CellState {
	// Same fallback as Resolve: a tracker without a start begins today.
	start := t.Start
	if start.IsZero() {
		start = today
	}

	switch k := t.Kind.(type) {
	case tracker.Habit:
		return classifyHabit(k, start, t.Log, d, today)
	case tracker.Event:
		return classifyEvent(k, start, d, today)
	}
	return CellState{Status: StatusNone, Opacity: opacityDim}
}

func classifyHabit(h tracker.Habit, start calendar.Day, log tracker.ActivityLog, d, today calendar.Day) CellState {
	if d.Before(start) {
		return dimmed(StatusBeforeStart, d, today)
	}

	var cell CellState
	switch h.Behavior {
	case tracker.Quit:
		cell = classifyQuit(log, d, today)
	default:
		cell = classifyBuild(log, d, today)
	}

	// The goal path decorates every habit day from the start onward,
	// whether or not the day is marked.
	if goalEnd, ok := goalPathEnd(h, start); ok {
		switch {
		case d == goalEnd:
			cell.Border = BorderThick
			cell.Marker = MarkerFinish
			if !cell.Filled {
				cell.Status = StatusFinish
				cell.Opacity = opacityFull
			}
		case d.Before(goalEnd):
			cell.Border = BorderThin
			if cell.Status == StatusUpcoming {
				cell.Status = StatusGoalPath
				cell.Opacity = opacityPath
			}
		}
	}
	return cell
}

func classifyQuit(log tracker.ActivityLog, d, today calendar.Day) CellState {
	switch {
	case log.Marked(d):
		return CellState{
			Status:  StatusRelapse,
			Filled:  true,
			Opacity: opacityFull,
			Tone:    ToneRelapse,
			Border:  todayBorder(d, today),
		}
	case !d.After(today):
		return CellState{
			Status:  StatusClean,
			Filled:  true,
			Opacity: todayOr(d, today, opacityReduced),
			Tone:    ToneTheme,
			Border:  todayBorder(d, today),
		}
	}
	return CellState{Status: StatusUpcoming, Opacity: opacityFaded}
}

func classifyBuild(log tracker.ActivityLog, d, today calendar.Day) CellState {
	switch {
	case log.Marked(d):
		return CellState{
			Status:  StatusMarked,
			Filled:  true,
			Opacity: todayOr(d, today, opacityReduced),
			Tone:    ToneTheme,
			Border:  todayBorder(d, today),
		}
	case d == today:
		return CellState{Status: StatusOpen, Opacity: opacityFull, Border: BorderThin}
	case d.Before(today):
		return CellState{Status: StatusMissed, Opacity: opacityFaded}
	}
	return CellState{Status: StatusUpcoming, Opacity: opacityFaded}
}

// goalPathEnd reports the last day of an enabled goal. A goal with no
// positive length collapses to the start day.
func goalPathEnd(h tracker.Habit, start calendar.Day) (calendar.Day, bool) {
	if !h.Goal.Enabled {
		return calendar.Day{}, false
	}
	if end := h.GoalEnd(start); end != nil {
		return *end, true
	}
	return start, true
}

func classifyEvent(e tracker.Event, start, d, today calendar.Day) CellState {
	end := today
	if e.End != nil && !e.End.IsZero() {
		end = *e.End
	}
	// An end before the start reads as an event that already elapsed.
	end = calendar.Max(end, start)

	if !d.Between(start, end) {
		return dimmed(StatusOffPath, d, today)
	}

	target := start
	if e.CountDown {
		target = end
	}

	cell := CellState{
		Filled:  !d.After(today),
		Opacity: opacityPath,
		Tone:    ToneTheme,
		Border:  BorderThin,
	}
	if cell.Filled {
		cell.Status = StatusElapsed
	} else {
		cell.Status = StatusRemaining
	}
	if d == today {
		cell.Opacity = opacityFull
	}
	if d == target {
		cell.Status = StatusTarget
		cell.Opacity = opacityFull
		cell.Border = BorderThick
		cell.Marker = MarkerTarget
	}
	if !cell.Filled {
		cell.Tone = ToneNone
	}
	return cell
}

func dimmed(s Status, d, today calendar.Day) CellState {
	return CellState{Status: s, Opacity: opacityDim, Border: todayBorder(d, today)}
}

func todayBorder(d, today calendar.Day) Border {
	if d == today {
		return BorderThin
	}
	return BorderNone
}

func todayOr(d, today calendar.Day, other float64) float64 {
	if d == today {
		return opacityFull
	}
	return other
}
