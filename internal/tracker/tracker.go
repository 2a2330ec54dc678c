// Package tracker defines tally's trackers and their persistence.
//
// A Tracker is either a Habit (done or avoided daily) or an Event (a single
// date counted up from or down to). The per-type settings live in the Kind
// variant, so code that needs them switches on the concrete type instead of
// reading flags that only make sense for one kind.
package tracker

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rnwolfe/tally/internal/calendar"
)

// Type identifies the tracker variant.
type Type string

const (
	TypeHabit Type = "habit"
	TypeEvent Type = "event"
)

// Behavior is what a habit asks of the user.
type Behavior string

const (
	Build Behavior = "build" // do it every day
	Quit  Behavior = "quit"  // avoid it every day
)

// ParseBehavior accepts "build"/"do" and "quit"; empty defaults to Build.
func ParseBehavior(s string) (Behavior, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "build", "do":
		return Build, nil
	case "quit":
		return Quit, nil
	}
	return "", fmt.Errorf("%w: unknown behavior %q (use build or quit)", ErrInvalid, s)
}

// Colors are the palette keys a tracker may use, in picker order.
var Colors = []string{"today", "purple", "green", "orange", "red", "pink", "blue", "yellow"}

// DefaultColor is used when neither the user nor the config picks one.
const DefaultColor = "today"

var (
	// ErrInvalid marks a tracker configuration rejected at the boundary.
	ErrInvalid = errors.New("invalid tracker")
	// ErrNotFound is returned when no tracker matches an id or prefix.
	ErrNotFound = errors.New("tracker not found")
	// ErrAmbiguous is returned when an id prefix matches several trackers.
	ErrAmbiguous = errors.New("ambiguous tracker id")
)

// Kind holds the settings specific to one tracker type.
type Kind interface {
	Type() Type
	isKind()
}

// Goal is an optional target length for a habit.
type Goal struct {
	Enabled    bool
	TargetDays int
}

// Habit is a recurring daily commitment.
type Habit struct {
	Behavior Behavior
	Goal     Goal
	// End is an optional explicit end of the habit's run.
	End *calendar.Day
	// LastReset is the most recent relapse recorded for a quit habit.
	LastReset *calendar.Day
}

func (Habit) Type() Type { return TypeHabit }
func (Habit) isKind()    {}

// GoalEnd returns the last day of the goal path, start + TargetDays - 1.
// It is nil unless the goal is enabled with a positive target.
func (h Habit) GoalEnd(start calendar.Day) *calendar.Day {
	if !h.Goal.Enabled || h.Goal.TargetDays <= 0 {
		return nil
	}
	end := start.AddDays(h.Goal.TargetDays - 1)
	return &end
}

// Event is a single dated occurrence.
type Event struct {
	// CountDown is true when End is a future target to count down to.
	CountDown bool
	End       *calendar.Day
}

func (Event) Type() Type { return TypeEvent }
func (Event) isKind()    {}

// Tracker is a snapshot of one tracked commitment.
type Tracker struct {
	ID        string
	Title     string
	Color     string
	Start     calendar.Day
	Kind      Kind
	Log       ActivityLog
	CreatedAt time.Time
}

// Type returns the tracker's variant, or "" when Kind is unset.
func (t Tracker) Type() Type {
	if t.Kind == nil {
		return ""
	}
	return t.Kind.Type()
}

// ShortID returns the first eight characters of the id.
func (t Tracker) ShortID() string {
	if len(t.ID) <= 8 {
		return t.ID
	}
	return t.ID[:8]
}

// Validate checks a tracker as entered by a user. The engine itself never
// rejects a configuration; this is the input boundary.
func (t Tracker) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("%w: title can't be empty", ErrInvalid)
	}
	if t.Color != "" && !slices.Contains(Colors, t.Color) {
		return fmt.Errorf("%w: unknown color %q (choose from %s)", ErrInvalid, t.Color, strings.Join(Colors, ", "))
	}
	if t.Start.IsZero() {
		return fmt.Errorf("%w: start date is required", ErrInvalid)
	}

	switch k := t.Kind.(type) {
	case Habit:
		if k.Behavior != Build && k.Behavior != Quit {
			return fmt.Errorf("%w: unknown behavior %q", ErrInvalid, k.Behavior)
		}
		if k.Goal.TargetDays < 0 {
			return fmt.Errorf("%w: goal length can't be negative", ErrInvalid)
		}
		if k.Goal.Enabled && k.Goal.TargetDays == 0 {
			return fmt.Errorf("%w: goal needs a length in days", ErrInvalid)
		}
	case Event:
		if k.CountDown && k.End == nil {
			return fmt.Errorf("%w: a countdown needs a target date", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: missing tracker type", ErrInvalid)
	}
	return nil
}

// ActivityLog maps calendar days to their mark. A missing key means not
// marked; a key present with false is a transient reset marker and also
// reads as not marked.
type ActivityLog map[calendar.Day]bool

// Marked reports whether d is marked.
func (l ActivityLog) Marked(d calendar.Day) bool {
	return l[d]
}

// Toggle flips the presence of d and returns the new mark. It is the only
// mutation the CLI performs on a log.
func (l ActivityLog) Toggle(d calendar.Day) bool {
	if l[d] {
		delete(l, d)
		return false
	}
	l[d] = true
	return true
}

// MarkedDays returns every marked day in ascending order.
func (l ActivityLog) MarkedDays() []calendar.Day {
	days := make([]calendar.Day, 0, len(l))
	for d, marked := range l {
		if marked {
			days = append(days, d)
		}
	}
	slices.SortFunc(days, calendar.Day.Compare)
	return days
}

// Clone returns an independent copy of the log.
func (l ActivityLog) Clone() ActivityLog {
	out := make(ActivityLog, len(l))
	for d, v := range l {
		out[d] = v
	}
	return out
}
