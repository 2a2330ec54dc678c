package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rnwolfe/tally/internal/calendar"
	"github.com/rnwolfe/tally/internal/stats"
	"github.com/rnwolfe/tally/internal/store"
	"github.com/rnwolfe/tally/internal/tracker"
	"github.com/rnwolfe/tally/internal/tui"
	"github.com/rnwolfe/tally/internal/ui"
	"github.com/spf13/pflag"
)

// todayEnv overrides the current date for a whole invocation.
const todayEnv = "TALLY_TODAY"

// today is the single place tally reads the clock.
func today() (calendar.Day, error) {
	if v := os.Getenv(todayEnv); v != "" {
		d, err := calendar.Parse(v)
		if err != nil {
			return calendar.Day{}, fmt.Errorf("%s: %w", todayEnv, err)
		}
		return d, nil
	}
	return calendar.Today(time.Now()), nil
}

// dayValue is a pflag.Value for date flags. It takes YYYY-MM-DD or one of
// today, yesterday and tomorrow, which are resolved against the invocation's
// today so TALLY_TODAY applies to them too.
type dayValue struct {
	raw    string
	day    calendar.Day
	offset int
	rel    bool
}

var _ pflag.Value = (*dayValue)(nil)

func (v *dayValue) String() string { return v.raw }

func (v *dayValue) Type() string { return "date" }

func (v *dayValue) Set(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "today":
		*v = dayValue{raw: s, rel: true}
	case "yesterday":
		*v = dayValue{raw: s, rel: true, offset: -1}
	case "tomorrow":
		*v = dayValue{raw: s, rel: true, offset: 1}
	default:
		d, err := calendar.Parse(s)
		if err != nil {
			return fmt.Errorf("use YYYY-MM-DD, today, yesterday or tomorrow")
		}
		*v = dayValue{raw: s, day: d}
	}
	return nil
}

// IsSet reports whether the flag was given.
func (v *dayValue) IsSet() bool { return v.raw != "" }

// Resolve returns the flag's day, or fallback when the flag wasn't given.
func (v *dayValue) Resolve(today, fallback calendar.Day) calendar.Day {
	switch {
	case !v.IsSet():
		return fallback
	case v.rel:
		return today.AddDays(v.offset)
	}
	return v.day
}

func openTrackers() (*store.DB, *tracker.Store, error) {
	db, err := store.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("opening store: %w", err)
	}
	return db, tracker.NewStore(db.Conn()), nil
}

var errNoSelection = errors.New("no tracker selected")

// isTerminal reports whether stdin is interactive. Tests replace it.
var isTerminal = tui.IsTTY

// resolveTracker finds the tracker named by the first argument, which may be
// any unique id prefix. Without an argument it opens the picker on a
// terminal.
func resolveTracker(ts *tracker.Store, args []string, day calendar.Day) (*tracker.Tracker, error) {
	if len(args) > 0 {
		t, err := ts.Get(args[0])
		switch {
		case errors.Is(err, tracker.ErrNotFound):
			return nil, fmt.Errorf("no tracker matches %q (run %s to see ids)", args[0], ui.Accent.Render("tally list"))
		case errors.Is(err, tracker.ErrAmbiguous):
			return nil, fmt.Errorf("%q matches more than one tracker; type more of the id", args[0])
		}
		return t, err
	}

	if !isTerminal() {
		return nil, fmt.Errorf("tracker id required (run %s to see ids)", ui.Accent.Render("tally list"))
	}

	trackers, err := ts.List()
	if err != nil {
		return nil, err
	}
	if len(trackers) == 0 {
		return nil, fmt.Errorf("nothing tracked yet (try %s)", ui.Accent.Render("tally add habit <title>"))
	}
	entries := make([]tui.Entry, len(trackers))
	for i, t := range trackers {
		r := stats.Compute(t, day)
		entries[i] = tui.Entry{Tracker: t, Summary: fmt.Sprintf("%d %s", r.MainValue, r.MainLabel)}
	}

	t, err := tui.PickTracker(entries, tui.WithTitle("Pick a tracker"))
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, errNoSelection
	}
	return t, nil
}

func kindIcon(t tracker.Tracker) string {
	switch k := t.Kind.(type) {
	case tracker.Habit:
		if k.Behavior == tracker.Quit {
			return ui.IconQuit
		}
		return ui.IconHabit
	case tracker.Event:
		return ui.IconEvent
	}
	return ui.IconDot
}

func kindLabel(t tracker.Tracker) string {
	switch k := t.Kind.(type) {
	case tracker.Habit:
		if k.Behavior == tracker.Quit {
			return "quit"
		}
		return "habit"
	case tracker.Event:
		if k.CountDown {
			return "countdown"
		}
		return "since"
	}
	return "?"
}

func indent(s, prefix string) string {
	return prefix + strings.ReplaceAll(s, "\n", "\n"+prefix)
}
