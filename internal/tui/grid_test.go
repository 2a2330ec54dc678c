package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rnwolfe/tally/internal/calendar"
	"github.com/rnwolfe/tally/internal/tracker"
)

var day = calendar.MustParse

func habit() tracker.Tracker {
	return tracker.Tracker{
		ID:    "a1b2c3d4-0000-0000-0000-000000000000",
		Title: "Read",
		Color: "green",
		Start: day("2026-01-01"),
		Kind:  tracker.Habit{Behavior: tracker.Build},
		Log:   tracker.ActivityLog{day("2026-01-02"): true},
	}
}

// recorder is a ToggleFunc backed by a log, like the store would be.
type recorder struct {
	log   tracker.ActivityLog
	calls []calendar.Day
	err   error
}

func (r *recorder) toggle(d calendar.Day) (bool, error) {
	r.calls = append(r.calls, d)
	if r.err != nil {
		return false, r.err
	}
	return r.log.Toggle(d), nil
}

func press(m *GridModel, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m.Update(msg)
	}
}

func TestGridModelCursorMovement(t *testing.T) {
	today := day("2026-01-05")
	m := NewGridModel(habit(), today, nil)

	tests := []struct {
		keys []string
		want string
	}{
		{nil, "2026-01-05"},
		{[]string{"left"}, "2026-01-04"},
		{[]string{"h", "h"}, "2026-01-02"},
		{[]string{"up"}, "2026-01-02"}, // already in the first row
		{[]string{"h", "h", "h", "h"}, "2025-12-29"},
		{[]string{"left"}, "2025-12-29"},
		{[]string{"down", "l"}, "2026-01-06"},
		{[]string{"t"}, "2026-01-05"},
	}
	for i, tt := range tests {
		press(m, tt.keys...)
		if m.cursor != day(tt.want) {
			t.Fatalf("step %d: cursor = %s, want %s", i, m.cursor, tt.want)
		}
	}
}

func TestGridModelToggle(t *testing.T) {
	tr := habit()
	rec := &recorder{log: tr.Log.Clone()}
	m := NewGridModel(tr, day("2026-01-05"), rec.toggle)

	press(m, "space")
	if len(rec.calls) != 1 || rec.calls[0] != day("2026-01-05") {
		t.Fatalf("toggle calls = %v", rec.calls)
	}
	if m.record.CurrentStreak != 1 || m.record.Completed != 2 {
		t.Fatalf("record after mark = %+v", m.record)
	}
	if cell, _ := m.grid.Find(day("2026-01-05")); !cell.State.Filled {
		t.Fatal("today not filled after toggle")
	}

	press(m, "x")
	if m.Toggled != 2 {
		t.Fatalf("Toggled = %d, want 2", m.Toggled)
	}
	if m.tracker.Log.Marked(day("2026-01-05")) {
		t.Fatal("second toggle should clear the day")
	}
	if !strings.Contains(m.status, "cleared") {
		t.Fatalf("status = %q", m.status)
	}

	if tr.Log.Marked(day("2026-01-05")) || len(tr.Log) != 1 {
		t.Fatal("caller's log was modified")
	}
}

func TestGridModelRefusesFutureAndEvents(t *testing.T) {
	rec := &recorder{log: tracker.ActivityLog{}}
	m := NewGridModel(habit(), day("2026-01-05"), rec.toggle)
	press(m, "right", "space")
	if len(rec.calls) != 0 {
		t.Fatalf("future day toggled: %v", rec.calls)
	}

	ev := tracker.Tracker{Title: "Trip", Start: day("2026-01-01"), Kind: tracker.Event{}}
	m = NewGridModel(ev, day("2026-01-05"), rec.toggle)
	press(m, "space")
	if len(rec.calls) != 0 || m.status == "" {
		t.Fatalf("event toggled: calls=%v status=%q", rec.calls, m.status)
	}
}

func TestGridModelToggleError(t *testing.T) {
	rec := &recorder{err: errors.New("disk full")}
	m := NewGridModel(habit(), day("2026-01-05"), rec.toggle)
	press(m, "space")
	if m.Toggled != 0 || m.tracker.Log.Marked(day("2026-01-05")) {
		t.Fatal("failed toggle changed the model")
	}
	if !strings.Contains(m.status, "disk full") {
		t.Fatalf("status = %q", m.status)
	}
}

func TestGridModelQuit(t *testing.T) {
	m := NewGridModel(habit(), day("2026-01-05"), nil)
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}); cmd == nil {
		t.Fatal("q should quit")
	}
}

func TestGridModelView(t *testing.T) {
	m := NewGridModel(habit(), day("2026-01-05"), nil)
	view := m.View()
	for _, want := range []string{"Read", "M T W T F S S", "day streak", "Monday, January 5 2026"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}
