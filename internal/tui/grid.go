package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rnwolfe/tally/internal/calendar"
	"github.com/rnwolfe/tally/internal/grid"
	"github.com/rnwolfe/tally/internal/stats"
	"github.com/rnwolfe/tally/internal/tracker"
	"github.com/rnwolfe/tally/internal/ui"
)

// ToggleFunc persists a toggle of day and returns whether the day is now
// marked.
type ToggleFunc func(day calendar.Day) (bool, error)

// GridModel shows a tracker's full grid with a movable cursor. Toggling a
// day writes through the ToggleFunc right away and redraws.
type GridModel struct {
	tracker tracker.Tracker
	today   calendar.Day
	toggle  ToggleFunc

	grid   grid.Grid
	record stats.Record
	cursor calendar.Day

	status string
	// Toggled counts the days changed during the session.
	Toggled int
}

// NewGridModel builds a model for t with the cursor on today. The tracker's
// log is copied; t itself is never changed.
func NewGridModel(t tracker.Tracker, today calendar.Day, toggle ToggleFunc) *GridModel {
	t.Log = t.Log.Clone()
	m := &GridModel{tracker: t, today: today, toggle: toggle, cursor: today}
	m.refresh()
	return m
}

// RunGrid opens the interactive grid and returns how many days were toggled.
func RunGrid(t tracker.Tracker, today calendar.Day, toggle ToggleFunc) (int, error) {
	res, err := tea.NewProgram(NewGridModel(t, today, toggle), tea.WithAltScreen()).Run()
	if err != nil {
		return 0, fmt.Errorf("grid: %w", err)
	}
	return res.(*GridModel).Toggled, nil
}

func (m *GridModel) refresh() {
	m.grid = grid.Build(m.tracker, m.today)
	m.record = stats.Compute(m.tracker, m.today)
	m.cursor = calendar.Max(m.grid.Start, calendar.Min(m.cursor, m.grid.End))
}

func (m *GridModel) Init() tea.Cmd { return nil }

func (m *GridModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "left", "h":
		m.moveCursor(-1)
	case "right", "l":
		m.moveCursor(1)
	case "up", "k":
		m.moveCursor(-7)
	case "down", "j":
		m.moveCursor(7)
	case "t":
		m.cursor = m.today
		m.status = ""
	case " ", "x", "enter":
		m.toggleCursor()
	}
	return m, nil
}

func (m *GridModel) moveCursor(days int) {
	next := m.cursor.AddDays(days)
	if next.Before(m.grid.Start) || next.After(m.grid.End) {
		return
	}
	m.cursor = next
	m.status = ""
}

func (m *GridModel) toggleCursor() {
	if m.tracker.Type() != tracker.TypeHabit {
		m.status = "Events have no days to mark."
		return
	}
	if m.cursor.After(m.today) {
		m.status = "Can't mark a day that hasn't happened yet."
		return
	}

	marked, err := m.toggle(m.cursor)
	if err != nil {
		m.status = ui.Error.Render(err.Error())
		return
	}
	if marked {
		m.tracker.Log[m.cursor] = true
	} else {
		delete(m.tracker.Log, m.cursor)
	}
	m.Toggled++
	m.status = fmt.Sprintf("%s %s", m.cursor.Format("Mon Jan 2"), markWord(marked))
	m.refresh()
}

func markWord(marked bool) string {
	if marked {
		return "marked"
	}
	return "cleared"
}

func (m *GridModel) View() string {
	var b strings.Builder
	b.WriteString("\n  " + ui.Swatch(m.tracker.Color) + " " + ui.Title.Render(m.tracker.Title) + "\n\n")

	for _, line := range strings.Split(ui.RenderGridAt(m.grid, m.tracker.Color, m.cursor), "\n") {
		b.WriteString("  " + line + "\n")
	}
	b.WriteString("\n")
	for _, line := range strings.Split(ui.RenderStats(m.record), "\n") {
		b.WriteString("  " + line + "\n")
	}

	b.WriteString("\n  " + ui.KeyStyle.Render(m.cursor.Format("Monday, January 2 2006")))
	if m.status != "" {
		b.WriteString("  " + ui.Muted.Render(m.status))
	}
	b.WriteString("\n\n")
	b.WriteString(ui.Muted.Render("  ←↓↑→ move · space toggle · t today · q quit"))
	b.WriteString("\n")
	return b.String()
}
