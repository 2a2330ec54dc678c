// Package tui holds tally's interactive terminal screens: a fuzzy tracker
// picker and a grid where days can be toggled in place.
package tui

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/rnwolfe/tally/internal/tracker"
	"github.com/rnwolfe/tally/internal/ui"
)

// Entry is one row of the picker: a tracker and a short status line.
type Entry struct {
	Tracker tracker.Tracker
	Summary string
}

// PickerOption configures a Picker.
type PickerOption func(*Picker)

// WithTitle sets the heading shown above the list.
func WithTitle(title string) PickerOption {
	return func(p *Picker) { p.title = title }
}

// WithHeight caps the number of visible rows. Zero fits the terminal.
func WithHeight(h int) PickerOption {
	return func(p *Picker) { p.height = h }
}

// Picker is a bubbletea model that filters trackers by title or id prefix.
type Picker struct {
	title  string
	height int

	entries  []Entry
	filtered []match
	query    string
	cursor   int
	offset   int
	chosen   *tracker.Tracker
	canceled bool

	termHeight int
}

type match struct {
	entry Entry
	score int
}

// idBonus ranks an id-prefix hit above any title match.
const idBonus = 1000

// NewPicker returns a Picker over entries.
func NewPicker(entries []Entry, opts ...PickerOption) *Picker {
	p := &Picker{
		height:     10,
		entries:    entries,
		termHeight: 24,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.applyFilter()
	return p
}

// PickTracker shows the picker and returns the chosen tracker, or nil when
// the user backs out.
func PickTracker(entries []Entry, opts ...PickerOption) (*tracker.Tracker, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	m, err := tea.NewProgram(NewPicker(entries, opts...), tea.WithAltScreen()).Run()
	if err != nil {
		return nil, fmt.Errorf("picker: %w", err)
	}
	p := m.(*Picker)
	if p.canceled {
		return nil, nil
	}
	return p.chosen, nil
}

// IsTTY reports whether stdin is a terminal.
func IsTTY() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (p *Picker) Init() tea.Cmd { return nil }

func (p *Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.termHeight = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			p.canceled = true
			return p, tea.Quit
		case tea.KeyEnter:
			if len(p.filtered) > 0 {
				t := p.filtered[p.cursor].entry.Tracker
				p.chosen = &t
			}
			return p, tea.Quit
		case tea.KeyUp, tea.KeyCtrlP:
			p.move(-1)
		case tea.KeyDown, tea.KeyCtrlN:
			p.move(1)
		case tea.KeyBackspace:
			if p.query != "" {
				_, size := utf8.DecodeLastRuneInString(p.query)
				p.query = p.query[:len(p.query)-size]
				p.applyFilter()
			}
		case tea.KeySpace:
			p.query += " "
			p.applyFilter()
		case tea.KeyRunes:
			p.query += string(msg.Runes)
			p.applyFilter()
		}
	}
	return p, nil
}

func (p *Picker) move(delta int) {
	next := p.cursor + delta
	if next < 0 || next >= len(p.filtered) {
		return
	}
	p.cursor = next
	vis := p.visibleRows()
	switch {
	case p.cursor < p.offset:
		p.offset = p.cursor
	case p.cursor >= p.offset+vis:
		p.offset = p.cursor - vis + 1
	}
}

func (p *Picker) View() string {
	var b strings.Builder
	if p.title != "" {
		b.WriteString("  " + ui.Title.Render(p.title) + "\n\n")
	}

	prompt := lipgloss.NewStyle().Foreground(ui.Cyan).Bold(true).Render(ui.IconArrow + " ")
	caret := lipgloss.NewStyle().Foreground(ui.Cyan).Render("▎")
	b.WriteString("  " + prompt + p.query + caret + "\n\n")

	if len(p.filtered) == 0 {
		b.WriteString("  " + ui.Muted.Render("No trackers match") + "\n")
	}
	end := min(p.offset+p.visibleRows(), len(p.filtered))
	for i := p.offset; i < end; i++ {
		b.WriteString(renderEntry(p.filtered[i].entry, i == p.cursor) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(ui.Muted.Render(fmt.Sprintf("  %d/%d · ↑↓ move · enter pick · esc cancel", len(p.filtered), len(p.entries))))
	b.WriteString("\n")
	return b.String()
}

func (p *Picker) visibleRows() int {
	h := p.height
	if h <= 0 || h > p.termHeight-6 {
		h = p.termHeight - 6
	}
	return max(h, 3)
}

func (p *Picker) applyFilter() {
	p.filtered = p.filtered[:0]
	q := strings.TrimSpace(p.query)
	for _, e := range p.entries {
		if q == "" {
			p.filtered = append(p.filtered, match{entry: e})
			continue
		}
		if strings.HasPrefix(e.Tracker.ID, strings.ToLower(q)) {
			p.filtered = append(p.filtered, match{entry: e, score: idBonus})
			continue
		}
		if ok, score := FuzzyMatch(q, e.Tracker.Title); ok {
			p.filtered = append(p.filtered, match{entry: e, score: score})
		}
	}
	sort.SliceStable(p.filtered, func(i, j int) bool {
		return p.filtered[i].score > p.filtered[j].score
	})
	p.cursor = 0
	p.offset = 0
}

func renderEntry(e Entry, selected bool) string {
	pointer := "  "
	title := lipgloss.NewStyle().Render(e.Tracker.Title)
	if selected {
		pointer = ui.Accent.Render(ui.IconArrow + " ")
		title = lipgloss.NewStyle().Foreground(ui.Ice).Bold(true).Render(e.Tracker.Title)
	}

	line := "  " + pointer + ui.Swatch(e.Tracker.Color) + " " + title +
		"  " + ui.Muted.Render(e.Tracker.ShortID())
	if e.Summary != "" {
		line += "  " + ui.Muted.Render(e.Summary)
	}
	return line
}
