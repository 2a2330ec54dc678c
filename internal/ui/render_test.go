package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rnwolfe/tally/internal/calendar"
	"github.com/rnwolfe/tally/internal/config"
	"github.com/rnwolfe/tally/internal/grid"
	"github.com/rnwolfe/tally/internal/stats"
	"github.com/rnwolfe/tally/internal/tracker"
	"github.com/rnwolfe/tally/internal/yeargrid"
)

// plain switches to uncolored ASCII glyphs for the duration of a test.
func plain(t *testing.T) {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)
	ApplyDisplay(config.DisplayConfig{Glyphs: config.GlyphsASCII})
	t.Cleanup(func() { ApplyDisplay(config.DisplayConfig{Glyphs: config.GlyphsBlock}) })
}

func TestApplyDisplayGlyphs(t *testing.T) {
	ApplyDisplay(config.DisplayConfig{Glyphs: config.GlyphsASCII})
	if CurrentGlyphs() != asciiGlyphs {
		t.Fatalf("glyphs = %+v, want ascii", CurrentGlyphs())
	}
	ApplyDisplay(config.DisplayConfig{Glyphs: "anything"})
	if CurrentGlyphs() != blockGlyphs {
		t.Fatalf("glyphs = %+v, want block fallback", CurrentGlyphs())
	}
}

func TestPaletteCoversTrackerColors(t *testing.T) {
	for _, c := range tracker.Colors {
		if _, ok := Palette[c]; !ok {
			t.Errorf("palette missing %q", c)
		}
	}
}

func TestRenderCell(t *testing.T) {
	plain(t)

	tests := []struct {
		name  string
		state grid.CellState
		want  string
	}{
		{"empty", grid.CellState{Opacity: 0.3}, ". "},
		{"filled", grid.CellState{Filled: true, Tone: grid.ToneTheme, Opacity: 1}, "# "},
		{"relapse", grid.CellState{Filled: true, Tone: grid.ToneRelapse, Opacity: 1}, "# "},
		{"target", grid.CellState{Filled: true, Marker: grid.MarkerTarget, Border: grid.BorderThick}, "@ "},
		{"finish", grid.CellState{Marker: grid.MarkerFinish, Border: grid.BorderThick}, "* "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderCell(tt.state, "green"); got != tt.want {
				t.Fatalf("RenderCell = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderGrid(t *testing.T) {
	plain(t)

	tr := tracker.Tracker{
		Title: "Read",
		Start: calendar.MustParse("2026-01-01"),
		Kind:  tracker.Habit{Behavior: tracker.Build},
		Log:   tracker.ActivityLog{calendar.MustParse("2026-01-02"): true},
	}
	g := grid.Build(tr, calendar.MustParse("2026-01-05"))
	out := RenderGrid(g, "today")
	lines := strings.Split(out, "\n")

	if len(lines) != 1+len(g.Weeks()) {
		t.Fatalf("got %d lines, want %d", len(lines), 1+len(g.Weeks()))
	}
	if !strings.Contains(lines[0], "M T W T F S S") {
		t.Fatalf("header = %q", lines[0])
	}
	// The first row (Dec 29 - Jan 4) holds Jan 1 and is labelled with it.
	if !strings.HasPrefix(lines[1], "Jan ") {
		t.Fatalf("first row = %q, want Jan label", lines[1])
	}
	// Mon..Wed before start, Thu unmarked, Fri marked.
	if !strings.HasSuffix(lines[1], ". . . . # . . ") {
		t.Fatalf("first row cells = %q", lines[1])
	}
}

func TestRenderPreview(t *testing.T) {
	plain(t)

	tr := tracker.Tracker{Start: calendar.MustParse("2026-01-01"), Kind: tracker.Event{}}
	rows := RenderPreview(grid.Recent(tr, calendar.MustParse("2026-01-10"), 2), "blue")
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	for _, r := range rows {
		if len(r) != 14 {
			t.Fatalf("row %q has width %d, want 14", r, len(r))
		}
	}
}

func TestRenderStats(t *testing.T) {
	plain(t)

	r := stats.Record{
		Phase:     stats.Completed,
		MainValue: 12,
		MainLabel: "days left",
		Sub:       []stats.SubStat{{Label: "target", Value: "2026-01-31"}},
	}
	out := RenderStats(r)
	for _, want := range []string{"12 days left", "completed", "target", "2026-01-31"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderStats output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderYear(t *testing.T) {
	plain(t)

	out := RenderYear(yeargrid.Build(2026, calendar.MustParse("2026-03-15")))
	for _, want := range []string{"January", "June", "December"} {
		if !strings.Contains(out, want) {
			t.Errorf("year view missing %q", want)
		}
	}
	// Four rows of three month blocks, eight lines each, blank line between.
	if n := len(strings.Split(out, "\n")); n != 35 {
		t.Fatalf("year view has %d lines, want 35", n)
	}
}

func TestProgressBar(t *testing.T) {
	plain(t)

	tests := []struct {
		pct  float64
		want string
	}{
		{0, "░░░░░░░░░░"},
		{50, "█████░░░░░"},
		{100, "██████████"},
		{140, "██████████"},
	}
	for _, tt := range tests {
		if got := ProgressBar(tt.pct, 10); got != tt.want {
			t.Errorf("ProgressBar(%v) = %q, want %q", tt.pct, got, tt.want)
		}
	}
}
