package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rnwolfe/tally/internal/calendar"
	"github.com/rnwolfe/tally/internal/grid"
	"github.com/rnwolfe/tally/internal/stats"
	"github.com/rnwolfe/tally/internal/yeargrid"
)

// weekdayHeader labels the seven Monday-first grid columns.
const weekdayHeader = "M T W T F S S "

// monthGutter is the width of the month label column left of a grid.
const monthGutter = 4

// blank is an empty two-column cell.
const blank = "  "

// RenderCell draws one grid cell in the tracker's color.
func RenderCell(s grid.CellState, color string) string {
	g := glyphs.Empty
	switch {
	case s.Marker == grid.MarkerTarget:
		g = glyphs.Target
	case s.Marker == grid.MarkerFinish:
		g = glyphs.Finish
	case s.Filled:
		g = glyphs.Filled
	}

	grad := GradientFor(color)
	style := lipgloss.NewStyle()
	switch s.Tone {
	case grid.ToneRelapse:
		style = style.Foreground(Ruby)
	case grid.ToneTheme:
		style = style.Foreground(shade(grad, s.Opacity))
	default:
		if s.Marker != grid.MarkerNone || s.Border != grid.BorderNone {
			style = style.Foreground(shade(grad, s.Opacity))
		} else {
			style = style.Foreground(fade(s.Opacity))
		}
	}
	switch s.Border {
	case grid.BorderThick:
		style = style.Bold(true).Underline(true)
	case grid.BorderThin:
		style = style.Underline(true)
	}

	return style.Render(g) + " "
}

// shade picks the gradient stop closest to the requested opacity.
func shade(g Gradient, opacity float64) lipgloss.Color {
	switch {
	case opacity >= 0.9:
		return g.Light
	case opacity >= 0.5:
		return g.Deep
	}
	return Steel
}

func fade(opacity float64) lipgloss.Color {
	if opacity >= 0.4 {
		return Steel
	}
	return Dim
}

// RenderGrid draws a full tracker grid: a weekday header, then one row per
// week with the month name beside the week a month starts in.
func RenderGrid(g grid.Grid, color string) string {
	return RenderGridAt(g, color, calendar.Day{})
}

// RenderGridAt is RenderGrid with the cell for cursor highlighted.
func RenderGridAt(g grid.Grid, color string, cursor calendar.Day) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", monthGutter))
	b.WriteString(Muted.Render(weekdayHeader))
	b.WriteString("\n")

	for i, week := range g.Weeks() {
		label := ""
		for _, c := range week {
			if c.Day.FirstOfMonth || (i == 0 && c.Day.Weekday == 1) {
				label = c.Day.Date.Month().String()[:3]
			}
		}
		b.WriteString(Muted.Render(fmt.Sprintf("%-*s", monthGutter, label)))
		for _, c := range week {
			if !cursor.IsZero() && c.Day.Date == cursor {
				b.WriteString(renderCursor(c.State))
				continue
			}
			b.WriteString(RenderCell(c.State, color))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderCursor(s grid.CellState) string {
	g := glyphs.Empty
	if s.Filled {
		g = glyphs.Filled
	}
	return lipgloss.NewStyle().Foreground(Night).Background(Ice).Bold(true).Render(g) + " "
}

// RenderPreview draws a compact grid without labels, for listings.
func RenderPreview(g grid.Grid, color string) []string {
	var rows []string
	for _, week := range g.Weeks() {
		var b strings.Builder
		for _, c := range week {
			b.WriteString(RenderCell(c.State, color))
		}
		rows = append(rows, b.String())
	}
	return rows
}

// RenderStats draws the headline number and the secondary figures.
func RenderStats(r stats.Record) string {
	var b strings.Builder
	b.WriteString(Accent.Render(fmt.Sprintf("%d", r.MainValue)))
	b.WriteString(" ")
	b.WriteString(Subtitle.Render(r.MainLabel))
	if r.Phase != stats.Active {
		b.WriteString(" ")
		b.WriteString(Tag.Render(r.Phase.String()))
	}
	for _, s := range r.Sub {
		b.WriteString("\n")
		b.WriteString(KeyStyle.Render(fmt.Sprintf("  %-13s", s.Label)))
		b.WriteString(" ")
		b.WriteString(ValueStyle.Render(s.Value))
	}
	return b.String()
}

// yearColumns is how many month blocks sit side by side.
const yearColumns = 3

// RenderYear draws the year overview as rows of month blocks.
func RenderYear(months []yeargrid.Month) string {
	blocks := make([]string, 0, len(months))
	for _, m := range months {
		blocks = append(blocks, renderMonth(m))
	}

	var rows []string
	for i := 0; i < len(blocks); i += yearColumns {
		end := min(i+yearColumns, len(blocks))
		row := make([]string, 0, yearColumns*2)
		for j, blk := range blocks[i:end] {
			if j > 0 {
				row = append(row, "   ")
			}
			row = append(row, blk)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return strings.Join(rows, "\n\n")
}

func renderMonth(m yeargrid.Month) string {
	var b strings.Builder
	b.WriteString(Title.Render(fmt.Sprintf("%-14s", m.Month.String())))
	b.WriteString("\n")
	b.WriteString(Muted.Render(weekdayHeader))

	for i, c := range m.Cells {
		if i%7 == 0 {
			b.WriteString("\n")
		}
		b.WriteString(renderYearCell(c))
	}
	// Pad the last week so blocks line up when joined.
	if rem := len(m.Cells) % 7; rem != 0 {
		b.WriteString(strings.Repeat(blank, 7-rem))
	}
	// Six week rows keep every block the same height.
	for weeks := (len(m.Cells) + 6) / 7; weeks < 6; weeks++ {
		b.WriteString("\n")
		b.WriteString(strings.Repeat(blank, 7))
	}
	return b.String()
}

func renderYearCell(c yeargrid.Cell) string {
	switch c.Status {
	case yeargrid.Past:
		return lipgloss.NewStyle().Foreground(Steel).Render(glyphs.Filled) + " "
	case yeargrid.Today:
		return lipgloss.NewStyle().Foreground(Ice).Bold(true).Underline(true).Render(glyphs.Target) + " "
	case yeargrid.Future:
		return lipgloss.NewStyle().Foreground(Cyan).Render(glyphs.Empty) + " "
	}
	return blank
}

// ProgressBar draws a width-wide bar filled to pct percent.
func ProgressBar(pct float64, width int) string {
	filled := int(pct / 100 * float64(width))
	filled = min(max(filled, 0), width)
	return Accent.Render(strings.Repeat("█", filled)) + Muted.Render(strings.Repeat("░", width-filled))
}
