package ui

import "github.com/charmbracelet/lipgloss"

// tally's palette: deep night background, cyan for today, gem tones for
// trackers.
var (
	Cyan     = lipgloss.Color("#52D4E3")
	Ice      = lipgloss.Color("#91F1FB")
	Slate    = lipgloss.Color("#2A4557")
	Steel    = lipgloss.Color("#375163")
	Mist     = lipgloss.Color("#94A3B8")
	Emerald  = lipgloss.Color("#4ADE80")
	Ruby     = lipgloss.Color("#F87171")
	Amber    = lipgloss.Color("#FDE047")
	Sapphire = lipgloss.Color("#60A5FA")
	Dim      = lipgloss.Color("#4B5563")
	Bright   = lipgloss.Color("#FFFFFF")
	Night    = lipgloss.Color("#0B1A24")

	// Semantic styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Ice)

	Subtitle = lipgloss.NewStyle().
			Foreground(Cyan)

	Success = lipgloss.NewStyle().
		Foreground(Emerald)

	Error = lipgloss.NewStyle().
		Foreground(Ruby)

	Warning = lipgloss.NewStyle().
		Foreground(Amber)

	Muted = lipgloss.NewStyle().
		Foreground(Mist)

	Accent = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	// Component styles
	Banner = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Cyan).
		Padding(0, 1)

	Tag = lipgloss.NewStyle().
		Foreground(Bright).
		Background(Steel).
		Padding(0, 1).
		Bold(true)

	KeyStyle = lipgloss.NewStyle().
			Foreground(Cyan).
			Bold(true)

	ValueStyle = lipgloss.NewStyle().
			Foreground(Bright)
)

// Gradient is a tracker color: Light for today and strong cells, Deep for
// reduced ones.
type Gradient struct {
	Light lipgloss.Color
	Deep  lipgloss.Color
}

// Palette maps tracker color keys to their gradients.
var Palette = map[string]Gradient{
	"today":  {Light: Ice, Deep: Cyan},
	"purple": {Light: "#C084FC", Deep: "#7E22CE"},
	"green":  {Light: Emerald, Deep: "#166534"},
	"orange": {Light: "#FB923C", Deep: "#C2410C"},
	"red":    {Light: Ruby, Deep: "#991B1B"},
	"pink":   {Light: "#F472B6", Deep: "#BE185D"},
	"blue":   {Light: Sapphire, Deep: "#1D4ED8"},
	"yellow": {Light: Amber, Deep: "#CA8A04"},
}

// GradientFor returns the gradient for a color key, falling back to today's.
func GradientFor(color string) Gradient {
	if g, ok := Palette[color]; ok {
		return g
	}
	return Palette["today"]
}

// Swatch renders a short color sample for a color key.
func Swatch(color string) string {
	return lipgloss.NewStyle().Foreground(GradientFor(color).Light).Render(glyphs.Filled)
}

// Icons used across commands.
const (
	IconTally = "▦ "
	IconHabit = "◆"
	IconQuit  = "◇"
	IconEvent = "◷"
	IconWarn  = "⚠️ "
	IconError = "✗ "
	IconOk    = "✓ "
	IconArrow = "→"
	IconDot   = "·"
)
