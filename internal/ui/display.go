package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rnwolfe/tally/internal/config"
)

// Glyphs are the single-column symbols grid cells are drawn with. Each
// cell is a glyph followed by a space.
type Glyphs struct {
	Filled string
	Empty  string
	Target string
	Finish string
}

var (
	blockGlyphs = Glyphs{Filled: "■", Empty: "□", Target: "◎", Finish: "★"}
	asciiGlyphs = Glyphs{Filled: "#", Empty: ".", Target: "@", Finish: "*"}

	glyphs = blockGlyphs
)

// CurrentGlyphs returns the glyph set in use.
func CurrentGlyphs() Glyphs { return glyphs }

// ApplyDisplay configures rendering from the user's display settings. It
// should run once, before anything is printed.
func ApplyDisplay(d config.DisplayConfig) {
	switch d.Glyphs {
	case config.GlyphsASCII:
		glyphs = asciiGlyphs
	default:
		glyphs = blockGlyphs
	}

	if d.NoColor || os.Getenv("NO_COLOR") != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}
