// Package tips holds the one-line hints shown under the dashboard.
package tips

import "github.com/rnwolfe/tally/internal/calendar"

var pool = []string{
	"`tally mark <id>` to check off today. Run it again to undo.",
	"`tally mark <id> --date yesterday` if you forgot to log a day.",
	"`tally show <id> -i` to walk the grid and toggle days with the space bar.",
	"`tally relapse <id>` on a quit habit restarts the clean streak without losing history.",
	"`tally add habit \"Read\" --goal 30` draws a 30 day goal path on the grid.",
	"`tally add event \"Trip\" --in 45` counts down the next 45 days.",
	"`tally add event \"Quit smoking\" --start 2025-06-01` counts the days since.",
	"`tally calendar` shows how much of the year is already behind you.",
	"`tally list` shows every tracker with the id prefix to use in commands.",
	"Any unique start of an id works: `tally mark 3f` is enough.",
	"`tally edit <id> --color purple` to recolor a tracker.",
	"`tally backup export --encrypt` writes a passphrase protected copy of everything.",
	"`tally config set display.glyphs ascii` if your font lacks the block characters.",
	"`TALLY_TODAY=2026-01-01 tally` shows what your grids looked like on that day.",
}

// All returns every tip.
func All() []string {
	return pool
}

// Daily returns the tip for d. It stays the same all day and rotates daily.
func Daily(d calendar.Day) string {
	return pool[(d.YearDay()+d.Year())%len(pool)]
}
