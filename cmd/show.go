package cmd

import (
	"fmt"
	"strings"

	"github.com/rnwolfe/tally/internal/calendar"
	"github.com/rnwolfe/tally/internal/grid"
	"github.com/rnwolfe/tally/internal/stats"
	"github.com/rnwolfe/tally/internal/tracker"
	"github.com/rnwolfe/tally/internal/tui"
	"github.com/rnwolfe/tally/internal/ui"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a tracker's full grid and statistics",
	Long: `Show the full grid and statistics for one tracker.

With -i, open the grid interactively:
  ← ↓ ↑ → / h j k l   Move a day or a week
  space / x           Toggle the selected day
  t                   Jump to today
  q / Esc             Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

var showInteractive bool

func init() {
	showCmd.Flags().BoolVarP(&showInteractive, "interactive", "i", false, "Open the grid to toggle days")
}

func runShow(_ *cobra.Command, args []string) error {
	day, err := today()
	if err != nil {
		return err
	}
	db, ts, err := openTrackers()
	if err != nil {
		return err
	}
	defer db.Close()

	t, err := resolveTracker(ts, args, day)
	if err != nil {
		return err
	}

	if showInteractive {
		if !isTerminal() {
			return fmt.Errorf("--interactive needs a terminal")
		}
		n, err := tui.RunGrid(*t, day, func(d calendar.Day) (bool, error) {
			return ts.Toggle(t.ID, d)
		})
		if err != nil {
			return err
		}
		if n > 0 {
			ui.Ok(fmt.Sprintf("Saved %d change%s to %s", n, plural(n), t.Title))
		}
		return nil
	}

	printTracker(*t, day)
	return nil
}

func printTracker(t tracker.Tracker, day calendar.Day) {
	fmt.Println()
	fmt.Printf("  %s %s %s %s\n", ui.Swatch(t.Color), ui.Title.Render(t.Title),
		ui.Muted.Render(kindLabel(t)), ui.Muted.Render(t.ShortID()))
	fmt.Println(ui.Muted.Render("  since " + t.Start.Format("Jan 2, 2006")))
	fmt.Println()

	g := grid.Build(t, day)
	for _, line := range strings.Split(ui.RenderGrid(g, t.Color), "\n") {
		fmt.Println("  " + line)
	}
	fmt.Println()
	for _, line := range strings.Split(ui.RenderStats(stats.Compute(t, day)), "\n") {
		fmt.Println("  " + line)
	}
	fmt.Println()
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
