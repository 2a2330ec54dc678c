package cmd

import (
	"fmt"

	"github.com/rnwolfe/tally/internal/stats"
	"github.com/rnwolfe/tally/internal/ui"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List every tracker with its id",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func runList(_ *cobra.Command, _ []string) error {
	day, err := today()
	if err != nil {
		return err
	}
	db, ts, err := openTrackers()
	if err != nil {
		return err
	}
	defer db.Close()

	trackers, err := ts.List()
	if err != nil {
		return err
	}
	if len(trackers) == 0 {
		fmt.Println()
		fmt.Println(ui.Muted.Render("  Nothing tracked yet."))
		fmt.Printf("  Add one: %s\n", ui.Accent.Render(`tally add habit "Read 20 pages"`))
		fmt.Println()
		return nil
	}

	fmt.Println()
	for _, t := range trackers {
		r := stats.Compute(t, day)
		fmt.Printf("  %s %s %s %-10s %s  %s\n",
			ui.Muted.Render(t.ShortID()),
			ui.Swatch(t.Color),
			kindIcon(t),
			kindLabel(t),
			t.Title,
			headline(r),
		)
	}

	habits, events, err := ts.Count()
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(ui.Muted.Render(fmt.Sprintf("  %d habits %s %d events", habits, ui.IconDot, events)))
	fmt.Println()
	return nil
}
