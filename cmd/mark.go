package cmd

import (
	"fmt"

	"github.com/rnwolfe/tally/internal/tracker"
	"github.com/rnwolfe/tally/internal/ui"
	"github.com/spf13/cobra"
)

var markCmd = &cobra.Command{
	Use:     "mark [id]",
	Aliases: []string{"m", "done"},
	Short:   "Toggle a day on a habit (default today)",
	Args:    cobra.MaximumNArgs(1),
	RunE:    runMark,
}

var relapseCmd = &cobra.Command{
	Use:   "relapse [id]",
	Short: "Record a slip on a habit you're quitting",
	Long: `Mark a day (default today) as a relapse on a quit habit. The clean
streak starts over from the next day.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRelapse,
}

var (
	markDate    dayValue
	relapseDate dayValue
)

func init() {
	markCmd.Flags().VarP(&markDate, "date", "d", "Day to toggle (YYYY-MM-DD, today, yesterday)")
	relapseCmd.Flags().VarP(&relapseDate, "date", "d", "Day of the relapse (YYYY-MM-DD, today, yesterday)")
}

func runMark(_ *cobra.Command, args []string) error {
	day, err := today()
	if err != nil {
		return err
	}
	target := markDate.Resolve(day, day)
	if target.After(day) {
		return fmt.Errorf("%s hasn't happened yet", target)
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
	if t.Type() != tracker.TypeHabit {
		return fmt.Errorf("%s is an event; events have no days to mark", t.Title)
	}

	marked, err := ts.Toggle(t.ID, target)
	if err != nil {
		return err
	}
	if marked {
		t.Log[target] = true
	} else {
		delete(t.Log, target)
	}

	fmt.Println()
	when := target.Format("Mon Jan 2")
	switch {
	case !marked:
		ui.Line(ui.Muted.Render(ui.IconDot), fmt.Sprintf("Cleared %s on %s", when, ui.Title.Render(t.Title)))
	case t.Kind.(tracker.Habit).Behavior == tracker.Quit:
		ui.Line(ui.Warning.Render(ui.IconWarn), fmt.Sprintf("Marked %s as a slip on %s", when, ui.Title.Render(t.Title)))
	default:
		ui.Line(ui.Success.Render(ui.IconOk), fmt.Sprintf("Marked %s on %s", when, ui.Title.Render(t.Title)))
	}
	printSummary(*t, day)
	fmt.Println()
	return nil
}

func runRelapse(_ *cobra.Command, args []string) error {
	day, err := today()
	if err != nil {
		return err
	}
	target := relapseDate.Resolve(day, day)
	if target.After(day) {
		return fmt.Errorf("%s hasn't happened yet", target)
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
	if err := ts.Relapse(t.ID, target); err != nil {
		return err
	}

	t, err = ts.Get(t.ID)
	if err != nil {
		return err
	}
	fmt.Println()
	ui.Line(ui.Warning.Render(ui.IconWarn), fmt.Sprintf("Relapse on %s recorded for %s. The streak starts over.",
		target.Format("Mon Jan 2"), ui.Title.Render(t.Title)))
	printSummary(*t, day)
	fmt.Println()
	return nil
}
