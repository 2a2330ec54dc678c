package cmd

import (
	"fmt"
	"strings"

	"github.com/rnwolfe/tally/internal/calendar"
	"github.com/rnwolfe/tally/internal/tracker"
	"github.com/rnwolfe/tally/internal/ui"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Change a tracker's title, color, goal or end date",
	Long: `Change a tracker's settings. The start date can't be changed.

  --goal N   set a habit's target streak (0 removes it)
  --end D    set an event's end or target date`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEdit,
}

// noGoal means --goal was not given.
const noGoal = -1

var (
	editTitle string
	editColor string
	editGoal  int
	editEnd   dayValue
)

func init() {
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "New title")
	editCmd.Flags().StringVarP(&editColor, "color", "c", "", "New color: "+strings.Join(tracker.Colors, ", "))
	editCmd.Flags().IntVarP(&editGoal, "goal", "g", noGoal, "Target streak in days, 0 to remove")
	editCmd.Flags().Var(&editEnd, "end", "New end or target date")
}

func runEdit(_ *cobra.Command, args []string) error {
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
	if err := applyEdits(t, day); err != nil {
		return err
	}
	if err := ts.Update(*t); err != nil {
		return err
	}

	ui.Ok(fmt.Sprintf("Updated %s", t.Title))
	printSummary(*t, day)
	fmt.Println()
	return nil
}

// applyEdits copies the edit flags onto t.
func applyEdits(t *tracker.Tracker, day calendar.Day) error {
	changed := false
	if editTitle != "" {
		t.Title = strings.TrimSpace(editTitle)
		changed = true
	}
	if editColor != "" {
		t.Color = strings.ToLower(editColor)
		changed = true
	}

	switch k := t.Kind.(type) {
	case tracker.Habit:
		if editEnd.IsSet() {
			return fmt.Errorf("--end only applies to events")
		}
		if editGoal != noGoal {
			k.Goal = tracker.Goal{Enabled: editGoal > 0, TargetDays: editGoal}
			t.Kind = k
			changed = true
		}
	case tracker.Event:
		if editGoal != noGoal {
			return fmt.Errorf("--goal only applies to habits")
		}
		if editEnd.IsSet() {
			end := editEnd.Resolve(day, day)
			k.End = &end
			t.Kind = k
			changed = true
		}
	}

	if !changed {
		return fmt.Errorf("nothing to change; pass --title, --color, --goal or --end")
	}
	return t.Validate()
}
