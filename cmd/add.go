package cmd

import (
	"fmt"
	"strings"

	"github.com/rnwolfe/tally/internal/calendar"
	"github.com/rnwolfe/tally/internal/config"
	"github.com/rnwolfe/tally/internal/grid"
	"github.com/rnwolfe/tally/internal/stats"
	"github.com/rnwolfe/tally/internal/tracker"
	"github.com/rnwolfe/tally/internal/ui"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Start tracking something new",
}

var addHabitCmd = &cobra.Command{
	Use:   "habit <title>",
	Short: "Track a daily habit to build or quit",
	Long: `Track something you want to do every day, or with --quit, something
you want to stop doing. --goal sets a target streak length in days.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAddHabit,
}

var addEventCmd = &cobra.Command{
	Use:   "event <title>",
	Short: "Count the days to or since a date",
	Long: `Track a date. With --countdown (or --in), count down to the end date.
Without it, count the days since --start, optionally toward an --end.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAddEvent,
}

var (
	addColor     string
	addStart     dayValue
	addQuit      bool
	addGoal      int
	addCountdown bool
	addEnd       dayValue
	addIn        int
)

func init() {
	addCmd.AddCommand(addHabitCmd)
	addCmd.AddCommand(addEventCmd)

	for _, c := range []*cobra.Command{addHabitCmd, addEventCmd} {
		c.Flags().StringVarP(&addColor, "color", "c", "", "Color: "+strings.Join(tracker.Colors, ", "))
		c.Flags().Var(&addStart, "start", "First day (YYYY-MM-DD, today, yesterday); default today")
	}

	addHabitCmd.Flags().BoolVar(&addQuit, "quit", false, "Track something to stop doing")
	addHabitCmd.Flags().IntVarP(&addGoal, "goal", "g", 0, "Target streak in days")

	addEventCmd.Flags().BoolVar(&addCountdown, "countdown", false, "Count down to --end")
	addEventCmd.Flags().Var(&addEnd, "end", "End or target date")
	addEventCmd.Flags().IntVar(&addIn, "in", 0, "Count down to N days from today")
	addEventCmd.MarkFlagsMutuallyExclusive("end", "in")
}

func runAddHabit(_ *cobra.Command, args []string) error {
	behavior := tracker.Build
	if addQuit {
		behavior = tracker.Quit
	}
	kind := tracker.Habit{Behavior: behavior}
	if addGoal != 0 {
		kind.Goal = tracker.Goal{Enabled: true, TargetDays: addGoal}
	}
	return addTracker(strings.Join(args, " "), kind)
}

func runAddEvent(_ *cobra.Command, args []string) error {
	day, err := today()
	if err != nil {
		return err
	}

	kind := tracker.Event{CountDown: addCountdown}
	switch {
	case addIn < 0:
		return fmt.Errorf("--in must be a positive number of days")
	case addIn > 0:
		end := day.AddDays(addIn)
		kind.End = &end
		kind.CountDown = true
	case addEnd.IsSet():
		end := addEnd.Resolve(day, day)
		kind.End = &end
	}
	return addTracker(strings.Join(args, " "), kind)
}

func addTracker(title string, kind tracker.Kind) error {
	day, err := today()
	if err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	color := strings.ToLower(addColor)
	if color == "" {
		color = cfg.Display.Color
	}
	t := &tracker.Tracker{
		Title: strings.TrimSpace(title),
		Color: color,
		Start: addStart.Resolve(day, day),
		Kind:  kind,
	}

	db, ts, err := openTrackers()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := ts.Add(t); err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("  %s Tracking %s %s\n", ui.Success.Render(ui.IconOk), ui.Title.Render(t.Title), ui.Muted.Render(t.ShortID()))
	printSummary(*t, day)
	fmt.Println()
	return nil
}

// printSummary prints a tracker's headline number and recent weeks.
func printSummary(t tracker.Tracker, day calendar.Day) {
	fmt.Printf("    %s %s\n", kindIcon(t), headline(stats.Compute(t, day)))
	rows := ui.RenderPreview(grid.Recent(t, day, 2), t.Color)
	fmt.Println("    " + strings.Join(rows, "\n    "))
}
