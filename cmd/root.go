package cmd

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/rnwolfe/tally/internal/calendar"
	"github.com/rnwolfe/tally/internal/config"
	"github.com/rnwolfe/tally/internal/grid"
	"github.com/rnwolfe/tally/internal/stats"
	"github.com/rnwolfe/tally/internal/tips"
	"github.com/rnwolfe/tally/internal/tracker"
	"github.com/rnwolfe/tally/internal/ui"
	"github.com/rnwolfe/tally/internal/yeargrid"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tally",
	Short: "Track habits and count the days",
	Long: `tally keeps a daily grid for every habit you build or quit and every
date you count toward or away from.

Set TALLY_TODAY=YYYY-MM-DD to pretend it's another day.`,
	RunE: runDashboard,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		cfg, err := config.Load()
		if err != nil {
			log.Printf("warning: loading config: %v", err)
			return
		}
		ui.ApplyDisplay(cfg.Display)
	},
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.Err(err.Error())
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(markCmd)
	rootCmd.AddCommand(relapseCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(calendarCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(versionCmd)
}

// previewWeeks is how many recent weeks the dashboard draws per tracker.
const previewWeeks = 4

// runDashboard shows every tracker with its headline number and a few weeks
// of grid when you just type `tally`.
func runDashboard(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
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

	fmt.Println(ui.Greet(cfg.User.Name))
	ui.Kv("  Today", fmt.Sprintf("%s %s %.1f%% of %d, %d days left",
		day.Format("Monday, January 2"), ui.IconDot,
		yeargrid.YearProgress(day), day.Year(), yeargrid.DaysLeft(day)))
	fmt.Println()

	if len(trackers) == 0 {
		fmt.Println(ui.Muted.Render("  Nothing tracked yet."))
		ui.TipRun(`tally add habit "Read 20 pages"`, "to start a streak.")
		fmt.Println()
		return nil
	}

	for _, t := range trackers {
		printDashboardEntry(t, day)
		fmt.Println()
	}
	ui.Tip(tips.Daily(day))
	fmt.Println()
	return nil
}

func printDashboardEntry(t tracker.Tracker, day calendar.Day) {
	r := stats.Compute(t, day)
	fmt.Printf("  %s %s %s  %s\n",
		ui.Swatch(t.Color), ui.Title.Render(t.Title), ui.Muted.Render(t.ShortID()), headline(r))

	rows := ui.RenderPreview(grid.Recent(t, day, previewWeeks), t.Color)
	fmt.Println("    " + strings.Join(rows, "\n    "))
}

// headline renders a record's main value and label, with the phase when the
// tracker isn't active.
func headline(r stats.Record) string {
	s := ui.Accent.Render(fmt.Sprintf("%d", r.MainValue)) + " " + ui.Subtitle.Render(r.MainLabel)
	if r.Phase != stats.Active {
		s += " " + ui.Muted.Render("("+r.Phase.String()+")")
	}
	return s
}
