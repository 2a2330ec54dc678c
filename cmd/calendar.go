package cmd

import (
	"fmt"
	"strconv"

	"github.com/rnwolfe/tally/internal/ui"
	"github.com/rnwolfe/tally/internal/yeargrid"
	"github.com/spf13/cobra"
)

var calendarCmd = &cobra.Command{
	Use:     "calendar [year]",
	Aliases: []string{"cal", "year"},
	Short:   "Show the year at a glance",
	Args:    cobra.MaximumNArgs(1),
	RunE:    runCalendar,
}

func runCalendar(_ *cobra.Command, args []string) error {
	day, err := today()
	if err != nil {
		return err
	}

	year := day.Year()
	if len(args) > 0 {
		year, err = strconv.Atoi(args[0])
		if err != nil || year < 1 || year > 9999 {
			return fmt.Errorf("%q is not a year", args[0])
		}
	}

	fmt.Println()
	fmt.Printf("  %s", ui.Title.Render(strconv.Itoa(year)))
	if year == day.Year() {
		pct := yeargrid.YearProgress(day)
		fmt.Printf("  %s %s %s",
			ui.ProgressBar(pct, 20),
			ui.Accent.Render(fmt.Sprintf("%.1f%%", pct)),
			ui.Muted.Render(fmt.Sprintf("%d days left", yeargrid.DaysLeft(day))))
	}
	fmt.Println()
	fmt.Println()

	fmt.Println(indent(ui.RenderYear(yeargrid.Build(year, day)), "  "))
	fmt.Println()
	return nil
}
