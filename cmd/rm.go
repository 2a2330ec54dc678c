package cmd

import (
	"fmt"

	"github.com/rnwolfe/tally/internal/ui"
	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:     "rm [id]",
	Aliases: []string{"remove", "delete"},
	Short:   "Stop tracking something and delete its history",
	Args:    cobra.MaximumNArgs(1),
	RunE:    runRm,
}

func runRm(_ *cobra.Command, args []string) error {
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
	if err := ts.Delete(t.ID); err != nil {
		return err
	}

	fmt.Printf("  %s Removed %s %s\n", ui.Success.Render(ui.IconOk), t.Title, ui.Muted.Render(t.ShortID()))
	return nil
}
