package cmd

import (
	"fmt"

	"github.com/rnwolfe/tally/internal/version"
	"github.com/spf13/cobra"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print tally version",
	Run: func(_ *cobra.Command, _ []string) {
		if versionShort {
			fmt.Println(version.Short())
			return
		}
		fmt.Printf("tally %s\n", version.Full())
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print only the version number")
}
