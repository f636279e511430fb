package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmazzahacks/loki-reader-core/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of loki-reader",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
