package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the current version of planner
const Version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of planner",
	Long:  "Print the version number of planner",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "planner version %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
