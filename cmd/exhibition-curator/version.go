package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of exhibition-curator",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "exhibition-curator %s (sources: The Met, Cleveland Museum of Art)\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
