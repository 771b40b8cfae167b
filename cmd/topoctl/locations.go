package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// locationsCmd represents the locations command
var locationsCmd = &cobra.Command{
	Use:   "locations",
	Short: "Manage the reference location spreadsheet",
	Long:  `Inspect and validate the region/commune/village reference spreadsheet.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'locations' requires a subcommand (validate)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(locationsCmd)
}
