package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"topodaily/pkg/config"
	"topodaily/pkg/reference"
)

// locationsValidateCmd represents the locations validate command
var locationsValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Parse the location spreadsheet and report its contents",
	Long: `Parse the reference location spreadsheet and report the number of
region/commune/village triples it contains.

Without an argument the configured reference file is used.

Example:
  topoctl locations validate
  topoctl locations validate ./Villages.xlsx`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := ""
		if len(args) > 0 {
			path = args[0]
		} else {
			cfg, err := config.Load()
			if err != nil {
				fmt.Fprintln(os.Stderr, "Bad configuration:", err)
				os.Exit(1)
			}
			path = cfg.ReferenceFile
		}

		set, err := reference.LoadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid location spreadsheet %s: %v\n", path, err)
			os.Exit(1)
		}

		fmt.Printf("%s: %d location(s) across %d region(s)\n", path, set.Len(), len(set.Regions()))
		for _, region := range set.Regions() {
			fmt.Printf("  %s: %d commune(s)\n", region, len(set.Communes(region)))
		}
	},
}

func init() {
	locationsCmd.AddCommand(locationsValidateCmd)
}
