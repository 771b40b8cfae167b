package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "topoctl",
	Short: "Topodaily server and operations CLI",
	Long:  `topoctl runs the Topodaily survey service and its operational tasks.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
