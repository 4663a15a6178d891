package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is overridden at build time via -ldflags "-X main.version=...".
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the lunamon version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("lunamon", version)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
