package main

import (
	"fmt"
	"strings"

	"github.com/pagelift/pagelift"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of pagelift",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pagelift version %s\n", strings.TrimSpace(pagelift.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
