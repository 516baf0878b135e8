package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pagelift",
	Short: "Pagelift is a page-transition orchestrator for server-driven UIs",
	Long:  `Pagelift coordinates page transitions: it drives render strategies through a gated pipeline, preserves permanent elements across swaps, and persists scroll/focus restoration state.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to the YAML configuration file")
}
