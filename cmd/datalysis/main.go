package main

import (
	"os"

	"github.com/Ajith-oo7/Data-lysis/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "datalysis",
	Short: "An Intelligent Exploratory Data Analysis Engine",
	Long: `datalysis profiles tabular datasets, routes them to the right
exploratory analysis strategy, and runs a configurable cleaning pipeline.

Features:
  • Automatic EDA type routing (basic, complex, timeseries, geospatial, textual)
  • Column profiling with semantic type detection
  • 14-stage data cleaning pipeline with a full audit trail
  • Optional AI domain detection and narrative insights`,
	Version: version.Short(),
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	// Add main subcommands
	rootCmd.AddCommand(NewAnalyzeCmd())
	rootCmd.AddCommand(NewCleanCmd())
	rootCmd.AddCommand(NewQueryCmd())
	rootCmd.AddCommand(NewVersionCmd())
	rootCmd.AddCommand(NewInitCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
