package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "synack",
	Short: "Synack - FM-12 (SYNOP) surface weather report decoder",
	Long: `Synack decodes FM-12 (SYNOP) surface synoptic weather reports from
land stations into structured, machine-readable output.

It understands the positional and enumerated groups of section 1, the
optional ship-movement, climatological, and national sections, and the
WMO code tables needed to turn raw five-digit groups into labelled,
unit-carrying values.

Reports can be decoded one at a time, in batches from files or
directories, or continuously over HTTP:
  - synack parse   decode a single report from an argument or file
  - synack batch   decode files, directories, or a watched directory
  - synack serve   run the decode HTTP service with optional archiving`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
