// Package main provides the drampower command-line tool, a trace-driven
// DDR5/LPDDR5 power and energy estimator.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "drampower",
		Short: "DDR5/LPDDR5 power estimator",
		Long: `drampower estimates the energy and power a DDR5/LPDDR5 device
consumes while executing a timestamped command trace, using datasheet
current, voltage, and timing parameters.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
