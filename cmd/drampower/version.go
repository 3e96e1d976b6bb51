package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is overridden at release time via
// -ldflags "-X main.version=...".
var version = "dev"

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("drampower %s\n", version)
		},
	}
}
