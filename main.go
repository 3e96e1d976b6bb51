// Package main provides the entry point for drampower.
// drampower is a trace-driven DDR5/LPDDR5 power and energy estimator.
//
// For the full CLI, use: go run ./cmd/drampower
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("drampower - DDR5/LPDDR5 Power Estimator")
	fmt.Println("")
	fmt.Println("Usage: drampower run <spec.json> <workload.json>")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  run        Run a power simulation")
	fmt.Println("  validate   Validate specification and workload files")
	fmt.Println("  version    Print version information")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/drampower' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/drampower' instead.")
	}
}
