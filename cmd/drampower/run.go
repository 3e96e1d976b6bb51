package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sarchlab/drampower/record"
	"github.com/sarchlab/drampower/report"
	"github.com/sarchlab/drampower/sim"
	"github.com/sarchlab/drampower/spec"
	"github.com/sarchlab/drampower/trace"
)

var (
	runOutput string
	runQuiet  bool
	runDB     string
)

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <spec.json> <workload.json>",
		Short: "Run a power simulation",
		Long: `Run a power simulation of the given workload trace against the
given device specification.

Examples:
  # Simulate and print the energy breakdown
  drampower run examples/ddr5_6400_spec.json examples/simple_workload.json

  # Export machine-readable results
  drampower run spec.json workload.json -o results.json

  # Record the per-command energy trace to results.sqlite3
  drampower run spec.json workload.json --db results`,
		Args: cobra.ExactArgs(2),
		RunE: runSimulation,
	}

	cmd.Flags().StringVarP(&runOutput, "output", "o", "", "Output JSON file for results")
	cmd.Flags().BoolVar(&runQuiet, "quiet", false, "Suppress the result breakdown")
	cmd.Flags().StringVar(&runDB, "db", "", "Record the run into <db>.sqlite3")

	return cmd
}

func runSimulation(_ *cobra.Command, args []string) error {
	ms, err := spec.Load(args[0])
	if err != nil {
		return fmt.Errorf("loading specification: %w", err)
	}

	w, err := trace.Load(args[1])
	if err != nil {
		return fmt.Errorf("loading workload: %w", err)
	}

	var opts []sim.Option
	if runDB != "" {
		rec := record.NewRecorder(runDB)
		defer func() { _ = rec.Close() }()
		opts = append(opts, sim.WithRecorder(rec))
	}

	simulator := sim.New(ms, opts...)
	result := simulator.Simulate(w)

	if !runQuiet {
		report.WriteText(os.Stdout, result, simulator.Errors(), simulator.Warnings())
	}

	if runOutput != "" {
		err := report.ExportJSON(runOutput, result,
			simulator.Errors(), simulator.Warnings())
		if err != nil {
			return fmt.Errorf("exporting results: %w", err)
		}
		fmt.Printf("\nResults exported to: %s\n", runOutput)
	}

	if n := len(simulator.Errors()); n > 0 {
		return fmt.Errorf("simulation completed with %d errors", n)
	}

	return nil
}
