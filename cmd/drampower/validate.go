package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/drampower/spec"
	"github.com/sarchlab/drampower/trace"
)

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <spec.json> [workload.json]",
		Short: "Validate a specification and optionally a workload file",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  runValidate,
	}
}

func runValidate(_ *cobra.Command, args []string) error {
	ms, err := spec.Load(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s: OK (%d ranks x %d banks, tCK %.3f ns)\n",
		args[0], ms.Architecture.Ranks, ms.Architecture.Banks, ms.Timing.TCK)

	if len(args) == 2 {
		w, err := trace.Load(args[1])
		if err != nil {
			return err
		}
		fmt.Printf("%s: OK (%d commands)\n", args[1], len(w.Commands))
	}

	return nil
}
