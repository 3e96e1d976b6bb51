// Package main provides a profiling wrapper for the power simulator to
// identify performance bottlenecks in the command processing path.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/sarchlab/drampower/sim"
	"github.com/sarchlab/drampower/spec"
	"github.com/sarchlab/drampower/trace"
)

var (
	cpuProfile = flag.String("cpuprofile", "", "write cpu profile to file")
	memProfile = flag.String("memprofile", "", "write memory profile to file")
	commands   = flag.Int("commands", 1000000, "number of trace commands to generate")
	iterations = flag.Int("iterations", 10, "number of simulation runs")
)

func main() {
	flag.Parse()

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()

		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Error starting CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	ms := spec.DefaultDDR5_6400()
	w := generateWorkload(ms, *commands)

	fmt.Printf("Profiling %d runs of %d commands...\n", *iterations, len(w.Commands))

	start := time.Now()
	var totalEnergy float64

	for i := 0; i < *iterations; i++ {
		s := sim.New(ms)
		result := s.Simulate(w)
		totalEnergy = result.TotalEnergy

		if len(s.Errors()) > 0 {
			fmt.Fprintf(os.Stderr, "Run %d: %d errors (first: %s)\n",
				i, len(s.Errors()), s.Errors()[0])
			os.Exit(1)
		}
	}

	elapsed := time.Since(start)
	perRun := elapsed / time.Duration(*iterations)
	cmdsPerSec := float64(len(w.Commands)) / perRun.Seconds()

	fmt.Printf("Total time:    %v\n", elapsed)
	fmt.Printf("Per run:       %v\n", perRun)
	fmt.Printf("Commands/sec:  %.0f\n", cmdsPerSec)
	fmt.Printf("Total energy:  %.3f nJ\n", totalEnergy)

	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating memory profile: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()

		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing memory profile: %v\n", err)
			os.Exit(1)
		}
	}
}

// generateWorkload builds a timing-legal activate/read/precharge stream
// rotated across all banks.
func generateWorkload(ms *spec.MemorySpec, n int) *trace.Workload {
	banks := ms.Architecture.Banks
	cmds := make([]trace.Command, 0, n+1)
	now := int64(0)

	for len(cmds) < n {
		bank := len(cmds) / 3 % banks
		row := len(cmds) % 1024

		cmds = append(cmds, trace.Command{
			Timestamp: now, Kind: trace.KindActivate,
			Bank: bank, Row: row, Column: -1,
		})
		now += 50

		cmds = append(cmds, trace.Command{
			Timestamp: now, Kind: trace.KindRead,
			Bank: bank, Row: -1, Column: 0, BurstLength: 16,
		})
		now += 120

		cmds = append(cmds, trace.Command{
			Timestamp: now, Kind: trace.KindPrecharge,
			Bank: bank, Row: -1, Column: -1,
		})
		now += 60
	}

	cmds = append(cmds, trace.Command{
		Timestamp: now, Kind: trace.KindEndOfSimulation,
		Bank: -1, Row: -1, Column: -1,
	})

	return &trace.Workload{
		Commands: cmds,
		Metadata: trace.Metadata{DataRate: 6400, Temperature: 50},
	}
}
