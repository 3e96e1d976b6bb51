// Package main provides accuracy validation for the power simulator.
// It cross-checks simulated energies against closed-form values
// computed directly from the datasheet fields, independent of the
// accumulation path.
package main

import (
	"fmt"
	"math"
	"os"

	"github.com/sarchlab/drampower/sim"
	"github.com/sarchlab/drampower/spec"
	"github.com/sarchlab/drampower/trace"
)

const tolerance = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= tolerance
}

func workload(cmds ...trace.Command) *trace.Workload {
	return &trace.Workload{
		Commands: cmds,
		Metadata: trace.Metadata{DataRate: 6400, Temperature: 50},
	}
}

// testPulseEnergies validates that activate, precharge, and refresh
// charge exactly their datasheet pulse energies.
func testPulseEnergies(ms *spec.MemorySpec) bool {
	fmt.Println("Testing pulse command energies...")

	s := sim.New(ms)
	result := s.Simulate(workload(
		trace.Command{Timestamp: 0, Kind: trace.KindActivate, Bank: 0, Row: 5, Column: -1},
		trace.Command{Timestamp: 200, Kind: trace.KindPrecharge, Bank: 0, Row: -1, Column: -1},
		trace.Command{Timestamp: 25100, Kind: trace.KindRefresh, Bank: -1, Row: -1, Column: -1},
		trace.Command{Timestamp: 26100, Kind: trace.KindEndOfSimulation, Bank: -1, Row: -1, Column: -1},
	))

	if len(s.Errors()) > 0 {
		fmt.Printf("❌ Unexpected errors: %v\n", s.Errors())
		return false
	}

	wantAct := (ms.Power.IDD0 - ms.Power.IDD3N) * ms.Power.VDD * ms.Timing.TRAS / 1000
	wantPre := (ms.Power.IDD0 - ms.Power.IDD3N) * ms.Power.VDD * ms.Timing.TRP / 1000
	wantRef := ms.Power.IDD5B * ms.Power.VDD * ms.Timing.TRFC / 1000

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"activation", result.ActivationEnergy, wantAct},
		{"precharge", result.PrechargeEnergy, wantPre},
		{"refresh", result.RefreshEnergy, wantRef},
	}

	for _, c := range checks {
		if !approxEqual(c.got, c.want) {
			fmt.Printf("❌ %s energy: got %.6f nJ, want %.6f nJ\n", c.name, c.got, c.want)
			return false
		}
		fmt.Printf("✅ %s energy: %.6f nJ matches closed form\n", c.name, c.want)
	}

	return true
}

// testBurstEnergies validates that a read burst charges the core,
// termination, and dynamic I/O components per their formulas.
func testBurstEnergies(ms *spec.MemorySpec) bool {
	fmt.Println("\nTesting burst command energies...")

	burst := 16
	gap := int64(32) // cycles between RD and EOS, bounds the transfer window

	s := sim.New(ms)
	result := s.Simulate(workload(
		trace.Command{Timestamp: 0, Kind: trace.KindActivate, Bank: 0, Row: 1, Column: -1},
		trace.Command{Timestamp: 64, Kind: trace.KindRead, Bank: 0, Row: -1, Column: 0, BurstLength: burst},
		trace.Command{Timestamp: 64 + gap, Kind: trace.KindEndOfSimulation, Bank: -1, Row: -1, Column: -1},
	))

	if len(s.Errors()) > 0 {
		fmt.Printf("❌ Unexpected errors: %v\n", s.Errors())
		return false
	}

	windowNS := float64(gap) * ms.Timing.TCK

	wantRead := (ms.Power.IDD4R - ms.Power.IDD3N) * ms.Power.VDD * windowNS / 1000

	vTerm := ms.Power.VDDQ / 2
	wantTerm := vTerm * vTerm / 120.0 * 1000 * windowNS * 0.5 / 1000

	wantIO := 0.5 * 2.0 * ms.Power.VDDQ * ms.Power.VDDQ *
		float64(burst) * float64(ms.Architecture.Width) * 0.5 / 1000

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"read core", result.ReadEnergy, wantRead},
		{"termination", result.TerminationEnergy, wantTerm},
		{"dynamic I/O", result.DynamicIOEnergy, wantIO},
	}

	for _, c := range checks {
		if !approxEqual(c.got, c.want) {
			fmt.Printf("❌ %s energy: got %.6f nJ, want %.6f nJ\n", c.name, c.got, c.want)
			return false
		}
		fmt.Printf("✅ %s energy: %.6f nJ matches closed form\n", c.name, c.want)
	}

	return true
}

// testResultClosure validates the result invariants: the category
// counters sum to the total, core and interface partition it, and the
// average power follows from total energy and duration.
func testResultClosure(ms *spec.MemorySpec) bool {
	fmt.Println("\nTesting result closure...")

	s := sim.New(ms)
	result := s.Simulate(workload(
		trace.Command{Timestamp: 0, Kind: trace.KindActivate, Bank: 0, Row: 1, Column: -1},
		trace.Command{Timestamp: 64, Kind: trace.KindRead, Bank: 0, Row: -1, Column: 0, BurstLength: 16},
		trace.Command{Timestamp: 128, Kind: trace.KindWrite, Bank: 0, Row: -1, Column: 8, BurstLength: 16},
		trace.Command{Timestamp: 400, Kind: trace.KindPrecharge, Bank: 0, Row: -1, Column: -1},
		trace.Command{Timestamp: 1000, Kind: trace.KindEndOfSimulation, Bank: -1, Row: -1, Column: -1},
	))

	if len(s.Errors()) > 0 {
		fmt.Printf("❌ Unexpected errors: %v\n", s.Errors())
		return false
	}

	sum := 0.0
	for _, c := range result.Categories() {
		sum += c
	}

	if !approxEqual(result.TotalEnergy, sum) {
		fmt.Printf("❌ total %.6f != category sum %.6f\n", result.TotalEnergy, sum)
		return false
	}
	fmt.Printf("✅ category sum closes: %.6f nJ\n", sum)

	if !approxEqual(result.TotalEnergy, result.CoreEnergy+result.InterfaceEnergy) {
		fmt.Printf("❌ total %.6f != core %.6f + interface %.6f\n",
			result.TotalEnergy, result.CoreEnergy, result.InterfaceEnergy)
		return false
	}
	fmt.Printf("✅ core/interface partition closes\n")

	wantPower := result.TotalEnergy / result.SimulationTime * 1000
	if !approxEqual(result.AveragePower, wantPower) {
		fmt.Printf("❌ average power %.6f mW, want %.6f mW\n", result.AveragePower, wantPower)
		return false
	}
	fmt.Printf("✅ average power %.6f mW matches energy/duration\n", wantPower)

	return true
}

// testOrderIndependence validates that trace ordering is a presentation
// detail: a shuffled trace produces the same result as a sorted one.
func testOrderIndependence(ms *spec.MemorySpec) bool {
	fmt.Println("\nTesting trace order independence...")

	sorted := []trace.Command{
		{Timestamp: 0, Kind: trace.KindActivate, Bank: 0, Row: 1, Column: -1},
		{Timestamp: 64, Kind: trace.KindRead, Bank: 0, Row: -1, Column: 0, BurstLength: 16},
		{Timestamp: 400, Kind: trace.KindPrecharge, Bank: 0, Row: -1, Column: -1},
		{Timestamp: 1000, Kind: trace.KindEndOfSimulation, Bank: -1, Row: -1, Column: -1},
	}
	shuffled := []trace.Command{sorted[2], sorted[0], sorted[3], sorted[1]}

	r1 := sim.New(ms).Simulate(workload(sorted...))
	r2 := sim.New(ms).Simulate(workload(shuffled...))

	if !approxEqual(r1.TotalEnergy, r2.TotalEnergy) {
		fmt.Printf("❌ sorted total %.6f != shuffled total %.6f\n",
			r1.TotalEnergy, r2.TotalEnergy)
		return false
	}

	fmt.Printf("✅ shuffled trace matches sorted trace: %.6f nJ\n", r1.TotalEnergy)
	return true
}

func main() {
	fmt.Println("DRAM Power Simulator Accuracy Validation")
	fmt.Println("=======================================================")

	ms := spec.DefaultDDR5_6400()

	allPassed := true

	if !testPulseEnergies(ms) {
		allPassed = false
	}

	if !testBurstEnergies(ms) {
		allPassed = false
	}

	if !testResultClosure(ms) {
		allPassed = false
	}

	if !testOrderIndependence(ms) {
		allPassed = false
	}

	fmt.Println("\n=======================================================")
	if allPassed {
		fmt.Println("🎉 ALL ACCURACY TESTS PASSED")
		os.Exit(0)
	} else {
		fmt.Println("❌ ACCURACY TESTS FAILED")
		os.Exit(1)
	}
}
