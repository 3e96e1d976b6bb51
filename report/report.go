// Package report renders simulation results for humans and for JSON
// consumers.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/sarchlab/drampower/power"
)

// FormatEnergy renders an energy in nJ with an auto-scaled unit.
func FormatEnergy(nj float64) string {
	switch {
	case nj >= 1e6:
		return fmt.Sprintf("%.3f mJ", nj/1e6)
	case nj >= 1e3:
		return fmt.Sprintf("%.3f µJ", nj/1e3)
	default:
		return fmt.Sprintf("%.3f nJ", nj)
	}
}

// FormatPower renders a power in mW with an auto-scaled unit.
func FormatPower(mw float64) string {
	if mw >= 1000 {
		return fmt.Sprintf("%.3f W", mw/1000)
	}
	return fmt.Sprintf("%.3f mW", mw)
}

// WriteText writes the human-readable result breakdown.
func WriteText(w io.Writer, r power.Result, errs, warns []string) {
	rule := strings.Repeat("=", 60)
	thin := strings.Repeat("-", 60)

	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintf(w, "DDR5/LPDDR5 Power Simulation Results\n")
	fmt.Fprintf(w, "%s\n", rule)

	fmt.Fprintf(w, "\nSimulation Time: %.3f µs\n", r.SimulationTime/1e3)
	fmt.Fprintf(w, "Average Power: %s\n", FormatPower(r.AveragePower))
	fmt.Fprintf(w, "Total Energy: %s\n", FormatEnergy(r.TotalEnergy))

	fmt.Fprintf(w, "\n%s\n", thin)
	fmt.Fprintf(w, "Energy Breakdown (Core):\n")
	fmt.Fprintf(w, "%s\n", thin)
	fmt.Fprintf(w, "  Activation:     %s\n", FormatEnergy(r.ActivationEnergy))
	fmt.Fprintf(w, "  Read:           %s\n", FormatEnergy(r.ReadEnergy))
	fmt.Fprintf(w, "  Write:          %s\n", FormatEnergy(r.WriteEnergy))
	fmt.Fprintf(w, "  Precharge:      %s\n", FormatEnergy(r.PrechargeEnergy))
	fmt.Fprintf(w, "  Refresh:        %s\n", FormatEnergy(r.RefreshEnergy))
	fmt.Fprintf(w, "  BG (Active):    %s\n", FormatEnergy(r.BackgroundActiveEnergy))
	fmt.Fprintf(w, "  BG (Precharge): %s\n", FormatEnergy(r.BackgroundPrechargeEnergy))
	fmt.Fprintf(w, "  Power-Down:     %s\n", FormatEnergy(r.PowerDownEnergy))
	fmt.Fprintf(w, "  Core Total:     %s\n", FormatEnergy(r.CoreEnergy))

	fmt.Fprintf(w, "\n%s\n", thin)
	fmt.Fprintf(w, "Energy Breakdown (Interface):\n")
	fmt.Fprintf(w, "%s\n", thin)
	fmt.Fprintf(w, "  Termination:     %s\n", FormatEnergy(r.TerminationEnergy))
	fmt.Fprintf(w, "  Dynamic I/O:     %s\n", FormatEnergy(r.DynamicIOEnergy))
	fmt.Fprintf(w, "  Interface Total: %s\n", FormatEnergy(r.InterfaceEnergy))

	if len(errs) > 0 {
		fmt.Fprintf(w, "\n%s\nERRORS:\n%s\n", rule, rule)
		for _, e := range errs {
			fmt.Fprintf(w, "  [E] %s\n", e)
		}
	}

	if len(warns) > 0 {
		fmt.Fprintf(w, "\n%s\nWARNINGS:\n%s\n", rule, rule)
		for _, warn := range warns {
			fmt.Fprintf(w, "  [W] %s\n", warn)
		}
	}
}
