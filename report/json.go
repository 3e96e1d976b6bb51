package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/drampower/power"
)

// Breakdown is the JSON form of the ten category counters.
type Breakdown struct {
	ActivationEnergyNJ          float64 `json:"activation_energy_nj"`
	ReadEnergyNJ                float64 `json:"read_energy_nj"`
	WriteEnergyNJ               float64 `json:"write_energy_nj"`
	PrechargeEnergyNJ           float64 `json:"precharge_energy_nj"`
	RefreshEnergyNJ             float64 `json:"refresh_energy_nj"`
	BackgroundActiveEnergyNJ    float64 `json:"background_active_energy_nj"`
	BackgroundPrechargeEnergyNJ float64 `json:"background_precharge_energy_nj"`
	PowerDownEnergyNJ           float64 `json:"powerdown_energy_nj"`
	TerminationEnergyNJ         float64 `json:"termination_energy_nj"`
	DynamicIOEnergyNJ           float64 `json:"dynamic_io_energy_nj"`
}

// JSON is the export form of a finalized result.
type JSON struct {
	SimulationTimeNS  float64   `json:"simulation_time_ns"`
	AveragePowerMW    float64   `json:"average_power_mw"`
	TotalEnergyNJ     float64   `json:"total_energy_nj"`
	CoreEnergyNJ      float64   `json:"core_energy_nj"`
	InterfaceEnergyNJ float64   `json:"interface_energy_nj"`
	Breakdown         Breakdown `json:"breakdown"`
	Errors            []string  `json:"errors,omitempty"`
	Warnings          []string  `json:"warnings,omitempty"`
}

// ToJSON converts a finalized result into its export form.
func ToJSON(r power.Result, errs, warns []string) JSON {
	return JSON{
		SimulationTimeNS:  r.SimulationTime,
		AveragePowerMW:    r.AveragePower,
		TotalEnergyNJ:     r.TotalEnergy,
		CoreEnergyNJ:      r.CoreEnergy,
		InterfaceEnergyNJ: r.InterfaceEnergy,
		Breakdown: Breakdown{
			ActivationEnergyNJ:          r.ActivationEnergy,
			ReadEnergyNJ:                r.ReadEnergy,
			WriteEnergyNJ:               r.WriteEnergy,
			PrechargeEnergyNJ:           r.PrechargeEnergy,
			RefreshEnergyNJ:             r.RefreshEnergy,
			BackgroundActiveEnergyNJ:    r.BackgroundActiveEnergy,
			BackgroundPrechargeEnergyNJ: r.BackgroundPrechargeEnergy,
			PowerDownEnergyNJ:           r.PowerDownEnergy,
			TerminationEnergyNJ:         r.TerminationEnergy,
			DynamicIOEnergyNJ:           r.DynamicIOEnergy,
		},
		Errors:   errs,
		Warnings: warns,
	}
}

// WriteJSON writes the export form, indented, to w.
func WriteJSON(w io.Writer, r power.Result, errs, warns []string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ToJSON(r, errs, warns))
}

// ExportJSON writes the export form to a file.
func ExportJSON(path string, r power.Result, errs, warns []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create results file: %w", err)
	}

	if err := WriteJSON(f, r, errs, warns); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write results file: %w", err)
	}

	return f.Close()
}
