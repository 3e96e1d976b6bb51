// Package power converts DRAM command execution and idle intervals
// into energy using datasheet current and voltage parameters.
//
// One conversion law is used throughout:
//
//	energy_nJ = (I_active − I_baseline) mA × V × duration_ns / 1000
//
// where mA × V gives mW and mW × ns / 1000 gives nJ.
package power

// Result accumulates the energy of one simulation run. All energies
// are in nJ. The ten category counters are mutated additively during
// the run; the derived fields are computed by Finalize and the Result
// must not be mutated afterward.
type Result struct {
	// Core categories.
	ActivationEnergy          float64
	ReadEnergy                float64
	WriteEnergy               float64
	PrechargeEnergy           float64
	RefreshEnergy             float64
	BackgroundActiveEnergy    float64
	BackgroundPrechargeEnergy float64
	PowerDownEnergy           float64

	// Interface categories.
	TerminationEnergy float64
	DynamicIOEnergy   float64

	// Derived fields, valid after Finalize.
	CoreEnergy      float64
	InterfaceEnergy float64
	TotalEnergy     float64

	// SimulationTime is the run duration in ns.
	SimulationTime float64

	// AveragePower is TotalEnergy / SimulationTime × 1000, in mW.
	// Zero when SimulationTime is zero.
	AveragePower float64
}

// Categories returns the ten category counters in report order. Their
// sum equals TotalEnergy after Finalize.
func (r Result) Categories() []float64 {
	return []float64{
		r.ActivationEnergy,
		r.ReadEnergy,
		r.WriteEnergy,
		r.PrechargeEnergy,
		r.RefreshEnergy,
		r.BackgroundActiveEnergy,
		r.BackgroundPrechargeEnergy,
		r.PowerDownEnergy,
		r.TerminationEnergy,
		r.DynamicIOEnergy,
	}
}
