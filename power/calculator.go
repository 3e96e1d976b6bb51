package power

import (
	"github.com/sarchlab/drampower/dram"
	"github.com/sarchlab/drampower/spec"
	"github.com/sarchlab/drampower/trace"
)

// Engine constants that are properties of the I/O model rather than
// datasheet fields. Overridable through Options.
const (
	// DefaultODTResistance is the on-die termination resistance in Ohms.
	DefaultODTResistance = 120.0

	// DefaultDQCapacitance is the per-pin DQ load capacitance in pF.
	DefaultDQCapacitance = 2.0

	// DefaultSwitchingActivity is the fraction of data bits assumed to
	// toggle per transfer.
	DefaultSwitchingActivity = 0.5

	// DefaultTerminationDutyCycle is the fraction of transfer time the
	// termination network is assumed to conduct.
	DefaultTerminationDutyCycle = 0.5
)

// Calculator is the energy accounting engine. It reads bank occupancy
// from the state machine for background weighting and accumulates
// every contribution into a Result. Counters are never reset mid-run.
type Calculator struct {
	spec    *spec.MemorySpec
	machine *dram.StateMachine

	result Result

	odtResistance        float64
	dqCapacitance        float64
	switchingActivity    float64
	terminationDutyCycle float64

	refreshCount int
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithODTResistance overrides the termination resistance in Ohms.
func WithODTResistance(ohms float64) Option {
	return func(c *Calculator) {
		c.odtResistance = ohms
	}
}

// WithDQCapacitance overrides the per-pin DQ capacitance in pF.
func WithDQCapacitance(pf float64) Option {
	return func(c *Calculator) {
		c.dqCapacitance = pf
	}
}

// WithSwitchingActivity overrides the bit-toggle fraction.
func WithSwitchingActivity(fraction float64) Option {
	return func(c *Calculator) {
		c.switchingActivity = fraction
	}
}

// NewCalculator creates an energy accounting engine bound to a device
// spec and a state machine.
func NewCalculator(ms *spec.MemorySpec, sm *dram.StateMachine, opts ...Option) *Calculator {
	c := &Calculator{
		spec:                 ms,
		machine:              sm,
		odtResistance:        DefaultODTResistance,
		dqCapacitance:        DefaultDQCapacitance,
		switchingActivity:    DefaultSwitchingActivity,
		terminationDutyCycle: DefaultTerminationDutyCycle,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// energy applies the core conversion law for a current delta in mA
// over a duration in ns at core voltage.
func (c *Calculator) energy(currentMA, durationNS float64) float64 {
	powerMW := currentMA * c.spec.Power.VDD
	return powerMW * durationNS / 1000.0
}

// ActivationEnergy returns the energy of an activate pulse:
// (IDD0 − IDD3N) × VDD over the given duration.
func (c *Calculator) ActivationEnergy(durationNS float64) float64 {
	return c.energy(c.spec.Power.IDD0-c.spec.Power.IDD3N, durationNS)
}

// ReadEnergy returns the core energy of a read burst:
// (IDD4R − IDD3N) × VDD over the given duration. Interface energy is
// accounted separately by DynamicIOEnergy and TerminationEnergy.
func (c *Calculator) ReadEnergy(durationNS float64) float64 {
	return c.energy(c.spec.Power.IDD4R-c.spec.Power.IDD3N, durationNS)
}

// WriteEnergy returns the core energy of a write burst:
// (IDD4W − IDD3N) × VDD over the given duration.
func (c *Calculator) WriteEnergy(durationNS float64) float64 {
	return c.energy(c.spec.Power.IDD4W-c.spec.Power.IDD3N, durationNS)
}

// PrechargeEnergy returns the energy of a precharge pulse, modeled
// with the same current delta as activation.
func (c *Calculator) PrechargeEnergy(durationNS float64) float64 {
	return c.energy(c.spec.Power.IDD0-c.spec.Power.IDD3N, durationNS)
}

// RefreshEnergy returns the energy of a refresh cycle:
// IDD5B × VDD over the given duration.
func (c *Calculator) RefreshEnergy(durationNS float64) float64 {
	return c.energy(c.spec.Power.IDD5B, durationNS)
}

// PowerDownEnergy returns the energy spent in power-down for the given
// duration, using IDD3P for active power-down and IDD2P for precharged
// power-down.
func (c *Calculator) PowerDownEnergy(durationNS float64, activePowerDown bool) float64 {
	if activePowerDown {
		return c.energy(c.spec.Power.IDD3P, durationNS)
	}
	return c.energy(c.spec.Power.IDD2P, durationNS)
}

// TerminationEnergy returns the ODT energy of one data transfer:
// (VDDQ/2)² / R_term scaled by the duty cycle over the transfer
// duration. Reads and writes terminate identically in this model.
func (c *Calculator) TerminationEnergy(durationNS float64) float64 {
	vTerm := c.spec.Power.VDDQ / 2.0
	powerMW := vTerm * vTerm / c.odtResistance * 1000.0
	return powerMW * durationNS * c.terminationDutyCycle / 1000.0
}

// DynamicIOEnergy returns the bit-transition energy of one burst:
// 0.5 × C_DQ × VDDQ² per transition, times burst length × bus width ×
// switching activity. The formula is intentionally symmetric between
// reads and writes.
func (c *Calculator) DynamicIOEnergy(burstLength int) float64 {
	vSwing := c.spec.Power.VDDQ
	perTransitionPJ := 0.5 * c.dqCapacitance * vSwing * vSwing
	transitions := float64(burstLength) *
		float64(c.spec.Architecture.Width) * c.switchingActivity
	return perTransitionPJ * transitions / 1000.0
}

// BackgroundEnergy converts the time each bank population spent in the
// four steady states into (active, precharge) background energy.
// Standby states draw IDD3N/IDD2N; power-down states draw IDD3P/IDD2P.
func (c *Calculator) BackgroundEnergy(
	activeStandbyNS, activePowerDownNS,
	prechargedStandbyNS, prechargedPowerDownNS float64,
) (activeNJ, prechargeNJ float64) {
	activeNJ = c.energy(c.spec.Power.IDD3N, activeStandbyNS) +
		c.energy(c.spec.Power.IDD3P, activePowerDownNS)
	prechargeNJ = c.energy(c.spec.Power.IDD2N, prechargedStandbyNS) +
		c.energy(c.spec.Power.IDD2P, prechargedPowerDownNS)
	return activeNJ, prechargeNJ
}

// ProcessCommand charges the energy of one successfully executed
// command and returns the total contribution in nJ. currentNS and
// nextNS bound the transfer window for read and write bursts; pulsed
// commands (activate, precharge, refresh) are charged over their
// datasheet interval instead.
func (c *Calculator) ProcessCommand(cmd trace.Command, currentNS, nextNS float64) float64 {
	durationNS := nextNS - currentNS
	if durationNS <= 0 {
		durationNS = c.spec.Timing.TCK
	}

	switch cmd.Kind {
	case trace.KindActivate:
		e := c.ActivationEnergy(c.spec.Timing.TRAS)
		c.result.ActivationEnergy += e
		return e

	case trace.KindRead:
		e := c.ReadEnergy(durationNS)
		c.result.ReadEnergy += e

		io := c.DynamicIOEnergy(c.burstLength(cmd))
		c.result.DynamicIOEnergy += io

		term := c.TerminationEnergy(durationNS)
		c.result.TerminationEnergy += term

		return e + io + term

	case trace.KindWrite:
		e := c.WriteEnergy(durationNS)
		c.result.WriteEnergy += e

		io := c.DynamicIOEnergy(c.burstLength(cmd))
		c.result.DynamicIOEnergy += io

		term := c.TerminationEnergy(durationNS)
		c.result.TerminationEnergy += term

		return e + io + term

	case trace.KindPrecharge, trace.KindPrechargeAll:
		e := c.PrechargeEnergy(c.spec.Timing.TRP)
		c.result.PrechargeEnergy += e
		return e

	case trace.KindRefresh, trace.KindRefreshPerBank:
		e := c.RefreshEnergy(c.refreshCycle(cmd.Kind))
		c.result.RefreshEnergy += e
		c.refreshCount++
		return e

	default:
		return 0
	}
}

// refreshCycle picks the charged refresh duration: tRFC, or tRFC_pb
// for a per-bank refresh when the device defines one.
func (c *Calculator) refreshCycle(kind trace.Kind) float64 {
	if kind == trace.KindRefreshPerBank && c.spec.Timing.TRFCPB > 0 {
		return c.spec.Timing.TRFCPB
	}
	return c.spec.Timing.TRFC
}

func (c *Calculator) burstLength(cmd trace.Command) int {
	if cmd.BurstLength > 0 {
		return cmd.BurstLength
	}
	return c.spec.Architecture.BurstLength
}

// AccumulateBackground charges background energy for the idle interval
// [startNS, endNS). The interval is split across the four steady bank
// states in proportion to the occupancy observed at this instant. With
// no banks at all, the whole interval is charged as precharged
// standby.
func (c *Calculator) AccumulateBackground(startNS, endNS float64) {
	durationNS := endNS - startNS
	if durationNS <= 0 {
		return
	}

	o := c.machine.Occupancy()
	total := c.machine.TotalBanks()

	var activeStandbyNS, activePowerDownNS float64
	var prechargedStandbyNS, prechargedPowerDownNS float64
	if total > 0 {
		activeStandbyNS = durationNS * float64(o.ActiveStandby) / float64(total)
		activePowerDownNS = durationNS * float64(o.ActivePowerDown) / float64(total)
		prechargedStandbyNS = durationNS * float64(o.PrechargedStandby) / float64(total)
		prechargedPowerDownNS = durationNS * float64(o.PrechargedPowerDown) / float64(total)
	} else {
		prechargedStandbyNS = durationNS
	}

	activeNJ, prechargeNJ := c.BackgroundEnergy(
		activeStandbyNS, activePowerDownNS,
		prechargedStandbyNS, prechargedPowerDownNS)

	c.result.BackgroundActiveEnergy += activeNJ
	c.result.BackgroundPrechargeEnergy += prechargeNJ
}

// AccumulatePowerDown charges an explicitly modeled power-down
// residency into the power-down counter.
func (c *Calculator) AccumulatePowerDown(durationNS float64, activePowerDown bool) {
	c.result.PowerDownEnergy += c.PowerDownEnergy(durationNS, activePowerDown)
}

// RefreshCount returns the number of refresh commands charged so far.
func (c *Calculator) RefreshCount() int {
	return c.refreshCount
}

// Finalize closes the run: it records the total duration, sums the
// category counters into core, interface, and total energy, and
// computes the average power. It must be called exactly once, after
// the last command has been processed.
func (c *Calculator) Finalize(simulationTimeNS float64) {
	r := &c.result

	r.SimulationTime = simulationTimeNS

	r.CoreEnergy = r.ActivationEnergy +
		r.ReadEnergy +
		r.WriteEnergy +
		r.PrechargeEnergy +
		r.RefreshEnergy +
		r.BackgroundActiveEnergy +
		r.BackgroundPrechargeEnergy +
		r.PowerDownEnergy

	r.InterfaceEnergy = r.TerminationEnergy + r.DynamicIOEnergy

	r.TotalEnergy = r.CoreEnergy + r.InterfaceEnergy

	if simulationTimeNS > 0 {
		r.AveragePower = r.TotalEnergy / simulationTimeNS * 1000.0
	} else {
		r.AveragePower = 0
	}
}

// Result returns a copy of the accumulated result.
func (c *Calculator) Result() Result {
	return c.result
}
