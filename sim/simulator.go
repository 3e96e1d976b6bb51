// Package sim drives a power simulation end to end: it orders the
// trace, advances the bank state machine, dispatches commands, charges
// energy, and collects recoverable errors.
package sim

import (
	"fmt"
	"sort"

	"github.com/sarchlab/drampower/dram"
	"github.com/sarchlab/drampower/power"
	"github.com/sarchlab/drampower/record"
	"github.com/sarchlab/drampower/spec"
	"github.com/sarchlab/drampower/trace"
)

// Simulator runs one workload against one device specification. A
// Simulator instance holds per-run mutable state and must not be
// shared; the MemorySpec it reads is shared freely.
type Simulator struct {
	spec    *spec.MemorySpec
	machine *dram.StateMachine
	calc    *power.Calculator
	rec     *record.Recorder

	errors   []string
	warnings []string
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithRecorder attaches a run recorder that receives per-command
// energy events, violations, and the final summary.
func WithRecorder(r *record.Recorder) Option {
	return func(s *Simulator) {
		s.rec = r
	}
}

// WithCalculatorOptions forwards options to the energy accounting
// engine.
func WithCalculatorOptions(opts ...power.Option) Option {
	return func(s *Simulator) {
		s.calc = power.NewCalculator(s.spec, s.machine, opts...)
	}
}

// New creates a Simulator with all banks idle and an empty result.
func New(ms *spec.MemorySpec, opts ...Option) *Simulator {
	s := &Simulator{
		spec:    ms,
		machine: dram.NewStateMachine(ms),
	}
	s.calc = power.NewCalculator(ms, s.machine)

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Simulate runs the workload and returns the finalized result.
// Recoverable protocol violations do not abort the run; they are
// collected and available through Errors. An empty workload yields a
// zero-valued finalized result and one fatal error.
func (s *Simulator) Simulate(w *trace.Workload) power.Result {
	s.errors = s.errors[:0]
	s.warnings = s.warnings[:0]

	if len(w.Commands) == 0 {
		s.errors = append(s.errors, "No commands in workload")
		s.calc.Finalize(0)
		s.finishRecording()
		return s.calc.Result()
	}

	sorted := make([]trace.Command, len(w.Commands))
	copy(sorted, w.Commands)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp < sorted[j].Timestamp
	})

	tck := s.spec.Timing.TCK
	lastNS := 0.0

	for i, cmd := range sorted {
		currentNS := float64(cmd.Timestamp) * tck

		if cmd.Kind == trace.KindEndOfSimulation {
			s.calc.AccumulateBackground(lastNS, currentNS)
			lastNS = currentNS
			break
		}

		nextNS := currentNS + tck
		if i+1 < len(sorted) {
			nextNS = float64(sorted[i+1].Timestamp) * tck
		}

		if currentNS > lastNS {
			s.calc.AccumulateBackground(lastNS, currentNS)
		}

		s.machine.AdvanceTo(currentNS)

		rank := cmd.Rank
		bank := cmd.Bank
		if bank < 0 {
			bank = 0
		}

		if err := s.execute(cmd, rank, bank); err != nil {
			msg := fmt.Sprintf("Command %s at %d cycles: %v",
				cmd.Kind, cmd.Timestamp, err)
			s.errors = append(s.errors, msg)
			if s.rec != nil {
				s.rec.RecordViolation(record.ViolationEvent{Seq: i, Message: msg})
			}
			lastNS = currentNS
			continue
		}

		energy := s.calc.ProcessCommand(cmd, currentNS, nextNS)

		if s.rec != nil {
			s.rec.RecordCommand(record.CommandEnergy{
				Seq:             i,
				Command:         cmd.Kind.String(),
				TimestampCycles: cmd.Timestamp,
				TimeNS:          currentNS,
				Rank:            rank,
				Bank:            bank,
				EnergyNJ:        energy,
			})
		}

		lastNS = currentNS
	}

	finalNS := lastNS
	if finalNS == 0 {
		finalNS = float64(sorted[len(sorted)-1].Timestamp) * tck
	}
	s.calc.Finalize(finalNS)

	s.finishRecording()

	return s.calc.Result()
}

// Errors returns the recoverable errors collected by the last run, in
// trace order. A non-empty list is a result property: the run still
// produced a best-effort result for every command that executed.
func (s *Simulator) Errors() []string {
	return s.errors
}

// Warnings returns the warnings collected by the last run. Reserved
// for soft-violation reporting; currently always empty.
func (s *Simulator) Warnings() []string {
	return s.warnings
}

// StateMachine exposes the underlying bank state machine, mainly for
// inspection in tests.
func (s *Simulator) StateMachine() *dram.StateMachine {
	return s.machine
}

func (s *Simulator) finishRecording() {
	if s.rec == nil {
		return
	}

	r := s.calc.Result()
	s.rec.RecordSummary(record.Summary{
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
		CoreEnergyNJ:                r.CoreEnergy,
		InterfaceEnergyNJ:           r.InterfaceEnergy,
		TotalEnergyNJ:               r.TotalEnergy,
		SimulationTimeNS:            r.SimulationTime,
		AveragePowerMW:              r.AveragePower,
		ErrorCount:                  len(s.errors),
		WarningCount:                len(s.warnings),
	})
	s.rec.Flush()
}
