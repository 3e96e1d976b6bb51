package sim

import (
	"errors"

	"github.com/sarchlab/drampower/trace"
)

// Missing-field rejections. These are command-level problems, not bank
// state, so they are raised here rather than by the state machine.
var (
	errActRequiresRow    = errors.New("ACT command requires row")
	errRefpbRequiresBank = errors.New("REFPB command requires bank")
)

// execute dispatches one command to the state machine. A nil return
// means the command executed and may be charged.
func (s *Simulator) execute(cmd trace.Command, rank, bank int) error {
	switch cmd.Kind {
	case trace.KindActivate:
		if !cmd.HasRow() {
			return errActRequiresRow
		}
		return s.machine.Activate(rank, bank, cmd.Row)

	case trace.KindRead:
		return s.machine.Read(rank, bank)

	case trace.KindWrite:
		return s.machine.Write(rank, bank)

	case trace.KindPrecharge:
		return s.machine.Precharge(rank, bank)

	case trace.KindPrechargeAll:
		// Attempt every bank in the rank; report the first failure.
		var firstErr error
		for b := 0; b < s.machine.BanksPerRank(); b++ {
			if err := s.machine.Precharge(rank, b); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		return firstErr

	case trace.KindRefresh:
		return s.machine.Refresh()

	case trace.KindRefreshPerBank:
		if !cmd.HasBank() {
			return errRefpbRequiresBank
		}
		// Known approximation: REFPB is modeled as a full refresh. The
		// per-bank refresh-cycle time still drives the energy charge
		// when the device defines one.
		return s.machine.Refresh()

	case trace.KindPowerDown, trace.KindSelfRefresh:
		// Accepted; no state machine effect in this model.
		return nil

	default:
		return nil
	}
}
