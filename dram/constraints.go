package dram

// Timing legality checks. Each check inspects state without mutating
// it and returns nil when the command may proceed.

func (m *StateMachine) canActivate(b *Bank) *Violation {
	if b.State == StateActive {
		return stateConflict("Bank already active")
	}
	if b.State == StateRefreshing {
		return stateConflict("Bank is refreshing")
	}

	// LastActivate is zero until the bank's first activate; the guard
	// keeps a fresh bank from tripping tRC against time zero.
	if b.LastActivate > 0 {
		elapsed := m.currentTime - b.LastActivate
		if elapsed < m.spec.Timing.TRC {
			return timingViolation("tRC", elapsed, m.spec.Timing.TRC)
		}
	}

	return nil
}

func (m *StateMachine) canColumnAccess(b *Bank, op string) *Violation {
	if b.State != StateActive {
		return stateConflict("Bank must be active for " + op)
	}

	elapsed := m.currentTime - b.LastActivate
	if elapsed < m.spec.Timing.TRCD {
		return timingViolation("tRCD", elapsed, m.spec.Timing.TRCD)
	}

	return nil
}

func (m *StateMachine) canPrecharge(b *Bank) *Violation {
	if b.State == StateIdle {
		return stateConflict("Bank already idle")
	}
	if b.State == StateRefreshing {
		return stateConflict("Bank is refreshing")
	}

	if b.State == StateActive {
		elapsed := m.currentTime - b.LastActivate
		if elapsed < m.spec.Timing.TRAS {
			return timingViolation("tRAS", elapsed, m.spec.Timing.TRAS)
		}
	}

	// tWR only applies once the bank has been written.
	if b.LastWrite > 0 {
		elapsed := m.currentTime - b.LastWrite
		if elapsed < m.spec.Timing.TWR {
			return timingViolation("tWR", elapsed, m.spec.Timing.TWR)
		}
	}

	return nil
}

func (m *StateMachine) canRefresh() *Violation {
	elapsed := m.currentTime - m.lastRefresh
	if elapsed < m.spec.Timing.TREFI {
		return timingViolation("tREFI", elapsed, m.spec.Timing.TREFI)
	}
	return nil
}
