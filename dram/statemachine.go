package dram

import (
	"fmt"

	"github.com/sarchlab/drampower/spec"
)

// farPast initializes the global refresh tracker so that the first
// refresh in a trace is never rejected by tREFI.
const farPast = -1e9

// StateMachine tracks the protocol state of every bank in the device
// and enforces JEDEC timing legality. Constraints are checked strictly
// before any mutation, so a rejected command leaves all state
// untouched.
//
// The state machine does not own a clock. The caller advances the
// current time with AdvanceTo before issuing each command.
type StateMachine struct {
	spec *spec.MemorySpec

	// banks is indexed rank*banksPerRank+bank so that scanning all
	// banks, which background-power weighting does constantly, is a
	// flat array walk.
	banks        []Bank
	ranks        int
	banksPerRank int

	currentTime float64
	lastRefresh float64
}

// NewStateMachine creates a state machine with every bank idle.
func NewStateMachine(ms *spec.MemorySpec) *StateMachine {
	m := &StateMachine{
		spec:         ms,
		ranks:        ms.Architecture.Ranks,
		banksPerRank: ms.Architecture.Banks,
		lastRefresh:  farPast,
	}

	m.banks = make([]Bank, m.ranks*m.banksPerRank)
	for i := range m.banks {
		m.banks[i].OpenRow = NoRow
	}

	return m
}

// AdvanceTo sets the current simulation time in ns. Subsequent
// commands are checked against this time.
func (m *StateMachine) AdvanceTo(timeNS float64) {
	m.currentTime = timeNS
}

// Now returns the current simulation time in ns.
func (m *StateMachine) Now() float64 {
	return m.currentTime
}

// index converts a (rank, bank) pair into a dense bank index. An
// out-of-range pair is a programming error, not a protocol violation,
// and panics.
func (m *StateMachine) index(rank, bank int) int {
	if rank < 0 || rank >= m.ranks || bank < 0 || bank >= m.banksPerRank {
		panic(fmt.Sprintf("bank address out of range: rank %d, bank %d (device has %dx%d)",
			rank, bank, m.ranks, m.banksPerRank))
	}
	return rank*m.banksPerRank + bank
}

// Activate opens a row. The bank must not be active or refreshing, and
// tRC must have elapsed since the bank's previous activate.
func (m *StateMachine) Activate(rank, bank, row int) error {
	b := &m.banks[m.index(rank, bank)]

	if v := m.canActivate(b); v != nil {
		return v
	}

	b.State = StateActive
	b.OpenRow = row
	b.LastActivate = m.currentTime

	return nil
}

// Read bursts data out of the bank's open row. The bank must be active
// and tRCD must have elapsed since the activate.
func (m *StateMachine) Read(rank, bank int) error {
	b := &m.banks[m.index(rank, bank)]

	if v := m.canColumnAccess(b, "read"); v != nil {
		return v
	}

	b.LastRead = m.currentTime

	return nil
}

// Write bursts data into the bank's open row. Legality is identical to
// Read.
func (m *StateMachine) Write(rank, bank int) error {
	b := &m.banks[m.index(rank, bank)]

	if v := m.canColumnAccess(b, "write"); v != nil {
		return v
	}

	b.LastWrite = m.currentTime

	return nil
}

// Precharge closes the bank's open row. The bank must not already be
// idle or refreshing; tRAS gates an active bank and tWR gates a bank
// that has been written.
func (m *StateMachine) Precharge(rank, bank int) error {
	b := &m.banks[m.index(rank, bank)]

	if v := m.canPrecharge(b); v != nil {
		return v
	}

	b.State = StateIdle
	b.OpenRow = NoRow
	b.LastPrecharge = m.currentTime

	return nil
}

// Refresh runs an all-bank refresh. tREFI must have elapsed since the
// previous refresh. Every active bank passes through StateRefreshing
// and settles back to StateIdle with its row closed within this call;
// the tRFC duration is charged by the energy accounting caller rather
// than held as a state.
func (m *StateMachine) Refresh() error {
	if v := m.canRefresh(); v != nil {
		return v
	}

	for i := range m.banks {
		if m.banks[i].State == StateActive {
			m.banks[i].State = StateRefreshing
		}
	}

	m.lastRefresh = m.currentTime

	for i := range m.banks {
		if m.banks[i].State == StateRefreshing {
			m.banks[i].State = StateIdle
			m.banks[i].OpenRow = NoRow
		}
	}

	return nil
}

// BankInfo returns a copy of one bank's tracking state.
func (m *StateMachine) BankInfo(rank, bank int) Bank {
	return m.banks[m.index(rank, bank)]
}

// OpenRow returns the bank's open row. ok is false when no row is
// open.
func (m *StateMachine) OpenRow(rank, bank int) (row int, ok bool) {
	b := m.banks[m.index(rank, bank)]
	return b.OpenRow, b.HasOpenRow()
}

// TotalBanks returns the number of banks tracked.
func (m *StateMachine) TotalBanks() int {
	return len(m.banks)
}

// Ranks returns the number of ranks tracked.
func (m *StateMachine) Ranks() int {
	return m.ranks
}

// BanksPerRank returns the number of banks in each rank.
func (m *StateMachine) BanksPerRank() int {
	return m.banksPerRank
}

// Occupancy counts banks per state for background-power weighting.
type Occupancy struct {
	ActiveStandby       int
	ActivePowerDown     int
	PrechargedStandby   int
	PrechargedPowerDown int
	Refreshing          int
}

// Occupancy scans all banks and returns the per-state counts.
func (m *StateMachine) Occupancy() Occupancy {
	var o Occupancy
	for i := range m.banks {
		switch m.banks[i].State {
		case StateActive:
			o.ActiveStandby++
		case StateActivePowerDown:
			o.ActivePowerDown++
		case StateIdle:
			o.PrechargedStandby++
		case StatePrechargedPowerDown:
			o.PrechargedPowerDown++
		case StateRefreshing:
			o.Refreshing++
		}
	}
	return o
}

// BanksInState enumerates the banks currently in the given state.
func (m *StateMachine) BanksInState(s BankState) []BankAddr {
	var addrs []BankAddr
	for i := range m.banks {
		if m.banks[i].State == s {
			addrs = append(addrs, BankAddr{
				Rank: i / m.banksPerRank,
				Bank: i % m.banksPerRank,
			})
		}
	}
	return addrs
}
