package dram

import "fmt"

// BankState is the protocol state of a single bank.
type BankState int

const (
	// StateIdle means the bank is precharged with the clock enabled.
	StateIdle BankState = iota
	// StateActive means a row is open with the clock enabled.
	StateActive
	// StateActivePowerDown means a row is open with the clock disabled.
	StateActivePowerDown
	// StatePrechargedPowerDown means the bank is precharged with the
	// clock disabled.
	StatePrechargedPowerDown
	// StateRefreshing means the bank is inside a refresh cycle.
	StateRefreshing
)

var stateNames = map[BankState]string{
	StateIdle:                "IDLE",
	StateActive:              "ACTIVE",
	StateActivePowerDown:     "ACTIVE_PDN",
	StatePrechargedPowerDown: "PRE_PDN",
	StateRefreshing:          "REFRESHING",
}

func (s BankState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("BankState(%d)", int(s))
}

// NoRow marks a bank with no open row. A bank's open row is valid if
// and only if its state is StateActive.
const NoRow = -1

// Bank holds the mutable per-bank tracking state. All times are in ns
// and refer to the state machine's externally-advanced clock.
type Bank struct {
	State BankState

	// OpenRow is the currently open row, or NoRow. It is set on a
	// successful activate and cleared on precharge and refresh.
	OpenRow int

	LastActivate  float64
	LastPrecharge float64
	LastRead      float64
	LastWrite     float64
	LastPowerDown float64
}

// HasOpenRow reports whether a row is open.
func (b Bank) HasOpenRow() bool { return b.OpenRow != NoRow }

// BankAddr addresses one bank within the device.
type BankAddr struct {
	Rank int
	Bank int
}
