// Package trace defines the DRAM command trace model and loads
// workload files into it.
package trace

import (
	"fmt"
	"strings"
)

// Kind identifies a DRAM protocol command.
type Kind int

const (
	// KindUnknown is the zero value and never appears in a valid trace.
	KindUnknown Kind = iota
	// KindActivate opens a row in a bank (ACT).
	KindActivate
	// KindRead bursts data out of an open row (RD).
	KindRead
	// KindWrite bursts data into an open row (WR).
	KindWrite
	// KindPrecharge closes the open row of a bank (PRE).
	KindPrecharge
	// KindPrechargeAll closes the open rows of every bank in a rank (PREA).
	KindPrechargeAll
	// KindRefresh refreshes all banks (REF).
	KindRefresh
	// KindRefreshPerBank refreshes a single bank (REFPB, LPDDR5).
	KindRefreshPerBank
	// KindPowerDown enters power-down (PDN).
	KindPowerDown
	// KindSelfRefresh enters self-refresh (SR).
	KindSelfRefresh
	// KindEndOfSimulation terminates the trace at its timestamp.
	KindEndOfSimulation
)

var kindNames = map[Kind]string{
	KindActivate:        "ACT",
	KindRead:            "RD",
	KindWrite:           "WR",
	KindPrecharge:       "PRE",
	KindPrechargeAll:    "PREA",
	KindRefresh:         "REF",
	KindRefreshPerBank:  "REFPB",
	KindPowerDown:       "PDN",
	KindSelfRefresh:     "SR",
	KindEndOfSimulation: "END_OF_SIMULATION",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind converts a command mnemonic such as "ACT" or "RD" to its
// Kind. Mnemonics are case-insensitive. It returns an error for
// unrecognized mnemonics.
func ParseKind(s string) (Kind, error) {
	upper := strings.ToUpper(s)
	for k, name := range kindNames {
		if name == upper {
			return k, nil
		}
	}
	return KindUnknown, fmt.Errorf("unknown command type: %s", s)
}

// Command is a single timestamped DRAM command. Optional addressing
// fields use -1 when absent (rows, banks, and columns are always
// non-negative when present); BurstLength uses 0 when absent.
type Command struct {
	// Timestamp is the issue time in clock cycles.
	Timestamp int64

	// Kind is the command type.
	Kind Kind

	// Rank is the target rank. Defaults to 0 when the source omits it.
	Rank int

	// Bank is the target bank, or -1 when not addressed to a bank.
	Bank int

	// Row is the row to open (ACT only), or -1.
	Row int

	// Column is the column address, or -1.
	Column int

	// BurstLength is the transfer burst length, or 0 to use the
	// device's default burst length.
	BurstLength int
}

// HasBank reports whether the command carries an explicit bank address.
func (c Command) HasBank() bool { return c.Bank >= 0 }

// HasRow reports whether the command carries a row address.
func (c Command) HasRow() bool { return c.Row >= 0 }

// Metadata carries workload-level annotations. It is accepted and
// preserved but not consumed by the simulation core.
type Metadata struct {
	// DataRate is the transfer rate in MT/s. Default: 6400.
	DataRate int `json:"dataRate"`

	// Temperature is the case temperature in degrees C. Default: 50.
	Temperature float64 `json:"temperature"`

	// ToggleRates maps signal group names to toggle-rate fractions.
	ToggleRates map[string]float64 `json:"toggleRates"`
}

// Workload is an ordered command trace plus its metadata. Ordering by
// timestamp is not guaranteed by the source; the simulator establishes
// it with a stable sort before execution.
type Workload struct {
	Commands []Command
	Metadata Metadata
}
