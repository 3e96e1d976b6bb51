// Package spec defines the datasheet specification for a DDR5/LPDDR5
// device: current and voltage parameters, JEDEC timing parameters, and
// device architecture. A MemorySpec is loaded once and never mutated.
package spec

import (
	"encoding/json"
	"fmt"
	"os"
)

// PowerSpec holds the datasheet current and voltage parameters.
// Currents are in mA, voltages in V.
type PowerSpec struct {
	// IDD0 is the average activate-precharge cycle current. Default: 51 mA.
	IDD0 float64 `json:"idd0"`

	// IDD2N is the precharged standby current. Default: 35 mA.
	IDD2N float64 `json:"idd2n"`

	// IDD2P is the precharged power-down current. Default: 25 mA.
	IDD2P float64 `json:"idd2p"`

	// IDD3N is the active standby current. Default: 46 mA.
	IDD3N float64 `json:"idd3n"`

	// IDD3P is the active power-down current. Default: 15 mA.
	IDD3P float64 `json:"idd3p"`

	// IDD4R is the read burst current. Default: 146 mA.
	IDD4R float64 `json:"idd4r"`

	// IDD4W is the write burst current. Default: 120 mA.
	IDD4W float64 `json:"idd4w"`

	// IDD5B is the auto-refresh current. Default: 80 mA.
	IDD5B float64 `json:"idd5b"`

	// IDD6 is the self-refresh current. Default: 3 mA.
	IDD6 float64 `json:"idd6"`

	// VDD is the core supply voltage. Default: 1.1 V.
	VDD float64 `json:"vdd"`

	// VDDQ is the I/O supply voltage. Default: 1.1 V.
	VDDQ float64 `json:"vddq"`

	// VDDCA is the command/address supply voltage. Default: 1.1 V.
	VDDCA float64 `json:"vddca"`

	// IPP is the activation peak supply current, if applicable.
	// Default: 0.5 mA.
	IPP float64 `json:"ipp"`

	// Temperature is the nominal operating temperature in degrees C.
	// Default: 50.
	Temperature float64 `json:"temperature"`
}

// TimingSpec holds the JEDEC timing parameters. All values are in ns
// unless noted otherwise.
type TimingSpec struct {
	// TCK is the clock period. DDR5-6400: 0.312 ns.
	TCK float64 `json:"tck"`

	// TRAS is the minimum row-active time.
	TRAS float64 `json:"tras"`

	// TRP is the precharge time.
	TRP float64 `json:"trp"`

	// TRCD is the row-to-column delay.
	TRCD float64 `json:"trcd"`

	// TRFC is the all-bank refresh cycle time.
	TRFC float64 `json:"trfc"`

	// TRFCPB is the per-bank refresh cycle time (LPDDR5). Zero means
	// the device does not define one and TRFC is used instead.
	TRFCPB float64 `json:"trfcpb"`

	// TREFI is the average refresh interval. Default: 7800 ns.
	TREFI float64 `json:"trfi"`

	// TWR is the write recovery time. Default: 15 ns.
	TWR float64 `json:"twr"`

	// TWTR is the write-to-read turnaround time. Default: 7.5 ns.
	TWTR float64 `json:"twtr"`

	// TRRD is the row-to-row activate delay. Default: 4.7 ns.
	TRRD float64 `json:"trrd"`

	// TFAW is the four-activate window. Default: 13.75 ns.
	TFAW float64 `json:"tfaw"`

	// TRC is the row cycle time. Zero means unspecified, in which case
	// it is set to TRAS+TRP when the spec is loaded.
	TRC float64 `json:"trc"`

	// TXP is the power-down exit time. Default: 5 ns.
	TXP float64 `json:"txp"`

	// TXSR is the self-refresh exit time. Default: 70 ns.
	TXSR float64 `json:"txsdr"`

	// TXSDLL is the DLL lock time in tCK cycles. Default: 512.
	TXSDLL float64 `json:"txsdll"`
}

// ArchSpec holds the device architecture parameters.
type ArchSpec struct {
	// Ranks is the number of ranks. Default: 1.
	Ranks int `json:"nbrOfRanks"`

	// Banks is the number of banks per rank. Default: 16.
	Banks int `json:"nbrOfBanks"`

	// Columns is the number of columns per row. Default: 1024.
	Columns int `json:"nbrOfColumns"`

	// Rows is the number of rows per bank. Default: 65536.
	Rows int `json:"nbrOfRows"`

	// Width is the data bus width in bits. Default: 64.
	Width int `json:"width"`

	// BurstLength is the default burst length (BL16 for DDR5, BL32 for
	// LPDDR5). Default: 16.
	BurstLength int `json:"burstLength"`

	// Density is the die density in Gb. Default: 16.
	Density int `json:"density"`

	// RefreshMode is either "all-bank" or "per-bank". Default: "all-bank".
	RefreshMode string `json:"refreshMode"`
}

// MemorySpec is a complete device specification. It is treated as
// immutable once constructed and may safely be shared across
// simulation runs.
type MemorySpec struct {
	Power        PowerSpec  `json:"mempowerspec"`
	Timing       TimingSpec `json:"memtimingspec"`
	Architecture ArchSpec   `json:"architecture"`
}

// TotalBanks returns the total bank count across all ranks.
func (s *MemorySpec) TotalBanks() int {
	return s.Architecture.Ranks * s.Architecture.Banks
}

// DefaultDDR5_6400 returns a MemorySpec with typical DDR5-6400
// datasheet values.
func DefaultDDR5_6400() *MemorySpec {
	s := &MemorySpec{
		Power: PowerSpec{
			IDD0:        51,
			IDD2N:       35,
			IDD2P:       25,
			IDD3N:       46,
			IDD3P:       15,
			IDD4R:       146,
			IDD4W:       120,
			IDD5B:       80,
			IDD6:        3,
			VDD:         1.1,
			VDDQ:        1.1,
			VDDCA:       1.1,
			IPP:         0.5,
			Temperature: 50,
		},
		Timing: TimingSpec{
			TCK:    0.312,
			TRAS:   32,
			TRP:    13.75,
			TRCD:   13.75,
			TRFC:   280,
			TREFI:  7800,
			TWR:    15,
			TWTR:   7.5,
			TRRD:   4.7,
			TFAW:   13.75,
			TXP:    5,
			TXSR:   70,
			TXSDLL: 512,
		},
		Architecture: defaultArch(),
	}
	s.applyDerived()

	return s
}

func defaultArch() ArchSpec {
	return ArchSpec{
		Ranks:       1,
		Banks:       16,
		Columns:     1024,
		Rows:        65536,
		Width:       64,
		BurstLength: 16,
		Density:     16,
		RefreshMode: "all-bank",
	}
}

// applyDerived fills in timing values that are computed from other
// fields when the datasheet leaves them unspecified.
func (s *MemorySpec) applyDerived() {
	if s.Timing.TRC == 0 {
		s.Timing.TRC = s.Timing.TRAS + s.Timing.TRP
	}
}

// Load reads a MemorySpec from a JSON datasheet file. Optional fields
// absent from the file keep their documented defaults. The returned
// spec has derived timing values filled in and has been validated.
func Load(path string) (*MemorySpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read spec file: %w", err)
	}

	s := &MemorySpec{
		Timing: TimingSpec{
			TREFI:  7800,
			TWR:    15,
			TWTR:   7.5,
			TRRD:   4.7,
			TFAW:   13.75,
			TXP:    5,
			TXSR:   70,
			TXSDLL: 512,
		},
		Power: PowerSpec{
			IPP:         0.5,
			Temperature: 50,
		},
		Architecture: defaultArch(),
	}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse spec file: %w", err)
	}

	s.applyDerived()

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid spec %s: %w", path, err)
	}

	return s, nil
}

// Save writes the MemorySpec to a JSON file.
func (s *MemorySpec) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize spec: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write spec file: %w", err)
	}

	return nil
}

// Validate checks that the specification is internally consistent.
func (s *MemorySpec) Validate() error {
	for _, c := range []struct {
		name  string
		value float64
	}{
		{"idd0", s.Power.IDD0},
		{"idd2n", s.Power.IDD2N},
		{"idd2p", s.Power.IDD2P},
		{"idd3n", s.Power.IDD3N},
		{"idd3p", s.Power.IDD3P},
		{"idd4r", s.Power.IDD4R},
		{"idd4w", s.Power.IDD4W},
		{"idd5b", s.Power.IDD5B},
		{"idd6", s.Power.IDD6},
		{"vdd", s.Power.VDD},
		{"vddq", s.Power.VDDQ},
		{"vddca", s.Power.VDDCA},
	} {
		if c.value < 0 {
			return fmt.Errorf("%s must be >= 0, got %g", c.name, c.value)
		}
	}

	if s.Timing.TCK <= 0 {
		return fmt.Errorf("tck must be > 0, got %g", s.Timing.TCK)
	}
	if s.Timing.TRC < s.Timing.TRAS {
		return fmt.Errorf("trc (%g) must be >= tras (%g)",
			s.Timing.TRC, s.Timing.TRAS)
	}
	if s.Timing.TRC < s.Timing.TRP {
		return fmt.Errorf("trc (%g) must be >= trp (%g)",
			s.Timing.TRC, s.Timing.TRP)
	}

	if s.Architecture.Ranks < 1 {
		return fmt.Errorf("nbrOfRanks must be >= 1, got %d", s.Architecture.Ranks)
	}
	if s.Architecture.Banks < 1 {
		return fmt.Errorf("nbrOfBanks must be >= 1, got %d", s.Architecture.Banks)
	}
	if s.Architecture.RefreshMode != "all-bank" &&
		s.Architecture.RefreshMode != "per-bank" {
		return fmt.Errorf("refreshMode must be \"all-bank\" or \"per-bank\", got %q",
			s.Architecture.RefreshMode)
	}

	return nil
}
