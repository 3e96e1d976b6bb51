// Package benchmarks provides programmatic workload builders for
// common DRAM access patterns, used by acceptance tests to check
// energy-ordering properties between patterns.
package benchmarks

import "github.com/sarchlab/drampower/trace"

// Pattern is a named, pre-built workload.
type Pattern struct {
	Name        string
	Description string
	Workload    *trace.Workload
}

// GetPatterns returns the standard set of access patterns.
func GetPatterns() []Pattern {
	return []Pattern{
		RowHitRead(),
		RowMissRead(),
		ReadWriteMix(),
		RefreshPaced(),
	}
}

// RowHitRead activates one row and streams reads out of it. High row
// buffer hit rate, minimal activation energy.
func RowHitRead() Pattern {
	b := newBuilder()
	b.activate(0, 100)
	for i := 0; i < 8; i++ {
		b.read(0, 16)
	}
	b.gap(200)
	b.precharge(0)
	b.endAt(4000)

	return Pattern{
		Name:        "row_hit_read",
		Description: "one activate, eight reads from the open row",
		Workload:    b.workload(),
	}
}

// RowMissRead alternates banks so that every read pays for a fresh
// activate/precharge pair.
func RowMissRead() Pattern {
	b := newBuilder()
	for i := 0; i < 8; i++ {
		bank := i % 4
		b.activate(bank, 100+i)
		b.read(bank, 16)
		b.gap(150)
		b.precharge(bank)
		b.gap(100)
	}
	b.endAt(8000)

	return Pattern{
		Name:        "row_miss_read",
		Description: "eight reads, each from a freshly activated row",
		Workload:    b.workload(),
	}
}

// ReadWriteMix interleaves reads and writes on one open row.
func ReadWriteMix() Pattern {
	b := newBuilder()
	b.activate(0, 100)
	for i := 0; i < 4; i++ {
		b.read(0, 16)
		b.write(0, 16)
	}
	b.gap(200)
	b.precharge(0)
	b.endAt(4000)

	return Pattern{
		Name:        "read_write_mix",
		Description: "alternating reads and writes on one open row",
		Workload:    b.workload(),
	}
}

// RefreshPaced issues refreshes at the tREFI cadence with the device
// otherwise idle.
func RefreshPaced() Pattern {
	b := newBuilder()
	for i := 0; i < 4; i++ {
		b.refresh()
		b.gap(25000)
	}
	b.endAt(b.now + 1000)

	return Pattern{
		Name:        "refresh_paced",
		Description: "refresh-only workload at the tREFI cadence",
		Workload:    b.workload(),
	}
}

// builder assembles a command list with an advancing cycle cursor.
// Gaps are sized for the DDR5-6400 default timing so every pattern
// simulates without violations.
type builder struct {
	now  int64
	cmds []trace.Command
}

func newBuilder() *builder {
	return &builder{}
}

func (b *builder) push(cmd trace.Command) {
	cmd.Timestamp = b.now
	b.cmds = append(b.cmds, cmd)
}

// activate opens a row and leaves tRCD worth of cycles before the next
// column access.
func (b *builder) activate(bank, row int) {
	b.push(trace.Command{Kind: trace.KindActivate, Bank: bank, Row: row, Column: -1})
	b.now += 50 // > tRCD (13.75 ns) at tCK 0.312 ns
}

func (b *builder) read(bank, burst int) {
	b.push(trace.Command{Kind: trace.KindRead, Bank: bank, Row: -1, Column: 0, BurstLength: burst})
	b.now += 20
}

func (b *builder) write(bank, burst int) {
	b.push(trace.Command{Kind: trace.KindWrite, Bank: bank, Row: -1, Column: 0, BurstLength: burst})
	b.now += 20
}

func (b *builder) precharge(bank int) {
	b.push(trace.Command{Kind: trace.KindPrecharge, Bank: bank, Row: -1, Column: -1})
	b.now += 50 // > tRP
}

func (b *builder) refresh() {
	b.push(trace.Command{Kind: trace.KindRefresh, Bank: -1, Row: -1, Column: -1})
	b.now += 900 // > tRFC (280 ns)
}

func (b *builder) gap(cycles int64) {
	b.now += cycles
}

func (b *builder) endAt(cycle int64) {
	if cycle < b.now {
		cycle = b.now
	}
	b.cmds = append(b.cmds, trace.Command{
		Timestamp: cycle,
		Kind:      trace.KindEndOfSimulation,
		Bank:      -1, Row: -1, Column: -1,
	})
}

func (b *builder) workload() *trace.Workload {
	return &trace.Workload{
		Commands: b.cmds,
		Metadata: trace.Metadata{DataRate: 6400, Temperature: 50},
	}
}
