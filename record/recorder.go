// Package record persists simulation runs to SQLite so that energy
// traces can be inspected and compared after the fact. Writing goes
// through the Akita data recorder, which batches rows and flushes on
// exit.
package record

import (
	"github.com/sarchlab/akita/v4/datarecording"
)

// Table names within a run database.
const (
	CommandTable   = "command_energy"
	ViolationTable = "violations"
	SummaryTable   = "run_summary"
)

// CommandEnergy is one successfully executed command and its charged
// energy.
type CommandEnergy struct {
	// Seq is the position of the command in the sorted trace.
	Seq int

	// Command is the mnemonic, e.g. "ACT" or "RD".
	Command string

	// TimestampCycles is the issue time in clock cycles.
	TimestampCycles int64

	// TimeNS is the issue time in ns.
	TimeNS float64

	Rank int
	Bank int

	// EnergyNJ is the total energy charged for the command.
	EnergyNJ float64
}

// ViolationEvent is one rejected command.
type ViolationEvent struct {
	// Seq is the position of the command in the sorted trace.
	Seq int

	// Message is the formatted trace-level error.
	Message string
}

// Summary is the finalized result of one run.
type Summary struct {
	ActivationEnergyNJ          float64
	ReadEnergyNJ                float64
	WriteEnergyNJ               float64
	PrechargeEnergyNJ           float64
	RefreshEnergyNJ             float64
	BackgroundActiveEnergyNJ    float64
	BackgroundPrechargeEnergyNJ float64
	PowerDownEnergyNJ           float64
	TerminationEnergyNJ         float64
	DynamicIOEnergyNJ           float64

	CoreEnergyNJ      float64
	InterfaceEnergyNJ float64
	TotalEnergyNJ     float64

	SimulationTimeNS float64
	AveragePowerMW   float64

	ErrorCount   int
	WarningCount int
}

// Recorder writes run data into a SQLite database.
type Recorder struct {
	backend datarecording.DataRecorder
}

// NewRecorder creates a Recorder writing to <path>.sqlite3. The file
// must not already exist.
func NewRecorder(path string) *Recorder {
	return NewRecorderWithBackend(datarecording.NewDataRecorder(path))
}

// NewRecorderWithBackend creates a Recorder on an existing data
// recorder backend.
func NewRecorderWithBackend(backend datarecording.DataRecorder) *Recorder {
	backend.CreateTable(CommandTable, CommandEnergy{})
	backend.CreateTable(ViolationTable, ViolationEvent{})
	backend.CreateTable(SummaryTable, Summary{})

	return &Recorder{backend: backend}
}

// RecordCommand appends one executed command.
func (r *Recorder) RecordCommand(e CommandEnergy) {
	r.backend.InsertData(CommandTable, e)
}

// RecordViolation appends one rejected command.
func (r *Recorder) RecordViolation(v ViolationEvent) {
	r.backend.InsertData(ViolationTable, v)
}

// RecordSummary appends the finalized run summary.
func (r *Recorder) RecordSummary(s Summary) {
	r.backend.InsertData(SummaryTable, s)
}

// Flush forces buffered rows out to the database.
func (r *Recorder) Flush() {
	r.backend.Flush()
}

// Close flushes and releases the underlying database. The Recorder
// must not be used afterwards.
func (r *Recorder) Close() error {
	return r.backend.Close()
}
