package dram

import "fmt"

// ViolationKind classifies why a command was rejected.
type ViolationKind int

const (
	// TimingViolation means a JEDEC interval constraint (tRC, tRCD,
	// tRAS, tWR, tREFI) was not satisfied.
	TimingViolation ViolationKind = iota

	// StateConflict means the command is illegal for the bank's
	// current state.
	StateConflict
)

// Violation is a recoverable protocol violation. A command rejected
// with a Violation leaves all bank state untouched, so the caller can
// log it and keep simulating.
type Violation struct {
	// Kind classifies the violation.
	Kind ViolationKind

	// Constraint names the timing parameter involved ("tRC", "tRCD",
	// "tRAS", "tWR", "tREFI"). Empty for state conflicts.
	Constraint string

	// Reason is the human-readable description.
	Reason string
}

func (v *Violation) Error() string {
	return v.Reason
}

func timingViolation(constraint string, elapsed, required float64) *Violation {
	return &Violation{
		Kind:       TimingViolation,
		Constraint: constraint,
		Reason: fmt.Sprintf("%s violation: %.2f < %.2f",
			constraint, elapsed, required),
	}
}

func stateConflict(reason string) *Violation {
	return &Violation{Kind: StateConflict, Reason: reason}
}
