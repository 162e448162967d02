// Package trace provides event-trace recording for a simulation session.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// RegenerationReason says what caused a particle population to be rebuilt.
type RegenerationReason string

const (
	// ReasonModeEnabled: particle mode was switched on.
	ReasonModeEnabled RegenerationReason = "particle-mode-enabled"
	// ReasonParamsChanged: geometry or rate changed while particle mode was on.
	ReasonParamsChanged RegenerationReason = "params-changed"
)

// RegenerationRecord captures one atomic population replacement.
type RegenerationRecord struct {
	Generation int
	Frame      int64 // frame index at which the new population took effect
	Reason     RegenerationReason
	Requested  int
	Accepted   int
	Attempts   int
}

// RepairRecord captures one validator substitution applied to user input.
type RepairRecord struct {
	Frame  int64
	Field  string
	Input  float64
	Output float64
	Rule   string
}
