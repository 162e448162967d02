package trace

// TraceLevel controls the verbosity of event tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelEvents captures population regenerations and parameter repairs.
	TraceLevelEvents TraceLevel = "events"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:   true,
	TraceLevelEvents: true,
	"":               true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// Enabled reports whether records should be collected at all.
func (c TraceConfig) Enabled() bool {
	return c.Level == TraceLevelEvents
}

// SimulationTrace collects event records during a simulation session.
type SimulationTrace struct {
	Config        TraceConfig
	Regenerations []RegenerationRecord
	Repairs       []RepairRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:        config,
		Regenerations: make([]RegenerationRecord, 0),
		Repairs:       make([]RepairRecord, 0),
	}
}

// RecordRegeneration appends a population regeneration record.
func (st *SimulationTrace) RecordRegeneration(record RegenerationRecord) {
	st.Regenerations = append(st.Regenerations, record)
}

// RecordRepair appends a parameter repair record.
func (st *SimulationTrace) RecordRepair(record RepairRecord) {
	st.Repairs = append(st.Repairs, record)
}
