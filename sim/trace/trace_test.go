package trace

import (
	"testing"
)

func TestSimulationTrace_RecordRegeneration_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for events
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelEvents})

	// WHEN a regeneration record is recorded
	st.RecordRegeneration(RegenerationRecord{
		Generation: 1,
		Frame:      12,
		Reason:     ReasonModeEnabled,
		Requested:  500,
		Accepted:   500,
		Attempts:   1730,
	})

	// THEN the trace contains one regeneration record with correct data
	if len(st.Regenerations) != 1 {
		t.Fatalf("expected 1 regeneration, got %d", len(st.Regenerations))
	}
	if st.Regenerations[0].Reason != ReasonModeEnabled {
		t.Errorf("expected reason %s, got %s", ReasonModeEnabled, st.Regenerations[0].Reason)
	}
	if st.Regenerations[0].Attempts != 1730 {
		t.Errorf("expected 1730 attempts, got %d", st.Regenerations[0].Attempts)
	}
}

func TestSimulationTrace_RecordRepair_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for events
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelEvents})

	// WHEN a repair record is recorded
	st.RecordRepair(RepairRecord{Frame: 3, Field: "wavelength", Input: 9, Output: 2, Rule: "clamp-max"})

	// THEN the trace contains one repair record with correct data
	if len(st.Repairs) != 1 {
		t.Fatalf("expected 1 repair, got %d", len(st.Repairs))
	}
	if st.Repairs[0].Field != "wavelength" || st.Repairs[0].Output != 2 {
		t.Errorf("unexpected repair record %+v", st.Repairs[0])
	}
}

func TestSimulationTrace_MultipleRecords_PreservesOrder(t *testing.T) {
	// GIVEN a trace
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelEvents})

	// WHEN multiple records are added
	st.RecordRegeneration(RegenerationRecord{Generation: 1, Reason: ReasonModeEnabled})
	st.RecordRegeneration(RegenerationRecord{Generation: 2, Reason: ReasonParamsChanged})
	st.RecordRegeneration(RegenerationRecord{Generation: 3, Reason: ReasonParamsChanged})

	// THEN records appear in insertion order
	for i, r := range st.Regenerations {
		if r.Generation != i+1 {
			t.Errorf("record %d: expected generation %d, got %d", i, i+1, r.Generation)
		}
	}
}

func TestIsValidTraceLevel(t *testing.T) {
	tests := []struct {
		level string
		want  bool
	}{
		{"none", true},
		{"events", true},
		{"", true},
		{"decisions", false},
		{"EVENTS", false},
	}
	for _, tt := range tests {
		if got := IsValidTraceLevel(tt.level); got != tt.want {
			t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestTraceConfig_Enabled(t *testing.T) {
	if (TraceConfig{}).Enabled() {
		t.Error("zero-value config must not be enabled")
	}
	if (TraceConfig{Level: TraceLevelNone}).Enabled() {
		t.Error("none level must not be enabled")
	}
	if !(TraceConfig{Level: TraceLevelEvents}).Enabled() {
		t.Error("events level must be enabled")
	}
}
