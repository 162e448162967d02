package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalRegenerations  int
	ShortPopulations    int     // regenerations that ran out of attempts
	MeanAcceptanceRate  float64 // accepted / attempts, averaged over regenerations
	TotalRepairs        int
	RepairsByField      map[string]int
	RegenerationReasons map[RegenerationReason]int
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		RepairsByField:      make(map[string]int),
		RegenerationReasons: make(map[RegenerationReason]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalRegenerations = len(st.Regenerations)
	if len(st.Regenerations) > 0 {
		totalRate := 0.0
		for _, r := range st.Regenerations {
			summary.RegenerationReasons[r.Reason]++
			if r.Accepted < r.Requested {
				summary.ShortPopulations++
			}
			if r.Attempts > 0 {
				totalRate += float64(r.Accepted) / float64(r.Attempts)
			}
		}
		summary.MeanAcceptanceRate = totalRate / float64(len(st.Regenerations))
	}

	summary.TotalRepairs = len(st.Repairs)
	for _, r := range st.Repairs {
		summary.RepairsByField[r.Field]++
	}

	return summary
}
