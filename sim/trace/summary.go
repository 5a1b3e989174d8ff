package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalSteps       int
	TimeAdvances     int
	EventIterations  int
	Rejected         int
	FiredEvents      int
	FiredDefaults    int
	Insertions       int
	Accepted         int
	Vetoes           int
	Dropped          int // invalid simulation results, never queued
	Preemptions      int
	OutputDeliveries map[string]int // output name → number of messages scheduled for it
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		OutputDeliveries: make(map[string]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalSteps = len(st.Steps)
	for _, s := range st.Steps {
		switch s.Kind {
		case StepTimeAdvance:
			summary.TimeAdvances++
		case StepEventIteration:
			summary.EventIterations++
		case StepRejected:
			summary.Rejected++
		}
		if s.Fired {
			summary.FiredEvents++
			if s.Default {
				summary.FiredDefaults++
			}
		}
	}

	summary.Insertions = len(st.Insertions)
	for _, in := range st.Insertions {
		if !in.Accepted {
			if in.Reason == "" || in.Reason == ReasonCollision {
				summary.Vetoes++
			} else {
				summary.Dropped++
			}
			continue
		}
		summary.Accepted++
		if in.Preempted {
			summary.Preemptions++
		}
		if in.Output != "" {
			summary.OutputDeliveries[in.Output]++
		}
	}

	return summary
}
