package trace

import "github.com/google/uuid"

// StepKind classifies a synchronization step.
type StepKind string

const (
	// StepTimeAdvance is a step that moves the simulation clock forward.
	StepTimeAdvance StepKind = "time-advance"
	// StepEventIteration is a step at an unchanged clock that fires or re-syncs.
	StepEventIteration StepKind = "event-iteration"
	// StepRejected is a step refused as a synchronization protocol violation.
	StepRejected StepKind = "rejected"
)

// SimulationTrace collects step and insertion records during a backend run.
type SimulationTrace struct {
	SessionID  string
	Steps      []StepRecord
	Insertions []InsertionRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording, tagged with
// a fresh session ID.
func NewSimulationTrace() *SimulationTrace {
	return &SimulationTrace{
		SessionID:  uuid.NewString(),
		Steps:      make([]StepRecord, 0),
		Insertions: make([]InsertionRecord, 0),
	}
}

// RecordStep appends a step record.
func (st *SimulationTrace) RecordStep(record StepRecord) {
	st.Steps = append(st.Steps, record)
}

// RecordInsertion appends an insertion record.
func (st *SimulationTrace) RecordInsertion(record InsertionRecord) {
	st.Insertions = append(st.Insertions, record)
}
