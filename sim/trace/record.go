// Package trace provides step and insertion recording for the co-simulation
// backend. This package has no dependencies on sim/; it stores pure data types.
package trace

// StepRecord captures one synchronization step.
type StepRecord struct {
	SyncTime      float64
	LastSyncTime  float64
	Kind          StepKind
	Fired         bool  // the step coincided with the queued event and fired it
	Subject       int64 // subject of the fired event (0 when nothing fired)
	Default       bool  // the fired event was a default event
	NextEventTime float64
}

// InsertionRecord captures a single attempt to enqueue an event.
type InsertionRecord struct {
	SyncTime  float64 // sync time of the step that produced the candidate
	Time      float64
	Subject   int64
	Output    string // name of the bound output ("" when unbound)
	Default   bool
	Accepted  bool // false means the insertion was vetoed or dropped
	Preempted bool // the accepted event became the next event
	Reason    string
}

// Reasons recorded for insertions that were not accepted.
const (
	ReasonCollision     = "timestamp collision"
	ReasonInvalidDelay  = "invalid delay"
	ReasonUnknownOutput = "unknown output"
)
