package trace

import (
	"testing"
)

func TestNewSimulationTrace_HasSessionID(t *testing.T) {
	// GIVEN two fresh traces
	a := NewSimulationTrace()
	b := NewSimulationTrace()

	// THEN each carries a distinct, non-empty session ID
	if a.SessionID == "" {
		t.Fatal("expected non-empty session ID")
	}
	if a.SessionID == b.SessionID {
		t.Errorf("expected distinct session IDs, both are %s", a.SessionID)
	}
}

func TestSimulationTrace_RecordStep_AppendsRecord(t *testing.T) {
	// GIVEN an empty trace
	st := NewSimulationTrace()

	// WHEN a step record is recorded
	st.RecordStep(StepRecord{SyncTime: 5, LastSyncTime: 5, Kind: StepEventIteration, Fired: true, Subject: 42, NextEventTime: 10})

	// THEN the trace contains one step record with correct data
	if len(st.Steps) != 1 {
		t.Fatalf("expected 1 step, got %d", len(st.Steps))
	}
	if st.Steps[0].Subject != 42 {
		t.Errorf("expected subject 42, got %d", st.Steps[0].Subject)
	}
	if !st.Steps[0].Fired {
		t.Error("expected fired=true")
	}
}

func TestSimulationTrace_MultipleRecords_PreservesOrder(t *testing.T) {
	// GIVEN a trace
	st := NewSimulationTrace()

	// WHEN multiple insertion records are added
	st.RecordInsertion(InsertionRecord{Time: 10, Default: true, Accepted: true})
	st.RecordInsertion(InsertionRecord{Time: 5, Subject: 42, Accepted: true, Preempted: true})
	st.RecordInsertion(InsertionRecord{Time: 5, Subject: 43, Accepted: false, Reason: "veto"})

	// THEN order is preserved
	if len(st.Insertions) != 3 {
		t.Fatalf("expected 3 insertions, got %d", len(st.Insertions))
	}
	want := []int64{0, 42, 43}
	for i, w := range want {
		if st.Insertions[i].Subject != w {
			t.Errorf("insertion[%d]: got subject %d, want %d", i, st.Insertions[i].Subject, w)
		}
	}
}
