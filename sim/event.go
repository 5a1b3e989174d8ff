package sim

// Event is a pending occurrence in the backend's event queue. Events are
// created by the engine, owned by the EventQueue once accepted and never
// mutated afterwards.
type Event struct {
	Time    float64   // Simulation time at which the event fires (ordering key)
	Subject int64     // Message ID carried by the event (0 = no message)
	Default bool      // True for periodic default events bounding the step size
	Output  OutputRef // Integer output receiving Subject when the event fires
}

// NewDefaultEvent creates a default event at time t. Default events carry no
// message and write no output.
func NewDefaultEvent(t float64) Event {
	return Event{Time: t, Default: true, Output: NoOutput}
}

// NewMessageEvent creates an event delivering subject to out at time t.
func NewMessageEvent(t float64, subject int64, out OutputRef) Event {
	return Event{Time: t, Subject: subject, Output: out}
}

// HasOutput reports whether firing the event writes an output.
func (e Event) HasOutput() bool {
	return e.Output != NoOutput
}
