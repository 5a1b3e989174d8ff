package sim

import "github.com/google/btree"

// queueDegree is the B-tree degree of the EventQueue. Event counts stay small
// (one pending response per in-flight message plus one default event).
const queueDegree = 8

// EventQueue is an ordered set of events keyed by timestamp. Two events never
// share a timestamp: Insert vetoes the newcomer instead of overwriting or
// reordering, so every instant identifies at most one event.
// Thread-safety: NOT thread-safe. Owned by a single Engine.
type EventQueue struct {
	tree *btree.BTreeG[Event]
}

func eventLess(a, b Event) bool { return a.Time < b.Time }

// NewEventQueue creates an empty EventQueue.
func NewEventQueue() *EventQueue {
	return &EventQueue{tree: btree.NewG(queueDegree, eventLess)}
}

// Insert adds ev to the queue. It returns false (veto) if an event with the same
// timestamp is already queued; the queued event is left unchanged and ev is
// discarded.
func (q *EventQueue) Insert(ev Event) bool {
	if q.tree.Has(ev) {
		return false
	}
	q.tree.ReplaceOrInsert(ev)
	return true
}

// Get returns the event queued at exactly time t.
func (q *EventQueue) Get(t float64) (Event, bool) {
	return q.tree.Get(Event{Time: t})
}

// Successor returns the earliest event strictly after time t.
func (q *EventQueue) Successor(t float64) (Event, bool) {
	var next Event
	found := false
	q.tree.AscendGreaterOrEqual(Event{Time: t}, func(ev Event) bool {
		if ev.Time == t {
			return true
		}
		next, found = ev, true
		return false
	})
	return next, found
}

// IsLast reports whether no queued event lies after time t.
func (q *EventQueue) IsLast(t float64) bool {
	_, ok := q.Successor(t)
	return !ok
}

// Min returns the earliest queued event.
func (q *EventQueue) Min() (Event, bool) {
	return q.tree.Min()
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	return q.tree.Len()
}

// PruneBefore removes all events strictly earlier than t and returns how many
// were removed.
func (q *EventQueue) PruneBefore(t float64) int {
	var stale []Event
	q.tree.AscendLessThan(Event{Time: t}, func(ev Event) bool {
		stale = append(stale, ev)
		return true
	})
	for _, ev := range stale {
		q.tree.Delete(ev)
	}
	return len(stale)
}

// Events returns a snapshot of all queued events in ascending time order.
func (q *EventQueue) Events() []Event {
	events := make([]Event, 0, q.tree.Len())
	q.tree.Ascend(func(ev Event) bool {
		events = append(events, ev)
		return true
	})
	return events
}

// Cursor references the event due to fire next by its timestamp. Exhausted is
// set once the last queued event has fired; the published next event time is
// then the stop time or the unbounded sentinel.
type Cursor struct {
	Time      float64
	Exhausted bool
}
