package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventQueue_Insert_OrdersByTime(t *testing.T) {
	// GIVEN events inserted out of order
	q := NewEventQueue()
	for _, ts := range []float64{5, 1, 3, 10, 2} {
		require.True(t, q.Insert(NewMessageEvent(ts, int64(ts), NoOutput)))
	}

	// WHEN the queue is listed
	events := q.Events()

	// THEN events are in strictly ascending time order
	want := []float64{1, 2, 3, 5, 10}
	require.Len(t, events, len(want))
	for i, ev := range events {
		assert.Equal(t, want[i], ev.Time, "event %d", i)
	}
}

func TestEventQueue_Insert_SameTimestamp_Vetoed(t *testing.T) {
	// GIVEN a queue holding an event at t=5 with subject 42
	q := NewEventQueue()
	require.True(t, q.Insert(NewMessageEvent(5, 42, OutputRef(0))))

	// WHEN a second event claims t=5
	accepted := q.Insert(NewMessageEvent(5, 99, OutputRef(1)))

	// THEN it is rejected and the original is unchanged
	assert.False(t, accepted)
	assert.Equal(t, 1, q.Len())
	ev, ok := q.Get(5)
	require.True(t, ok)
	assert.Equal(t, int64(42), ev.Subject)
	assert.Equal(t, OutputRef(0), ev.Output)
}

func TestEventQueue_Insert_RandomSequence_TimestampsStayUnique(t *testing.T) {
	// GIVEN a sequence with repeated timestamps
	q := NewEventQueue()
	times := []float64{3, 1, 3, 2, 1, 7, 7, 7, 0.5, 2}
	accepted := 0
	for i, ts := range times {
		if q.Insert(NewMessageEvent(ts, int64(i+1), NoOutput)) {
			accepted++
		}
	}

	// THEN the queue holds one event per distinct timestamp, first writer wins
	assert.Equal(t, 5, accepted)
	assert.Equal(t, 5, q.Len())
	events := q.Events()
	for i := 1; i < len(events); i++ {
		assert.Less(t, events[i-1].Time, events[i].Time)
	}
	ev, _ := q.Get(7)
	assert.Equal(t, int64(6), ev.Subject)
}

func TestEventQueue_Successor(t *testing.T) {
	q := NewEventQueue()
	q.Insert(NewDefaultEvent(0))
	q.Insert(NewMessageEvent(5, 1, NoOutput))
	q.Insert(NewDefaultEvent(10))

	tests := []struct {
		name   string
		from   float64
		want   float64
		wantOK bool
	}{
		{"from first", 0, 5, true},
		{"from middle", 5, 10, true},
		{"from last", 10, 0, false},
		{"between events", 7, 10, true},
		{"before all", -1, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := q.Successor(tt.from)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got.Time)
			}
		})
	}
}

func TestEventQueue_IsLast(t *testing.T) {
	q := NewEventQueue()
	q.Insert(NewDefaultEvent(0))
	q.Insert(NewDefaultEvent(10))

	assert.False(t, q.IsLast(0))
	assert.True(t, q.IsLast(10))
}

func TestEventQueue_PruneBefore_KeepsEventsAtOrAfterT(t *testing.T) {
	// GIVEN events at 0, 5, 10
	q := NewEventQueue()
	q.Insert(NewDefaultEvent(0))
	q.Insert(NewMessageEvent(5, 1, NoOutput))
	q.Insert(NewDefaultEvent(10))

	// WHEN pruning before t=5
	n := q.PruneBefore(5)

	// THEN only the event at 0 is removed
	assert.Equal(t, 1, n)
	assert.Equal(t, 2, q.Len())
	first, ok := q.Min()
	require.True(t, ok)
	assert.Equal(t, 5.0, first.Time)
}

func TestEventQueue_Empty(t *testing.T) {
	q := NewEventQueue()

	_, ok := q.Min()
	assert.False(t, ok)
	_, ok = q.Successor(0)
	assert.False(t, ok)
	assert.Equal(t, 0, q.PruneBefore(100))
	assert.Empty(t, q.Events())
}
