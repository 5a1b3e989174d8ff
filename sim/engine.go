package sim

import (
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/cosim-backend/cosim-backend/sim/trace"
)

// ErrStepOrderViolation reports a synchronization request that would skip a
// pending event or move the clock backwards.
var ErrStepOrderViolation = errors.New("step order violation")

// StepOrderError carries the times of a rejected step. It matches
// ErrStepOrderViolation with errors.Is.
type StepOrderError struct {
	SyncTime      float64
	LastSyncTime  float64
	NextEventTime float64
}

func (e *StepOrderError) Error() string {
	if e.SyncTime < e.LastSyncTime {
		return fmt.Sprintf("%v: sync time %g precedes last sync time %g",
			ErrStepOrderViolation, e.SyncTime, e.LastSyncTime)
	}
	return fmt.Sprintf("%v: sync time %g skips pending event at %g",
		ErrStepOrderViolation, e.SyncTime, e.NextEventTime)
}

func (e *StepOrderError) Unwrap() error { return ErrStepOrderViolation }

// Engine is the stepping engine. It owns the event queue and the cursor and
// publishes the time of the next pending event into a real output, so that the
// orchestrator can choose synchronization points without skipping events.
//
// Each Step performs exactly one transition:
//   - time advance (syncTime > lastSyncTime): clears inputs and outputs; no event fires
//   - event iteration at the queued event: fires it, runs the simulation, moves the cursor
//   - event iteration elsewhere: runs the simulation for the newly arrived inputs
//
// Thread-safety: NOT thread-safe. Steps must be issued by a single driver.
type Engine struct {
	cfg     EngineConfig
	queue   *EventQueue
	cursor  Cursor
	slots   *SlotTable
	nextOut RealOutputRef
	adapter SimulationAdapter
	trace   *trace.SimulationTrace

	nextEventTime float64
	syncTime      float64 // sync time of the step in progress
}

// NewEngine creates an Engine whose bootstrap event fires at cfg.StartTime.
// The next event time is published into slots at nextOut. A nil adapter runs no
// simulation.
func NewEngine(cfg EngineConfig, slots *SlotTable, nextOut RealOutputRef, adapter SimulationAdapter) *Engine {
	cfg.DefaultStepSize = NormalizeStepSize(cfg.DefaultStepSize)
	if adapter == nil {
		adapter = idleAdapter{}
	}
	e := &Engine{
		cfg:      cfg,
		queue:    NewEventQueue(),
		slots:    slots,
		nextOut:  nextOut,
		adapter:  adapter,
		syncTime: cfg.StartTime,
	}
	bootstrap := NewDefaultEvent(cfg.StartTime)
	e.queue.Insert(bootstrap)
	e.cursor = Cursor{Time: bootstrap.Time}
	e.publish(bootstrap.Time)
	return e
}

// SetTrace attaches a trace that records every step and insertion attempt.
// A nil trace disables recording.
func (e *Engine) SetTrace(st *trace.SimulationTrace) {
	e.trace = st
}

// NextEventTime returns the published time of the next pending event, the stop
// time or Unbounded once every queued event has fired.
func (e *Engine) NextEventTime() float64 { return e.nextEventTime }

// Cursor returns the reference to the next event due to fire.
func (e *Engine) Cursor() Cursor { return e.cursor }

// Queue returns the engine's event queue. Callers must not insert into it
// directly; use AddEventForSubject.
func (e *Engine) Queue() *EventQueue { return e.queue }

// Config returns the engine configuration with defaults applied.
func (e *Engine) Config() EngineConfig { return e.cfg }

// Step synchronizes the engine at syncTime, coming from lastSyncTime.
// A request that would skip the next pending event by more than SyncEpsilon
// fails with a *StepOrderError and leaves the queue and all slots untouched.
func (e *Engine) Step(syncTime, lastSyncTime float64) error {
	logrus.Debugf("[t=%g] step from %g, next event at %g", syncTime, lastSyncTime, e.nextEventTime)

	if syncTime < lastSyncTime-SyncEpsilon ||
		(math.Abs(syncTime-lastSyncTime) > SyncEpsilon && syncTime > e.nextEventTime+SyncEpsilon) {
		return e.reject(syncTime, lastSyncTime)
	}
	e.syncTime = syncTime

	if math.Abs(syncTime-lastSyncTime) > SyncEpsilon {
		e.advanceTime(syncTime, lastSyncTime)
		return nil
	}

	record := trace.StepRecord{SyncTime: syncTime, LastSyncTime: lastSyncTime, Kind: trace.StepEventIteration}
	if !e.cursor.Exhausted && math.Abs(syncTime-e.nextEventTime) < SyncEpsilon {
		fired := e.fire(syncTime)
		record.Fired = true
		record.Subject = fired.Subject
		record.Default = fired.Default
	} else {
		// Re-synchronization for new inputs: nothing is due, so earlier
		// outputs are stale.
		e.slots.ResetOutputs()
		e.runSimulation(syncTime)
	}
	e.slots.ResetInputs()

	record.NextEventTime = e.nextEventTime
	e.recordStep(record)
	logrus.Debugf("[t=%g] next event time = %g", syncTime, e.nextEventTime)
	return nil
}

func (e *Engine) reject(syncTime, lastSyncTime float64) error {
	err := &StepOrderError{SyncTime: syncTime, LastSyncTime: lastSyncTime, NextEventTime: e.nextEventTime}
	logrus.Errorf("[t=%g] %v", syncTime, err)
	e.recordStep(trace.StepRecord{
		SyncTime:      syncTime,
		LastSyncTime:  lastSyncTime,
		Kind:          trace.StepRejected,
		NextEventTime: e.nextEventTime,
	})
	return err
}

// advanceTime starts a fresh step at syncTime: no signal latched during the
// previous instant survives, and events that already fired are dropped. Every
// event earlier than the cursor has fired.
func (e *Engine) advanceTime(syncTime, lastSyncTime float64) {
	e.slots.ResetInputs()
	e.slots.ResetOutputs()
	if n := e.queue.PruneBefore(e.cursor.Time); n > 0 {
		logrus.Debugf("[t=%g] released %d fired events", syncTime, n)
	}
	e.recordStep(trace.StepRecord{
		SyncTime:      syncTime,
		LastSyncTime:  lastSyncTime,
		Kind:          trace.StepTimeAdvance,
		NextEventTime: e.nextEventTime,
	})
}

// fire processes the event under the cursor and moves the cursor past it.
// A fired default event schedules exactly one successor one step later; the
// only exception is a successor that would land at +Inf, which happens when
// default events are disabled and the last one sits at math.MaxFloat64.
func (e *Engine) fire(syncTime float64) Event {
	ev, ok := e.queue.Get(e.cursor.Time)
	if !ok {
		panic(fmt.Sprintf("sim: cursor at %g references no queued event", e.cursor.Time))
	}
	logrus.Debugf("[t=%g] firing event: subject=%d default=%t output=%q",
		syncTime, ev.Subject, ev.Default, e.slots.OutputName(ev.Output))

	if next := ev.Time + e.cfg.DefaultStepSize; ev.Default && !math.IsInf(next, 1) {
		e.schedule(NewDefaultEvent(next))
	}
	if ev.HasOutput() {
		e.slots.SetOutput(ev.Output, ev.Subject)
	}

	e.runSimulation(syncTime)

	if next, ok := e.queue.Successor(ev.Time); ok {
		e.cursor = Cursor{Time: next.Time}
		e.publish(next.Time)
	} else {
		e.cursor = Cursor{Time: ev.Time, Exhausted: true}
		e.publish(e.cfg.exhaustedTime())
	}
	return ev
}

// runSimulation invokes the adapter with the current inputs and enqueues one
// event per result.
func (e *Engine) runSimulation(syncTime float64) {
	results := e.adapter.Run(syncTime, e.slots)
	for _, r := range results {
		if r.Delay < 0 || math.IsNaN(r.Delay) {
			logrus.Warnf("[t=%g] dropping result for subject %d: invalid delay %g", syncTime, r.Subject, r.Delay)
			e.recordInsertion(trace.InsertionRecord{
				SyncTime: syncTime, Time: syncTime + r.Delay, Subject: r.Subject,
				Output: e.slots.OutputName(r.Output), Reason: trace.ReasonInvalidDelay,
			})
			continue
		}
		if r.Output != NoOutput && (r.Output < 0 || int(r.Output) >= e.slots.NumOutputs()) {
			logrus.Warnf("[t=%g] dropping result for subject %d: unknown output %d", syncTime, r.Subject, r.Output)
			e.recordInsertion(trace.InsertionRecord{
				SyncTime: syncTime, Time: syncTime + r.Delay, Subject: r.Subject, Reason: trace.ReasonUnknownOutput,
			})
			continue
		}
		e.AddEventForSubject(syncTime+r.Delay, r.Subject, r.Output)
	}
}

// AddEventForSubject schedules subject to be written to out at time t. The
// insertion is vetoed, and the candidate dropped, when another event already
// claims t. An accepted event earlier than the current next event time becomes
// the next event. It reports whether the event was accepted.
func (e *Engine) AddEventForSubject(t float64, subject int64, out OutputRef) bool {
	return e.schedule(NewMessageEvent(t, subject, out))
}

func (e *Engine) schedule(ev Event) bool {
	record := trace.InsertionRecord{
		SyncTime: e.syncTime,
		Time:     ev.Time,
		Subject:  ev.Subject,
		Output:   e.slots.OutputName(ev.Output),
		Default:  ev.Default,
	}

	if !e.queue.Insert(ev) {
		// Known accuracy limit: a same-instant response is lost.
		logrus.Warnf("[t=%g] veto for event at t = %g (subject %d)", e.syncTime, ev.Time, ev.Subject)
		record.Reason = trace.ReasonCollision
		e.recordInsertion(record)
		return false
	}
	record.Accepted = true
	logrus.Debugf("[t=%g] add event at t = %g: subject=%d default=%t", e.syncTime, ev.Time, ev.Subject, ev.Default)

	if ev.Time < e.nextEventTime {
		logrus.Debugf("[t=%g] event at t = %g becomes next event", e.syncTime, ev.Time)
		e.cursor = Cursor{Time: ev.Time}
		e.publish(ev.Time)
		record.Preempted = true
	}
	e.recordInsertion(record)
	return true
}

func (e *Engine) publish(t float64) {
	e.nextEventTime = t
	e.slots.SetRealOutput(e.nextOut, t)
}

func (e *Engine) recordStep(r trace.StepRecord) {
	if e.trace != nil {
		e.trace.RecordStep(r)
	}
}

func (e *Engine) recordInsertion(r trace.InsertionRecord) {
	if e.trace != nil {
		e.trace.RecordInsertion(r)
	}
}
