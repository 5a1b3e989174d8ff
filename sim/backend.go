package sim

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/cosim-backend/cosim-backend/sim/trace"
)

// Names of the scalar variables every Backend declares.
const (
	VarNextEventTime   = "next_event_time"
	VarDefaultStepSize = "default_event_step_size"
	VarRandomSeed      = "random_seed"
)

var (
	// ErrNotInitialized is returned when a Backend is stepped before Initialize.
	ErrNotInitialized = errors.New("backend not initialized")
	// ErrAlreadyInitialized is returned by a second call to Initialize.
	ErrAlreadyInitialized = errors.New("backend already initialized")
	// ErrTerminated is returned when a terminated Backend is stepped.
	ErrTerminated = errors.New("backend terminated")
)

// InitConfig carries the experiment setup the frontend provides at
// initialization.
type InitConfig struct {
	StartTime       float64
	StopTime        float64
	StopTimeDefined bool
}

// Backend is a co-simulation slave: it exposes a scenario's scalar variables,
// accepts parameters, and advances through synchronization points on DoStep.
type Backend struct {
	scenario Scenario
	slots    *SlotTable
	trace    *trace.SimulationTrace

	nextEventTime   RealOutputRef
	defaultStepSize RealParamRef
	randomSeed      IntParamRef

	engine     *Engine
	rng        *PartitionedRNG
	terminated bool
}

// NewBackend creates a Backend for sc and declares its scalar variables:
// next_event_time, default_event_step_size and random_seed first, followed by
// the scenario's own.
func NewBackend(sc Scenario) *Backend {
	slots := NewSlotTable()
	b := &Backend{
		scenario:        sc,
		slots:           slots,
		nextEventTime:   slots.AddRealOutput(VarNextEventTime),
		defaultStepSize: slots.AddRealParameter(VarDefaultStepSize, 0),
		randomSeed:      slots.AddIntegerParameter(VarRandomSeed, 0),
	}
	sc.Declare(slots)
	return b
}

// Slots returns the scalar variable table, used by the frontend to set inputs
// and parameters and to read outputs.
func (b *Backend) Slots() *SlotTable { return b.slots }

// SetTrace attaches a trace. Must be called before Initialize to capture the
// whole run.
func (b *Backend) SetTrace(st *trace.SimulationTrace) {
	b.trace = st
	if b.engine != nil {
		b.engine.SetTrace(st)
	}
}

// Engine returns the stepping engine, or nil before Initialize.
func (b *Backend) Engine() *Engine { return b.engine }

// RNG returns the backend's partitioned RNG, or nil before Initialize.
func (b *Backend) RNG() *PartitionedRNG { return b.rng }

// Initialize applies the parameter defaulting rules, seeds the scenario's RNG
// and creates the stepping engine with its bootstrap event at cfg.StartTime.
func (b *Backend) Initialize(cfg InitConfig) error {
	if b.engine != nil {
		return ErrAlreadyInitialized
	}
	if cfg.StopTimeDefined && cfg.StopTime < cfg.StartTime {
		return fmt.Errorf("stop time %g precedes start time %g", cfg.StopTime, cfg.StartTime)
	}

	stepSize := NormalizeStepSize(b.slots.RealParam(b.defaultStepSize))
	b.slots.SetRealParam(b.defaultStepSize, stepSize)
	key := NewSimulationKey(b.slots.IntParam(b.randomSeed))
	b.slots.SetIntParam(b.randomSeed, int64(key))

	b.rng = NewPartitionedRNG(key)
	adapter := b.scenario.Adapter(b.rng)

	engineCfg := NewEngineConfig(cfg.StartTime, cfg.StopTime, cfg.StopTimeDefined, stepSize)
	b.engine = NewEngine(engineCfg, b.slots, b.nextEventTime, adapter)
	b.engine.SetTrace(b.trace)

	logrus.Infof("backend initialized: start=%g stop=%g (defined=%t) step=%g seed=%d",
		cfg.StartTime, cfg.StopTime, cfg.StopTimeDefined, stepSize, key)
	return nil
}

// DoStep advances the backend from currentPoint by stepSize. A zero step size
// is an event iteration at currentPoint.
func (b *Backend) DoStep(currentPoint, stepSize float64) error {
	switch {
	case b.terminated:
		return ErrTerminated
	case b.engine == nil:
		return ErrNotInitialized
	case stepSize < 0:
		return fmt.Errorf("negative communication step size %g", stepSize)
	}
	if err := b.engine.Step(currentPoint+stepSize, currentPoint); err != nil {
		return fmt.Errorf("doStep at %g: %w", currentPoint+stepSize, err)
	}
	return nil
}

// NextEventTime returns the published next event time.
func (b *Backend) NextEventTime() float64 {
	return b.slots.RealOutput(b.nextEventTime)
}

// Terminate ends the run. Further steps fail with ErrTerminated.
func (b *Backend) Terminate() {
	b.terminated = true
}
