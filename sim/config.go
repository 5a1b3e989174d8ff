package sim

import (
	"math"

	"github.com/sirupsen/logrus"
)

// SyncEpsilon is the tolerance used to compare synchronization times.
const SyncEpsilon = 1e-9

// Unbounded is the published next event time when no further event exists and
// no stop time was defined.
const Unbounded = math.MaxFloat64

// EngineConfig groups the timing parameters of a stepping Engine.
type EngineConfig struct {
	StartTime       float64 // time of the bootstrap event
	StopTime        float64 // upper bound for the next event time (only if StopTimeDefined)
	StopTimeDefined bool    // false publishes Unbounded past the last event
	DefaultStepSize float64 // spacing of default events (<= 0 disables them)
}

// NewEngineConfig creates an EngineConfig. The default step size is normalized
// by NewEngine.
func NewEngineConfig(start, stop float64, stopDefined bool, defaultStepSize float64) EngineConfig {
	return EngineConfig{
		StartTime:       start,
		StopTime:        stop,
		StopTimeDefined: stopDefined,
		DefaultStepSize: defaultStepSize,
	}
}

// NormalizeStepSize maps a zero, negative or NaN default step size to the
// largest representable time, which disables default events after the
// bootstrap event.
func NormalizeStepSize(d float64) float64 {
	if d <= 0 || math.IsNaN(d) {
		logrus.Infof("default event step size is %g; default events disabled", d)
		return math.MaxFloat64
	}
	return d
}

// NormalizeSeed clamps a random seed to the smallest valid value, 1.
func NormalizeSeed(seed int64) int64 {
	if seed < 1 {
		logrus.Infof("random seed %d is not positive; using 1", seed)
		return 1
	}
	return seed
}

// exhaustedTime is the next event time published once the cursor has passed
// the last queued event.
func (c EngineConfig) exhaustedTime() float64 {
	if c.StopTimeDefined {
		return c.StopTime
	}
	return Unbounded
}
