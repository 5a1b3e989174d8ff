// Package testutil provides shared test infrastructure for the co-simulation
// backend. It holds stepping and assertion helpers used across sim/scenario
// and sim/cosim test packages.
package testutil

import (
	"math"
	"testing"

	"github.com/cosim-backend/cosim-backend/sim"
)

// StepToNext advances b from time from to its published next event time and
// iterates there once, the way a master follows the backend. It returns the
// new time.
func StepToNext(t *testing.T, b *sim.Backend, from float64) float64 {
	t.Helper()
	next := b.NextEventTime()
	if next < from {
		t.Fatalf("next event time %g precedes current time %g", next, from)
	}
	if err := b.DoStep(from, next-from); err != nil {
		t.Fatalf("advance to %g: %v", next, err)
	}
	if err := b.DoStep(next, 0); err != nil {
		t.Fatalf("iterate at %g: %v", next, err)
	}
	return next
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
