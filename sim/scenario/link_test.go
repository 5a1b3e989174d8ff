package scenario

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLink_TransferTime(t *testing.T) {
	// GIVEN a 1 Mbps link with 1 ms latency and no framing
	l := Link{Latency: 1e-3, DataRate: 1e6}

	// WHEN a 97-byte payload crosses it (125 bytes with IP/UDP headers)
	got := l.TransferTime(97)

	// THEN serialization takes 1 ms on top of the latency
	assert.InDelta(t, 2e-3, got, 1e-12)
}

func TestPath_TransferTime_SumsHops(t *testing.T) {
	a := Link{Latency: 1e-3, DataRate: 1e6}
	b := Link{Latency: 2e-3, DataRate: 1e6}

	assert.InDelta(t, a.TransferTime(10)+b.TransferTime(10), Path{a, b}.TransferTime(10), 1e-15)
	assert.Equal(t, 0.0, Path{}.TransferTime(10))
}

func TestUniform(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 100; i++ {
		v := Uniform(rng, 0.5, 1.5)
		assert.GreaterOrEqual(t, v, 0.5)
		assert.Less(t, v, 1.5)
	}
	assert.Equal(t, 2.0, Uniform(rng, 2, 2))
	assert.Equal(t, 2.0, Uniform(rng, 2, 1))
}
