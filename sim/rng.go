package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// SimulationKey uniquely identifies a reproducible backend run.
// Two runs with the same SimulationKey, configuration and input sequence
// MUST produce bit-for-bit identical outputs.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value. The seed is
// clamped with NormalizeSeed first.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(NormalizeSeed(seed))
}

// SubsystemJitter returns the subsystem name for the jitter draws of a named
// network element, e.g. "jitter_wifi" or "jitter_device_3".
func SubsystemJitter(name string) string {
	return fmt.Sprintf("jitter_%s", name)
}

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem.
//
// Derivation formula: key XOR fnv1a64(subsystemName).
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}

	rng := rand.New(rand.NewSource(int64(p.key) ^ fnv1a64(name)))
	p.subsystems[name] = rng
	return rng
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
