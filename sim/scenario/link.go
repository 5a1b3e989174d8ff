package scenario

import "math/rand"

// Per-packet protocol overhead in bytes, added to the application payload.
const (
	udpIPHeaderBytes = 28 // IPv4 + UDP
	pppHeaderBytes   = 2
	csmaHeaderBytes  = 18 // Ethernet header + FCS
	wifiHeaderBytes  = 36 // 802.11 MAC header + LLC/SNAP + FCS
)

// Link is one hop of a communication path.
type Link struct {
	Latency     float64 // propagation delay in seconds
	DataRate    float64 // bits per second
	HeaderBytes int     // link-layer framing added to every packet
}

// TransferTime returns the time a packet with payload bytes needs to cross the
// link: serialization at DataRate plus propagation.
func (l Link) TransferTime(payload int) float64 {
	bits := float64(8 * (payload + udpIPHeaderBytes + l.HeaderBytes))
	return l.Latency + bits/l.DataRate
}

// Path is a sequence of links traversed store-and-forward.
type Path []Link

// TransferTime sums the transfer times of all hops.
func (p Path) TransferTime(payload int) float64 {
	var d float64
	for _, l := range p {
		d += l.TransferTime(payload)
	}
	return d
}

// Uniform draws from [lo, hi). A degenerate or inverted range returns lo.
func Uniform(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}

// csma100 is a 100 Mbps Ethernet segment.
var csma100 = Link{Latency: 6560e-9, DataRate: 100e6, HeaderBytes: csmaHeaderBytes}

// wifi54 is an 802.11g cell at 54 Mbps without contention.
var wifi54 = Link{Latency: 100e-9, DataRate: 54e6, HeaderBytes: wifiHeaderBytes}
