package scenario

import (
	"math/rand"

	"github.com/cosim-backend/cosim-backend/sim"
)

// TC3 variable names.
const (
	TC3SmartMeterA = "u3_send"
	TC3SmartMeterB = "u4_send"
	TC3CtrlSend    = "ctrl_send"
	TC3CtrlReceive = "ctrl_receive"
	TC3TapReceive  = "tap_receive"
	TC3DelayFactor = "delay_factor"
)

const (
	tc3MeterPacketBytes = 100
	tc3CtrlPacketBytes  = 100
	tc3WifiJitterMax    = 2e-3 // per-transmission backoff on the shared cell
	tc3WifiStream       = "wifi"
)

// tc3Backbone connects the controller to the access point.
var tc3Backbone = Link{Latency: 10e-3, DataRate: 100e6, HeaderBytes: csmaHeaderBytes}

// TC3 models two smart meters and an on-load tap changer (OLTC) attached to a
// WiFi access point, which reaches the voltage controller over Ethernet.
// Meter readings travel to the controller (ctrl_receive), tap commands from
// the controller to the OLTC (tap_receive). All delays are scaled by
// delay_factor.
type TC3 struct {
	meterA, meterB, ctrlSend sim.InputRef
	ctrlReceive, tapReceive  sim.OutputRef
	delayFactor              sim.RealParamRef
}

// NewTC3 creates the tc3 scenario.
func NewTC3() *TC3 { return &TC3{} }

// Declare registers the meter and controller variables.
func (s *TC3) Declare(slots *sim.SlotTable) {
	s.meterA = slots.AddIntegerInput(TC3SmartMeterA)
	s.meterB = slots.AddIntegerInput(TC3SmartMeterB)
	s.ctrlSend = slots.AddIntegerInput(TC3CtrlSend)
	s.ctrlReceive = slots.AddIntegerOutput(TC3CtrlReceive)
	s.tapReceive = slots.AddIntegerOutput(TC3TapReceive)
	s.delayFactor = slots.AddRealParameter(TC3DelayFactor, 1)
}

// Adapter returns the network model. The WiFi backoff jitter is drawn from
// the jitter_wifi stream.
func (s *TC3) Adapter(rng *sim.PartitionedRNG) sim.SimulationAdapter {
	return &tc3Adapter{TC3: s, rng: rng.ForSubsystem(sim.SubsystemJitter(tc3WifiStream))}
}

type tc3Adapter struct {
	*TC3
	rng *rand.Rand
}

func (a *tc3Adapter) Run(_ float64, in sim.Inputs) []sim.DelayResult {
	u3, u4, ctrl := in.Input(a.meterA), in.Input(a.meterB), in.Input(a.ctrlSend)
	if u3 == 0 && u4 == 0 && ctrl == 0 {
		return nil
	}
	factor := in.RealParam(a.delayFactor)
	uplink := Path{wifi54, tc3Backbone}
	downlink := Path{tc3Backbone, wifi54}

	var results []sim.DelayResult
	// Both meters transmit when either has data; each draws its own backoff.
	if u3 != 0 || u4 != 0 {
		delayA := uplink.TransferTime(tc3MeterPacketBytes) + Uniform(a.rng, 0, tc3WifiJitterMax)
		delayB := uplink.TransferTime(tc3MeterPacketBytes) + Uniform(a.rng, 0, tc3WifiJitterMax)
		if u3 != 0 {
			results = append(results, sim.DelayResult{Subject: u3, Delay: factor * delayA, Output: a.ctrlReceive})
		}
		if u4 != 0 {
			results = append(results, sim.DelayResult{Subject: u4, Delay: factor * delayB, Output: a.ctrlReceive})
		}
	}
	if ctrl != 0 {
		delay := downlink.TransferTime(tc3CtrlPacketBytes) + Uniform(a.rng, 0, tc3WifiJitterMax)
		results = append(results, sim.DelayResult{Subject: ctrl, Delay: factor * delay, Output: a.tapReceive})
	}
	return results
}
