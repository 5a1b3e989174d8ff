package scenario

import "github.com/cosim-backend/cosim-backend/sim"

// Simple variable names.
const (
	SimpleSend         = "nodeA_send"
	SimpleReceive      = "nodeB_receive"
	SimpleChannelDelay = "channel_delay"
)

const (
	simpleDataRate    = 5e6 // 5 Mbps
	simplePacketBytes = 1024
)

// Simple connects two nodes with a point-to-point link. Every message sent by
// node A arrives at node B after the link's transfer time, whose propagation
// part is the channel_delay parameter.
type Simple struct {
	send    sim.InputRef
	receive sim.OutputRef
	delay   sim.RealParamRef
}

// NewSimple creates the simple scenario.
func NewSimple() *Simple { return &Simple{} }

// Declare registers nodeA_send, nodeB_receive and channel_delay.
func (s *Simple) Declare(slots *sim.SlotTable) {
	s.send = slots.AddIntegerInput(SimpleSend)
	s.receive = slots.AddIntegerOutput(SimpleReceive)
	s.delay = slots.AddRealParameter(SimpleChannelDelay, 0)
}

// Adapter returns the link model. The link is deterministic and draws no random numbers.
func (s *Simple) Adapter(*sim.PartitionedRNG) sim.SimulationAdapter {
	return sim.AdapterFunc(s.run)
}

func (s *Simple) run(_ float64, in sim.Inputs) []sim.DelayResult {
	id := in.Input(s.send)
	if id == 0 {
		return nil
	}
	link := Link{Latency: in.RealParam(s.delay), DataRate: simpleDataRate, HeaderBytes: pppHeaderBytes}
	return []sim.DelayResult{{Subject: id, Delay: link.TransferTime(simplePacketBytes), Output: s.receive}}
}
