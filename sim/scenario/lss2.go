package scenario

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/cosim-backend/cosim-backend/sim"
)

// MaxDeviceCount is the number of device input/output pairs declared by LSS2.
const MaxDeviceCount = 100

// LSS2 variable names. Device variables are named by LSS2DeviceSend and
// LSS2DeviceReceive.
const (
	LSS2Verbose        = "verbose"
	LSS2Interfere      = "interfere"
	LSS2DivideBy       = "divide_by"
	LSS2MinJitter      = "min_jitter"
	LSS2MaxJitter      = "max_jitter"
	LSS2NumDevices     = "n_devices"
	LSS2MaxDeviceDelay = "max_device_delay"
)

const lss2PacketBytes = 100

// LSS2DeviceSend returns the input name of device i.
func LSS2DeviceSend(i int) string { return fmt.Sprintf("device%d_data_send", i) }

// LSS2DeviceReceive returns the output name of device i.
func LSS2DeviceReceive(i int) string { return fmt.Sprintf("device%d_data_receive", i) }

// LSS2JitterStream returns the RNG subsystem of device i.
func LSS2JitterStream(i int) string { return sim.SubsystemJitter(fmt.Sprintf("device_%d", i)) }

// LSS2 models n_devices devices that report to one controller. Devices are
// grouped into WiFi cells of divide_by devices whose access points share an
// Ethernet backbone with the controller. Devices in the same cell contend for
// the channel, so a sender's delay grows with the number of senders ahead of
// it in its cell. Each device also carries a fixed start jitter drawn from
// [min_jitter, max_jitter) at initialization. With interfere set, a dummy
// station saturates every cell and halves the usable WiFi rate.
type LSS2 struct {
	slots *sim.SlotTable

	verbose   sim.IntParamRef
	interfere sim.IntParamRef
	divideBy  sim.IntParamRef
	minJitter sim.RealParamRef
	maxJitter sim.RealParamRef
	nDevices  sim.IntParamRef

	send     [MaxDeviceCount]sim.InputRef
	receive  [MaxDeviceCount]sim.OutputRef
	maxDelay sim.RealOutputRef
}

// NewLSS2 creates the lss2 scenario.
func NewLSS2() *LSS2 { return &LSS2{} }

// Declare registers the parameters, MaxDeviceCount device input/output pairs
// and the max_device_delay output.
func (s *LSS2) Declare(slots *sim.SlotTable) {
	s.slots = slots
	s.verbose = slots.AddIntegerParameter(LSS2Verbose, 0)
	s.interfere = slots.AddIntegerParameter(LSS2Interfere, 0)
	s.divideBy = slots.AddIntegerParameter(LSS2DivideBy, 0)
	s.minJitter = slots.AddRealParameter(LSS2MinJitter, 0)
	s.maxJitter = slots.AddRealParameter(LSS2MaxJitter, 0)
	s.nDevices = slots.AddIntegerParameter(LSS2NumDevices, 1)
	for i := 0; i < MaxDeviceCount; i++ {
		s.send[i] = slots.AddIntegerInput(LSS2DeviceSend(i))
		s.receive[i] = slots.AddIntegerOutput(LSS2DeviceReceive(i))
	}
	s.maxDelay = slots.AddRealOutput(LSS2MaxDeviceDelay)
}

// Adapter fixes the device layout from the current parameters and draws the
// jitter of device i from the jitter_device_<i> stream, so a device's delay
// does not depend on how many devices are active.
func (s *LSS2) Adapter(rng *sim.PartitionedRNG) sim.SimulationAdapter {
	n := int(s.slots.IntParam(s.nDevices))
	if n < 0 {
		n = 0
	}
	if n > MaxDeviceCount {
		logrus.Warnf("lss2: n_devices %d exceeds %d; clamping", n, MaxDeviceCount)
		n = MaxDeviceCount
	}
	cell := int(s.slots.IntParam(s.divideBy))
	if cell <= 0 {
		cell = n
	}
	if cell <= 0 {
		cell = 1
	}
	s.slots.SetIntParam(s.divideBy, int64(cell))

	a := &lss2Adapter{
		LSS2:      s,
		devices:   n,
		cellSize:  cell,
		interfere: s.slots.IntParam(s.interfere) != 0,
		verbose:   s.slots.IntParam(s.verbose) != 0,
	}
	lo, hi := s.slots.RealParam(s.minJitter), s.slots.RealParam(s.maxJitter)
	for i := 0; i < n; i++ {
		a.jitter[i] = Uniform(rng.ForSubsystem(LSS2JitterStream(i)), lo, hi)
	}
	return a
}

type lss2Adapter struct {
	*LSS2
	devices   int
	cellSize  int
	interfere bool
	verbose   bool
	jitter    [MaxDeviceCount]float64
}

func (a *lss2Adapter) Run(syncTime float64, in sim.Inputs) []sim.DelayResult {
	wifi := wifi54
	if a.interfere {
		wifi.DataRate /= 2
	}
	hop := wifi.TransferTime(lss2PacketBytes)
	backbone := csma100.TransferTime(lss2PacketBytes)

	var results []sim.DelayResult
	queued := make(map[int]int) // senders already contending per cell
	for i := 0; i < a.devices; i++ {
		id := in.Input(a.send[i])
		if id == 0 {
			continue
		}
		cell := i / a.cellSize
		queued[cell]++
		delay := float64(queued[cell])*hop + backbone + a.jitter[i]
		results = append(results, sim.DelayResult{Subject: id, Delay: delay, Output: a.receive[i]})
	}
	if len(results) == 0 {
		return nil
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Delay < results[j].Delay })
	maxDelay := results[len(results)-1].Delay
	a.slots.SetRealOutput(a.maxDelay, maxDelay)

	if a.verbose {
		for _, r := range results {
			logrus.Infof("[t=%g] lss2: %s receives %d after %g s",
				syncTime, a.slots.OutputName(r.Output), r.Subject, r.Delay)
		}
	}
	logrus.Debugf("[t=%g] lss2: %d senders, max device delay %g", syncTime, len(results), maxDelay)
	return results
}
