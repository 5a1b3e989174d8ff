package sim

//go:generate mockgen -destination mock_sim_test.go -package sim -write_package_comment=false github.com/cosim-backend/cosim-backend/sim SimulationAdapter,Scenario

// DelayResult is one response produced by a simulation run: Subject becomes
// visible on Output after Delay seconds, counted from the sync time of the run.
type DelayResult struct {
	Subject int64
	Delay   float64
	Output  OutputRef
}

// Inputs is the read-only view of the scalar variables a simulation run may
// consult: the current integer inputs and the parameters.
type Inputs interface {
	Input(ref InputRef) int64
	RealParam(ref RealParamRef) float64
	IntParam(ref IntParamRef) int64
}

// SimulationAdapter runs the embedded simulation for one synchronization
// point. Implementations are invoked synchronously by the Engine and must not
// retain the Inputs view past the call.
type SimulationAdapter interface {
	Run(syncTime float64, in Inputs) []DelayResult
}

// Scenario plugs a concrete simulation into a Backend.
//
// Declare is called once when the Backend is created and registers the
// scenario's inputs, outputs and parameters. Adapter is called once when the
// Backend is initialized, after parameters have been applied, with the run's
// PartitionedRNG. Each source of randomness draws from its own subsystem so
// adding draws to one stream never shifts another.
type Scenario interface {
	Declare(slots *SlotTable)
	Adapter(rng *PartitionedRNG) SimulationAdapter
}

// AdapterFunc adapts a plain function to the SimulationAdapter interface.
type AdapterFunc func(syncTime float64, in Inputs) []DelayResult

// Run calls f(syncTime, in).
func (f AdapterFunc) Run(syncTime float64, in Inputs) []DelayResult {
	return f(syncTime, in)
}

// idleAdapter is used when an Engine is built without a simulation.
type idleAdapter struct{}

func (idleAdapter) Run(float64, Inputs) []DelayResult { return nil }
