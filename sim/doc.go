// Package sim provides the event-queue stepping engine of the co-simulation
// backend.
//
// # Reading Guide
//
// Start with these files to understand the kernel:
//   - event.go and queue.go: events and the timestamp-unique EventQueue
//   - engine.go: the Step state machine, insertion with veto and preemption
//   - backend.go: the slave lifecycle (declare, initialize, doStep, terminate)
//
// # Architecture
//
// A frontend advances the Backend through synchronization points. At every
// point the Engine either moves its clock (no event fires) or iterates at an
// unchanged instant, firing the event under its cursor when the instant
// coincides with it. The embedded simulation plugs in through the Scenario and
// SimulationAdapter interfaces; implementations live in sim/scenario/. The
// master loop that drives a Backend lives in sim/cosim/, and step/insertion
// tracing in sim/trace/.
//
// # Key Interfaces
//
//   - Scenario: declares the scalar variables and builds the adapter
//   - SimulationAdapter: runs the simulation and returns (subject, delay) pairs
//   - Inputs: the read-only view of inputs and parameters handed to a run
package sim
