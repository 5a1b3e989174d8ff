// Package scenario provides the simulations a Backend can host.
//
// Each scenario declares the scalar variables of one co-simulation setup and
// answers the messages it receives with (subject, delay) pairs. Delays come
// from an analytic model of the communication path (see Link) instead of a
// packet-level network simulation, which keeps runs fast and deterministic
// for a given random seed.
//
// Available scenarios:
//   - simple: one point-to-point link between two nodes
//   - tc3: two smart meters and an on-load tap changer behind a WiFi access point
//   - lss2: up to MaxDeviceCount devices spread over several WiFi cells
//
// Use New to build a scenario by name and Names to list them.
package scenario
