// Package mechstreams is a control-software toolkit for robotic mechanisms.
//
// It provides two tightly coupled subsystems:
//
// Stream layer - applications compose small processing nodes (filters,
// controllers, trajectory sources) into a live computation graph. Nodes
// implement a small set of capability contracts (produce a value, advance
// internal state, accept a request) and exchange timestamped data, so that
// staleness and absence have well-defined semantics at every edge of the
// graph.
//
// Device layer - physical actuators and sensors are composed into a
// mechanical connectivity graph. Terminals model physical connection points
// on mechanisms; composite devices (shared-shaft axles, differentials, gear
// trains, inverters) propagate commands and measured states across
// connections with latest-timestamp-wins merge rules.
//
// The two layers meet at device wrappers: a state-producing stream node can
// act as a sensor, a command-accepting node as an actuator.
//
// # Architecture
//
//	┌─────────────────────────────────────┐
//	│          Application Loop           │  runner.Runner drives one
//	│     (tick, query, send commands)    │  Update pass per tick
//	└─────────────────────────────────────┘
//	           ↓ pulls / pushes
//	┌─────────────────────────────────────┐
//	│          Stream Graph               │  stream, stream/math,
//	│ (PID, filters, calculus, logic...)  │  stream/control, ...
//	└─────────────────────────────────────┘
//	           ↕ device wrappers
//	┌─────────────────────────────────────┐
//	│          Device Graph               │  device: terminals, axles,
//	│ (terminals, composites, mechanics)  │  differentials, gear trains
//	└─────────────────────────────────────┘
//
// # Packages
//
// Core:
//   - types: Time, Datum, State, Command and the value-flow contracts
//   - quantity: unit-tagged numeric values (dimensional analysis boundary)
//   - pid: PID gain sets and pure controller evaluation
//   - stream: base nodes and the ownership wrapper for shared nodes
//   - stream/math: arithmetic combinators, derivative, integral
//   - stream/control: PID streams, EWMA, moving average
//   - stream/logic: boolean combinators
//   - stream/flow: conditional and freeze nodes
//   - stream/converters: absence handling and type bridges
//   - device: terminals, capabilities, composite devices, wrappers
//   - motionprofile: trapezoidal trajectories as Command histories
//
// Infrastructure:
//   - errors: structured error handling with classification
//   - metric: Prometheus metrics
//   - runner: deterministic tick loop helper
//   - natsclient: managed NATS connection with reconnect handling
//   - telemetry: NATS datum publishing
//   - config: tuning parameter loading and validation
//   - health: component health statuses and loop liveness
//
// # Concurrency Model
//
// The core is single-threaded and tick-driven. All computation happens
// synchronously inside Update/Get/Set/Connect calls invoked by the embedding
// application's control loop. A node referenced from multiple places is
// shared by reference; exactly one logical owner calls its Update per tick
// (see stream.Owned and stream.Shared), and all other holders only call Get.
package mechstreams
