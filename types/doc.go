// Package types contains the shared domain types used across the mechstreams
// toolkit: the Time and Datum primitives, motion State and Command values,
// and the value-flow capability contracts that stream nodes and devices
// implement.
//
// # Value-Flow Contracts
//
// Four orthogonal capabilities; any node may implement a subset:
//
//   - Getter: poll the node's current cached output. Cheap and idempotent;
//     recomputation belongs to Update.
//   - Updatable: advance internal state one tick. Composite nodes update
//     their owned upstream nodes first, in construction order, then refresh
//     their own cache, so a multi-node graph is fully caught up after one
//     traversal of the node the application calls.
//   - Settable: record a requested value. Re-sending an equal request is a
//     no-op with respect to internal reset logic; a changed request may
//     trigger a reset.
//   - History: poll for a value at an arbitrary instant, used for logged or
//     precomputed trajectories.
//
// # Absence
//
// Get returns (nil, nil) when a node has no value yet. Absence is a valid
// steady state, not an error, and every caller must treat it as a distinct,
// expected outcome.
package types
