// Package stream provides the value-flow node library: small composable
// units that produce, transform and consume timestamped data.
//
// A node caches its output during Update and serves it from Get, so a
// graph is fully caught up after one Update traversal of the node the
// application drives. Nodes reference their upstreams through Input,
// which records who is responsible for advancing the upstream: an Owned
// input is updated by the holding node, a Shared input is a read-only
// borrow advanced elsewhere. Exactly one holder may own a given node's
// Update call; double-advancing a stateful node double-integrates it.
//
// Subpackages group the node library by concern: math (arithmetic and
// calculus), control (PID, filters), logic (three-valued boolean
// operations), flow (conditional routing), converters (type and shape
// bridges).
package stream
