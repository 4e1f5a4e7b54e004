// Package runner drives registered graph nodes through tick cycles.
//
// A Runner holds nodes in registration order and advances each one per
// tick, so a whole stream or device graph is caught up after one Tick
// call. Run drives Tick from a wall-clock ticker until the context is
// cancelled, reporting per-node metrics and structured logs as it goes.
//
// The runner itself is single-threaded: register every node, then call
// Tick or Run from one goroutine. Scheduling policy beyond the fixed
// interval belongs to the embedding application.
package runner
