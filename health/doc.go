// Package health tracks the liveness of a control application's
// subsystems: the tick loop, the telemetry transport, and anything else
// the embedding application registers.
//
// A Monitor aggregates named Status values; a Heartbeat derives a
// Status from tick recency, so a stalled loop shows up as unhealthy
// even though nothing reported an error.
package health
