// Package natsclient manages the NATS connection used for telemetry.
//
// The client wraps nats.go with connection status tracking, structured
// logging, and health-change callbacks, so the telemetry publisher and
// metrics can observe the transport without reaching into the raw
// connection. Reconnection is delegated to nats.go's own retry
// machinery.
package natsclient
