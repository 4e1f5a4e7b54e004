// Package metric provides Prometheus-based metrics for control loop
// monitoring.
//
// The package offers a centralized registry managing both core loop
// metrics (tick counts and durations, node update failures, issued
// commands, telemetry connection health) and custom application
// metrics. It includes an HTTP server exposing metrics in Prometheus
// format.
//
// # Basic Usage
//
//	registry := metric.NewRegistry()
//	server := metric.NewServer(9090, "/metrics", registry)
//
//	go func() {
//	    if err := server.Start(); err != nil && err != http.ErrServerClosed {
//	        log.Printf("metrics server error: %v", err)
//	    }
//	}()
//
//	core := registry.Core()
//	core.ObserveTick("drivetrain", time.Millisecond, nil)
package metric
