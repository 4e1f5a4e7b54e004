package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains the core control-loop metrics, registered once per
// registry.
type Metrics struct {
	TicksTotal       *prometheus.CounterVec
	TickFailures     *prometheus.CounterVec
	TickDuration     *prometheus.HistogramVec
	NodeUpdates      *prometheus.CounterVec
	NodeFailures     *prometheus.CounterVec
	CommandsTotal    *prometheus.CounterVec
	LoopRunning      *prometheus.GaugeVec
	TelemetryPublish *prometheus.CounterVec

	NATSConnected  prometheus.Gauge
	NATSReconnects prometheus.Counter
}

// NewMetrics creates a Metrics instance with every core metric.
func NewMetrics() *Metrics {
	return &Metrics{
		TicksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mechstreams",
				Subsystem: "loop",
				Name:      "ticks_total",
				Help:      "Total number of control loop ticks",
			},
			[]string{"loop"},
		),

		TickFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mechstreams",
				Subsystem: "loop",
				Name:      "tick_failures_total",
				Help:      "Total number of ticks that ended in a node failure",
			},
			[]string{"loop"},
		),

		TickDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "mechstreams",
				Subsystem: "loop",
				Name:      "tick_duration_seconds",
				Help:      "Control loop tick duration in seconds",
				Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 10),
			},
			[]string{"loop"},
		),

		NodeUpdates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mechstreams",
				Subsystem: "node",
				Name:      "updates_total",
				Help:      "Total number of node updates",
			},
			[]string{"loop", "node"},
		),

		NodeFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mechstreams",
				Subsystem: "node",
				Name:      "failures_total",
				Help:      "Total number of failed node updates",
			},
			[]string{"loop", "node"},
		),

		CommandsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mechstreams",
				Subsystem: "device",
				Name:      "commands_total",
				Help:      "Total number of commands issued, by position derivative",
			},
			[]string{"loop", "derivative"},
		),

		LoopRunning: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "mechstreams",
				Subsystem: "loop",
				Name:      "running",
				Help:      "Whether the loop is running (0=stopped, 1=running)",
			},
			[]string{"loop"},
		),

		TelemetryPublish: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mechstreams",
				Subsystem: "telemetry",
				Name:      "published_total",
				Help:      "Total number of telemetry samples published",
			},
			[]string{"subject", "status"},
		),

		NATSConnected: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "mechstreams",
				Subsystem: "nats",
				Name:      "connected",
				Help:      "NATS connection status (0=disconnected, 1=connected)",
			},
		),

		NATSReconnects: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "mechstreams",
				Subsystem: "nats",
				Name:      "reconnects_total",
				Help:      "Total number of NATS reconnects",
			},
		),
	}
}

// ObserveTick records one completed tick: its duration and, when err is
// non-nil, a failure.
func (m *Metrics) ObserveTick(loop string, d time.Duration, err error) {
	m.TicksTotal.WithLabelValues(loop).Inc()
	m.TickDuration.WithLabelValues(loop).Observe(d.Seconds())
	if err != nil {
		m.TickFailures.WithLabelValues(loop).Inc()
	}
}

// ObserveNodeUpdate records one node update, failed or not.
func (m *Metrics) ObserveNodeUpdate(loop, node string, err error) {
	m.NodeUpdates.WithLabelValues(loop, node).Inc()
	if err != nil {
		m.NodeFailures.WithLabelValues(loop, node).Inc()
	}
}

// ObserveCommand records one issued command by derivative name.
func (m *Metrics) ObserveCommand(loop, derivative string) {
	m.CommandsTotal.WithLabelValues(loop, derivative).Inc()
}

// SetLoopRunning flags whether a loop is running.
func (m *Metrics) SetLoopRunning(loop string, running bool) {
	v := 0.0
	if running {
		v = 1
	}
	m.LoopRunning.WithLabelValues(loop).Set(v)
}

// ObserveTelemetry records one telemetry publish attempt.
func (m *Metrics) ObserveTelemetry(subject string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.TelemetryPublish.WithLabelValues(subject, status).Inc()
}

// ObserveNATSReconnect counts one telemetry reconnection.
func (m *Metrics) ObserveNATSReconnect() {
	m.NATSReconnects.Inc()
}

// SetNATSConnected flags the telemetry connection state.
func (m *Metrics) SetNATSConnected(connected bool) {
	v := 0.0
	if connected {
		v = 1
	}
	m.NATSConnected.Set(v)
}

// collectors returns every core collector for registration.
func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.TicksTotal,
		m.TickFailures,
		m.TickDuration,
		m.NodeUpdates,
		m.NodeFailures,
		m.CommandsTotal,
		m.LoopRunning,
		m.TelemetryPublish,
		m.NATSConnected,
		m.NATSReconnects,
	}
}
