package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/c360/mechstreams/errors"
	"github.com/c360/mechstreams/pid"
)

// maxConfigSize bounds the config file size to keep a mistyped path to
// a large file from being parsed as JSON.
const maxConfigSize = 1 << 20

// Config is the complete application configuration.
type Config struct {
	Version string        `json:"version,omitempty"`
	Loop    LoopConfig    `json:"loop"`
	NATS    NATSConfig    `json:"nats,omitempty"`
	Metrics MetricsConfig `json:"metrics,omitempty"`
	Tuning  TuningConfig  `json:"tuning"`
}

// LoopConfig names the control loop and sets its tick interval.
type LoopConfig struct {
	Name       string `json:"name"`
	IntervalMS int    `json:"interval_ms"`
}

// NATSConfig configures the telemetry transport. Disabled means the
// loop runs without telemetry.
type NATSConfig struct {
	Enabled    bool   `json:"enabled"`
	URL        string `json:"url,omitempty"`
	ClientName string `json:"client_name,omitempty"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `json:"enabled"`
	Port    int    `json:"port,omitempty"`
	Path    string `json:"path,omitempty"`
}

// TuningConfig carries the per-mechanism tuning values, keyed by the
// name the application constructs the mechanism under.
type TuningConfig struct {
	Gains      map[string]GainsConfig  `json:"gains,omitempty"`
	Filters    map[string]FilterConfig `json:"filters,omitempty"`
	GearRatios map[string]float64      `json:"gear_ratios,omitempty"`
}

// KValuesConfig is one PID gain set.
type KValuesConfig struct {
	KP float64 `json:"kp"`
	KI float64 `json:"ki"`
	KD float64 `json:"kd"`
}

// GainsConfig carries a gain set per position derivative.
type GainsConfig struct {
	Position     KValuesConfig `json:"position"`
	Velocity     KValuesConfig `json:"velocity"`
	Acceleration KValuesConfig `json:"acceleration"`
}

// KValues converts to the controller gain table.
func (g GainsConfig) KValues() pid.DerivativeDependentKValues {
	return pid.NewDerivativeDependentKValues(
		pid.NewKValues(g.Position.KP, g.Position.KI, g.Position.KD),
		pid.NewKValues(g.Velocity.KP, g.Velocity.KI, g.Velocity.KD),
		pid.NewKValues(g.Acceleration.KP, g.Acceleration.KI, g.Acceleration.KD),
	)
}

// FilterConfig parameterizes one filter node: a smoothing constant for
// an EWMA, or a weight window for a moving average. Exactly one must be
// set.
type FilterConfig struct {
	Smoothing float64   `json:"smoothing,omitempty"`
	Window    []float64 `json:"window,omitempty"`
}

// Validate checks the whole configuration.
func (c *Config) Validate() error {
	if err := c.Loop.Validate(); err != nil {
		return err
	}
	if err := c.NATS.Validate(); err != nil {
		return err
	}
	if err := c.Metrics.Validate(); err != nil {
		return err
	}
	return c.Tuning.Validate()
}

// Validate checks the loop settings.
func (l *LoopConfig) Validate() error {
	if l.Name == "" {
		return errors.WrapInvalid(errors.ErrMissingConfig, "LoopConfig", "Validate", "loop.name is required")
	}
	if l.IntervalMS <= 0 {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "LoopConfig", "Validate", "loop.interval_ms must be positive")
	}
	return nil
}

// Validate checks the telemetry settings.
func (n *NATSConfig) Validate() error {
	if n.Enabled && n.URL == "" {
		return errors.WrapInvalid(errors.ErrMissingConfig, "NATSConfig", "Validate", "nats.url is required when enabled")
	}
	return nil
}

// Validate checks the metrics settings.
func (m *MetricsConfig) Validate() error {
	if m.Enabled && (m.Port < 0 || m.Port > 65535) {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "MetricsConfig", "Validate", "metrics.port out of range")
	}
	return nil
}

// Validate checks every tuning entry.
func (t *TuningConfig) Validate() error {
	for name, filter := range t.Filters {
		if err := filter.Validate(); err != nil {
			return errors.WrapInvalid(err, "TuningConfig", "Validate",
				fmt.Sprintf("filter %q", name))
		}
	}
	for name, ratio := range t.GearRatios {
		if ratio == 0 {
			return errors.WrapInvalid(errors.ErrInvalidConfig, "TuningConfig", "Validate",
				fmt.Sprintf("gear ratio %q must be non-zero", name))
		}
	}
	return nil
}

// Validate checks that the filter is exactly one of the two kinds and
// its parameters are usable.
func (f *FilterConfig) Validate() error {
	hasSmoothing := f.Smoothing != 0
	hasWindow := len(f.Window) > 0
	if hasSmoothing == hasWindow {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "FilterConfig", "Validate",
			"exactly one of smoothing or window must be set")
	}
	if hasSmoothing && (f.Smoothing <= 0 || f.Smoothing >= 1) {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "FilterConfig", "Validate",
			"smoothing must be in (0, 1)")
	}
	return nil
}

// Load reads, schema-checks, parses, and validates a configuration
// file.
func Load(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.WrapInvalid(err, "config", "Load", "stat config file")
	}
	if info.Size() > maxConfigSize {
		return nil, errors.WrapInvalid(errors.ErrInvalidConfig, "config", "Load",
			fmt.Sprintf("config file exceeds %d bytes", maxConfigSize))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapInvalid(err, "config", "Load", "read config file")
	}
	return Parse(data)
}

// Parse schema-checks, parses, and validates raw configuration JSON.
func Parse(data []byte) (*Config, error) {
	if err := validateSchema(data); err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.WrapInvalid(err, "config", "Parse", "parse config JSON")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
