// Package main implements the entry point for the mechstreams control
// daemon. It loads a configuration file, wires a simulated mechanism
// into a control loop, and runs the loop until interrupted, optionally
// exposing Prometheus metrics and publishing telemetry over NATS.
package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/c360/mechstreams/config"
	"github.com/c360/mechstreams/device"
	"github.com/c360/mechstreams/health"
	"github.com/c360/mechstreams/metric"
	"github.com/c360/mechstreams/motionprofile"
	"github.com/c360/mechstreams/natsclient"
	"github.com/c360/mechstreams/pid"
	"github.com/c360/mechstreams/runner"
	"github.com/c360/mechstreams/stream"
	"github.com/c360/mechstreams/stream/control"
	"github.com/c360/mechstreams/telemetry"
	"github.com/c360/mechstreams/types"
)

// Build information constants
const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "mechstreams"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := run(); err != nil {
		slog.Error("Application failed", "error", err, "exit_code", 1)
		os.Exit(1)
	}
}

func run() error {
	cliCfg, logger, shouldExit, err := initializeCLI()
	if shouldExit || err != nil {
		return err
	}

	cfg, err := config.Load(cliCfg.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if cliCfg.Validate {
		slog.Info("Configuration is valid", "path", cliCfg.ConfigPath)
		return nil
	}

	ctx := context.Background()
	interval := time.Duration(cfg.Loop.IntervalMS) * time.Millisecond

	registry, metricsServer := setupMetrics(cfg, logger)
	if metricsServer != nil {
		defer stopMetricsServer(metricsServer)
	}

	monitor := health.NewMonitor()
	heartbeat := health.NewHeartbeat("loop", 3*interval)

	loop := runner.New(cfg.Loop.Name,
		runner.WithLogger(logger),
		runner.WithMetrics(registry),
	)

	axle, err := buildMechanism(cfg, loop, interval)
	if err != nil {
		return fmt.Errorf("build mechanism: %w", err)
	}

	natsClient, publisher, err := setupTelemetry(ctx, cfg, logger, registry, monitor)
	if err != nil {
		return err
	}
	if natsClient != nil {
		defer func() { _ = natsClient.Close(ctx) }()
	}
	if publisher != nil {
		if err := publisher.Add("axle", telemetry.Getter[types.State](axle)); err != nil {
			return fmt.Errorf("add telemetry source: %w", err)
		}
		if err := addFilteredPosition(cfg, axle, loop, publisher); err != nil {
			return fmt.Errorf("add filtered position: %w", err)
		}
		if _, err := loop.Register("telemetry", publisher); err != nil {
			return fmt.Errorf("register telemetry: %w", err)
		}
	}

	if _, err := loop.Register("commands", &commandObserver{
		loop:    cfg.Loop.Name,
		axle:    axle,
		metrics: registry.Core(),
	}); err != nil {
		return fmt.Errorf("register command observer: %w", err)
	}
	if _, err := loop.Register("heartbeat", beatNode{heartbeat, monitor}); err != nil {
		return fmt.Errorf("register heartbeat: %w", err)
	}

	return runWithSignalHandling(ctx, loop, interval)
}

// initializeCLI parses flags and sets up logging
func initializeCLI() (*CLIConfig, *slog.Logger, bool, error) {
	cliCfg := parseFlags()
	if err := validateFlags(cliCfg); err != nil {
		return nil, nil, false, fmt.Errorf("invalid flags: %w", err)
	}

	if cliCfg.ShowVersion {
		fmt.Printf("%s version %s\n", appName, Version)
		return nil, nil, true, nil
	}

	if cliCfg.ShowHelp {
		printDetailedHelp()
		return nil, nil, true, nil
	}

	logger := setupLogger(cliCfg.LogLevel, cliCfg.LogFormat)
	slog.SetDefault(logger)

	slog.Info("Starting mechstreams control loop",
		"version", Version,
		"build_time", BuildTime,
		"config_path", cliCfg.ConfigPath)

	return cliCfg, logger, false, nil
}

// setupMetrics creates the metrics registry and, when enabled, starts
// the scrape server in the background.
func setupMetrics(cfg *config.Config, logger *slog.Logger) (*metric.Registry, *metric.Server) {
	registry := metric.NewRegistry()
	if !cfg.Metrics.Enabled {
		return registry, nil
	}

	server := metric.NewServer(cfg.Metrics.Port, cfg.Metrics.Path, registry)
	go func() {
		if err := server.Start(); err != nil {
			logger.Error("Metrics server failed", "error", err)
		}
	}()
	slog.Info("Metrics server started", "address", server.Address())

	return registry, server
}

func stopMetricsServer(server *metric.Server) {
	if err := server.Stop(); err != nil {
		slog.Warn("Metrics server shutdown", "error", err)
	}
}

// setupTelemetry connects to NATS and builds the telemetry publisher.
// When NATS is disabled both return values are nil.
func setupTelemetry(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	registry *metric.Registry,
	monitor *health.Monitor,
) (*natsclient.Client, *telemetry.Publisher, error) {
	if !cfg.NATS.Enabled {
		slog.Info("NATS disabled, telemetry will not be published")
		return nil, nil, nil
	}

	client, err := natsclient.NewClient(cfg.NATS.URL,
		natsclient.WithLogger(logger),
		natsclient.WithClientName(cfg.NATS.ClientName),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("create NATS client: %w", err)
	}

	var everUp atomic.Bool
	client.OnHealthChange(func(up bool) {
		registry.Core().SetNATSConnected(up)
		if up {
			if everUp.Swap(true) {
				registry.Core().ObserveNATSReconnect()
			}
			monitor.Update("nats", health.NewHealthy("nats", "connected"))
		} else {
			monitor.Update("nats", health.NewDegraded("nats", "disconnected"))
		}
	})

	slog.Info("Connecting to NATS", "url", cfg.NATS.URL)
	if err := client.Connect(ctx); err != nil {
		return nil, nil, fmt.Errorf("connect to NATS: %w", err)
	}

	publisher := telemetry.New(client,
		telemetry.WithLogger(logger),
		telemetry.WithMetrics(registry),
	)

	return client, publisher, nil
}

// buildMechanism assembles the demonstration mechanism: a simulated
// motor and encoder on a shared axle following a trapezoidal motion
// profile, all registered on the loop in update order.
func buildMechanism(cfg *config.Config, loop *runner.Runner, interval time.Duration) (*device.Axle, error) {
	clock := stream.NewFixedStep(0, types.FromDuration(interval))

	plant := newSimPlant(types.FromDuration(interval))
	encoder := newSimEncoder(plant, clock)

	axle, err := device.NewAxle(axleGains(cfg),
		device.ReadMember(encoder),
		device.ImpreciseWriteMember(plant),
	)
	if err != nil {
		return nil, err
	}

	start := types.NewState(0, 0, 0)
	end := types.NewState(1, 0, 0)
	profile, err := motionprofile.New(start, end, 0.25, 0.1)
	if err != nil {
		return nil, err
	}
	source := stream.NewFromHistoryStartAtUpdate[types.Command](profile, stream.OwnedClock(clock))
	axle.Follow(source)

	slog.Info("Mechanism assembled",
		"members", 2,
		"profile_duration_s", profile.Duration().Seconds())

	// The profile source owns the clock, so it ticks first.
	if _, err := loop.Register("profile", source); err != nil {
		return nil, err
	}
	if _, err := loop.Register("axle", axle); err != nil {
		return nil, err
	}
	return axle, nil
}

// addFilteredPosition wires the "axle" filter tuning entry, when present,
// as a smoothed position stream published alongside the raw state.
func addFilteredPosition(cfg *config.Config, axle *device.Axle, loop *runner.Runner, publisher *telemetry.Publisher) error {
	f, ok := cfg.Tuning.Filters["axle"]
	if !ok {
		return nil
	}

	input := stream.Shared[float64](axlePosition{axle})
	var filtered interface {
		types.Getter[float64]
		types.Updatable
	}
	if f.Smoothing > 0 {
		filtered = control.NewEWMA(input, f.Smoothing)
	} else {
		ma, err := control.NewMovingAverage(input, f.Window...)
		if err != nil {
			return err
		}
		filtered = ma
	}

	if _, err := loop.Register("position_filter", filtered); err != nil {
		return err
	}
	return publisher.Add("axle_position_filtered", telemetry.Getter[float64](filtered))
}

// axlePosition projects the axle's aggregated state onto its position.
type axlePosition struct {
	axle *device.Axle
}

func (a axlePosition) Get() (*types.Datum[float64], error) {
	d, err := a.axle.Get()
	if err != nil || d == nil {
		return nil, err
	}
	out := types.NewDatum(d.Time, d.Value.Position)
	return &out, nil
}

// axleGains resolves the "axle" tuning entry, falling back to built-in
// defaults when the config carries none.
func axleGains(cfg *config.Config) pid.DerivativeDependentKValues {
	if g, ok := cfg.Tuning.Gains["axle"]; ok {
		return g.KValues()
	}
	return pid.NewDerivativeDependentKValues(
		pid.NewKValues(1.0, 0.01, 0.1),
		pid.NewKValues(0.5, 0.005, 0.05),
		pid.NewKValues(0.25, 0, 0),
	)
}

// commandObserver counts commands the axle accepts, one per change of
// the last request.
type commandObserver struct {
	loop    string
	axle    *device.Axle
	metrics *metric.Metrics
	last    *types.Command
}

func (c *commandObserver) Update() error {
	req := c.axle.LastRequest()
	if req == nil {
		return nil
	}
	if c.last == nil || *c.last != *req {
		c.metrics.ObserveCommand(c.loop, req.Derivative.String())
		v := *req
		c.last = &v
	}
	return nil
}

// beatNode records loop liveness on every tick.
type beatNode struct {
	heartbeat *health.Heartbeat
	monitor   *health.Monitor
}

func (b beatNode) Update() error {
	b.heartbeat.Beat()
	b.monitor.Update("loop", b.heartbeat.Status())
	return nil
}

// runWithSignalHandling runs the loop until a tick fails fatally or a
// shutdown signal arrives.
func runWithSignalHandling(ctx context.Context, loop *runner.Runner, interval time.Duration) error {
	signalCtx, signalCancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer signalCancel()

	slog.Info("Control loop running", "interval", interval)
	err := loop.Run(signalCtx, interval)
	if stderrors.Is(err, context.Canceled) {
		slog.Info("Received shutdown signal")
		return nil
	}
	return err
}
