package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/c360/mechstreams/errors"
	"github.com/c360/mechstreams/metric"
	"github.com/c360/mechstreams/types"
)

// registration pairs a node with its identity.
type registration struct {
	id   uuid.UUID
	name string
	node types.Updatable
}

// Runner advances registered nodes one tick at a time, in registration
// order.
type Runner struct {
	name    string
	logger  *slog.Logger
	metrics *metric.Metrics
	nodes   []registration
	byName  map[string]uuid.UUID
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the structured logger. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

// WithMetrics attaches a metrics registry. Without one the runner runs
// unobserved.
func WithMetrics(registry *metric.Registry) Option {
	return func(r *Runner) { r.metrics = registry.Core() }
}

// New creates a Runner. The name labels logs and metrics.
func New(name string, opts ...Option) *Runner {
	r := &Runner{
		name:   name,
		logger: slog.Default(),
		byName: make(map[string]uuid.UUID),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With("loop", name)
	return r
}

// Register adds a node under a unique name and returns its instance ID.
// Nodes run in registration order, so register upstream producers
// before their consumers unless the consumer owns them.
func (r *Runner) Register(name string, node types.Updatable) (uuid.UUID, error) {
	if _, exists := r.byName[name]; exists {
		return uuid.Nil, errors.WrapInvalid(errors.ErrAlreadyRegistered, "Runner", "Register",
			fmt.Sprintf("node %q already registered", name))
	}
	id := uuid.New()
	r.nodes = append(r.nodes, registration{id: id, name: name, node: node})
	r.byName[name] = id
	r.logger.Debug("node registered", "node", name, "node_id", id, "position", len(r.nodes)-1)
	return id, nil
}

// Nodes returns the registered node names in run order.
func (r *Runner) Nodes() []string {
	names := make([]string, len(r.nodes))
	for i, reg := range r.nodes {
		names[i] = reg.name
	}
	return names
}

// Tick advances every node once, in registration order, stopping at the
// first failure. The nodes updated before the failing one keep their
// refreshed caches; there is no rollback.
func (r *Runner) Tick() error {
	start := time.Now()
	var tickErr error
	for _, reg := range r.nodes {
		err := reg.node.Update()
		if r.metrics != nil {
			r.metrics.ObserveNodeUpdate(r.name, reg.name, err)
		}
		if err != nil {
			r.logger.Warn("node update failed", "node", reg.name, "node_id", reg.id, "error", err)
			tickErr = errors.Wrap(err, "Runner", "Tick",
				fmt.Sprintf("node %q failed", reg.name))
			break
		}
	}
	if r.metrics != nil {
		r.metrics.ObserveTick(r.name, time.Since(start), tickErr)
	}
	return tickErr
}

// Run drives Tick at the given interval until the context is cancelled
// or a tick fails fatally. Non-fatal tick failures are logged and the
// loop keeps going, so a sensor dropout does not bring the mechanism
// down; recovering is the next tick's job.
func (r *Runner) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Runner", "Run",
			"tick interval must be positive")
	}
	if r.metrics != nil {
		r.metrics.SetLoopRunning(r.name, true)
		defer r.metrics.SetLoopRunning(r.name, false)
	}
	r.logger.Info("control loop starting", "interval", interval, "nodes", len(r.nodes))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("control loop stopping", "reason", ctx.Err())
			return ctx.Err()
		case <-ticker.C:
			if err := r.Tick(); err != nil {
				if errors.IsFatal(err) {
					r.logger.Error("control loop aborting on fatal tick failure", "error", err)
					return err
				}
				r.logger.Warn("tick failed", "error", err)
			}
		}
	}
}
