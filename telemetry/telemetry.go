// Package telemetry publishes stream graph outputs over NATS.
//
// A Publisher samples named Getter sources and publishes each fresh
// datum as a JSON snapshot to mechstreams.telemetry.<name>. Publishing
// is best effort: the control loop never depends on it, and a transport
// outage costs samples, not control.
package telemetry

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/c360/mechstreams/errors"
	"github.com/c360/mechstreams/metric"
	"github.com/c360/mechstreams/types"
)

// DefaultSubjectPrefix is the subject prefix source names are appended
// to.
const DefaultSubjectPrefix = "mechstreams.telemetry"

// Transport publishes raw bytes to a subject. *natsclient.Client
// satisfies it.
type Transport interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

// Snapshot is one published sample.
type Snapshot struct {
	Name  string     `json:"name"`
	Time  types.Time `json:"time"`
	Value any        `json:"value"`
}

// Sampler reads one source's current datum, nil when the source has no
// value yet.
type Sampler interface {
	Sample() (time types.Time, value any, ok bool, err error)
}

// getterSampler adapts a Getter to the Sampler interface.
type getterSampler[T any] struct {
	source types.Getter[T]
}

func (s getterSampler[T]) Sample() (types.Time, any, bool, error) {
	d, err := s.source.Get()
	if err != nil {
		return 0, nil, false, err
	}
	if d == nil {
		return 0, nil, false, nil
	}
	return d.Time, d.Value, true, nil
}

// Getter wraps a stream source as a Sampler.
func Getter[T any](source types.Getter[T]) Sampler {
	return getterSampler[T]{source: source}
}

// source pairs a sampler with its subject.
type source struct {
	name    string
	subject string
	sampler Sampler
}

// Publisher samples registered sources and publishes their snapshots.
type Publisher struct {
	transport Transport
	prefix    string
	logger    *slog.Logger
	metrics   *metric.Metrics
	sources   []source
	byName    map[string]struct{}
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithLogger sets the structured logger. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) { p.logger = logger }
}

// WithMetrics attaches a metrics registry for per-subject publish
// counters.
func WithMetrics(registry *metric.Registry) Option {
	return func(p *Publisher) { p.metrics = registry.Core() }
}

// WithSubjectPrefix overrides the default subject prefix.
func WithSubjectPrefix(prefix string) Option {
	return func(p *Publisher) { p.prefix = prefix }
}

// New creates a Publisher over a transport.
func New(transport Transport, opts ...Option) *Publisher {
	p := &Publisher{
		transport: transport,
		prefix:    DefaultSubjectPrefix,
		logger:    slog.Default(),
		byName:    make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Add registers a source under a unique name. The name becomes the last
// subject token, so it must be a valid NATS token.
func (p *Publisher) Add(name string, sampler Sampler) error {
	if name == "" || strings.ContainsAny(name, ". *>\t\n") {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Publisher", "Add",
			fmt.Sprintf("name %q is not a valid subject token", name))
	}
	if _, exists := p.byName[name]; exists {
		return errors.WrapInvalid(errors.ErrAlreadyRegistered, "Publisher", "Add",
			fmt.Sprintf("source %q already registered", name))
	}
	p.sources = append(p.sources, source{
		name:    name,
		subject: p.prefix + "." + name,
		sampler: sampler,
	})
	p.byName[name] = struct{}{}
	return nil
}

// Publish samples every source once and publishes the fresh snapshots.
// Sources with no value are skipped silently; sampler and transport
// failures are logged, counted, and joined into the returned error, but
// never stop the remaining sources.
func (p *Publisher) Publish(ctx context.Context) error {
	var errs []error
	for _, src := range p.sources {
		at, value, ok, err := src.sampler.Sample()
		if err != nil {
			p.observe(src.subject, err)
			p.logger.Warn("telemetry sample failed", "source", src.name, "error", err)
			errs = append(errs, errors.Wrap(err, "Publisher", "Publish", "sample "+src.name))
			continue
		}
		if !ok {
			continue
		}
		data, err := json.Marshal(Snapshot{Name: src.name, Time: at, Value: value})
		if err != nil {
			p.observe(src.subject, err)
			errs = append(errs, errors.WrapInvalid(err, "Publisher", "Publish", "marshal "+src.name))
			continue
		}
		err = p.transport.Publish(ctx, src.subject, data)
		p.observe(src.subject, err)
		if err != nil {
			p.logger.Warn("telemetry publish failed", "subject", src.subject, "error", err)
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}

// Update publishes once with a background context, so a Publisher can
// be registered as the last node of a runner loop.
func (p *Publisher) Update() error {
	return p.Publish(context.Background())
}

func (p *Publisher) observe(subject string, err error) {
	if p.metrics != nil {
		p.metrics.ObserveTelemetry(subject, err)
	}
}
