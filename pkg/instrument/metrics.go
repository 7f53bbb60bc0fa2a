package instrument

import (
	stderrors "errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	vqerrors "github.com/vango-dev/vquery/internal/errors"
)

// MetricsConfig configures the dispatch metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "vquery").
	Namespace string

	// Subsystem is the metrics subsystem (default: "events").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for callback duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the dispatch metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "vquery",
		Subsystem: "events",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics records handler and hook invocations and registry size.
//
// Metrics collected:
//   - vquery_events_invocations_total: callbacks by event, kind and status
//   - vquery_events_invocation_duration_seconds: callback duration
//   - vquery_events_registrations: records by state (active, removed),
//     summed over every bus sharing the registry
//
// A Metrics value observes one bus; create one per runtime.
type Metrics struct {
	invocations   *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	registrations *prometheus.GaugeVec

	// counts last reported by this bus
	mu      sync.Mutex
	active  int
	removed int
}

// NewMetrics registers the dispatch metrics. Collectors already present in
// the registry are reused, so several runtimes can share one registry.
func NewMetrics(opts ...MetricsOption) (*Metrics, error) {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	m := &Metrics{
		invocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "invocations_total",
			Help:        "Total number of event handler and hook invocations",
			ConstLabels: config.ConstLabels,
		}, []string{"event", "kind", "status"}),

		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "invocation_duration_seconds",
			Help:        "Event callback duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"event", "kind"}),

		registrations: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "registrations",
			Help:        "Number of event registry records by state",
			ConstLabels: config.ConstLabels,
		}, []string{"state"}),
	}

	var err error
	if m.invocations, err = register(config.Registry, m.invocations); err != nil {
		return nil, err
	}
	if m.duration, err = register(config.Registry, m.duration); err != nil {
		return nil, err
	}
	if m.registrations, err = register(config.Registry, m.registrations); err != nil {
		return nil, err
	}
	return m, nil
}

// register adds c to reg, returning the existing collector when an equal
// one is already registered.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if reg == nil {
		return c, nil
	}
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if stderrors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing, nil
		}
	}
	return c, vqerrors.New("E041").Wrap(err)
}

// Invoked implements event.Observer.
func (m *Metrics) Invoked(event, kind string, d time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "panic"
	}
	m.invocations.WithLabelValues(event, kind, status).Inc()
	m.duration.WithLabelValues(event, kind).Observe(d.Seconds())
}

// Registry implements event.Observer.
func (m *Metrics) Registry(active, removed int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.registrations.WithLabelValues("active").Add(float64(active - m.active))
	m.registrations.WithLabelValues("removed").Add(float64(removed - m.removed))
	m.active, m.removed = active, removed
}
