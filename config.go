package vquery

import (
	"log/slog"
	"net/url"

	"github.com/prometheus/client_golang/prometheus"
	vqerrors "github.com/vango-dev/vquery/internal/errors"
	"github.com/vango-dev/vquery/pkg/dom"
	"github.com/vango-dev/vquery/pkg/event"
	"github.com/vango-dev/vquery/pkg/instrument"
	"go.opentelemetry.io/otel/trace"
)

// =============================================================================
// Configuration Types
// =============================================================================

// Config is the runtime configuration.
type Config struct {
	// Logger is the structured logger for the runtime.
	// If nil, slog.Default() is used.
	Logger *slog.Logger

	// Location is the base URL of a document created by New when no
	// document is supplied. Fragments parsed by Q resolve relative URLs
	// against the document location.
	// Default: "about:blank".
	Location string

	// MetricsRegistry receives the event dispatch metrics.
	// If nil, no metrics are collected.
	MetricsRegistry prometheus.Registerer

	// MetricsOptions are applied after MetricsRegistry.
	MetricsOptions []instrument.MetricsOption

	// Tracer traces Trigger calls. If nil, the tracer named "vquery" from
	// the global OpenTelemetry provider is used.
	Tracer trace.Tracer

	// DisableTracing turns trigger spans off entirely.
	DisableTracing bool
}

// Option configures a Runtime.
type Option func(*Config)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// WithLocation sets the base URL of a runtime-created document.
func WithLocation(loc string) Option {
	return func(c *Config) {
		c.Location = loc
	}
}

// WithMetrics enables Prometheus dispatch metrics on reg.
func WithMetrics(reg prometheus.Registerer, opts ...instrument.MetricsOption) Option {
	return func(c *Config) {
		c.MetricsRegistry = reg
		c.MetricsOptions = append(c.MetricsOptions, opts...)
	}
}

// WithTracer sets the OpenTelemetry tracer.
func WithTracer(t trace.Tracer) Option {
	return func(c *Config) {
		c.Tracer = t
	}
}

// WithoutTracing disables trigger spans.
func WithoutTracing() Option {
	return func(c *Config) {
		c.DisableTracing = true
	}
}

// =============================================================================
// Default Configuration
// =============================================================================

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Location: dom.DefaultLocation,
	}
}

// =============================================================================
// Config Translation
// =============================================================================

// validate checks the user-supplied values.
func (cfg Config) validate() error {
	if cfg.Location == "" {
		return nil
	}
	u, err := url.Parse(cfg.Location)
	if err != nil {
		return vqerrors.New("E040").
			WithDetail("location " + cfg.Location + " is not a URL").
			Wrap(err)
	}
	if !u.IsAbs() {
		return vqerrors.New("E040").
			WithDetail("location " + cfg.Location + " has no scheme").
			WithSuggestion(`Use a full URL such as "https://example.com/" or "about:blank"`)
	}
	return nil
}

// logger returns the configured logger tagged with component.
func (cfg Config) logger(component string) *slog.Logger {
	l := cfg.Logger
	if l == nil {
		l = slog.Default()
	}
	return l.With("component", component)
}

// buildBusOptions converts Config into event bus options.
func buildBusOptions(cfg Config) ([]event.BusOption, error) {
	opts := []event.BusOption{
		event.WithLogger(cfg.logger("event")),
	}

	if cfg.MetricsRegistry != nil {
		mopts := append([]instrument.MetricsOption{instrument.WithRegistry(cfg.MetricsRegistry)}, cfg.MetricsOptions...)
		m, err := instrument.NewMetrics(mopts...)
		if err != nil {
			return nil, err
		}
		opts = append(opts, event.WithObserver(m))
	}

	if !cfg.DisableTracing {
		var topts []instrument.TracingOption
		if cfg.Tracer != nil {
			topts = append(topts, instrument.WithTracer(cfg.Tracer))
		}
		opts = append(opts, event.WithTracer(instrument.NewTracing(topts...)))
	}

	return opts, nil
}
