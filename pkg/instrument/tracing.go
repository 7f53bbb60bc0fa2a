package instrument

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name.
const defaultTracerName = "vquery"

// TracingConfig configures trigger tracing.
type TracingConfig struct {
	// TracerName is the name of the tracer (default: "vquery").
	TracerName string

	// Tracer overrides the tracer resolved from the global provider.
	Tracer trace.Tracer

	// Filter determines which events to trace.
	// If nil, all events are traced.
	Filter func(event string) bool

	// Attributes are added to every span.
	Attributes []attribute.KeyValue
}

// TracingOption configures trigger tracing.
type TracingOption func(*TracingConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracingOption {
	return func(c *TracingConfig) {
		c.TracerName = name
	}
}

// WithTracer sets the tracer directly.
func WithTracer(t trace.Tracer) TracingOption {
	return func(c *TracingConfig) {
		c.Tracer = t
	}
}

// WithEventFilter sets a filter function for events.
func WithEventFilter(filter func(event string) bool) TracingOption {
	return func(c *TracingConfig) {
		c.Filter = filter
	}
}

// WithAttributes adds constant span attributes.
func WithAttributes(attrs ...attribute.KeyValue) TracingOption {
	return func(c *TracingConfig) {
		c.Attributes = append(c.Attributes, attrs...)
	}
}

// Tracing opens one span per triggered event name.
type Tracing struct {
	config TracingConfig
}

// NewTracing creates a tracer for Trigger calls. Without WithTracer the
// tracer comes from the global OpenTelemetry provider; configure it before
// creating the runtime:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
func NewTracing(opts ...TracingOption) *Tracing {
	config := TracingConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	if config.Tracer == nil {
		config.Tracer = otel.Tracer(config.TracerName)
	}
	return &Tracing{config: config}
}

// StartTrigger implements event.Tracer.
func (t *Tracing) StartTrigger(ctx context.Context, event, namespace string) (context.Context, func(error)) {
	if ctx == nil {
		ctx = context.Background()
	}
	if t.config.Filter != nil && !t.config.Filter(event) {
		return ctx, func(error) {}
	}

	attrs := append([]attribute.KeyValue{
		attribute.String("vquery.event", event),
	}, t.config.Attributes...)
	if namespace != "" {
		attrs = append(attrs, attribute.String("vquery.namespace", namespace))
	}

	spanCtx, span := t.config.Tracer.Start(ctx, "vquery.trigger "+event,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
		trace.WithTimestamp(time.Now()),
	)
	return spanCtx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}
}
