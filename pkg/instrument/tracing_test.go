package instrument

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

type recordingTracer struct {
	noop.Tracer
	names []string
	attrs int
}

func (r *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	r.names = append(r.names, name)
	cfg := trace.NewSpanStartConfig(opts...)
	r.attrs = len(cfg.Attributes())
	return r.Tracer.Start(ctx, name, opts...)
}

func TestTracing_StartsSpanPerTrigger(t *testing.T) {
	rt := &recordingTracer{}
	tr := NewTracing(WithTracer(rt))

	ctx, end := tr.StartTrigger(context.Background(), "click", "menu")
	if ctx == nil {
		t.Fatal("StartTrigger() returned nil context")
	}
	end(errors.New("boom"))

	if len(rt.names) != 1 || rt.names[0] != "vquery.trigger click" {
		t.Errorf("spans = %v", rt.names)
	}
	if rt.attrs != 2 {
		t.Errorf("attributes = %d, want 2", rt.attrs)
	}
}

func TestTracing_Filter(t *testing.T) {
	rt := &recordingTracer{}
	tr := NewTracing(WithTracer(rt), WithEventFilter(func(ev string) bool { return ev != "mousemove" }))

	_, end := tr.StartTrigger(context.Background(), "mousemove", "")
	end(nil)
	if len(rt.names) != 0 {
		t.Errorf("filtered event traced: %v", rt.names)
	}
}

func TestTracing_GlobalProvider(t *testing.T) {
	tr := NewTracing(WithTracerName("test"))
	ctx, end := tr.StartTrigger(context.Background(), "click", "")
	if ctx == nil {
		t.Fatal("StartTrigger() returned nil context")
	}
	end(nil)
}
