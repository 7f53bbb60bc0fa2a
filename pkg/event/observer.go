package event

import (
	"context"
	"time"
)

// Invocation kinds reported to an Observer.
const (
	KindHandler    = "handler"
	KindBeforeHook = "before_hook"
	KindAfterHook  = "after_hook"
)

// Observer receives dispatch measurements. Implementations must be cheap;
// they run inline with every handler.
type Observer interface {
	// Invoked is called after each handler or hook returns or panics.
	Invoked(event, kind string, d time.Duration, err error)

	// Registry is called whenever the record counts change.
	Registry(active, removed int)
}

// Tracer opens a span around one Trigger call. The returned function ends
// the span and records err on it.
type Tracer interface {
	StartTrigger(ctx context.Context, event, namespace string) (context.Context, func(err error))
}

type nopObserver struct{}

func (nopObserver) Invoked(string, string, time.Duration, error) {}
func (nopObserver) Registry(int, int)                            {}

type nopTracer struct{}

func (nopTracer) StartTrigger(ctx context.Context, _, _ string) (context.Context, func(error)) {
	return ctx, func(error) {}
}
