package vquery

import (
	"context"
	stderrors "errors"

	"github.com/vango-dev/vquery/pkg/event"
)

// On registers handler on every node for the events of spec. A non-empty
// selector delegates to matching descendants.
func (c *Collection) On(spec, selector string, handler event.Handler, opts ...event.Options) *Collection {
	var o event.Options
	if len(opts) > 0 {
		o = opts[0]
	}
	for _, n := range c.Nodes() {
		c.rt.bus.On(n, spec, selector, handler, o)
	}
	return c
}

// One is On with handlers that run at most once.
func (c *Collection) One(spec, selector string, handler event.Handler, opts ...event.Options) *Collection {
	var o event.Options
	if len(opts) > 0 {
		o = opts[0]
	}
	for _, n := range c.Nodes() {
		c.rt.bus.One(n, spec, selector, handler, o)
	}
	return c
}

// Off removes registrations from every node. spec may be "all".
func (c *Collection) Off(spec string, selector ...string) *Collection {
	sel := ""
	if len(selector) > 0 {
		sel = selector[0]
	}
	for _, n := range c.Nodes() {
		c.rt.bus.Off(n, spec, sel)
	}
	return c
}

// Trigger fires the events of spec on every node with detail attached.
func (c *Collection) Trigger(ctx context.Context, spec string, detail any) error {
	var errs []error
	for _, n := range c.Nodes() {
		if err := c.rt.bus.Trigger(ctx, n, spec, detail); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}

// Fire is an alias for Trigger.
func (c *Collection) Fire(ctx context.Context, spec string, detail any) error {
	return c.Trigger(ctx, spec, detail)
}

// Hover registers over for mouseenter and out for mouseleave. Without out,
// over handles both.
func (c *Collection) Hover(over event.Handler, out ...event.Handler) *Collection {
	leave := over
	if len(out) > 0 && out[0] != nil {
		leave = out[0]
	}
	return c.On(event.MouseEnter, "", over).On(event.MouseLeave, "", leave)
}

// shortcut registers handler for name, or triggers name when none is given.
// A failed trigger is logged and not returned; use Trigger to observe it.
func (c *Collection) shortcut(name string, handler []event.Handler) *Collection {
	if len(handler) > 0 {
		for _, h := range handler {
			c.On(name, "", h)
		}
		return c
	}
	if err := c.Trigger(context.Background(), name, nil); err != nil {
		c.rt.logger.Warn("shortcut trigger failed", "event", name, "error", err)
	}
	return c
}

// Click registers click handlers, or triggers click. Like the other
// shortcuts it stays chainable, so handler panics recovered during the
// trigger are logged rather than returned.
func (c *Collection) Click(handler ...event.Handler) *Collection {
	return c.shortcut(event.Click, handler)
}

// DblClick registers dblclick handlers, or triggers dblclick.
func (c *Collection) DblClick(handler ...event.Handler) *Collection {
	return c.shortcut(event.DblClick, handler)
}

// Focus registers focus handlers, or triggers focus.
func (c *Collection) Focus(handler ...event.Handler) *Collection {
	return c.shortcut(event.Focus, handler)
}

// Blur registers blur handlers, or triggers blur.
func (c *Collection) Blur(handler ...event.Handler) *Collection {
	return c.shortcut(event.Blur, handler)
}

// Change registers change handlers, or triggers change.
func (c *Collection) Change(handler ...event.Handler) *Collection {
	return c.shortcut(event.Change, handler)
}

// Input registers input handlers, or triggers input.
func (c *Collection) Input(handler ...event.Handler) *Collection {
	return c.shortcut(event.Input, handler)
}

// Submit registers submit handlers, or triggers submit.
func (c *Collection) Submit(handler ...event.Handler) *Collection {
	return c.shortcut(event.Submit, handler)
}

// KeyDown registers keydown handlers, or triggers keydown.
func (c *Collection) KeyDown(handler ...event.Handler) *Collection {
	return c.shortcut(event.KeyDown, handler)
}

// KeyUp registers keyup handlers, or triggers keyup.
func (c *Collection) KeyUp(handler ...event.Handler) *Collection {
	return c.shortcut(event.KeyUp, handler)
}

// Shortcut is the generic form of Click, Focus and the other shortcuts,
// restricted to the names in event.Shortcuts.
func (c *Collection) Shortcut(name string, handler ...event.Handler) *Collection {
	for _, s := range event.Shortcuts {
		if s == name {
			return c.shortcut(name, handler)
		}
	}
	return c
}
