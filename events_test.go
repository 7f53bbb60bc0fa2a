package vquery

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	vqerrors "github.com/vango-dev/vquery/internal/errors"
	"github.com/vango-dev/vquery/pkg/dom"
	"github.com/vango-dev/vquery/pkg/event"
	"golang.org/x/net/html"
)

type calls struct {
	n         int
	receivers []*html.Node
}

func (c *calls) handle(el *html.Node, _ *dom.Event) {
	c.n++
	c.receivers = append(c.receivers, el)
}

func trigger(t *testing.T, c *Collection, spec string) {
	t.Helper()
	if err := c.Trigger(context.Background(), spec, nil); err != nil {
		t.Fatalf("Trigger(%q) error = %v", spec, err)
	}
}

func TestOn_RegistrationCount(t *testing.T) {
	rt := newRuntime(t)
	el := rt.Q("#test-element")
	before := len(rt.Events())

	el.On("mousedown mouseup", "", func(*html.Node, *dom.Event) {})
	if got := len(rt.Events()); got != before+2 {
		t.Errorf("Events() = %d, want %d", got, before+2)
	}

	rt.Q("li").On("click", "", func(*html.Node, *dom.Event) {})
	if got := len(rt.Events()); got != before+6 {
		t.Errorf("Events() = %d, want %d", got, before+6)
	}
}

func TestOff_All(t *testing.T) {
	rt := newRuntime(t)
	var mine, other calls
	el := rt.Q("#test-element")
	el.On("click", "", mine.handle).On("mousedown", "", mine.handle)
	rt.Q("#test-sibling").On("click", "", other.handle)

	el.Off("all")
	trigger(t, el, "click mousedown")
	trigger(t, rt.Q("#test-sibling"), "click")

	if mine.n != 0 {
		t.Errorf("removed handlers fired %d times", mine.n)
	}
	if other.n != 1 {
		t.Errorf("other element fired %d times, want 1", other.n)
	}
	for _, r := range rt.Events() {
		if r.Element == el.Get(0) && r.Active() {
			t.Errorf("record %d still active", r.ID)
		}
	}
}

func TestOff_Delegated(t *testing.T) {
	rt := newRuntime(t)
	var c calls
	parent := rt.Q("#test-parent")
	parent.On("click", "#test-child", c.handle)
	parent.Off("click", "#test-child")
	trigger(t, rt.Q("#test-child"), "click")
	if c.n != 0 {
		t.Errorf("calls = %d, want 0", c.n)
	}
}

func TestOne(t *testing.T) {
	rt := newRuntime(t)
	var c calls
	el := rt.Q("#test-element")
	el.One("click", "", c.handle)
	for i := 0; i < 5; i++ {
		el.Click()
	}
	if c.n != 1 {
		t.Errorf("calls = %d, want 1", c.n)
	}
}

func TestDelegationReceiver(t *testing.T) {
	rt := newRuntime(t)
	var c calls
	rt.Q("#test-parent").On("click", "#test-child", c.handle)
	trigger(t, rt.Q("#test-child"), "click")

	if c.n != 1 {
		t.Fatalf("calls = %d, want 1", c.n)
	}
	if c.receivers[0] != byID(t, rt, "test-child") {
		t.Error("receiver is not the matching descendant")
	}
}

func TestHooks_Ordering(t *testing.T) {
	rt := newRuntime(t)
	var order []string
	var before, handler, after time.Time

	if err := rt.AddEventHook("click", func(*html.Node, *dom.Event) {
		before = time.Now()
		order = append(order, "before")
	}, event.Before); err != nil {
		t.Fatalf("AddEventHook(before) error = %v", err)
	}
	if err := rt.AddEventHook("click", func(*html.Node, *dom.Event) {
		after = time.Now()
		order = append(order, "after")
	}, event.After); err != nil {
		t.Fatalf("AddEventHook(after) error = %v", err)
	}

	rt.Q("#test-element").On("click", "", func(*html.Node, *dom.Event) {
		handler = time.Now()
		order = append(order, "handler")
	})
	trigger(t, rt.Q("#test-element"), "click")

	if diff := cmp.Diff([]string{"before", "handler", "after"}, order); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	if before.After(handler) || handler.After(after) {
		t.Error("timestamps out of order")
	}
}

func TestHooks_Removal(t *testing.T) {
	rt := newRuntime(t)
	var hook calls
	_ = rt.AddEventHook("click", hook.handle, event.Before)
	_ = rt.AddEventHook("click", hook.handle, event.After)
	_ = rt.AddEventHook("mousedown", hook.handle, event.After)

	rt.RemoveEventHook("click", event.Before)
	if got := rt.EventHooks()["click"]; len(got.Before) != 0 || len(got.After) != 1 {
		t.Errorf("click hooks = %+v", got)
	}

	rt.RemoveEventHooks("click")
	el := rt.Q("#test-element").On("click", "", func(*html.Node, *dom.Event) {})
	trigger(t, el, "click")
	if hook.n != 0 {
		t.Errorf("removed hooks ran %d times", hook.n)
	}

	rt.RemoveEventHooks()
	if got := len(rt.EventHooks()); got != 0 {
		t.Errorf("EventHooks() = %d entries, want 0", got)
	}
}

func TestHooks_InvalidArguments(t *testing.T) {
	rt := newRuntime(t)
	noop := func(*html.Node, *dom.Event) {}
	if err := rt.AddEventHook("", noop, event.Before); !vqerrors.HasCode(err, "E032") {
		t.Errorf("empty name error = %v, want E032", err)
	}
	if err := rt.AddEventHook("click", noop, "during"); !vqerrors.HasCode(err, "E033") {
		t.Errorf("bad phase error = %v, want E033", err)
	}
}

func TestTrigger_DetailAndPanics(t *testing.T) {
	rt := newRuntime(t)
	el := rt.Q("#test-element")

	var detail any
	el.On("custom", "", func(_ *html.Node, e *dom.Event) { detail = e.Detail })
	if err := el.Fire(context.Background(), "custom", map[string]string{"foo": "bar"}); err != nil {
		t.Fatalf("Fire() error = %v", err)
	}
	if diff := cmp.Diff(map[string]string{"foo": "bar"}, detail); diff != "" {
		t.Errorf("detail mismatch (-want +got):\n%s", diff)
	}

	var later calls
	el.On("boom", "", func(*html.Node, *dom.Event) { panic("handler failed") })
	el.On("boom", "", later.handle)
	err := el.Trigger(context.Background(), "boom", nil)
	if !vqerrors.HasCode(err, "E030") {
		t.Errorf("Trigger() error = %v, want E030", err)
	}
	if later.n != 1 {
		t.Errorf("later handler calls = %d, want 1", later.n)
	}
}

func TestPropagation(t *testing.T) {
	rt := newRuntime(t)
	var parent calls
	rt.Q("#test-child").On("click", "", func(_ *html.Node, e *dom.Event) { e.Stop() })
	rt.Q("#test-parent").On("click", "", parent.handle)
	trigger(t, rt.Q("#test-child"), "click")
	if parent.n != 0 {
		t.Errorf("parent calls = %d, want 0", parent.n)
	}
}

func TestHover(t *testing.T) {
	t.Run("two handlers", func(t *testing.T) {
		rt := newRuntime(t)
		var over, out calls
		el := rt.Q("#test-element").Hover(over.handle, out.handle)
		trigger(t, el, "mouseenter")
		trigger(t, el, "mouseleave")
		if over.n != 1 || out.n != 1 {
			t.Errorf("over = %d, out = %d", over.n, out.n)
		}
	})

	t.Run("single handler", func(t *testing.T) {
		rt := newRuntime(t)
		var c calls
		el := rt.Q("#test-element").Hover(c.handle)
		trigger(t, el, "mouseenter")
		trigger(t, el, "mouseleave")
		if c.n != 2 {
			t.Errorf("calls = %d, want 2", c.n)
		}
	})
}

func TestShortcuts(t *testing.T) {
	rt := newRuntime(t)
	var c calls
	el := rt.Q("#test-element")
	el.Click(c.handle).KeyUp(c.handle)
	el.Click()
	el.KeyUp()
	el.Shortcut(event.KeyUp)
	el.Shortcut("not-a-shortcut")
	if c.n != 3 {
		t.Errorf("calls = %d, want 3", c.n)
	}
}

func TestShortcutTriggerLogsFailures(t *testing.T) {
	var buf bytes.Buffer
	rt := newRuntime(t, WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	var later calls
	el := rt.Q("#test-element")
	el.Click(func(*html.Node, *dom.Event) { panic("click failed") }).Click(later.handle)

	if got := el.Click(); got != el {
		t.Error("Click() did not return the receiver")
	}
	if later.n != 1 {
		t.Errorf("later handler calls = %d, want 1", later.n)
	}
	out := buf.String()
	if !strings.Contains(out, "shortcut trigger failed") || !strings.Contains(out, "E030") {
		t.Errorf("log output missing shortcut failure:\n%s", out)
	}

	err := el.Trigger(context.Background(), event.Click, nil)
	if !vqerrors.HasCode(err, "E030") {
		t.Errorf("Trigger() error = %v, want E030", err)
	}
}

func TestMetricsWiring(t *testing.T) {
	reg := prometheus.NewRegistry()
	rt := newRuntime(t, WithMetrics(reg))
	el := rt.Q("#test-element").On("click", "", func(*html.Node, *dom.Event) {})
	trigger(t, el, "click")

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	want := map[string]bool{
		"vquery_events_invocations_total":           false,
		"vquery_events_invocation_duration_seconds": false,
		"vquery_events_registrations":               false,
	}
	for _, f := range families {
		if _, ok := want[f.GetName()]; ok {
			want[f.GetName()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("%s not gathered", name)
		}
	}
}
