package vquery

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/antchfx/htmlquery"
	vqerrors "github.com/vango-dev/vquery/internal/errors"
	"github.com/vango-dev/vquery/pkg/data"
	"github.com/vango-dev/vquery/pkg/dom"
	"github.com/vango-dev/vquery/pkg/event"
	"github.com/vango-dev/vquery/pkg/parse"
	"golang.org/x/net/html"
)

// Runtime owns a document and the registries bound to it.
type Runtime struct {
	doc    *dom.Document
	config Config
	logger *slog.Logger

	store *data.Store
	data  *data.Data
	bus   *event.Bus
}

// New creates a runtime over doc. A nil doc gets an empty document at the
// configured location.
func New(doc *dom.Document, opts ...Option) (*Runtime, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = dom.NewDocument(nil, cfg.Location)
	}

	busOpts, err := buildBusOptions(cfg)
	if err != nil {
		return nil, err
	}

	store := data.NewStore()
	busOpts = append(busOpts, event.WithDataset(data.Internal(store)))

	return &Runtime{
		doc:    doc,
		config: cfg,
		logger: cfg.logger("vquery"),
		store:  store,
		data:   data.Default(store),
		bus:    event.NewBus(doc, busOpts...),
	}, nil
}

// Document returns the runtime's document.
func (rt *Runtime) Document() *dom.Document { return rt.doc }

// Bus returns the event registry.
func (rt *Runtime) Bus() *event.Bus { return rt.bus }

// Data returns the default "dom" dataset.
func (rt *Runtime) Data() *data.Data { return rt.data }

// DataSet creates a dataset for a user namespace on the runtime's store.
func (rt *Runtime) DataSet(name string) (*data.Data, error) {
	return data.New(rt.store, name)
}

// Ready runs fn once the document is ready.
func (rt *Runtime) Ready(fn func()) { rt.doc.Ready(fn) }

// ParseHTML parses s the way Q does, returning the nodes unfiltered.
func (rt *Runtime) ParseHTML(s string) []*html.Node {
	return parse.ParseHTML(rt.doc, s)
}

// Events returns a copy of the event registry, tombstones included.
func (rt *Runtime) Events() []event.Record { return rt.bus.Records() }

// AddEventHook registers a hook run before or after every handler of name.
func (rt *Runtime) AddEventHook(name string, fn event.Handler, phase event.HookPhase) error {
	return rt.bus.AddEventHook(name, fn, phase)
}

// RemoveEventHook clears the hooks of name in phase.
func (rt *Runtime) RemoveEventHook(name string, phase event.HookPhase) {
	rt.bus.RemoveEventHook(name, phase)
}

// RemoveEventHooks clears the hooks of the given names, or all hooks.
func (rt *Runtime) RemoveEventHooks(names ...string) {
	rt.bus.RemoveEventHooks(names...)
}

// EventHooks returns a copy of the hook map.
func (rt *Runtime) EventHooks() map[string]event.Hooks {
	return rt.bus.EventHooks()
}

// =============================================================================
// Collection factory
// =============================================================================

// Q builds a collection from selector.
//
// selector may be nil, a *Collection (returned as is), a func() scheduled
// for document ready, an *html.Node, a []*html.Node or NodeList, or a
// string. Strings are the tokens "window", "document", "body", "html" and
// "doctype", a "@role" selector, a CSS selector or an HTML fragment.
//
// An optional context of type map[string]string or map[string]any sets
// attributes on every node; an *html.Node or *Collection context receives
// the nodes as children of its first node.
func (rt *Runtime) Q(selector any, context ...any) *Collection {
	if c, ok := selector.(*Collection); ok && c != nil {
		return c
	}
	c := rt.newCollection(rt.resolve(selector), nil)
	if len(context) > 0 && c.Len() > 0 {
		rt.applyContext(c, context[0])
	}
	return c
}

func (rt *Runtime) resolve(selector any) []*html.Node {
	switch sel := selector.(type) {
	case nil:
		return nil
	case *Collection:
		return nil
	case func():
		rt.doc.Ready(sel)
		return nil
	case *html.Node:
		if sel == nil {
			return nil
		}
		return []*html.Node{sel}
	case []*html.Node:
		return compact(sel)
	case NodeList:
		return compact(sel)
	case string:
		return rt.resolveString(sel)
	}
	rt.logger.Warn("unsupported selector",
		"error", vqerrors.New("E003").FormatCompact(),
		"type", typeName(selector),
	)
	return nil
}

func (rt *Runtime) resolveString(sel string) []*html.Node {
	sel = strings.TrimSpace(sel)
	switch sel {
	case "":
		return nil
	case "window":
		return []*html.Node{rt.doc.Window()}
	case "document":
		return []*html.Node{rt.doc.Root()}
	case "body":
		return compact([]*html.Node{rt.doc.Body()})
	case "html":
		return compact([]*html.Node{rt.doc.DocumentElement()})
	case "doctype":
		return compact([]*html.Node{rt.doc.Doctype()})
	case "#", ".":
		rt.logger.Warn("invalid selector",
			"error", vqerrors.New("E001").FormatCompact(),
			"selector", sel,
		)
		return nil
	}

	if strings.HasPrefix(sel, "@") {
		return rt.byRole(sel[1:])
	}

	res := parse.Parse(rt.doc, sel)
	if res.Kind == parse.KindFragment {
		return res.Nodes
	}
	var out []*html.Node
	for _, n := range res.Nodes {
		if dom.IsElement(n) {
			out = append(out, n)
		}
	}
	return out
}

// byRole scans every element carrying data-role and keeps those whose
// comma-separated roles contain role.
func (rt *Runtime) byRole(role string) []*html.Node {
	nodes, err := htmlquery.QueryAll(rt.doc.Root(), "//*[@data-role]")
	if err != nil {
		rt.logger.Warn("role scan failed", "role", role, "error", err)
		return nil
	}
	var out []*html.Node
	for _, n := range nodes {
		v, _ := dom.Attr(n, "data-role")
		for _, r := range strings.Split(v, ",") {
			if strings.TrimSpace(r) == role {
				out = append(out, n)
				break
			}
		}
	}
	return out
}

func (rt *Runtime) applyContext(c *Collection, context any) {
	switch ctx := context.(type) {
	case map[string]string:
		for _, n := range c.nodes {
			for k, v := range ctx {
				dom.SetAttr(n, k, v)
			}
		}
	case map[string]any:
		for _, n := range c.nodes {
			for k, v := range ctx {
				dom.SetAttr(n, k, stringify(v))
			}
		}
	case *html.Node:
		appendAll(ctx, c.nodes)
	case *Collection:
		appendAll(ctx.Get(0), c.nodes)
	}
}

func appendAll(parent *html.Node, nodes []*html.Node) {
	if parent == nil {
		return
	}
	for _, n := range nodes {
		dom.AppendChild(parent, n)
	}
}

func compact(nodes []*html.Node) []*html.Node {
	out := make([]*html.Node, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

func typeName(v any) string { return fmt.Sprintf("%T", v) }

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
