package event

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	vqerrors "github.com/vango-dev/vquery/internal/errors"
	"github.com/vango-dev/vquery/pkg/data"
	"github.com/vango-dev/vquery/pkg/dom"
	"golang.org/x/net/html"
)

// listenerKey prefixes the internal dataset keys that hold native listener ids.
const listenerKey = "listener:"

// Bus is the event registry of one runtime.
type Bus struct {
	doc      *dom.Document
	internal *data.Data
	logger   *slog.Logger
	observer Observer
	tracer   Tracer

	mu      sync.RWMutex
	nextID  uint64
	records []*Record
	hooks   map[string]Hooks

	// pending collects recovered panics per in-flight Trigger event.
	pendingMu sync.Mutex
	pending   map[*dom.Event][]error
}

// BusOption configures a Bus.
type BusOption func(*Bus)

// WithLogger sets the logger used for recovered panics.
func WithLogger(l *slog.Logger) BusOption {
	return func(b *Bus) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithObserver sets the dispatch observer.
func WithObserver(o Observer) BusOption {
	return func(b *Bus) {
		if o != nil {
			b.observer = o
		}
	}
}

// WithTracer sets the tracer wrapped around Trigger.
func WithTracer(t Tracer) BusOption {
	return func(b *Bus) {
		if t != nil {
			b.tracer = t
		}
	}
}

// WithDataset sets the internal dataset that records which elements carry a
// native listener. It must not be a user namespace shared with callers.
func WithDataset(d *data.Data) BusOption {
	return func(b *Bus) {
		if d != nil {
			b.internal = d
		}
	}
}

// NewBus creates an empty registry bound to doc.
func NewBus(doc *dom.Document, opts ...BusOption) *Bus {
	if doc == nil {
		doc = dom.NewDocument(nil, "")
	}
	b := &Bus{
		doc:      doc,
		internal: data.Internal(data.NewStore()),
		logger:   slog.Default().With("component", "event"),
		observer: nopObserver{},
		tracer:   nopTracer{},
		hooks:    make(map[string]Hooks),
		pending:  make(map[*dom.Event][]error),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Document returns the document the bus dispatches through.
func (b *Bus) Document() *dom.Document { return b.doc }

// On registers handler on el for every name of spec. Each name and namespace
// pair becomes one record; a native listener is attached once per element
// and event name. selector, when set, delegates: the handler runs for
// matching nodes between the event target and el.
func (b *Bus) On(el *html.Node, spec, selector string, handler Handler, opts Options) []uint64 {
	return b.register(el, spec, selector, handler, opts, false)
}

// One is On with at most one execution per record.
func (b *Bus) One(el *html.Node, spec, selector string, handler Handler, opts Options) []uint64 {
	return b.register(el, spec, selector, handler, opts, true)
}

func (b *Bus) register(el *html.Node, spec, selector string, handler Handler, opts Options, once bool) []uint64 {
	if !isTarget(el) || handler == nil {
		return nil
	}
	var ids []uint64
	for _, n := range ParseSpec(spec) {
		if n.Event == "" {
			b.logger.Warn("event name missing", "spec", spec)
			continue
		}
		b.mu.Lock()
		b.nextID++
		rec := &Record{
			ID:        b.nextID,
			Element:   el,
			Event:     n.Event,
			Namespace: n.Namespace,
			Selector:  selector,
			Options:   opts,
			State:     Active{Handler: handler},
			once:      once,
		}
		b.records = append(b.records, rec)
		b.mu.Unlock()

		b.attach(el, n.Event, opts)
		ids = append(ids, rec.ID)
	}
	b.reportRegistry()
	return ids
}

// isTarget reports whether n can carry listeners. Text and comment nodes
// cannot.
func isTarget(n *html.Node) bool {
	if n == nil {
		return false
	}
	switch n.Type {
	case html.ElementNode, html.DocumentNode, html.RawNode:
		return true
	}
	return false
}

// attach adds the native listener for (el, name) unless one exists.
func (b *Bus) attach(el *html.Node, name string, opts Options) {
	key := listenerKey + name
	if _, ok := b.internal.Lookup(el, key); ok {
		return
	}
	id := b.doc.AddEventListener(el, name, func(e *dom.Event) {
		b.dispatch(el, e)
	}, opts.native())
	b.internal.Set(el, key, id)
}

// detach removes the native listener for (el, name) once no active record
// needs it.
func (b *Bus) detach(el *html.Node, name string) {
	b.mu.RLock()
	for _, r := range b.records {
		if r.Element == el && r.Event == name && r.Active() {
			b.mu.RUnlock()
			return
		}
	}
	b.mu.RUnlock()

	key := listenerKey + name
	v, ok := b.internal.Lookup(el, key)
	if !ok {
		return
	}
	if id, ok := v.(dom.ListenerID); ok {
		b.doc.RemoveEventListener(el, name, id)
	}
	b.internal.Remove(el, key)
}

// Off tombstones the records of el selected by spec and selector. The spec
// "all" selects every record of el; an empty selector selects any.
func (b *Bus) Off(el *html.Node, spec, selector string) int {
	if el == nil {
		return 0
	}
	var names []Name
	if spec == All {
		names = []Name{{}}
	} else {
		names = ParseSpec(spec)
	}

	removed := 0
	touched := make(map[string]struct{})
	b.mu.Lock()
	for _, r := range b.records {
		if !r.Active() {
			continue
		}
		for _, n := range names {
			if r.matches(el, n, selector) {
				r.State = Removed{}
				touched[r.Event] = struct{}{}
				removed++
				break
			}
		}
	}
	b.mu.Unlock()

	for name := range touched {
		b.detach(el, name)
	}
	if removed > 0 {
		b.reportRegistry()
	}
	return removed
}

// Records returns a copy of the registry, tombstones included, in
// registration order.
func (b *Bus) Records() []Record {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Record, len(b.records))
	for i, r := range b.records {
		out[i] = *r
	}
	return out
}

// Len returns the number of records, tombstones included.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.records)
}

// Listening reports whether el carries the native listener for name.
func (b *Bus) Listening(el *html.Node, name string) bool {
	_, ok := b.internal.Lookup(el, listenerKey+name)
	return ok
}

// Trigger fires a bubbling, cancelable event per name of spec at el, with
// detail attached. A namespaced name only runs records of that namespace.
// Recovered handler and hook panics are returned joined. Handlers reach the
// trigger's span context through Event.Context.
func (b *Bus) Trigger(ctx context.Context, el *html.Node, spec string, detail any) error {
	if el == nil {
		return nil
	}
	var errs []error
	for _, n := range ParseSpec(spec) {
		if n.Event == "" {
			continue
		}
		if err := b.fire(ctx, el, n, detail); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}

func (b *Bus) fire(ctx context.Context, el *html.Node, n Name, detail any) error {
	ctx, end := b.tracer.StartTrigger(ctx, n.Event, n.Namespace)

	e := dom.NewEvent(n.Event, detail).WithContext(ctx)
	e.Namespace = n.Namespace

	b.pendingMu.Lock()
	b.pending[e] = nil
	b.pendingMu.Unlock()

	b.doc.DispatchEvent(el, e)

	b.pendingMu.Lock()
	errs := b.pending[e]
	delete(b.pending, e)
	b.pendingMu.Unlock()

	err := stderrors.Join(errs...)
	end(err)
	return err
}

// dispatch is the native listener body for every (el, event name) pair.
func (b *Bus) dispatch(el *html.Node, e *dom.Event) {
	b.mu.RLock()
	snapshot := make([]*Record, 0, len(b.records))
	for _, r := range b.records {
		if r.Element != el || r.Event != e.Type || !r.Active() {
			continue
		}
		if e.Namespace != "" && r.Namespace != e.Namespace {
			continue
		}
		snapshot = append(snapshot, r)
	}
	b.mu.RUnlock()

	for _, r := range snapshot {
		if r.Selector == "" {
			b.invoke(r, el, e)
		} else {
			// Matches are ordered nearest first, so a stop ends the walk
			// toward el.
			for _, node := range b.delegates(el, e.Target, r.Selector) {
				b.invoke(r, node, e)
				if e.PropagationStopped() {
					break
				}
			}
		}
		if e.ImmediatePropagationStopped() {
			return
		}
	}
}

// delegates returns the nodes from target up to el inclusive that match
// selector, nearest first.
func (b *Bus) delegates(el, target *html.Node, selector string) []*html.Node {
	if target == nil || (target != el && !dom.IsAncestor(el, target)) {
		return nil
	}
	var out []*html.Node
	for n := target; n != nil; n = n.Parent {
		if dom.Matches(n, selector) {
			out = append(out, n)
		}
		if n == el {
			break
		}
	}
	return out
}

// invoke runs one record for one receiver between its hooks.
func (b *Bus) invoke(r *Record, receiver *html.Node, e *dom.Event) {
	b.mu.Lock()
	h := r.handler()
	if h != nil && r.once {
		r.State = Removed{}
	}
	b.mu.Unlock()
	if h == nil {
		return
	}
	if r.once {
		b.detach(r.Element, r.Event)
		b.reportRegistry()
	}

	hooks := b.hooksFor(e.Type)
	for _, fn := range hooks.Before {
		b.call(fn, receiver, e, KindBeforeHook)
	}
	b.call(h, receiver, e, KindHandler)
	for _, fn := range hooks.After {
		b.call(fn, receiver, e, KindAfterHook)
	}
}

// call runs fn with panic isolation.
func (b *Bus) call(fn Handler, receiver *html.Node, e *dom.Event, kind string) {
	start := time.Now()
	var err error
	func() {
		defer func() {
			if p := recover(); p != nil {
				err = b.recovered(p, kind, e)
			}
		}()
		fn(receiver, e)
	}()
	b.observer.Invoked(e.Type, kind, time.Since(start), err)
}

func (b *Bus) recovered(p any, kind string, e *dom.Event) error {
	code := "E030"
	if kind != KindHandler {
		code = "E031"
	}
	var cause error
	if pe, ok := p.(error); ok {
		cause = pe
	} else {
		cause = fmt.Errorf("%v", p)
	}
	err := vqerrors.New(code).
		WithDetail(fmt.Sprintf("%s for %q: %v", kind, e.Type, p)).
		Wrap(cause)

	b.logger.Error("event callback panicked",
		"event", e.Type,
		"kind", kind,
		"panic", p,
	)

	b.pendingMu.Lock()
	if errs, ok := b.pending[e]; ok {
		b.pending[e] = append(errs, err)
	}
	b.pendingMu.Unlock()
	return err
}

func (b *Bus) reportRegistry() {
	b.mu.RLock()
	active, removed := 0, 0
	for _, r := range b.records {
		if r.Active() {
			active++
		} else {
			removed++
		}
	}
	b.mu.RUnlock()
	b.observer.Registry(active, removed)
}
