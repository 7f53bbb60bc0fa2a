package dom

import (
	"context"
	"time"

	"golang.org/x/net/html"
)

// Phase is the phase of event dispatch.
type Phase int

const (
	PhaseNone      Phase = 0
	PhaseCapturing Phase = 1
	PhaseAtTarget  Phase = 2
	PhaseBubbling  Phase = 3
)

// Event is a native-style DOM event.
type Event struct {
	Type string

	// Namespace restricts library-level handlers to one namespace when set.
	Namespace string

	Target        *html.Node
	CurrentTarget *html.Node
	Phase         Phase

	Bubbles    bool
	Cancelable bool

	// Detail carries caller data, like CustomEvent.detail.
	Detail any

	TimeStamp time.Time

	ctx context.Context

	defaultPrevented bool
	stopped          bool
	stoppedImmediate bool
}

// NewEvent creates a bubbling, cancelable event.
func NewEvent(typ string, detail any) *Event {
	return &Event{
		Type:       typ,
		Bubbles:    true,
		Cancelable: true,
		Detail:     detail,
		TimeStamp:  time.Now(),
	}
}

// Context returns the context the event was triggered with. It is never
// nil.
func (e *Event) Context() context.Context {
	if e.ctx == nil {
		return context.Background()
	}
	return e.ctx
}

// WithContext attaches ctx to the event and returns it.
func (e *Event) WithContext(ctx context.Context) *Event {
	e.ctx = ctx
	return e
}

// StopPropagation prevents the event from reaching further nodes on its path.
func (e *Event) StopPropagation() { e.stopped = true }

// Stop is an alias for StopPropagation.
func (e *Event) Stop() { e.StopPropagation() }

// StopImmediatePropagation also skips the remaining listeners on the
// current node.
func (e *Event) StopImmediatePropagation() {
	e.stopped = true
	e.stoppedImmediate = true
}

// PreventDefault marks a cancelable event as canceled.
func (e *Event) PreventDefault() {
	if e.Cancelable {
		e.defaultPrevented = true
	}
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// PropagationStopped reports whether propagation was stopped.
func (e *Event) PropagationStopped() bool { return e.stopped }

// ImmediatePropagationStopped reports whether StopImmediatePropagation was called.
func (e *Event) ImmediatePropagationStopped() bool { return e.stoppedImmediate }

// Listener is a native event listener.
type Listener func(e *Event)

// ListenerOptions mirrors addEventListener options.
type ListenerOptions struct {
	Capture bool
	Once    bool
	Passive bool
}

// ListenerID identifies a registered listener for removal.
type ListenerID uint64

type listenerEntry struct {
	id   ListenerID
	fn   Listener
	opts ListenerOptions
}

// AddEventListener registers fn on target for events of type typ.
func (d *Document) AddEventListener(target *html.Node, typ string, fn Listener, opts ListenerOptions) ListenerID {
	if target == nil || fn == nil {
		return 0
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	d.nextID++
	id := ListenerID(d.nextID)
	byType, ok := d.listeners[target]
	if !ok {
		byType = make(map[string][]listenerEntry)
		d.listeners[target] = byType
	}
	byType[typ] = append(byType[typ], listenerEntry{id: id, fn: fn, opts: opts})
	return id
}

// RemoveEventListener unregisters a listener. Unknown ids are ignored.
func (d *Document) RemoveEventListener(target *html.Node, typ string, id ListenerID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.removeLocked(target, typ, id)
}

func (d *Document) removeLocked(target *html.Node, typ string, id ListenerID) {
	byType := d.listeners[target]
	entries := byType[typ]
	for i, l := range entries {
		if l.id == id {
			byType[typ] = append(entries[:i:i], entries[i+1:]...)
			break
		}
	}
	if len(byType[typ]) == 0 {
		delete(byType, typ)
	}
	if len(byType) == 0 {
		delete(d.listeners, target)
	}
}

// ListenerCount returns how many listeners of type typ target carries.
func (d *Document) ListenerCount(target *html.Node, typ string) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.listeners[target][typ])
}

// EventPath returns the propagation path of target, target first. Nodes
// attached to the document end with the document node and the window.
func (d *Document) EventPath(target *html.Node) []*html.Node {
	if target == nil {
		return nil
	}
	if target == d.window {
		return []*html.Node{d.window}
	}
	var path []*html.Node
	for n := target; n != nil; n = n.Parent {
		path = append(path, n)
	}
	if path[len(path)-1] == d.root {
		path = append(path, d.window)
	}
	return path
}

// DispatchEvent fires e at target and returns false if a listener called
// PreventDefault. Listeners are snapshotted per node, so listeners added or
// removed while the event is in flight do not affect the current node.
func (d *Document) DispatchEvent(target *html.Node, e *Event) bool {
	if target == nil || e == nil {
		return true
	}
	e.Target = target
	if e.TimeStamp.IsZero() {
		e.TimeStamp = time.Now()
	}
	path := d.EventPath(target)

	// capture: outermost ancestor down to the parent of target
	for i := len(path) - 1; i > 0 && !e.stopped; i-- {
		e.Phase = PhaseCapturing
		d.invoke(path[i], e, func(o ListenerOptions) bool { return o.Capture })
	}

	if !e.stopped {
		e.Phase = PhaseAtTarget
		d.invoke(target, e, func(ListenerOptions) bool { return true })
	}

	if e.Bubbles {
		for i := 1; i < len(path) && !e.stopped; i++ {
			e.Phase = PhaseBubbling
			d.invoke(path[i], e, func(o ListenerOptions) bool { return !o.Capture })
		}
	}

	e.Phase = PhaseNone
	e.CurrentTarget = nil
	return !e.defaultPrevented
}

func (d *Document) invoke(node *html.Node, e *Event, want func(ListenerOptions) bool) {
	d.mu.RLock()
	entries := d.listeners[node][e.Type]
	snapshot := make([]listenerEntry, len(entries))
	copy(snapshot, entries)
	d.mu.RUnlock()

	e.CurrentTarget = node
	for _, l := range snapshot {
		if !want(l.opts) {
			continue
		}
		if l.opts.Once {
			d.RemoveEventListener(node, e.Type, l.id)
		}
		if l.opts.Passive {
			// passive listeners cannot cancel
			cancelable := e.Cancelable
			e.Cancelable = false
			l.fn(e)
			e.Cancelable = cancelable
		} else {
			l.fn(e)
		}
		if e.stoppedImmediate {
			return
		}
	}
}
