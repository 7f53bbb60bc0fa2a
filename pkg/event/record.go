package event

import (
	"github.com/vango-dev/vquery/pkg/dom"
	"golang.org/x/net/html"
)

// Handler handles an event. el is the receiver: the listener element for a
// direct registration, the matching descendant for a delegated one.
type Handler func(el *html.Node, e *dom.Event)

// Options are stored on the record and forwarded to the native listener
// created for the first registration of an element and event name.
type Options struct {
	Capture bool
	Passive bool
}

func (o Options) native() dom.ListenerOptions {
	return dom.ListenerOptions{Capture: o.Capture, Passive: o.Passive}
}

// State is the lifecycle state of a record: Active or Removed.
type State interface {
	isState()
}

// Active is the state of a live registration.
type Active struct {
	Handler Handler
}

// Removed is the tombstone state. It never transitions back.
type Removed struct{}

func (Active) isState()  {}
func (Removed) isState() {}

// Record is one registration: one element, one event name, one namespace.
type Record struct {
	ID        uint64
	Element   *html.Node
	Event     string
	Namespace string
	Selector  string
	Options   Options
	State     State

	once bool
}

// Active reports whether the record can still fire.
func (r Record) Active() bool {
	_, ok := r.State.(Active)
	return ok
}

// Once reports whether the record was registered through One.
func (r Record) Once() bool { return r.once }

func (r *Record) handler() Handler {
	if a, ok := r.State.(Active); ok {
		return a.Handler
	}
	return nil
}

// matches reports whether the record is selected by an Off query.
func (r *Record) matches(el *html.Node, n Name, selector string) bool {
	if r.Element != el {
		return false
	}
	if n.Event != "" && r.Event != n.Event {
		return false
	}
	if n.Namespace != "" && r.Namespace != n.Namespace {
		return false
	}
	return selector == "" || r.Selector == selector
}
