// Package event is the delegated event subsystem.
//
// A Bus keeps an ordered registry of handler records and a map of before and
// after hooks keyed by event name. Registration attaches at most one native
// listener per element and event name to the owning dom.Document; dispatch,
// delegation matching and hook execution happen at library level on top of
// the document's native capture and bubble phases.
//
// Removal is logical: Off turns a record into a tombstone (State Removed)
// that stays in the registry and never fires again.
//
//	bus := event.NewBus(doc)
//	bus.On(list, "click.menu", "li", func(el *html.Node, e *dom.Event) {
//	    // el is the matching <li>, not list
//	}, event.Options{})
//	err := bus.Trigger(ctx, item, "click", nil)
package event
