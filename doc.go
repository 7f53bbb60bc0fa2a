// Package vquery is a chainable element-collection engine over an HTML node
// tree, with a delegated event bus and a namespaced data store.
//
// A Runtime owns one document, one event registry and one data store. Its Q
// method is the collection factory:
//
//	doc, _ := dom.ParseString(page, "https://example.com/")
//	rt, _ := vquery.New(doc)
//
//	items := rt.Q("ul.menu").Children(vquery.S("li")).Odd()
//	items.On("click.menu", "", func(el *html.Node, e *dom.Event) {
//	    rt.Q(el).SetData("clicked", true)
//	})
//	items.Back(true) // the ul.menu collection
//
// Traversals always return a new collection whose Previous is the receiver.
// On an empty receiver, Filter, Find, Children, Odd and Even return an empty
// collection and Eq, First and Last return the receiver; every other
// traversal returns nil. A nil *Collection is safe to use and behaves as an
// empty one.
package vquery
