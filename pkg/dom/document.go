package dom

import (
	"io"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// WindowData is the Data of the synthetic window node.
const WindowData = "#window"

// DefaultLocation is used when a document is created without a location.
const DefaultLocation = "about:blank"

// Document owns an HTML node tree together with its window, its native
// listeners and its ready state.
type Document struct {
	root     *html.Node
	window   *html.Node
	location string

	mu        sync.RWMutex
	listeners map[*html.Node]map[string][]listenerEntry
	nextID    uint64

	readyMu    sync.Mutex
	ready      bool
	readyQueue []func()
}

// NewDocument wraps an existing tree. A nil root or a root that is not a
// DocumentNode gets an empty html/head/body skeleton instead.
func NewDocument(root *html.Node, location string) *Document {
	if root == nil || root.Type != html.DocumentNode {
		root, _ = html.Parse(strings.NewReader(""))
	}
	if location == "" {
		location = DefaultLocation
	}
	return &Document{
		root:      root,
		window:    &html.Node{Type: html.RawNode, Data: WindowData},
		location:  location,
		listeners: make(map[*html.Node]map[string][]listenerEntry),
	}
}

// Parse reads a full HTML document.
func Parse(r io.Reader, location string) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return NewDocument(root, location), nil
}

// ParseString is Parse over a string.
func ParseString(s, location string) (*Document, error) {
	return Parse(strings.NewReader(s), location)
}

// Root returns the DocumentNode.
func (d *Document) Root() *html.Node { return d.root }

// Window returns the synthetic window node.
func (d *Document) Window() *html.Node { return d.window }

// Location returns the document URL used as <base> for fragment parsing.
func (d *Document) Location() string { return d.location }

// IsWindow reports whether n is this document's window.
func (d *Document) IsWindow(n *html.Node) bool { return n != nil && n == d.window }

// DocumentElement returns the <html> element.
func (d *Document) DocumentElement() *html.Node {
	for c := d.root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}

// Head returns the <head> element.
func (d *Document) Head() *html.Node { return d.childOfHTML(atom.Head) }

// Body returns the <body> element.
func (d *Document) Body() *html.Node { return d.childOfHTML(atom.Body) }

// Doctype returns the doctype node, if the document has one.
func (d *Document) Doctype() *html.Node {
	for c := d.root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.DoctypeNode {
			return c
		}
	}
	return nil
}

func (d *Document) childOfHTML(a atom.Atom) *html.Node {
	h := d.DocumentElement()
	if h == nil {
		return nil
	}
	for c := h.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == a {
			return c
		}
	}
	return nil
}

// Contains reports whether n is attached to this document's tree.
func (d *Document) Contains(n *html.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p == d.root {
			return true
		}
	}
	return false
}

// Ready runs fn once the document is ready, immediately if it already is.
func (d *Document) Ready(fn func()) {
	if fn == nil {
		return
	}
	d.readyMu.Lock()
	if !d.ready {
		d.readyQueue = append(d.readyQueue, fn)
		d.readyMu.Unlock()
		return
	}
	d.readyMu.Unlock()
	fn()
}

// IsReady reports whether MarkReady has run.
func (d *Document) IsReady() bool {
	d.readyMu.Lock()
	defer d.readyMu.Unlock()
	return d.ready
}

// MarkReady fires DOMContentLoaded on the document and releases queued
// Ready callbacks in registration order. Subsequent calls are no-ops.
func (d *Document) MarkReady() {
	d.readyMu.Lock()
	if d.ready {
		d.readyMu.Unlock()
		return
	}
	d.ready = true
	queue := d.readyQueue
	d.readyQueue = nil
	d.readyMu.Unlock()

	d.DispatchEvent(d.root, NewEvent("DOMContentLoaded", nil))
	for _, fn := range queue {
		fn()
	}
}
