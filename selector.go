package vquery

import (
	"strings"

	"github.com/vango-dev/vquery/pkg/dom"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Selector is the closed set of arguments accepted by traversal and matching
// methods: CSS, Pseudo, NodeRef, NodeList and *Collection.
type Selector interface {
	match(n *html.Node) bool
}

// CSS is a CSS selector. Invalid selectors match nothing.
type CSS string

func (s CSS) match(n *html.Node) bool { return dom.Matches(n, string(s)) }

// Pseudo is one of the state pseudo-selectors.
type Pseudo int

const (
	Selected Pseudo = iota + 1
	Checked
	Visible
	Hidden
)

func (p Pseudo) String() string {
	switch p {
	case Selected:
		return ":selected"
	case Checked:
		return ":checked"
	case Visible:
		return ":visible"
	case Hidden:
		return ":hidden"
	}
	return "Pseudo(?)"
}

func (p Pseudo) match(n *html.Node) bool {
	if !dom.IsElement(n) {
		return false
	}
	switch p {
	case Selected:
		return n.DataAtom == atom.Option && dom.HasAttr(n, "selected")
	case Checked:
		return n.DataAtom == atom.Input && dom.HasAttr(n, "checked")
	case Visible:
		return dom.IsVisible(n)
	case Hidden:
		return dom.IsHidden(n)
	}
	return false
}

// NodeRef matches exactly one node.
type NodeRef struct {
	Node *html.Node
}

func (r NodeRef) match(n *html.Node) bool { return n != nil && n == r.Node }

// NodeList matches any node it holds.
type NodeList []*html.Node

func (l NodeList) match(n *html.Node) bool {
	for _, m := range l {
		if m == n {
			return true
		}
	}
	return false
}

func (c *Collection) match(n *html.Node) bool {
	if c == nil {
		return false
	}
	return NodeList(c.nodes).match(n)
}

var pseudos = map[string]Pseudo{
	":selected": Selected,
	":checked":  Checked,
	":visible":  Visible,
	":hidden":   Hidden,
}

// S resolves a selector string into a Pseudo or a CSS selector.
func S(s string) Selector {
	s = strings.TrimSpace(s)
	if p, ok := pseudos[s]; ok {
		return p
	}
	return CSS(s)
}

// Node wraps a node as a Selector.
func Node(n *html.Node) Selector { return NodeRef{Node: n} }

// passthrough returns sel when it is a prebuilt collection.
func passthrough(sel []Selector) (*Collection, bool) {
	if len(sel) == 0 {
		return nil, false
	}
	c, ok := sel[0].(*Collection)
	return c, ok
}

// filterBy keeps the nodes matched by the first selector, if any.
func filterBy(nodes []*html.Node, sel []Selector) []*html.Node {
	if len(sel) == 0 || sel[0] == nil {
		return nodes
	}
	if s, ok := sel[0].(CSS); ok && strings.TrimSpace(string(s)) == "" {
		return nodes
	}
	out := nodes[:0:0]
	for _, n := range nodes {
		if sel[0].match(n) {
			out = append(out, n)
		}
	}
	return out
}
