package vquery

import (
	vqerrors "github.com/vango-dev/vquery/internal/errors"
	"github.com/vango-dev/vquery/pkg/dom"
	"golang.org/x/net/html"
)

// filter keeps the nodes matched by sel.
func (c *Collection) filter(nodes []*html.Node, sel []Selector) []*html.Node {
	if len(sel) > 0 {
		c.warnInvalid(sel[0])
	}
	return filterBy(nodes, sel)
}

// warnInvalid logs a CSS selector that does not compile.
func (c *Collection) warnInvalid(sel Selector) {
	s, ok := sel.(CSS)
	if !ok || s == "" || dom.IsSelector(string(s)) {
		return
	}
	c.rt.logger.Warn("invalid selector",
		"error", vqerrors.New("E002").FormatCompact(),
		"selector", string(s),
	)
}

// empty reports whether c holds no nodes. Nil receivers are empty.
func (c *Collection) empty() bool { return c.Len() == 0 }

// Children returns the element children of every node, optionally filtered.
func (c *Collection) Children(sel ...Selector) *Collection {
	if p, ok := passthrough(sel); ok {
		return p
	}
	if c == nil {
		return nil
	}
	var out []*html.Node
	for _, n := range c.nodes {
		out = append(out, dom.Children(n)...)
	}
	return c.derive(c.filter(out, sel))
}

// Parent returns the distinct parents of every node, optionally filtered.
// It returns nil when nothing remains.
func (c *Collection) Parent(sel ...Selector) *Collection {
	if c.empty() {
		return nil
	}
	if p, ok := passthrough(sel); ok {
		return p
	}
	var out []*html.Node
	seen := make(map[*html.Node]bool)
	for _, n := range c.nodes {
		if p := n.Parent; p != nil && !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	out = c.filter(out, sel)
	if len(out) == 0 {
		return nil
	}
	return c.derive(out)
}

// Parents returns the distinct element ancestors of every node, nearest
// first per node, optionally filtered.
func (c *Collection) Parents(sel ...Selector) *Collection {
	if c.empty() {
		return nil
	}
	if p, ok := passthrough(sel); ok {
		return p
	}
	var out []*html.Node
	seen := make(map[*html.Node]bool)
	for _, n := range c.nodes {
		for p := n.Parent; p != nil; p = p.Parent {
			if dom.IsElement(p) && !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return c.derive(c.filter(out, sel))
}

// Siblings returns the element siblings of every node.
func (c *Collection) Siblings(sel ...Selector) *Collection {
	if c.empty() {
		return nil
	}
	if p, ok := passthrough(sel); ok {
		return p
	}
	var out []*html.Node
	for _, n := range c.nodes {
		if n.Parent == nil {
			continue
		}
		for _, s := range dom.Children(n.Parent) {
			if s != n {
				out = append(out, s)
			}
		}
	}
	return c.derive(c.filter(out, sel))
}

// Next returns the next element sibling of every node.
func (c *Collection) Next(sel ...Selector) *Collection {
	return c.sibling(dom.NextElementSibling, false, sel)
}

// Prev returns the previous element sibling of every node.
func (c *Collection) Prev(sel ...Selector) *Collection {
	return c.sibling(dom.PrevElementSibling, false, sel)
}

// NextAll returns every following element sibling of every node.
func (c *Collection) NextAll(sel ...Selector) *Collection {
	return c.sibling(dom.NextElementSibling, true, sel)
}

// PrevAll returns every preceding element sibling of every node, nearest
// first.
func (c *Collection) PrevAll(sel ...Selector) *Collection {
	return c.sibling(dom.PrevElementSibling, true, sel)
}

func (c *Collection) sibling(step func(*html.Node) *html.Node, all bool, sel []Selector) *Collection {
	if c.empty() {
		return nil
	}
	if p, ok := passthrough(sel); ok {
		return p
	}
	var out []*html.Node
	for _, n := range c.nodes {
		for s := step(n); s != nil; s = step(s) {
			out = append(out, s)
			if !all {
				break
			}
		}
	}
	return c.derive(c.filter(out, sel))
}

// Closest walks from the first node up through its ancestors and returns
// the first match. Without a selector it is Parent.
func (c *Collection) Closest(sel ...Selector) *Collection {
	if c.empty() {
		return nil
	}
	if len(sel) == 0 || sel[0] == nil || sel[0] == CSS("") {
		return c.Parent()
	}
	if p, ok := passthrough(sel); ok {
		return p
	}
	c.warnInvalid(sel[0])
	var out []*html.Node
	for n := c.nodes[0]; n != nil; n = dom.ParentElement(n) {
		if sel[0].match(n) {
			out = append(out, n)
			break
		}
	}
	return c.derive(out)
}

// Find returns the descendants of every node matching sel.
func (c *Collection) Find(sel Selector) *Collection {
	if p, ok := sel.(*Collection); ok {
		return p
	}
	if c == nil {
		return nil
	}
	var out []*html.Node
	seen := make(map[*html.Node]bool)
	for _, n := range c.nodes {
		if n.Type != html.ElementNode && n.Type != html.DocumentNode {
			continue
		}
		for _, m := range c.descendants(n, sel) {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return c.derive(out)
}

func (c *Collection) descendants(root *html.Node, sel Selector) []*html.Node {
	if s, ok := sel.(CSS); ok {
		c.warnInvalid(s)
		found, _ := dom.QueryAll(root, string(s))
		return found
	}
	var out []*html.Node
	for ch := root.FirstChild; ch != nil; ch = ch.NextSibling {
		dom.Walk(ch, func(n *html.Node) bool {
			if sel != nil && sel.match(n) {
				out = append(out, n)
			}
			return true
		})
	}
	return out
}

// Contains reports whether Find(sel) is non-empty.
func (c *Collection) Contains(sel Selector) bool {
	return c.Find(sel).Len() > 0
}

// Filter keeps the nodes matching sel.
func (c *Collection) Filter(sel Selector) *Collection {
	if p, ok := sel.(*Collection); ok {
		return p
	}
	if c == nil {
		return nil
	}
	return c.derive(c.filter(append([]*html.Node(nil), c.nodes...), []Selector{sel}))
}

// FilterFunc keeps the nodes for which fn returns true.
func (c *Collection) FilterFunc(fn func(i int, n *html.Node) bool) *Collection {
	if c == nil {
		return nil
	}
	var out []*html.Node
	for i, n := range c.nodes {
		if fn(i, n) {
			out = append(out, n)
		}
	}
	return c.derive(out)
}

// Has keeps the nodes with at least one element child matching sel.
func (c *Collection) Has(sel Selector) *Collection {
	if c.empty() {
		return nil
	}
	var out []*html.Node
	for _, n := range c.nodes {
		if len(c.filter(dom.Children(n), []Selector{sel})) > 0 {
			out = append(out, n)
		}
	}
	return c.derive(out)
}

// Eq returns the node at i as a new collection. Negative indices count from
// the end; out of range yields an empty collection. Without an index, or on
// an empty receiver, it returns c.
func (c *Collection) Eq(i ...int) *Collection {
	if len(i) == 0 || c.empty() {
		return c
	}
	n := c.Get(i[0])
	if n == nil {
		return c.derive(nil)
	}
	return c.derive([]*html.Node{n})
}

// First is Eq(0).
func (c *Collection) First() *Collection { return c.Eq(0) }

// Last is Eq(-1).
func (c *Collection) Last() *Collection { return c.Eq(c.Len() - 1) }

// Odd keeps the 1st, 3rd, 5th... nodes.
func (c *Collection) Odd() *Collection {
	return c.FilterFunc(func(i int, _ *html.Node) bool { return (i+1)%2 != 0 })
}

// Even keeps the 2nd, 4th, 6th... nodes.
func (c *Collection) Even() *Collection {
	return c.FilterFunc(func(i int, _ *html.Node) bool { return (i+1)%2 == 0 })
}

// target resolves the node Index and IndexOf look up: the first node of c
// without an argument, otherwise the node the selector designates.
func (c *Collection) target(sel []Selector) *html.Node {
	if len(sel) == 0 || sel[0] == nil {
		return c.Get(0)
	}
	switch s := sel[0].(type) {
	case NodeRef:
		return s.Node
	case NodeList:
		if len(s) > 0 {
			return s[0]
		}
		return nil
	case *Collection:
		return s.Get(0)
	case CSS:
		return c.rt.Q(string(s)).Get(0)
	}
	for _, n := range c.nodes {
		if sel[0].match(n) {
			return n
		}
	}
	return nil
}

// Index returns the position of the target node among its parent's element
// children, or -1.
func (c *Collection) Index(sel ...Selector) int {
	if c.empty() {
		return -1
	}
	el := c.target(sel)
	if el == nil || el.Parent == nil {
		return -1
	}
	for i, ch := range dom.Children(el.Parent) {
		if ch == el {
			return i
		}
	}
	return -1
}

// IndexOf returns the position of the target node within c, or -1.
func (c *Collection) IndexOf(sel ...Selector) int {
	if c.empty() {
		return -1
	}
	el := c.target(sel)
	if el == nil {
		return -1
	}
	for i, n := range c.nodes {
		if n == el {
			return i
		}
	}
	return -1
}

// Same reports whether c and other hold the same nodes, in any order.
func (c *Collection) Same(other *Collection) bool {
	if c.Len() != other.Len() {
		return false
	}
	for _, n := range c.Nodes() {
		if !other.match(n) {
			return false
		}
	}
	for _, n := range other.Nodes() {
		if !c.match(n) {
			return false
		}
	}
	return true
}

// Is reports whether any node of c matches sel.
func (c *Collection) Is(sel Selector) bool {
	if c.empty() || sel == nil {
		return false
	}
	c.warnInvalid(sel)
	for _, n := range c.nodes {
		if sel.match(n) {
			return true
		}
	}
	return false
}
