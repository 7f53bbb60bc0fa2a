package vquery

import (
	"github.com/google/uuid"
	"golang.org/x/net/html"
)

// Collection is an ordered list of nodes with a link to the collection it
// was derived from.
type Collection struct {
	rt    *Runtime
	nodes []*html.Node
	uid   string
	prev  *Collection
}

func (rt *Runtime) newCollection(nodes []*html.Node, prev *Collection) *Collection {
	return &Collection{
		rt:    rt,
		nodes: nodes,
		uid:   uuid.NewString(),
		prev:  prev,
	}
}

// derive builds a collection whose Previous is c.
func (c *Collection) derive(nodes []*html.Node) *Collection {
	return c.rt.newCollection(nodes, c)
}

// UID returns the identifier assigned at construction.
func (c *Collection) UID() string {
	if c == nil {
		return ""
	}
	return c.uid
}

// Runtime returns the runtime that built c.
func (c *Collection) Runtime() *Runtime {
	if c == nil {
		return nil
	}
	return c.rt
}

// Len returns the number of nodes.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.nodes)
}

// Get returns the node at i. Negative indices count from the end; out of
// range yields nil.
func (c *Collection) Get(i int) *html.Node {
	n := c.Len()
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return nil
	}
	return c.nodes[i]
}

// Nodes returns a copy of the nodes.
func (c *Collection) Nodes() []*html.Node {
	if c == nil {
		return nil
	}
	return append([]*html.Node(nil), c.nodes...)
}

// Items is an alias for Nodes.
func (c *Collection) Items() []*html.Node { return c.Nodes() }

// Each calls fn for every node in order until fn returns false.
func (c *Collection) Each(fn func(i int, n *html.Node) bool) *Collection {
	if c == nil {
		return nil
	}
	for i, n := range c.nodes {
		if !fn(i, n) {
			break
		}
	}
	return c
}

// Previous returns the collection c was derived from, or nil.
func (c *Collection) Previous() *Collection {
	if c == nil {
		return nil
	}
	return c.prev
}

// Back rewinds one step, or to the start of the chain when toStart is true.
// A collection without history returns itself.
func (c *Collection) Back(toStart ...bool) *Collection {
	if c == nil || c.prev == nil {
		return c
	}
	if len(toStart) == 0 || !toStart[0] {
		return c.prev
	}
	root := c.prev
	for root.prev != nil {
		root = root.prev
	}
	return root
}
