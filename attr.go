package vquery

import (
	"strings"

	"github.com/vango-dev/vquery/pkg/dom"
)

// HasClass reports whether any node carries any of the space-separated
// classes. An empty list is false.
func (c *Collection) HasClass(classes string) bool {
	names := strings.Fields(classes)
	if len(names) == 0 {
		return false
	}
	for _, n := range c.Nodes() {
		for _, name := range names {
			if dom.HasClass(n, name) {
				return true
			}
		}
	}
	return false
}

// Attr returns an attribute of the first node.
func (c *Collection) Attr(name string) (string, bool) {
	return dom.Attr(c.Get(0), name)
}

// SetAttr sets an attribute on every element node.
func (c *Collection) SetAttr(name, value string) *Collection {
	for _, n := range c.Nodes() {
		dom.SetAttr(n, name, value)
	}
	return c
}

// Text returns the concatenated text content of every node.
func (c *Collection) Text() string {
	var b strings.Builder
	for _, n := range c.Nodes() {
		b.WriteString(dom.TextContent(n))
	}
	return b.String()
}

// HTML renders every node.
func (c *Collection) HTML() string {
	var b strings.Builder
	for _, n := range c.Nodes() {
		b.WriteString(dom.Render(n))
	}
	return b.String()
}
