package dom

import (
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// selectorCache holds compiled selectors keyed by source text. Failed
// compilations are cached as well so repeated bad input stays cheap.
var selectorCache sync.Map // string -> compiled

type compiled struct {
	sel cascadia.Selector
	err error
}

// Compile parses a CSS selector, reusing earlier compilations.
func Compile(selector string) (cascadia.Selector, error) {
	if v, ok := selectorCache.Load(selector); ok {
		c := v.(compiled)
		return c.sel, c.err
	}
	sel, err := cascadia.Compile(selector)
	selectorCache.Store(selector, compiled{sel: sel, err: err})
	return sel, err
}

// IsSelector reports whether s is a syntactically valid CSS selector.
// A lone "#" or "." is never a selector.
func IsSelector(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || s == "#" || s == "." {
		return false
	}
	_, err := Compile(s)
	return err == nil
}

// Matches reports whether n is an element matching selector. Invalid
// selectors match nothing.
func Matches(n *html.Node, selector string) bool {
	if !IsElement(n) {
		return false
	}
	sel, err := Compile(selector)
	if err != nil {
		return false
	}
	return sel.Match(n)
}

// QueryAll returns the descendants of root matching selector in document
// order. root itself is never included.
func QueryAll(root *html.Node, selector string) ([]*html.Node, error) {
	sel, err := Compile(selector)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, nil
	}
	return cascadia.QueryAll(root, sel), nil
}

// Query returns the first descendant of root matching selector.
func Query(root *html.Node, selector string) (*html.Node, error) {
	sel, err := Compile(selector)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, nil
	}
	return cascadia.Query(root, sel), nil
}

// QuerySelectorAll runs selector against the whole document.
func (d *Document) QuerySelectorAll(selector string) ([]*html.Node, error) {
	return QueryAll(d.root, selector)
}
