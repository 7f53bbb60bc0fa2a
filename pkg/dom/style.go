package dom

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// InlineStyle parses the style attribute of n into lower-cased
// property/value pairs.
func InlineStyle(n *html.Node) map[string]string {
	v, ok := Attr(n, "style")
	if !ok {
		return nil
	}
	out := make(map[string]string)
	for _, decl := range strings.Split(v, ";") {
		prop, val, found := strings.Cut(decl, ":")
		if !found {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		val = strings.ToLower(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(val), "!important")))
		if prop != "" {
			out[prop] = strings.TrimSpace(val)
		}
	}
	return out
}

// hiddenBySelf reports whether n hides itself (and its subtree).
func hiddenBySelf(n *html.Node) bool {
	if HasAttr(n, "hidden") {
		return true
	}
	style := InlineStyle(n)
	if style["display"] == "none" || style["visibility"] == "hidden" {
		return true
	}
	if op, ok := style["opacity"]; ok {
		if f, err := strconv.ParseFloat(op, 64); err == nil && f == 0 {
			return true
		}
	}
	return false
}

// IsHidden reports whether an element is hidden. Without layout the check
// covers the hidden attribute, inline display/visibility/opacity on the
// element or any ancestor, and <input type="hidden">.
func IsHidden(n *html.Node) bool {
	if !IsElement(n) {
		return false
	}
	if n.DataAtom == atom.Input {
		if t, _ := Attr(n, "type"); strings.EqualFold(t, "hidden") {
			return true
		}
	}
	for p := n; IsElement(p); p = p.Parent {
		if hiddenBySelf(p) {
			return true
		}
	}
	return false
}

// IsVisible is the complement of IsHidden for elements. Non-element nodes
// are never visible.
func IsVisible(n *html.Node) bool {
	return IsElement(n) && !IsHidden(n)
}
