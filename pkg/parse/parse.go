// Package parse turns a string into concrete DOM nodes.
//
// A string is read, in order, as a single bare tag, as a CSS selector run
// against the live document, or as an HTML fragment. Fragments are parsed
// in a scratch document and returned as detached clones.
package parse

import (
	"regexp"
	"strings"

	"github.com/vango-dev/vquery/pkg/dom"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Kind reports which path produced a Result.
type Kind uint8

const (
	KindEmpty     Kind = iota // no input
	KindSingleTag             // <tag>, <tag/>, <tag></tag>
	KindSelector              // live document matches
	KindText                  // selector with no match, kept as text
	KindFragment              // parsed HTML fragment
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "Empty"
	case KindSingleTag:
		return "SingleTag"
	case KindSelector:
		return "Selector"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	default:
		return "Unknown"
	}
}

// Result is the outcome of Parse.
type Result struct {
	Kind  Kind
	Nodes []*html.Node
}

// singleTag matches <tag>, <tag/>, <tag />, and <tag></tag>. Go regexps have
// no back-references, so the closing tag name is compared separately.
var singleTag = regexp.MustCompile(`^<([a-zA-Z][^/\x00>:\x20\t\r\n\f]*)[\x20\t\r\n\f]*/?>(?:</([^>]*)>)?$`)

// Parse interprets s against doc.
func Parse(doc *dom.Document, s string) Result {
	s = strings.TrimSpace(s)
	if s == "" {
		return Result{Kind: KindEmpty}
	}

	if m := singleTag.FindStringSubmatch(s); m != nil && (m[2] == "" || strings.EqualFold(m[1], m[2])) {
		return Result{Kind: KindSingleTag, Nodes: []*html.Node{newElement(m[1])}}
	}

	if IsSelector(doc, s) {
		matches, _ := doc.QuerySelectorAll(s)
		if len(matches) == 0 {
			return Result{Kind: KindText, Nodes: []*html.Node{{Type: html.TextNode, Data: s}}}
		}
		return Result{Kind: KindSelector, Nodes: matches}
	}

	return Result{Kind: KindFragment, Nodes: fragment(doc, s)}
}

// ParseHTML returns the nodes Parse produced, whatever the path.
func ParseHTML(doc *dom.Document, s string) []*html.Node {
	return Parse(doc, s).Nodes
}

// IsSelector reports whether s compiles as a CSS selector and can be run
// against doc without failing.
func IsSelector(doc *dom.Document, s string) bool {
	if !dom.IsSelector(s) {
		return false
	}
	_, err := doc.QuerySelectorAll(strings.TrimSpace(s))
	return err == nil
}

func newElement(tag string) *html.Node {
	tag = strings.ToLower(tag)
	return &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
}

// fragment parses s into the body of a scratch document whose <base> points
// at the live document's location, then clones each resulting child.
func fragment(doc *dom.Document, s string) []*html.Node {
	scratch := dom.NewDocument(nil, doc.Location())
	base := newElement("base")
	base.Attr = []html.Attribute{{Key: "href", Val: doc.Location()}}
	scratch.Head().AppendChild(base)

	body := scratch.Body()
	nodes, err := html.ParseFragment(strings.NewReader(s), body)
	if err != nil {
		return nil
	}
	for _, n := range nodes {
		dom.AppendChild(body, n)
	}

	var out []*html.Node
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, dom.Clone(c))
	}
	return out
}
