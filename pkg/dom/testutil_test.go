package dom

import (
	"testing"

	"golang.org/x/net/html"
)

const fixture = `<!DOCTYPE html>
<html><head><title>t</title></head><body>
<div id="parent" class="box">
  <div id="el" class="a b"><span id="child">Child</span></div>
  <div id="sibling" style="display: none">Sibling</div>
  <input id="secret" type="hidden">
</div>
</body></html>`

func mustDoc(t *testing.T) *Document {
	t.Helper()
	d, err := ParseString(fixture, "https://example.test/page")
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	return d
}

func byID(t *testing.T, d *Document, id string) *html.Node {
	t.Helper()
	n, err := Query(d.Root(), "#"+id)
	if err != nil || n == nil {
		t.Fatalf("#%s not found (err=%v)", id, err)
	}
	return n
}
