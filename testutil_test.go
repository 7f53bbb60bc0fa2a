package vquery

import (
	"io"
	"log/slog"
	"testing"

	"github.com/vango-dev/vquery/pkg/dom"
	"go.uber.org/goleak"
	"golang.org/x/net/html"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const page = `<!DOCTYPE html>
<html><head><title>t</title></head><body>
<div id="test-parent" class="box">
  <div id="test-element" class="test-class a b"><span id="test-child">Test Child</span></div>
  <div id="test-sibling">Test Sibling</div>
</div>
<ul id="list"><li id="i1">1</li><li id="i2" class="x">2</li><li id="i3">3</li><li id="i4" class="x">4</li></ul>
<div id="roles"><div id="r1" data-role="button, panel"></div><div id="r2" data-role="panel"></div></div>
<form id="f">
  <input id="cb" type="checkbox" checked>
  <input id="h" type="hidden">
  <select id="sel"><option id="o1">a</option><option id="o2" selected>b</option></select>
</form>
<div id="hid" style="display:none"><p id="inner">x</p></div>
</body></html>`

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRuntime(t *testing.T, opts ...Option) *Runtime {
	t.Helper()
	doc, err := dom.ParseString(page, "https://example.test/app/")
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	opts = append([]Option{WithLogger(quietLogger()), WithoutTracing()}, opts...)
	rt, err := New(doc, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return rt
}

func byID(t *testing.T, rt *Runtime, id string) *html.Node {
	t.Helper()
	n := rt.Q("#" + id).Get(0)
	if n == nil {
		t.Fatalf("#%s not found", id)
	}
	return n
}

func ids(c *Collection) []string {
	var out []string
	for _, n := range c.Nodes() {
		id, _ := dom.Attr(n, "id")
		out = append(out, id)
	}
	return out
}
