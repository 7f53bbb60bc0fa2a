package vquery

import "testing"

func TestHasClass(t *testing.T) {
	rt := newRuntime(t)
	el := rt.Q("#test-element")
	tests := []struct {
		in   string
		want bool
	}{
		{"a b", true},
		{"a", true},
		{"zzz a", true},
		{"zzz", false},
		{"", false},
		{"   ", false},
	}
	for _, tt := range tests {
		if got := el.HasClass(tt.in); got != tt.want {
			t.Errorf("HasClass(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if rt.Q("").HasClass("a") {
		t.Error("empty collection has a class")
	}
}

func TestHasClass_SingleElementScenario(t *testing.T) {
	rt, err := New(nil, WithLogger(quietLogger()), WithoutTracing())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	d := rt.Q(`<div id="d" class="a b"></div>`)
	if !d.HasClass("a b") {
		t.Error(`HasClass("a b") = false`)
	}
	if d.HasClass("") {
		t.Error(`HasClass("") = true`)
	}
}

func TestAttrAndText(t *testing.T) {
	rt := newRuntime(t)
	lis := rt.Q("li").SetAttr("data-k", "v")
	for _, n := range lis.Nodes() {
		if v, _ := rt.Q(n).Attr("data-k"); v != "v" {
			t.Errorf("data-k = %q", v)
		}
	}
	if _, ok := rt.Q("").Attr("id"); ok {
		t.Error("Attr() on empty reported a value")
	}
	if got := lis.Text(); got != "1234" {
		t.Errorf("Text() = %q, want 1234", got)
	}
	if got := rt.Q("#i1").HTML(); got != `<li id="i1" data-k="v">1</li>` {
		t.Errorf("HTML() = %q", got)
	}
}
