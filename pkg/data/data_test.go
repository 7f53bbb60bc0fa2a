package data

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	vqerrors "github.com/vango-dev/vquery/internal/errors"
	"github.com/vango-dev/vquery/pkg/dom"
	"golang.org/x/net/html"
)

func element(t *testing.T, markup string) *html.Node {
	t.Helper()
	d, err := dom.ParseString("<body>"+markup+"</body>", "")
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	n := dom.Children(d.Body())
	if len(n) == 0 {
		t.Fatalf("no element in %q", markup)
	}
	return n[0]
}

func TestNewRejectsReservedNames(t *testing.T) {
	store := NewStore()
	for _, name := range []string{"dom", "DOM", "internal", "Internal"} {
		t.Run(name, func(t *testing.T) {
			d, err := New(store, name)
			if d != nil {
				t.Errorf("New(%q) returned a dataset", name)
			}
			if !vqerrors.HasCode(err, "E020") {
				t.Errorf("New(%q) error = %v, want E020", name, err)
			}
		})
	}
}

func TestExpando(t *testing.T) {
	d, err := New(NewStore(), "widgets")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got, want := d.Expando(), "DATASET:UID:WIDGETS"; got != want {
		t.Errorf("Expando() = %q, want %q", got, want)
	}
	if got := Default(NewStore()).Expando(); got != "DATASET:UID:DOM" {
		t.Errorf("Default().Expando() = %q", got)
	}
	if got := Internal(NewStore()).Expando(); got != "DATASET:UID:INTERNAL" {
		t.Errorf("Internal().Expando() = %q", got)
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	el := element(t, `<div></div>`)
	d := Default(NewStore())

	d.Set(el, "user-name", "ada")
	if got := d.Get(el, "userName"); got != "ada" {
		t.Errorf("Get(userName) = %v, want ada", got)
	}
	if got := d.Get(el, "user-name"); got != "ada" {
		t.Errorf("Get(user-name) = %v, want ada", got)
	}

	d.SetMap(el, map[string]any{"a": 1, "b-c": true})
	want := map[string]any{"userName": "ada", "a": 1, "bC": true}
	if diff := cmp.Diff(want, d.All(el)); diff != "" {
		t.Errorf("All() mismatch (-want +got):\n%s", diff)
	}
}

func TestNamespacesAreIsolated(t *testing.T) {
	store := NewStore()
	el := element(t, `<div></div>`)
	pub := Default(store)
	priv, err := New(store, "widgets")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	pub.Set(el, "k", "public")
	priv.Set(el, "k", "private")

	if got := pub.Get(el, "k"); got != "public" {
		t.Errorf("dom k = %v", got)
	}
	if got := priv.Get(el, "k"); got != "private" {
		t.Errorf("widgets k = %v", got)
	}
	if got := len(store.Expandos(el)); got != 2 {
		t.Errorf("Expandos() = %d, want 2", got)
	}
}

func TestAttributeFallback(t *testing.T) {
	el := element(t, `<div data-count="42" data-flags='{"on":true}' data-user-name="ada" data-raw="not json"></div>`)
	d := Default(NewStore())

	tests := []struct {
		key  string
		want any
	}{
		{"count", float64(42)},
		{"flags", map[string]any{"on": true}},
		{"userName", "ada"},
		{"user-name", "ada"},
		{"raw", "not json"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, d.Get(el, tt.key)); diff != "" {
				t.Errorf("Get(%q) mismatch (-want +got):\n%s", tt.key, diff)
			}
		})
	}

	if _, ok := d.Lookup(el, "missing"); ok {
		t.Error("Lookup(missing) found a value")
	}
	if !d.HasData(el) {
		t.Error("attribute reads should be memoized into the cache")
	}
}

func TestAllMergesAttributes(t *testing.T) {
	el := element(t, `<div data-a="1" data-b-c="x"></div>`)
	d := Default(NewStore())
	d.Set(el, "a", "memory")

	want := map[string]any{"a": "memory", "bC": "x"}
	if diff := cmp.Diff(want, d.All(el)); diff != "" {
		t.Errorf("All() mismatch (-want +got):\n%s", diff)
	}
}

func TestRemove(t *testing.T) {
	t.Run("single key", func(t *testing.T) {
		el := element(t, `<div></div>`)
		d := Default(NewStore())
		d.SetMap(el, map[string]any{"a": 1, "b": 2})
		d.Remove(el, "a")
		if _, ok := d.Lookup(el, "a"); ok {
			t.Error("a still present")
		}
		if d.Get(el, "b") != 2 {
			t.Error("b removed")
		}
	})

	t.Run("whitespace list", func(t *testing.T) {
		el := element(t, `<div></div>`)
		d := Default(NewStore())
		d.SetMap(el, map[string]any{"a": 1, "b": 2, "c": 3})
		d.Remove(el, "a b")
		if diff := cmp.Diff(map[string]any{"c": 3}, d.All(el)); diff != "" {
			t.Errorf("All() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("exact key with space wins", func(t *testing.T) {
		el := element(t, `<div></div>`)
		d := Default(NewStore())
		d.SetMap(el, map[string]any{"a b": 1, "a": 2})
		d.Remove(el, "a b")
		if d.Get(el, "a") != 2 {
			t.Error("a removed although the exact key existed")
		}
	})

	t.Run("attribute removed", func(t *testing.T) {
		el := element(t, `<div data-user-name="ada"></div>`)
		d := Default(NewStore())
		d.Remove(el, "userName")
		if dom.HasAttr(el, "data-user-name") {
			t.Error("data-user-name still present")
		}
		if _, ok := d.Lookup(el, "userName"); ok {
			t.Error("userName still readable")
		}
	})

	t.Run("empty cache drops expando", func(t *testing.T) {
		store := NewStore()
		el := element(t, `<div></div>`)
		d := Default(store)
		d.Set(el, "a", 1)
		d.Remove(el, "a")
		if got := store.Expandos(el); len(got) != 0 {
			t.Errorf("Expandos() = %v, want none", got)
		}
	})

	t.Run("no keys drops everything", func(t *testing.T) {
		el := element(t, `<div></div>`)
		d := Default(NewStore())
		d.SetMap(el, map[string]any{"a": 1, "b": 2})
		d.Remove(el)
		if d.HasData(el) {
			t.Error("HasData() after Remove()")
		}
	})
}

func TestNonAcceptingOwners(t *testing.T) {
	d := Default(NewStore())
	text := &html.Node{Type: html.TextNode, Data: "x"}
	comment := &html.Node{Type: html.CommentNode, Data: "c"}

	for _, n := range []*html.Node{text, comment} {
		d.Set(n, "a", 1)
		if d.HasData(n) {
			t.Errorf("%v node retained data", n.Type)
		}
	}
	d.Set(nil, "a", 1)
}

func TestNonNodeOwners(t *testing.T) {
	type owner struct{ name string }
	o := &owner{"plain"}
	d := Default(NewStore())
	d.Set(o, "a", "b")
	if d.Get(o, "a") != "b" {
		t.Errorf("Get() = %v", d.Get(o, "a"))
	}
}

func TestMapOwners(t *testing.T) {
	d := Default(NewStore())
	obj := map[string]any{"x": 1}
	other := map[string]any{"x": 1}

	d.Set(obj, "a", 1)
	if got := d.Get(obj, "a"); got != 1 {
		t.Errorf("Get() = %v, want 1", got)
	}
	if d.HasData(other) {
		t.Error("equal map shares the cache of another map")
	}
	if diff := cmp.Diff(map[string]any{"a": 1}, d.All(obj)); diff != "" {
		t.Errorf("All() mismatch (-want +got):\n%s", diff)
	}
	d.Remove(obj, "a")
	if d.HasData(obj) {
		t.Error("HasData() after Remove()")
	}

	var nilMap map[string]any
	d.Set(nilMap, "a", 1)
	if d.HasData(nilMap) {
		t.Error("nil map retained data")
	}
}

func TestUncomparableOwners(t *testing.T) {
	d := Default(NewStore())
	for name, owner := range map[string]any{
		"slice": []int{1},
		"func":  func() {},
	} {
		t.Run(name, func(t *testing.T) {
			d.Set(owner, "a", 1)
			d.SetMap(owner, map[string]any{"b": 2})
			if _, ok := d.Lookup(owner, "a"); ok {
				t.Error("Lookup() found data")
			}
			if d.HasData(owner) || len(d.All(owner)) != 0 {
				t.Error("uncomparable owner retained data")
			}
			d.Remove(owner, "a")
			d.Remove(owner)
		})
	}
}

func TestKeys(t *testing.T) {
	tests := []struct{ in, camel, attr string }{
		{"user-name", "userName", "data-user-name"},
		{"userName", "userName", "data-user-name"},
		{"a", "a", "data-a"},
		{"x-y-z", "xYZ", "data-x-y-z"},
	}
	for _, tt := range tests {
		if got := CamelCase(tt.in); got != tt.camel {
			t.Errorf("CamelCase(%q) = %q, want %q", tt.in, got, tt.camel)
		}
		if got := AttrName(tt.in); got != tt.attr {
			t.Errorf("AttrName(%q) = %q, want %q", tt.in, got, tt.attr)
		}
	}
	if diff := cmp.Diff([]any{1.0, 2.0}, Decode("[1,2]")); diff != "" {
		t.Errorf("Decode([1,2]) mismatch (-want +got):\n%s", diff)
	}
	if got := Decode(" plain "); got != " plain " {
		t.Errorf("Decode(plain) = %v", got)
	}
}
