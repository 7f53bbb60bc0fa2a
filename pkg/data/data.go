package data

import (
	"strings"

	vqerrors "github.com/vango-dev/vquery/internal/errors"
	"github.com/vango-dev/vquery/pkg/dom"
	"golang.org/x/net/html"
)

// Reserved namespace names.
const (
	NamespaceDOM      = "dom"
	NamespaceInternal = "internal"
)

// ExpandoPrefix prefixes every expando.
const ExpandoPrefix = "DATASET:UID:"

// Data is a namespaced view on a Store.
type Data struct {
	store   *Store
	name    string
	expando string
}

// New creates a dataset for a user namespace. The reserved names "dom" and
// "internal" (in any case) are rejected with error E020.
func New(store *Store, name string) (*Data, error) {
	if isReserved(name) {
		return nil, vqerrors.New("E020").
			WithDetail("dataset name " + `"` + name + `"` + " is reserved").
			WithSuggestion("Pick a namespace of your own, e.g. \"widgets\"")
	}
	return newData(store, name), nil
}

// Default returns the "dom" dataset backing the public data API.
func Default(store *Store) *Data {
	return newData(store, NamespaceDOM)
}

// Internal returns the "internal" dataset used for runtime bookkeeping.
func Internal(store *Store) *Data {
	return newData(store, NamespaceInternal)
}

func newData(store *Store, name string) *Data {
	if store == nil {
		store = NewStore()
	}
	return &Data{
		store:   store,
		name:    name,
		expando: ExpandoPrefix + strings.ToUpper(name),
	}
}

func isReserved(name string) bool {
	return strings.EqualFold(name, NamespaceDOM) || strings.EqualFold(name, NamespaceInternal)
}

// Name returns the namespace name.
func (d *Data) Name() string { return d.name }

// Expando returns the key under which this namespace's cache lives.
func (d *Data) Expando() string { return d.expando }

// Set stores value under the camelCased key.
func (d *Data) Set(owner any, key string, value any) {
	if !acceptData(owner) {
		return
	}
	d.store.mu.Lock()
	defer d.store.mu.Unlock()
	d.store.ensure(owner, d.expando)[CamelCase(key)] = value
}

// SetMap merges every entry of values into the cache.
func (d *Data) SetMap(owner any, values map[string]any) {
	if !acceptData(owner) || len(values) == 0 {
		return
	}
	d.store.mu.Lock()
	defer d.store.mu.Unlock()
	c := d.store.ensure(owner, d.expando)
	for k, v := range values {
		c[CamelCase(k)] = v
	}
}

// Lookup returns the value stored under key. When the cache has no entry
// and owner is an element, the matching data-* attribute is decoded and
// memoized.
func (d *Data) Lookup(owner any, key string) (any, bool) {
	key = CamelCase(key)

	d.store.mu.RLock()
	v, ok := d.store.cache(owner, d.expando)[key]
	d.store.mu.RUnlock()
	if ok {
		return v, true
	}

	n, isNode := owner.(*html.Node)
	if !isNode || !dom.IsElement(n) {
		return nil, false
	}
	raw, found := dom.Attr(n, AttrName(key))
	if !found {
		return nil, false
	}
	v = Decode(raw)
	d.Set(owner, key, v)
	return v, true
}

// Get returns the value under key, or nil.
func (d *Data) Get(owner any, key string) any {
	v, _ := d.Lookup(owner, key)
	return v
}

// All returns a copy of the full cache of owner, merged with the decoded
// data-* attributes of an element owner. Attribute values never override
// in-memory entries.
func (d *Data) All(owner any) map[string]any {
	if n, ok := owner.(*html.Node); ok && dom.IsElement(n) {
		for _, a := range n.Attr {
			if a.Namespace != "" || !strings.HasPrefix(a.Key, "data-") {
				continue
			}
			d.Lookup(owner, CamelCase(strings.TrimPrefix(a.Key, "data-")))
		}
	}

	d.store.mu.RLock()
	defer d.store.mu.RUnlock()
	c := d.store.cache(owner, d.expando)
	out := make(map[string]any, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Remove deletes entries from the cache of owner. With no keys the whole
// cache and its expando are dropped. Each key is camelCased; if no entry has
// that exact name the key is split on whitespace. A same-named data-*
// attribute is removed as well. Emptying the cache drops the expando.
func (d *Data) Remove(owner any, keys ...string) {
	d.store.mu.Lock()
	defer d.store.mu.Unlock()

	c := d.store.cache(owner, d.expando)
	n, _ := owner.(*html.Node)

	if len(keys) == 0 {
		d.store.drop(owner, d.expando)
		return
	}

	for _, key := range keys {
		names := []string{CamelCase(key)}
		if _, ok := c[names[0]]; !ok {
			names = names[:0]
			for _, f := range strings.Fields(key) {
				names = append(names, CamelCase(f))
			}
		}
		for _, name := range names {
			delete(c, name)
			if dom.IsElement(n) {
				dom.RemoveAttr(n, AttrName(name))
			}
		}
	}

	if c != nil && len(c) == 0 {
		d.store.drop(owner, d.expando)
	}
}

// HasData reports whether owner has a non-empty cache in this namespace.
func (d *Data) HasData(owner any) bool {
	d.store.mu.RLock()
	defer d.store.mu.RUnlock()
	return len(d.store.cache(owner, d.expando)) > 0
}
