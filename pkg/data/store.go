package data

import (
	"reflect"
	"sync"
	"unsafe"

	"golang.org/x/net/html"
)

// Store holds every cache of every namespace, keyed by owner then expando.
// Each owner owns its caches; nothing is shared across owners.
type Store struct {
	mu     sync.RWMutex
	owners map[any]map[string]map[string]any
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{owners: make(map[any]map[string]map[string]any)}
}

// mapOwner identifies a map owner by the map it refers to.
type mapOwner struct {
	typ reflect.Type
	ptr unsafe.Pointer
}

// ownerKey returns the store key for owner. Elements, documents, the window
// node and comparable values are their own key; maps are keyed by identity.
// Text and comment nodes and other uncomparable values carry no data.
func ownerKey(owner any) (any, bool) {
	if owner == nil {
		return nil, false
	}
	if n, ok := owner.(*html.Node); ok {
		if n == nil {
			return nil, false
		}
		switch n.Type {
		case html.ElementNode, html.DocumentNode, html.RawNode:
			return n, true
		}
		return nil, false
	}
	v := reflect.ValueOf(owner)
	if v.Kind() == reflect.Map {
		if v.IsNil() {
			return nil, false
		}
		return mapOwner{typ: v.Type(), ptr: v.UnsafePointer()}, true
	}
	if !v.Comparable() {
		return nil, false
	}
	return owner, true
}

// acceptData reports whether owner may carry a cache.
func acceptData(owner any) bool {
	_, ok := ownerKey(owner)
	return ok
}

// cache returns the live cache for owner under expando, or nil.
func (s *Store) cache(owner any, expando string) map[string]any {
	key, ok := ownerKey(owner)
	if !ok {
		return nil
	}
	return s.owners[key][expando]
}

// ensure returns the cache for an accepted owner under expando, creating it
// on first use.
func (s *Store) ensure(owner any, expando string) map[string]any {
	owner, _ = ownerKey(owner)
	byExpando, ok := s.owners[owner]
	if !ok {
		byExpando = make(map[string]map[string]any)
		s.owners[owner] = byExpando
	}
	c, ok := byExpando[expando]
	if !ok {
		c = make(map[string]any)
		byExpando[expando] = c
	}
	return c
}

// drop removes the cache for owner under expando.
func (s *Store) drop(owner any, expando string) {
	owner, accepted := ownerKey(owner)
	if !accepted {
		return
	}
	byExpando, ok := s.owners[owner]
	if !ok {
		return
	}
	delete(byExpando, expando)
	if len(byExpando) == 0 {
		delete(s.owners, owner)
	}
}

// Expandos returns the expandos that currently hold a cache on owner.
func (s *Store) Expandos(owner any) []string {
	key, ok := ownerKey(owner)
	if !ok {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.owners[key]))
	for k := range s.owners[key] {
		out = append(out, k)
	}
	return out
}

// Forget drops every cache of owner, across all namespaces.
func (s *Store) Forget(owner any) {
	key, ok := ownerKey(owner)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.owners, key)
}
