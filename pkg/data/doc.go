// Package data is a per-owner keyed cache with isolated namespaces.
//
// A Store maps each owner (an *html.Node or any other comparable value,
// usually a pointer) to one cache per expando. A Data value is a view on the
// store for one namespace; its expando is "DATASET:UID:" + upper(name).
//
//	store := data.NewStore()
//	d := data.Default(store)
//	d.Set(el, "user-name", "ada")
//	d.Get(el, "userName") // "ada"
//
// For element owners, reads fall back to data-* attributes. Attribute values
// are decoded as JSON when valid and memoized into the cache.
package data
