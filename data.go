package vquery

// Data returns the value under key for the first node.
func (c *Collection) Data(key string) any {
	if c.empty() {
		return nil
	}
	return c.rt.data.Get(c.nodes[0], key)
}

// DataAll returns the whole cache of the first node, data-* attributes
// included.
func (c *Collection) DataAll() map[string]any {
	if c.empty() {
		return nil
	}
	return c.rt.data.All(c.nodes[0])
}

// SetData stores value under key on every node.
func (c *Collection) SetData(key string, value any) *Collection {
	for _, n := range c.Nodes() {
		c.rt.data.Set(n, key, value)
	}
	return c
}

// SetDataMap merges values into the cache of every node.
func (c *Collection) SetDataMap(values map[string]any) *Collection {
	for _, n := range c.Nodes() {
		c.rt.data.SetMap(n, values)
	}
	return c
}

// RemoveData removes keys from every node; without keys the caches go.
func (c *Collection) RemoveData(keys ...string) *Collection {
	for _, n := range c.Nodes() {
		c.rt.data.Remove(n, keys...)
	}
	return c
}

// HasData reports whether the first node has cached data.
func (c *Collection) HasData() bool {
	if c.empty() {
		return false
	}
	return c.rt.data.HasData(c.nodes[0])
}
