package props

import "sync/atomic"

// Catalog is the ordered, read-only list of loaded definitions. Readers get a
// stable snapshot; Replace swaps the whole list at once.
type Catalog struct {
	defs atomic.Pointer[[]Definition]
}

// NewCatalog returns a catalog holding defs.
func NewCatalog(defs []Definition) *Catalog {
	c := &Catalog{}
	c.Replace(defs)
	return c
}

// All returns the current snapshot. Callers must not modify it.
func (c *Catalog) All() []Definition {
	p := c.defs.Load()
	if p == nil {
		return nil
	}
	return *p
}

// Len returns the number of definitions.
func (c *Catalog) Len() int {
	return len(c.All())
}

// Replace publishes a new list of definitions.
func (c *Catalog) Replace(defs []Definition) {
	snapshot := append([]Definition(nil), defs...)
	c.defs.Store(&snapshot)
}
