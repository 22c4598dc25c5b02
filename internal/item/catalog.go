package item

import "github.com/osse101/realmkeeper/internal/domain"

// Catalog is an immutable index of item definitions by kind
type Catalog struct {
	byKind map[int]domain.ItemDefinition
}

// NewCatalog indexes defs by kind. Later duplicates win.
func NewCatalog(defs []domain.ItemDefinition) *Catalog {
	c := &Catalog{byKind: make(map[int]domain.ItemDefinition, len(defs))}
	for _, d := range defs {
		c.byKind[d.Kind] = d
	}
	return c
}

// Lookup returns the definition for kind
func (c *Catalog) Lookup(kind int) (domain.ItemDefinition, bool) {
	d, ok := c.byKind[kind]
	return d, ok
}

// Len returns the number of known kinds
func (c *Catalog) Len() int {
	return len(c.byKind)
}
