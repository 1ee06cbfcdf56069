package domain

import "sort"

// Category is a named product-id range in the catalog.
// Membership is inclusive of both bounds.
type Category struct {
	// Name is the category label, e.g. "adhesives".
	Name string

	// FirstProduct is the lowest product id in the category.
	FirstProduct int64

	// LastProduct is the highest product id in the category.
	LastProduct int64
}

// Contains reports whether productID belongs to the category.
func (c Category) Contains(productID int64) bool {
	return productID >= c.FirstProduct && productID <= c.LastProduct
}

// CategoryPartition is a static mapping from category label to the
// products in it. It is only ever used as a post-filter on ranked
// results, never as an index structure.
type CategoryPartition struct {
	byName map[string]Category
}

// NewCategoryPartition builds a partition from categories.
// Later duplicates of a name replace earlier ones.
func NewCategoryPartition(categories []Category) CategoryPartition {
	p := CategoryPartition{byName: make(map[string]Category, len(categories))}
	for _, c := range categories {
		p.byName[c.Name] = c
	}
	return p
}

// Lookup returns the named category.
func (p CategoryPartition) Lookup(name string) (Category, bool) {
	c, ok := p.byName[name]
	return c, ok
}

// Names returns category labels in sorted order.
func (p CategoryPartition) Names() []string {
	names := make([]string, 0, len(p.byName))
	for n := range p.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// CategoryOf returns the label of the category containing productID,
// or "" if none does. Ties resolve to the alphabetically first label.
func (p CategoryPartition) CategoryOf(productID int64) string {
	for _, n := range p.Names() {
		if p.byName[n].Contains(productID) {
			return n
		}
	}
	return ""
}

// Len returns the number of categories.
func (p CategoryPartition) Len() int {
	return len(p.byName)
}
