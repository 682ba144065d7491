// internal/domain/catalog/store.go
package catalog

import "sync/atomic"

// Store publishes catalog snapshots. Replace swaps categories, products and
// sides in one step so readers never see a mix of two loads.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore creates an empty store
func NewStore() *Store {
	s := &Store{}
	s.current.Store(EmptySnapshot())
	return s
}

// Snapshot returns the current snapshot. Callers must not modify it.
func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

// Replace publishes a new snapshot
func (s *Store) Replace(snap *Snapshot) {
	if snap == nil {
		snap = EmptySnapshot()
	}
	s.current.Store(snap)
}

// Reset drops all catalog data
func (s *Store) Reset() {
	s.current.Store(EmptySnapshot())
}

// Loaded reports whether any category is available
func (s *Store) Loaded() bool {
	return len(s.Snapshot().Categories) > 0
}

// Categories returns categories sorted for display
func (s *Store) Categories() []Category {
	return SortedCategories(s.Snapshot().Categories)
}

// Category looks up a category by id
func (s *Store) Category(id string) (Category, bool) {
	for _, c := range s.Snapshot().Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// ProductsIn returns the products of one category
func (s *Store) ProductsIn(categoryID string) []Product {
	return append([]Product(nil), s.Snapshot().Products[categoryID]...)
}

// FindProduct scans every category and returns the first product with the id
func (s *Store) FindProduct(id int) (Product, bool) {
	snap := s.Snapshot()
	for _, c := range SortedCategories(snap.Categories) {
		for _, p := range snap.Products[c.ID] {
			if p.ID == id {
				return p, true
			}
		}
	}
	return Product{}, false
}

// Sides returns the side options in display order
func (s *Store) Sides() []SideOption {
	return append([]SideOption(nil), s.Snapshot().Sides...)
}

// FindSide looks up a side option by id
func (s *Store) FindSide(id int) (SideOption, bool) {
	for _, side := range s.Snapshot().Sides {
		if side.ID == id {
			return side, true
		}
	}
	return SideOption{}, false
}
