// internal/domain/catalog/entity.go
package catalog

import (
	"sort"

	"github.com/shopspring/decimal"
)

// DefaultOrder is used when sorting categories that carry no order
const DefaultOrder = 99

// Category groups products on the sales screen
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Order int    `json:"order"`
}

// Label returns the icon followed by the name, as shown in charts
func (c Category) Label() string {
	if c.Icon == "" {
		return c.Name
	}
	return c.Icon + " " + c.Name
}

// Product is a sellable item. Price is never negative.
type Product struct {
	ID         int             `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	CategoryID string          `json:"category_id"`
	HasSide    bool            `json:"has_side"`
}

// SideOption is an accompaniment chosen for products that require one
type SideOption struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Order int    `json:"order"`
}

// Snapshot is one consistent view of the whole catalog. It is never mutated
// after being published to a Store.
type Snapshot struct {
	Categories []Category           `json:"categories"`
	Products   map[string][]Product `json:"products"`
	Sides      []SideOption         `json:"sides"`
}

// EmptySnapshot returns a snapshot with no data
func EmptySnapshot() *Snapshot {
	return &Snapshot{
		Categories: []Category{},
		Products:   map[string][]Product{},
		Sides:      []SideOption{},
	}
}

// DefaultCategories are used when the datastore has no active categories
func DefaultCategories() []Category {
	return []Category{
		{ID: "milanesas", Name: "Milanesas", Icon: "🥩", Order: 1},
		{ID: "pollos", Name: "Pollos", Icon: "🍗", Order: 2},
		{ID: "extras", Name: "Extras", Icon: "🍟", Order: 3},
		{ID: "bebidas", Name: "Bebidas", Icon: "🥤", Order: 4},
	}
}

// DefaultSides are used when the datastore has no active side options
func DefaultSides() []SideOption {
	return []SideOption{
		{ID: 1, Name: "Arroz Blanco", Order: 1},
		{ID: 2, Name: "Fideo", Order: 2},
		{ID: 3, Name: "Ensalada", Order: 3},
	}
}

// SortedCategories returns categories ordered by Order then ID.
// A zero order sorts as DefaultOrder.
func SortedCategories(in []Category) []Category {
	out := append([]Category(nil), in...)
	sort.SliceStable(out, func(i, j int) bool {
		oi, oj := effectiveOrder(out[i].Order), effectiveOrder(out[j].Order)
		if oi != oj {
			return oi < oj
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func effectiveOrder(o int) int {
	if o == 0 {
		return DefaultOrder
	}
	return o
}
