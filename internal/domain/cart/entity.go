// internal/domain/cart/entity.go
package cart

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Line is one product and side combination in the cart.
// Price is captured when the line is created and never re-read from the catalog.
type Line struct {
	Key        string          `json:"key"`
	ProductID  int             `json:"product_id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	SideID     *int            `json:"side_id,omitempty"`
	SideName   string          `json:"side_name,omitempty"`
	Quantity   int             `json:"quantity"`
	CategoryID string          `json:"category_id"`
}

// Subtotal returns price * quantity
func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Totals summarises the cart
type Totals struct {
	LineCount int             `json:"line_count"` // Number of distinct lines
	ItemCount int             `json:"item_count"` // Sum of all quantities
	Total     decimal.Decimal `json:"total"`
}

// Key computes the merge key of a line. Lines without a side name use the
// bare product id.
func Key(productID int, sideID *int, sideName string) string {
	key := strconv.Itoa(productID)
	if sideName == "" {
		return key
	}
	side := ""
	if sideID != nil {
		side = strconv.Itoa(*sideID)
	}
	return key + "-" + side
}
