// internal/domain/sale/entity.go
package sale

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/your-org/pos-backend/internal/domain/cart"
)

var (
	// ErrEmptyCart is returned when finalizing a sale with no lines
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInsufficientPayment is returned when the received amount is below the total
	ErrInsufficientPayment = errors.New("received amount is less than the total")
)

// Category recorded for lines whose category is unknown
const OtherCategory = "otros"

// Item is a cart line frozen into a sale
type Item struct {
	Key        string          `json:"key,omitempty"`
	ProductID  int             `json:"product_id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	SideID     *int            `json:"side_id,omitempty"`
	SideName   string          `json:"side_name,omitempty"`
	Quantity   int             `json:"quantity"`
	CategoryID string          `json:"category_id"`
}

// Subtotal returns price * quantity
func (i Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Description renders "name + side xN"
func (i Item) Description() string {
	if i.SideName != "" {
		return fmt.Sprintf("%s + %s x%d", i.Name, i.SideName, i.Quantity)
	}
	return fmt.Sprintf("%s x%d", i.Name, i.Quantity)
}

// ItemFromLine snapshots a cart line
func ItemFromLine(l cart.Line) Item {
	item := Item{
		Key:        l.Key,
		ProductID:  l.ProductID,
		Name:       l.Name,
		Price:      l.Price,
		SideName:   l.SideName,
		Quantity:   l.Quantity,
		CategoryID: l.CategoryID,
	}
	if l.SideID != nil {
		id := *l.SideID
		item.SideID = &id
	}
	return item
}

// Sale is an immutable record of a completed checkout. OrderNumber is its
// identity; Date and Time are for display only.
type Sale struct {
	OrderNumber int             `json:"order_number"`
	Items       []Item          `json:"items"`
	Total       decimal.Decimal `json:"total"`
	Received    decimal.Decimal `json:"received"`
	Change      decimal.Decimal `json:"change"`
	Date        string          `json:"date"`
	Time        string          `json:"time"`
	Timestamp   time.Time       `json:"timestamp"`
	Cashier     string          `json:"cashier,omitempty"`
}

// ItemCount returns the sum of item quantities
func (s Sale) ItemCount() int {
	n := 0
	for _, it := range s.Items {
		n += it.Quantity
	}
	return n
}

// Label returns the padded order number, e.g. "#0007"
func (s Sale) Label() string {
	return FormatOrderNumber(s.OrderNumber)
}

// FormatOrderNumber pads an order number to four digits with a leading '#'
func FormatOrderNumber(n int) string {
	return fmt.Sprintf("#%04d", n)
}

// DetailLine is the persisted form of one sale item
type DetailLine struct {
	DetailID    int
	OrderNumber int
	ProductID   int
	ProductName string
	SideID      *int
	SideName    string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
	CategoryID  string
}

// Quote is the change calculation shown while the cashier types the received amount
type Quote struct {
	Total      decimal.Decimal `json:"total"`
	Received   decimal.Decimal `json:"received"`
	Change     decimal.Decimal `json:"change"`
	Shortfall  decimal.Decimal `json:"shortfall"`
	Sufficient bool            `json:"sufficient"`
}

// NewQuote computes change or shortfall for a received amount
func NewQuote(total, received decimal.Decimal) Quote {
	q := Quote{
		Total:      total,
		Received:   received,
		Change:     decimal.Zero,
		Shortfall:  decimal.Zero,
		Sufficient: received.GreaterThanOrEqual(total),
	}
	if q.Sufficient {
		q.Change = received.Sub(total)
	} else {
		q.Shortfall = total.Sub(received)
	}
	return q
}
