// internal/domain/sale/ticket.go
package sale

import "github.com/shopspring/decimal"

// TicketLine is one printed line of a ticket
type TicketLine struct {
	Quantity int    `json:"quantity"`
	Name     string `json:"name"`
	Side     string `json:"side,omitempty"`
	Subtotal string `json:"subtotal"`
}

// Ticket is the printable receipt of a sale. Amounts are pre-formatted.
type Ticket struct {
	Business string       `json:"business"`
	Number   string       `json:"number"`
	Date     string       `json:"date"`
	Time     string       `json:"time"`
	Lines    []TicketLine `json:"lines"`
	Total    string       `json:"total"`
	Received string       `json:"received"`
	Change   string       `json:"change"`
	Cashier  string       `json:"cashier,omitempty"`
}

// NewTicket builds the receipt of a sale with amounts prefixed by currency
func NewTicket(s *Sale, business, currency string) Ticket {
	money := func(v decimal.Decimal) string {
		return currency + " " + v.StringFixed(2)
	}

	lines := make([]TicketLine, len(s.Items))
	for i, it := range s.Items {
		lines[i] = TicketLine{
			Quantity: it.Quantity,
			Name:     it.Name,
			Side:     it.SideName,
			Subtotal: money(it.Subtotal()),
		}
	}

	return Ticket{
		Business: business,
		Number:   s.Label(),
		Date:     s.Date,
		Time:     s.Time,
		Lines:    lines,
		Total:    money(s.Total),
		Received: money(s.Received),
		Change:   money(s.Change),
		Cashier:  s.Cashier,
	}
}
