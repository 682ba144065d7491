// internal/domain/session/view.go
package session

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/your-org/pos-backend/internal/domain/analytics"
	"github.com/your-org/pos-backend/internal/domain/cart"
	"github.com/your-org/pos-backend/internal/domain/catalog"
	"github.com/your-org/pos-backend/internal/domain/sale"
)

// View is everything the sales screen shows
type View struct {
	Connected       bool               `json:"connected"`
	Email           string             `json:"email,omitempty"`
	Categories      []CategoryView     `json:"categories"`
	CurrentCategory string             `json:"current_category"`
	Products        []catalog.Product  `json:"products"`
	EmptyMessage    string             `json:"empty_message,omitempty"`
	Cart            CartView           `json:"cart"`
	PayEnabled      bool               `json:"pay_enabled"`
	OrderLabel      string             `json:"order_label"`
	PendingSide     *PendingSideView   `json:"pending_side,omitempty"`
	Payment         *sale.Quote        `json:"payment,omitempty"`
	Confirmation    *Confirmation      `json:"confirmation,omitempty"`
	LastSale        analytics.LastSale `json:"last_sale"`
	ShiftStart      string             `json:"shift_start"`
}

// CategoryView is one category tab
type CategoryView struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// CartView is the cart panel
type CartView struct {
	Lines     []LineView      `json:"lines"`
	ItemCount int             `json:"item_count"`
	Total     decimal.Decimal `json:"total"`
	Empty     bool            `json:"empty"`
}

// LineView is one cart row
type LineView struct {
	Key      string          `json:"key"`
	Name     string          `json:"name"`
	Side     string          `json:"side,omitempty"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// PendingSideView asks for the side of a product
type PendingSideView struct {
	Product catalog.Product      `json:"product"`
	Options []catalog.SideOption `json:"options"`
}

// viewState is a copy of the session state taken under the lock
type viewState struct {
	connected       bool
	email           string
	snapshot        *catalog.Snapshot
	currentCategory string
	lines           []cart.Line
	nextOrderNumber int
	pending         *catalog.Product
	received        *decimal.Decimal
	confirmed       *Confirmation
	history         []sale.Sale
	shiftStart      time.Time
}

// View projects the current state
func (s *Session) View() View {
	s.mu.Lock()
	st := viewState{
		connected:       s.connected,
		email:           s.email,
		snapshot:        s.store.Snapshot(),
		currentCategory: s.currentCategory,
		lines:           s.ledger.Lines(),
		nextOrderNumber: s.state.nextOrderNumber,
		pending:         s.pending,
		received:        s.received,
		confirmed:       s.confirmed,
		history:         s.state.history,
		shiftStart:      s.state.shiftStart,
	}
	s.mu.Unlock()

	return project(st, s.cfg.Location())
}

// project maps state to the view without side effects
func project(st viewState, loc *time.Location) View {
	v := View{
		Connected:       st.connected,
		Email:           st.email,
		CurrentCategory: st.currentCategory,
		OrderLabel:      sale.FormatOrderNumber(st.nextOrderNumber),
		Confirmation:    st.confirmed,
		LastSale:        analytics.Last(st.history),
		ShiftStart:      "--:--",
	}

	for _, c := range catalog.SortedCategories(st.snapshot.Categories) {
		v.Categories = append(v.Categories, CategoryView{
			ID:     c.ID,
			Label:  c.Label(),
			Active: c.ID == st.currentCategory,
		})
	}
	if v.Categories == nil {
		v.Categories = []CategoryView{}
	}

	v.Products = append([]catalog.Product{}, st.snapshot.Products[st.currentCategory]...)
	switch {
	case !st.connected && len(st.snapshot.Categories) == 0:
		v.EmptyMessage = "Conecta con Google para cargar el menú"
	case len(v.Products) == 0:
		v.EmptyMessage = "No hay productos en esta categoría"
	}

	total := decimal.Zero
	v.Cart.Lines = make([]LineView, len(st.lines))
	for i, l := range st.lines {
		v.Cart.Lines[i] = LineView{
			Key:      l.Key,
			Name:     l.Name,
			Side:     l.SideName,
			Price:    l.Price,
			Quantity: l.Quantity,
			Subtotal: l.Subtotal(),
		}
		v.Cart.ItemCount += l.Quantity
		total = total.Add(l.Subtotal())
	}
	v.Cart.Total = total
	v.Cart.Empty = len(st.lines) == 0
	v.PayEnabled = !v.Cart.Empty && st.confirmed == nil

	if st.pending != nil {
		v.PendingSide = &PendingSideView{
			Product: *st.pending,
			Options: append([]catalog.SideOption{}, st.snapshot.Sides...),
		}
	}

	if st.received != nil {
		q := sale.NewQuote(total, *st.received)
		v.Payment = &q
	}

	if !st.shiftStart.IsZero() {
		v.ShiftStart = st.shiftStart.In(loc).Format("15:04")
	}
	return v
}
