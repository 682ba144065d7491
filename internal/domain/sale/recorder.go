// internal/domain/sale/recorder.go
package sale

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/your-org/pos-backend/internal/domain/cart"
)

// Recorder turns a cart and a payment into a Sale
type Recorder struct {
	location   *time.Location
	dateLayout string
	timeLayout string
	now        func() time.Time
}

// NewRecorder creates a recorder formatting dates in loc with the given layouts
func NewRecorder(loc *time.Location, dateLayout, timeLayout string) *Recorder {
	if loc == nil {
		loc = time.UTC
	}
	return &Recorder{
		location:   loc,
		dateLayout: dateLayout,
		timeLayout: timeLayout,
		now:        time.Now,
	}
}

// WithClock replaces the time source. Used by tests.
func (r *Recorder) WithClock(now func() time.Time) *Recorder {
	r.now = now
	return r
}

// Now returns the current time in the recorder's location
func (r *Recorder) Now() time.Time {
	return r.now().In(r.location)
}

// FormatDate renders t as the display date
func (r *Recorder) FormatDate(t time.Time) string {
	return t.In(r.location).Format(r.dateLayout)
}

// FormatTime renders t as the display time
func (r *Recorder) FormatTime(t time.Time) string {
	return t.In(r.location).Format(r.timeLayout)
}

// Finalize builds the sale for orderNumber. The total is computed once from
// the lines, which are deep-copied.
func (r *Recorder) Finalize(orderNumber int, lines []cart.Line, received decimal.Decimal, cashier string) (*Sale, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	items := make([]Item, len(lines))
	total := decimal.Zero
	for i, l := range lines {
		items[i] = ItemFromLine(l)
		total = total.Add(items[i].Subtotal())
	}

	change := received.Sub(total)
	if change.IsNegative() {
		return nil, ErrInsufficientPayment
	}

	now := r.Now()
	return &Sale{
		OrderNumber: orderNumber,
		Items:       items,
		Total:       total,
		Received:    received,
		Change:      change,
		Date:        r.FormatDate(now),
		Time:        r.FormatTime(now),
		Timestamp:   now.UTC(),
		Cashier:     cashier,
	}, nil
}
