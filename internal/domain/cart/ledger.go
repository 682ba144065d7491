// internal/domain/cart/ledger.go
package cart

import (
	"errors"

	"github.com/shopspring/decimal"
	"github.com/your-org/pos-backend/internal/domain/catalog"
)

// ErrLineNotFound is returned when a line key is not in the cart
var ErrLineNotFound = errors.New("cart line not found")

// Ledger is the ordered collection of cart lines. It is not safe for
// concurrent use; the session serialises access.
type Ledger struct {
	lines    []Line
	onChange func()
}

// NewLedger creates an empty ledger
func NewLedger() *Ledger {
	return &Ledger{lines: []Line{}}
}

// Restore creates a ledger holding a copy of lines
func Restore(lines []Line) *Ledger {
	l := NewLedger()
	for _, line := range lines {
		l.lines = append(l.lines, copyLine(line))
	}
	return l
}

// OnChange registers a callback invoked after every mutation
func (l *Ledger) OnChange(fn func()) {
	l.onChange = fn
}

// Add merges the product into an existing line with the same key or appends
// a new line with quantity 1.
func (l *Ledger) Add(p catalog.Product, sideID *int, sideName string) Line {
	key := Key(p.ID, sideID, sideName)
	if i := l.index(key); i >= 0 {
		l.lines[i].Quantity++
		l.changed()
		return copyLine(l.lines[i])
	}

	line := Line{
		Key:        key,
		ProductID:  p.ID,
		Name:       p.Name,
		Price:      p.Price,
		SideName:   sideName,
		Quantity:   1,
		CategoryID: p.CategoryID,
	}
	if sideName != "" && sideID != nil {
		id := *sideID
		line.SideID = &id
	}
	l.lines = append(l.lines, line)
	l.changed()
	return copyLine(line)
}

// ChangeQuantity adds delta to a line. A resulting quantity of zero or less
// removes the line.
func (l *Ledger) ChangeQuantity(key string, delta int) error {
	i := l.index(key)
	if i < 0 {
		return ErrLineNotFound
	}
	q := l.lines[i].Quantity + delta
	if q <= 0 {
		l.lines = append(l.lines[:i], l.lines[i+1:]...)
	} else {
		l.lines[i].Quantity = q
	}
	l.changed()
	return nil
}

// Remove deletes a line; absent keys are ignored
func (l *Ledger) Remove(key string) {
	i := l.index(key)
	if i < 0 {
		return
	}
	l.lines = append(l.lines[:i], l.lines[i+1:]...)
	l.changed()
}

// Clear empties the ledger
func (l *Ledger) Clear() {
	l.lines = []Line{}
	l.changed()
}

// Total returns the sum of price * quantity over all lines
func (l *Ledger) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range l.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// ItemCount returns the sum of quantities
func (l *Ledger) ItemCount() int {
	n := 0
	for _, line := range l.lines {
		n += line.Quantity
	}
	return n
}

// Totals returns line count, item count and total
func (l *Ledger) Totals() Totals {
	return Totals{
		LineCount: len(l.lines),
		ItemCount: l.ItemCount(),
		Total:     l.Total(),
	}
}

// Len returns the number of distinct lines
func (l *Ledger) Len() int {
	return len(l.lines)
}

// IsEmpty reports whether the cart has no lines
func (l *Ledger) IsEmpty() bool {
	return len(l.lines) == 0
}

// Get returns a copy of the line with the key
func (l *Ledger) Get(key string) (Line, bool) {
	if i := l.index(key); i >= 0 {
		return copyLine(l.lines[i]), true
	}
	return Line{}, false
}

// Lines returns a deep copy of the lines in insertion order
func (l *Ledger) Lines() []Line {
	out := make([]Line, len(l.lines))
	for i, line := range l.lines {
		out[i] = copyLine(line)
	}
	return out
}

func (l *Ledger) index(key string) int {
	for i, line := range l.lines {
		if line.Key == key {
			return i
		}
	}
	return -1
}

func (l *Ledger) changed() {
	if l.onChange != nil {
		l.onChange()
	}
}

func copyLine(line Line) Line {
	if line.SideID != nil {
		id := *line.SideID
		line.SideID = &id
	}
	return line
}
