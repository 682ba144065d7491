// internal/domain/sale/rows.go
package sale

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TimestampLayout is the ISO-8601 form stored in the Timestamp column
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// DefaultCashier is recorded when no cashier e-mail is known
const DefaultCashier = "sistema"

// HeaderRow renders the sales table row:
// ID_Venta, Fecha, Hora, Total, Pago_Recibido, Cambio, Usuario, Timestamp
func HeaderRow(s *Sale, cashier string, now time.Time) []string {
	if cashier == "" {
		cashier = DefaultCashier
	}
	return []string{
		strconv.Itoa(s.OrderNumber),
		s.Date,
		s.Time,
		s.Total.StringFixed(2),
		s.Received.StringFixed(2),
		s.Change.StringFixed(2),
		cashier,
		now.UTC().Format(TimestampLayout),
	}
}

// Details converts the sale items into detail lines numbered after lastDetailID.
// It returns the lines and the last detail id used.
func Details(s *Sale, lastDetailID int) ([]DetailLine, int) {
	out := make([]DetailLine, len(s.Items))
	for i, it := range s.Items {
		lastDetailID++
		out[i] = DetailLine{
			DetailID:    lastDetailID,
			OrderNumber: s.OrderNumber,
			ProductID:   it.ProductID,
			ProductName: it.Name,
			SideID:      it.SideID,
			SideName:    it.SideName,
			Quantity:    it.Quantity,
			UnitPrice:   it.Price,
			Subtotal:    it.Subtotal(),
			CategoryID:  it.CategoryID,
		}
	}
	return out, lastDetailID
}

// Row renders the detail table row:
// ID_Detalle, ID_Venta, ID_Producto, Nombre_Producto, ID_Acompañamiento,
// Nombre_Acompañamiento, Cantidad, Precio_Unitario, Subtotal, ID_Categoria
func (d DetailLine) Row() []string {
	sideID := ""
	if d.SideID != nil {
		sideID = strconv.Itoa(*d.SideID)
	}
	return []string{
		strconv.Itoa(d.DetailID),
		strconv.Itoa(d.OrderNumber),
		strconv.Itoa(d.ProductID),
		d.ProductName,
		sideID,
		d.SideName,
		strconv.Itoa(d.Quantity),
		d.UnitPrice.StringFixed(2),
		d.Subtotal.StringFixed(2),
		d.CategoryID,
	}
}

// DetailRows renders the detail rows of a sale and returns the advanced detail id
func DetailRows(s *Sale, lastDetailID int) ([][]string, int) {
	lines, last := Details(s, lastDetailID)
	rows := make([][]string, len(lines))
	for i, d := range lines {
		rows[i] = d.Row()
	}
	return rows, last
}

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

// atoi parses an integer cell, accepting "12.0"; invalid cells yield 0
func atoi(raw string) int {
	if raw == "" {
		return 0
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return int(f)
	}
	return 0
}

func parseAmount(raw string) decimal.Decimal {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}
