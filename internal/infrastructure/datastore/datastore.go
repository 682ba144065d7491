// internal/infrastructure/datastore/datastore.go
package datastore

import (
	"context"
	"errors"
	"fmt"

	"github.com/your-org/pos-backend/internal/config"
)

// Table identifies one of the five tables of the tabular backend
type Table int

const (
	TableCategories Table = iota
	TableProducts
	TableSides
	TableSales
	TableSaleDetails
)

// ErrUnauthorized is returned by drivers when the credential is rejected
var ErrUnauthorized = errors.New("datastore credential rejected")

type tableSpec struct {
	header  []string
	lastRow int
}

var specs = map[Table]tableSpec{
	TableCategories: {
		header:  []string{"ID_Categoria", "Nombre", "Icono", "Orden", "Activo"},
		lastRow: 100,
	},
	TableProducts: {
		header:  []string{"ID_Producto", "Nombre", "Precio", "ID_Categoria", "Tiene_Acompañamiento", "Activo"},
		lastRow: 500,
	},
	TableSides: {
		header:  []string{"ID_Acompañamiento", "Nombre", "Orden", "Activo"},
		lastRow: 50,
	},
	TableSales: {
		header:  []string{"ID_Venta", "Fecha", "Hora", "Total", "Pago_Recibido", "Cambio", "Usuario", "Timestamp"},
		lastRow: 50000,
	},
	TableSaleDetails: {
		header:  []string{"ID_Detalle", "ID_Venta", "ID_Producto", "Nombre_Producto", "ID_Acompañamiento", "Nombre_Acompañamiento", "Cantidad", "Precio_Unitario", "Subtotal", "ID_Categoria"},
		lastRow: 100000,
	},
}

// AllTables returns the tables in schema order
func AllTables() []Table {
	return []Table{TableCategories, TableProducts, TableSides, TableSales, TableSaleDetails}
}

// Header returns a copy of the table's header row
func (t Table) Header() []string {
	return append([]string(nil), specs[t].header...)
}

// Columns returns the number of columns read and written for the table
func (t Table) Columns() int {
	return len(specs[t].header)
}

// LastRow is the last 1-based sheet row included in reads (row 1 is the header).
func (t Table) LastRow() int {
	return specs[t].lastRow
}

// LastColumn returns the spreadsheet column letter of the last column
func (t Table) LastColumn() string {
	return string(rune('A' + t.Columns() - 1))
}

func (t Table) String() string {
	switch t {
	case TableCategories:
		return "categories"
	case TableProducts:
		return "products"
	case TableSides:
		return "sides"
	case TableSales:
		return "sales"
	case TableSaleDetails:
		return "sale_details"
	}
	return fmt.Sprintf("table(%d)", int(t))
}

// Names maps tables to their configured titles
type Names config.SheetNames

// Name returns the configured title of a table
func (n Names) Name(t Table) string {
	switch t {
	case TableCategories:
		return n.Categories
	case TableProducts:
		return n.Products
	case TableSides:
		return n.Sides
	case TableSales:
		return n.Sales
	case TableSaleDetails:
		return n.SaleDetails
	}
	return ""
}

// ReadRange returns the A1 range used to read data rows, skipping the header
func (n Names) ReadRange(t Table) string {
	return fmt.Sprintf("%s!A2:%s%d", n.Name(t), t.LastColumn(), t.LastRow())
}

// AppendRange returns the A1 column range used for appends
func (n Names) AppendRange(t Table) string {
	return fmt.Sprintf("%s!A:%s", n.Name(t), t.LastColumn())
}

// HeaderRange returns the A1 range of the header row
func (n Names) HeaderRange(t Table) string {
	return fmt.Sprintf("%s!A1:%s1", n.Name(t), t.LastColumn())
}

// Reader reads positional data rows. The header row is never returned.
type Reader interface {
	ReadRows(ctx context.Context, table Table) ([][]string, error)
}

// Writer appends positional rows at the end of a table
type Writer interface {
	AppendRows(ctx context.Context, table Table, rows [][]string) error
}

// Source is an opened tabular backend bound to one credential
type Source interface {
	Reader
	Writer
	// EnsureSchema creates missing tables and writes their header rows
	EnsureSchema(ctx context.Context) error
	// Probe performs a cheap authenticated call; ErrUnauthorized means the credential expired
	Probe(ctx context.Context) error
}

// Backend opens sources and answers identity questions for a credential
type Backend interface {
	Open(ctx context.Context, credential string) (Source, error)
	// ResolveEmail returns the e-mail of the credential owner, or "" when unknown
	ResolveEmail(ctx context.Context, credential string) (string, error)
	// Revoke invalidates the credential at the provider
	Revoke(ctx context.Context, credential string) error
}

// Cell returns row[i] or "" when the row is shorter
func Cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
