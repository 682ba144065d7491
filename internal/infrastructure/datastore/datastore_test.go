package datastore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/your-org/pos-backend/internal/config"
)

func TestRanges(t *testing.T) {
	t.Parallel()

	names := Names(config.SheetNames{
		Categories:  "Categorias",
		Products:    "Productos",
		Sides:       "Acompañamientos",
		Sales:       "Ventas",
		SaleDetails: "Detalle_Ventas",
	})

	tests := []struct {
		table  Table
		read   string
		append string
		header string
	}{
		{TableCategories, "Categorias!A2:E100", "Categorias!A:E", "Categorias!A1:E1"},
		{TableProducts, "Productos!A2:F500", "Productos!A:F", "Productos!A1:F1"},
		{TableSides, "Acompañamientos!A2:D50", "Acompañamientos!A:D", "Acompañamientos!A1:D1"},
		{TableSales, "Ventas!A2:H50000", "Ventas!A:H", "Ventas!A1:H1"},
		{TableSaleDetails, "Detalle_Ventas!A2:J100000", "Detalle_Ventas!A:J", "Detalle_Ventas!A1:J1"},
	}
	for _, tt := range tests {
		t.Run(tt.table.String(), func(t *testing.T) {
			assert.Equal(t, tt.read, names.ReadRange(tt.table))
			assert.Equal(t, tt.append, names.AppendRange(tt.table))
			assert.Equal(t, tt.header, names.HeaderRange(tt.table))
		})
	}
}

func TestHeaderIsCopy(t *testing.T) {
	t.Parallel()

	h := TableSales.Header()
	h[0] = "changed"
	assert.Equal(t, "ID_Venta", TableSales.Header()[0])
	assert.Len(t, AllTables(), 5)
	assert.Equal(t, "", Cell([]string{"a"}, 3))
}
