// internal/domain/sale/export.go
package sale

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var csvHeader = []string{"Pedido", "Fecha", "Hora", "Productos", "Total", "Recibido", "Cambio"}

// ExportCSV writes one row per sale in history order
func ExportCSV(w io.Writer, sales []Sale) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, s := range sales {
		descriptions := make([]string, len(s.Items))
		for i, it := range s.Items {
			descriptions[i] = it.Description()
		}
		record := []string{
			strconv.Itoa(s.OrderNumber),
			s.Date,
			s.Time,
			strings.Join(descriptions, "; "),
			s.Total.StringFixed(2),
			s.Received.StringFixed(2),
			s.Change.StringFixed(2),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write sale %d: %w", s.OrderNumber, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportFilename names the export file after the given ISO date
func ExportFilename(isoDate string) string {
	return "ventas_" + isoDate + ".csv"
}
