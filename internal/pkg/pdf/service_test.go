package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/pos-backend/internal/domain/sale"
)

func TestRenderTicketHTML(t *testing.T) {
	t.Parallel()

	html, err := NewService().RenderTicketHTML(sale.Ticket{
		Business: "Pollos & Milanesas",
		Number:   "#0007",
		Date:     "7/3/2025",
		Time:     "14:04:05",
		Lines: []sale.TicketLine{
			{Quantity: 2, Name: "Milanesa", Side: "Arroz", Subtotal: "Bs. 50.00"},
			{Quantity: 1, Name: "Gaseosa", Subtotal: "Bs. 8.00"},
		},
		Total:    "Bs. 58.00",
		Received: "Bs. 60.00",
		Change:   "Bs. 2.00",
	})
	require.NoError(t, err)

	assert.Contains(t, html, "Pollos &amp; Milanesas")
	assert.Contains(t, html, "#0007")
	assert.Contains(t, html, "2x Milanesa")
	assert.Contains(t, html, "+ Arroz")
	assert.Contains(t, html, "Bs. 58.00")
	assert.NotContains(t, html, "Cajero")
}
