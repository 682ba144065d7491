// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/your-org/pos-backend/internal/domain/sale"
)

// Receipt paper size in millimetres
const (
	ticketWidthMM  = 80
	ticketHeightMM = 200
)

var ticketTmpl = template.Must(template.New("ticket").Parse(ticketTemplate))

// Service handles PDF generation
type Service struct{}

// NewService creates a new PDF service
func NewService() *Service {
	return &Service{}
}

// GenerateTicket renders a sale ticket as an 80mm receipt PDF
func (s *Service) GenerateTicket(ticket sale.Ticket) (*bytes.Buffer, error) {
	htmlContent, err := s.RenderTicketHTML(ticket)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(203)
	pdfg.PageWidth.Set(ticketWidthMM)
	pdfg.PageHeight.Set(ticketHeightMM)
	pdfg.MarginTop.Set(2)
	pdfg.MarginBottom.Set(2)
	pdfg.MarginLeft.Set(2)
	pdfg.MarginRight.Set(2)
	pdfg.Grayscale.Set(true)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.Encoding.Set("utf-8")
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

// RenderTicketHTML renders the printable HTML of a ticket
func (s *Service) RenderTicketHTML(ticket sale.Ticket) (string, error) {
	var buf bytes.Buffer
	if err := ticketTmpl.Execute(&buf, ticket); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

const ticketTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Ticket {{.Number}}</title>
    <style>
        body { font-family: "Courier New", monospace; font-size: 11px; margin: 0; }
        .center { text-align: center; }
        .business { font-size: 14px; font-weight: bold; }
        .number { font-size: 16px; font-weight: bold; margin: 4px 0; }
        .row { display: flex; justify-content: space-between; }
        .side { padding-left: 12px; color: #444; }
        .sep { border-top: 1px dashed #000; margin: 6px 0; }
        .total { font-weight: bold; font-size: 13px; }
    </style>
</head>
<body>
    <div class="center business">{{.Business}}</div>
    <div class="center number">{{.Number}}</div>
    <div>Fecha: {{.Date}}</div>
    <div>Hora: {{.Time}}</div>
    {{if .Cashier}}<div>Cajero: {{.Cashier}}</div>{{end}}
    <div class="sep"></div>
    {{range .Lines}}
    <div class="row"><span>{{.Quantity}}x {{.Name}}</span><span>{{.Subtotal}}</span></div>
    {{if .Side}}<div class="side">+ {{.Side}}</div>{{end}}
    {{end}}
    <div class="sep"></div>
    <div class="row total"><span>TOTAL</span><span>{{.Total}}</span></div>
    <div class="row"><span>Recibido</span><span>{{.Received}}</span></div>
    <div class="row"><span>Cambio</span><span>{{.Change}}</span></div>
    <div class="sep"></div>
    <div class="center">¡Gracias por su compra!</div>
</body>
</html>
`
