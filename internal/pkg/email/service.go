// internal/pkg/email/service.go
package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/analytics"
)

var shiftReportTmpl = template.Must(template.New("shift_report").Parse(shiftReportTemplate))

// EmailService sends the shift close report
type EmailService struct {
	config *config.Config
	send   func(email *Email) error
	now    func() time.Time
}

// NewEmailService creates a new email service backed by SMTP
func NewEmailService(cfg *config.Config) *EmailService {
	s := &EmailService{config: cfg, now: time.Now}
	s.send = s.sendSMTPEmail
	return s
}

// Enabled reports whether SMTP and at least one recipient are configured
func (s *EmailService) Enabled() bool {
	c := s.config.External.Email
	return c.SMTPHost != "" && len(c.ShiftReportTo) > 0
}

// SendEmail sends an email over SMTP
func (s *EmailService) SendEmail(ctx context.Context, email *Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(email.To) == 0 {
		return fmt.Errorf("email has no recipients")
	}
	return s.send(email)
}

// SendShiftReport mails the summary of a closed shift to the configured recipients
func (s *EmailService) SendShiftReport(ctx context.Context, summary analytics.ShiftSummary, daily analytics.DailyReport, top []analytics.ProductRank, cashier string) error {
	data := s.ShiftReportData(summary, daily, top, cashier)

	htmlContent, err := RenderShiftReport(data)
	if err != nil {
		return fmt.Errorf("failed to render shift report template: %w", err)
	}

	email := &Email{
		To:          s.config.External.Email.ShiftReportTo,
		Subject:     fmt.Sprintf("%s - Cierre de turno %s", data.Business, data.End),
		HTMLContent: htmlContent,
		Type:        EmailTypeShiftReport,
	}

	return s.SendEmail(ctx, email)
}

// ShiftReportData formats a shift summary for the e-mail template
func (s *EmailService) ShiftReportData(summary analytics.ShiftSummary, daily analytics.DailyReport, top []analytics.ProductRank, cashier string) ShiftReportData {
	loc := s.config.Location()
	layout := s.config.POS.DateLayout + " " + s.config.POS.TimeLayout
	currency := s.config.POS.CurrencySymbol

	data := ShiftReportData{
		Business:  s.config.POS.BusinessName,
		Cashier:   cashier,
		Start:     summary.Start.In(loc).Format(layout),
		End:       summary.End.In(loc).Format(layout),
		Orders:    summary.Orders,
		Total:     currency + " " + summary.Total.StringFixed(2),
		ItemsSold: daily.ItemsSold,
		Year:      currentYear(s.now()),
	}
	for _, p := range top {
		data.TopProducts = append(data.TopProducts, TopProductLine{
			Rank:     p.Rank,
			Name:     p.Name,
			Quantity: p.Quantity,
			Revenue:  currency + " " + p.Revenue.StringFixed(2),
		})
	}
	return data
}

// RenderShiftReport renders the HTML body of a shift report
func RenderShiftReport(data ShiftReportData) (string, error) {
	var buf bytes.Buffer
	if err := shiftReportTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template shift_report: %w", err)
	}
	return buf.String(), nil
}

const shiftReportTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Cierre de turno</title></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2>{{.Business}}</h2>
    <p>Turno desde <strong>{{.Start}}</strong> hasta <strong>{{.End}}</strong></p>
    {{if .Cashier}}<p>Cajero: {{.Cashier}}</p>{{end}}
    <table style="width: 100%; border-collapse: collapse;">
        <tr><td>Pedidos</td><td style="text-align: right;">{{.Orders}}</td></tr>
        <tr><td>Total</td><td style="text-align: right;"><strong>{{.Total}}</strong></td></tr>
        <tr><td>Productos vendidos hoy</td><td style="text-align: right;">{{.ItemsSold}}</td></tr>
    </table>
    {{if .TopProducts}}
    <h3>Más vendidos</h3>
    <ol>
        {{range .TopProducts}}<li>{{.Name}} x{{.Quantity}} ({{.Revenue}})</li>
        {{end}}
    </ol>
    {{end}}
    <hr>
    <p style="color: #666; font-size: 12px;">&copy; {{.Year}} {{.Business}}</p>
</body>
</html>
`
