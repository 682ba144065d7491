// internal/pkg/email/types.go
package email

import "time"

// EmailType represents the type of email being sent
type EmailType string

const (
	EmailTypeShiftReport EmailType = "shift_report"
)

// Email represents an email message
type Email struct {
	To          []string  `json:"to"`
	Subject     string    `json:"subject"`
	HTMLContent string    `json:"html_content"`
	Type        EmailType `json:"type"`
}

// ShiftReportData is rendered into the shift close e-mail
type ShiftReportData struct {
	Business    string
	Cashier     string
	Start       string
	End         string
	Orders      int
	Total       string
	ItemsSold   int
	TopProducts []TopProductLine
	Year        int
}

// TopProductLine is one ranked product in the shift report
type TopProductLine struct {
	Rank     int
	Name     string
	Quantity int
	Revenue  string
}

func currentYear(t time.Time) int {
	if t.IsZero() {
		return time.Now().Year()
	}
	return t.Year()
}
