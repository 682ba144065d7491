// internal/domain/analytics/report.go
package analytics

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/your-org/pos-backend/internal/domain/sale"
)

// DailyReport summarises the sales whose display date equals Date
type DailyReport struct {
	Date      string          `json:"date"`
	Orders    int             `json:"orders"`
	ItemsSold int             `json:"items_sold"`
	Total     decimal.Decimal `json:"total"`
	Average   decimal.Decimal `json:"average"`
}

// Daily builds the report for one display date. The date only selects
// rows for the report; it is never used as an identity.
func Daily(sales []sale.Sale, date string) DailyReport {
	var today []sale.Sale
	for _, s := range sales {
		if s.Date == date {
			today = append(today, s)
		}
	}
	sum := Summarize(today)
	return DailyReport{
		Date:      date,
		Orders:    sum.TotalOrders,
		ItemsSold: sum.TotalItemsSold,
		Total:     sum.TotalRevenue,
		Average:   sum.AverageTicket,
	}
}

// ShiftSummary covers the sales made since the shift started
type ShiftSummary struct {
	Start  time.Time       `json:"start"`
	End    time.Time       `json:"end"`
	Orders int             `json:"orders"`
	Total  decimal.Decimal `json:"total"`
}

// Shift sums the sales with a timestamp at or after start. Sales without a
// timestamp are not counted.
func Shift(sales []sale.Sale, start, end time.Time) ShiftSummary {
	out := ShiftSummary{Start: start, End: end, Total: decimal.Zero}
	for _, s := range sales {
		if s.Timestamp.IsZero() || s.Timestamp.Before(start) {
			continue
		}
		out.Orders++
		out.Total = out.Total.Add(s.Total)
	}
	return out
}

// LastSale is the panel describing the most recently recorded sale
type LastSale struct {
	Present   bool            `json:"present"`
	Label     string          `json:"label"`
	Total     decimal.Decimal `json:"total"`
	Time      string          `json:"time"`
	ItemCount int             `json:"item_count"`
}

// Last describes the last appended sale, with placeholders when there is none
func Last(sales []sale.Sale) LastSale {
	if len(sales) == 0 {
		return LastSale{Label: "---", Total: decimal.Zero, Time: "--:--"}
	}
	s := sales[len(sales)-1]
	out := LastSale{
		Present:   true,
		Label:     s.Label(),
		Total:     s.Total,
		Time:      s.Time,
		ItemCount: itemCount(s),
	}
	if out.Time == "" {
		out.Time = "--:--"
	}
	return out
}
