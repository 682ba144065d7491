// internal/domain/analytics/service.go
package analytics

import (
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/catalog"
	"github.com/your-org/pos-backend/internal/domain/sale"
)

// Service derives statistics from the sales history. Every call recomputes
// from scratch; nothing is cached between calls.
type Service struct {
	trendSize     int
	topSize       int
	historyLimit  int
	reportTopSize int
}

// NewService creates a new analytics service
func NewService(cfg config.POSConfig) *Service {
	return &Service{
		trendSize:     positive(cfg.TrendSize, 20),
		topSize:       positive(cfg.TopSize, 10),
		historyLimit:  positive(cfg.HistoryLimit, 50),
		reportTopSize: positive(cfg.ReportTopSize, 5),
	}
}

// Summary holds the headline KPIs
type Summary struct {
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	TotalOrders    int             `json:"total_orders"`
	AverageTicket  decimal.Decimal `json:"average_ticket"`
	TotalItemsSold int             `json:"total_items_sold"`
}

// TrendPoint is one bar of the recent sales chart
type TrendPoint struct {
	OrderNumber int             `json:"order_number"`
	Label       string          `json:"label"`
	Total       decimal.Decimal `json:"total"`
}

// CategoryRevenue is one slice of the revenue-by-category chart
type CategoryRevenue struct {
	CategoryID string          `json:"category_id"`
	Label      string          `json:"label"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// ProductRank is one row of the top products table
type ProductRank struct {
	Rank          int             `json:"rank"`
	Name          string          `json:"name"`
	CategoryID    string          `json:"category_id"`
	CategoryLabel string          `json:"category_label"`
	Quantity      int             `json:"quantity"`
	Revenue       decimal.Decimal `json:"revenue"`
}

// HistoryRow is one row of the sales history table
type HistoryRow struct {
	OrderNumber int             `json:"order_number"`
	Label       string          `json:"label"`
	Date        string          `json:"date"`
	Time        string          `json:"time"`
	ItemCount   int             `json:"item_count"`
	Total       decimal.Decimal `json:"total"`
	Received    decimal.Decimal `json:"received"`
	Change      decimal.Decimal `json:"change"`
}

// Dashboard bundles everything shown on the statistics screen
type Dashboard struct {
	Summary     Summary           `json:"summary"`
	Trend       []TrendPoint      `json:"trend"`
	Categories  []CategoryRevenue `json:"categories"`
	TopProducts []ProductRank     `json:"top_products"`
	History     []HistoryRow      `json:"history"`
}

// Dashboard computes all statistics with the configured sizes
func (s *Service) Dashboard(sales []sale.Sale, categories []catalog.Category) Dashboard {
	return Dashboard{
		Summary:     Summarize(sales),
		Trend:       RecentTrend(sales, s.trendSize),
		Categories:  RevenueByCategory(sales, categories),
		TopProducts: TopProducts(sales, categories, s.topSize),
		History:     HistoryView(sales, s.historyLimit),
	}
}

// TopSelling returns the short ranking used by the quick report
func (s *Service) TopSelling(sales []sale.Sale, categories []catalog.Category) []ProductRank {
	return TopProducts(sales, categories, s.reportTopSize)
}

// Summarize computes revenue, order count, average ticket and items sold.
// The average is zero when there are no orders.
func Summarize(sales []sale.Sale) Summary {
	sum := Summary{
		TotalRevenue:  decimal.Zero,
		AverageTicket: decimal.Zero,
		TotalOrders:   len(sales),
	}
	for _, s := range sales {
		sum.TotalRevenue = sum.TotalRevenue.Add(s.Total)
		for _, it := range s.Items {
			sum.TotalItemsSold += quantity(it)
		}
	}
	if sum.TotalOrders > 0 {
		sum.AverageTicket = sum.TotalRevenue.Div(decimal.NewFromInt(int64(sum.TotalOrders)))
	}
	return sum
}

// RecentTrend returns the last n sales by ascending order number
func RecentTrend(sales []sale.Sale, n int) []TrendPoint {
	sorted := byOrderNumber(sales)
	if n >= 0 && len(sorted) > n {
		sorted = sorted[len(sorted)-n:]
	}
	out := make([]TrendPoint, len(sorted))
	for i, s := range sorted {
		out[i] = TrendPoint{
			OrderNumber: s.OrderNumber,
			Label:       "#" + strconv.Itoa(s.OrderNumber),
			Total:       s.Total,
		}
	}
	return out
}

// RevenueByCategory sums price * quantity per category. Catalog categories
// come first in the given order, zero-filled; categories only seen in sales
// follow in encounter order.
func RevenueByCategory(sales []sale.Sale, categories []catalog.Category) []CategoryRevenue {
	index := make(map[string]int, len(categories))
	out := make([]CategoryRevenue, 0, len(categories))
	for _, c := range categories {
		if _, ok := index[c.ID]; ok {
			continue
		}
		index[c.ID] = len(out)
		out = append(out, CategoryRevenue{CategoryID: c.ID, Label: c.Label(), Revenue: decimal.Zero})
	}

	for _, s := range sales {
		for _, it := range s.Items {
			id := categoryOf(it)
			pos, ok := index[id]
			if !ok {
				pos = len(out)
				index[id] = pos
				out = append(out, CategoryRevenue{CategoryID: id, Label: id, Revenue: decimal.Zero})
			}
			out[pos].Revenue = out[pos].Revenue.Add(subtotal(it))
		}
	}
	return out
}

// TopProducts groups items by product name and ranks them by quantity.
// Products sharing a name in different categories are merged; the category
// shown is the one seen first. Ties keep first-encounter order.
func TopProducts(sales []sale.Sale, categories []catalog.Category, n int) []ProductRank {
	labels := categoryLabels(categories)
	index := make(map[string]int)
	var ranks []ProductRank

	for _, s := range sales {
		for _, it := range s.Items {
			name := it.Name
			if name == "" {
				name = "Producto"
			}
			pos, ok := index[name]
			if !ok {
				pos = len(ranks)
				index[name] = pos
				cat := categoryOf(it)
				label, known := labels[cat]
				if !known {
					label = cat
				}
				ranks = append(ranks, ProductRank{Name: name, CategoryID: cat, CategoryLabel: label, Revenue: decimal.Zero})
			}
			ranks[pos].Quantity += quantity(it)
			ranks[pos].Revenue = ranks[pos].Revenue.Add(subtotal(it))
		}
	}

	sort.SliceStable(ranks, func(i, j int) bool { return ranks[i].Quantity > ranks[j].Quantity })
	if n >= 0 && len(ranks) > n {
		ranks = ranks[:n]
	}
	for i := range ranks {
		ranks[i].Rank = i + 1
	}
	if ranks == nil {
		ranks = []ProductRank{}
	}
	return ranks
}

// HistoryView returns the newest sales first, truncated to limit
func HistoryView(sales []sale.Sale, limit int) []HistoryRow {
	sorted := byOrderNumber(sales)
	out := make([]HistoryRow, 0, min(len(sorted), max(limit, 0)))
	for i := len(sorted) - 1; i >= 0 && len(out) < limit; i-- {
		s := sorted[i]
		out = append(out, HistoryRow{
			OrderNumber: s.OrderNumber,
			Label:       s.Label(),
			Date:        s.Date,
			Time:        s.Time,
			ItemCount:   itemCount(s),
			Total:       s.Total,
			Received:    s.Received,
			Change:      s.Change,
		})
	}
	return out
}

func byOrderNumber(sales []sale.Sale) []sale.Sale {
	sorted := append([]sale.Sale(nil), sales...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].OrderNumber < sorted[j].OrderNumber })
	return sorted
}

func categoryLabels(categories []catalog.Category) map[string]string {
	labels := make(map[string]string, len(categories))
	for _, c := range categories {
		labels[c.ID] = c.Label()
	}
	return labels
}

func categoryOf(it sale.Item) string {
	id := strings.ToLower(it.CategoryID)
	if id == "" {
		return sale.OtherCategory
	}
	return id
}

// quantity treats a missing quantity as one unit
func quantity(it sale.Item) int {
	if it.Quantity == 0 {
		return 1
	}
	return it.Quantity
}

func subtotal(it sale.Item) decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(quantity(it))))
}

func itemCount(s sale.Sale) int {
	n := 0
	for _, it := range s.Items {
		n += quantity(it)
	}
	return n
}

func positive(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
