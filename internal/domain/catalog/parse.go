// internal/domain/catalog/parse.go
package catalog

import (
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/your-org/pos-backend/internal/infrastructure/datastore"
)

const defaultIcon = "📦"

// ParseCategories turns positional rows into active categories.
// Rows without an id or marked inactive are skipped. A repeated id keeps the
// position of its first row and the values of its last one.
func ParseCategories(rows [][]string) []Category {
	out := make([]Category, 0, len(rows))
	index := make(map[string]int)

	for i, row := range rows {
		id := strings.ToLower(strings.TrimSpace(datastore.Cell(row, 0)))
		if id == "" {
			continue
		}
		if !isActive(datastore.Cell(row, 4), true) {
			continue
		}

		c := Category{
			ID:    id,
			Name:  strings.TrimSpace(datastore.Cell(row, 1)),
			Icon:  strings.TrimSpace(datastore.Cell(row, 2)),
			Order: parseInt(datastore.Cell(row, 3), i+1),
		}
		if c.Name == "" {
			c.Name = id
		}
		if c.Icon == "" {
			c.Icon = defaultIcon
		}

		if pos, ok := index[id]; ok {
			out[pos] = c
			continue
		}
		index[id] = len(out)
		out = append(out, c)
	}
	return out
}

// ParseProducts turns positional rows into active products
func ParseProducts(rows [][]string) []Product {
	out := make([]Product, 0, len(rows))
	for i, row := range rows {
		name := strings.TrimSpace(datastore.Cell(row, 1))
		if name == "" {
			continue
		}
		if !isActive(datastore.Cell(row, 5), true) {
			continue
		}

		price, err := decimal.NewFromString(strings.TrimSpace(datastore.Cell(row, 2)))
		if err != nil || price.IsNegative() {
			price = decimal.Zero
		}

		out = append(out, Product{
			ID:         parseInt(datastore.Cell(row, 0), i+1),
			Name:       name,
			Price:      price,
			CategoryID: strings.ToLower(strings.TrimSpace(datastore.Cell(row, 3))),
			HasSide:    isActive(datastore.Cell(row, 4), false),
		})
	}
	return out
}

// ParseSides turns positional rows into active side options sorted by order
func ParseSides(rows [][]string) []SideOption {
	out := make([]SideOption, 0, len(rows))
	for i, row := range rows {
		name := strings.TrimSpace(datastore.Cell(row, 1))
		if name == "" {
			continue
		}
		if !isActive(datastore.Cell(row, 3), true) {
			continue
		}
		out = append(out, SideOption{
			ID:    parseInt(datastore.Cell(row, 0), i+1),
			Name:  name,
			Order: parseInt(datastore.Cell(row, 2), i+1),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// GroupProducts buckets products by category. Every given category gets a
// list, empty when it has no products.
func GroupProducts(categories []Category, products []Product) map[string][]Product {
	grouped := make(map[string][]Product, len(categories))
	for _, c := range categories {
		grouped[c.ID] = []Product{}
	}
	for _, p := range products {
		grouped[p.CategoryID] = append(grouped[p.CategoryID], p)
	}
	return grouped
}

// isActive reads a TRUE/FALSE flag; blank cells take the default
func isActive(raw string, def bool) bool {
	v := strings.ToUpper(strings.TrimSpace(raw))
	if v == "" {
		return def
	}
	return v == "TRUE"
}

func parseInt(raw string, def int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	// numeric cells may come back as "3.0"
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return int(f)
	}
	return def
}
