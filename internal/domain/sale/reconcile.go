// internal/domain/sale/reconcile.go
package sale

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Reconciled is the history rebuilt from the sales and detail tables
type Reconciled struct {
	History         []Sale
	NextOrderNumber int
	LastDetailID    int
}

// Reconcile joins header rows with detail rows on the order number.
// Headers without a positive id are skipped. A header with no details and a
// positive total gets one generic line worth the whole total.
// The counters never go below the given fallbacks.
func Reconcile(headerRows, detailRows [][]string, nextOrderFallback, lastDetailFallback int) Reconciled {
	byOrder := make(map[int][]Item)
	for _, row := range detailRows {
		order := atoi(cell(row, 1))
		if order <= 0 {
			continue
		}
		byOrder[order] = append(byOrder[order], parseDetailItem(row))
	}

	res := Reconciled{
		History:         make([]Sale, 0, len(headerRows)),
		NextOrderNumber: nextOrderFallback,
		LastDetailID:    lastDetailFallback,
	}

	maxOrder := 0
	for _, row := range headerRows {
		order := atoi(cell(row, 0))
		if order <= 0 {
			continue
		}

		s := Sale{
			OrderNumber: order,
			Date:        cell(row, 1),
			Time:        cell(row, 2),
			Total:       parseAmount(cell(row, 3)),
			Received:    parseAmount(cell(row, 4)),
			Change:      parseAmount(cell(row, 5)),
			Cashier:     cell(row, 6),
			Items:       append([]Item(nil), byOrder[order]...),
		}
		if ts, err := time.Parse(time.RFC3339, cell(row, 7)); err == nil {
			s.Timestamp = ts.UTC()
		}

		if len(s.Items) == 0 && s.Total.IsPositive() {
			s.Items = []Item{{
				Name:       "Venta #" + strconv.Itoa(order),
				Price:      s.Total,
				Quantity:   1,
				CategoryID: OtherCategory,
			}}
		}
		if s.Items == nil {
			s.Items = []Item{}
		}

		if order > maxOrder {
			maxOrder = order
		}
		res.History = append(res.History, s)
	}

	if maxOrder+1 > res.NextOrderNumber {
		res.NextOrderNumber = maxOrder + 1
	}
	for _, row := range detailRows {
		if id := atoi(cell(row, 0)); id > res.LastDetailID {
			res.LastDetailID = id
		}
	}

	return res
}

// Merge adds the local sales the remote tables do not know about.
// The local copy wins when both sides hold the same order number.
// History comes back ordered by order number.
func Merge(remote Reconciled, local []Sale) Reconciled {
	byOrder := make(map[int]Sale, len(remote.History)+len(local))
	for _, s := range remote.History {
		byOrder[s.OrderNumber] = s
	}
	for _, s := range local {
		byOrder[s.OrderNumber] = s
	}

	res := Reconciled{
		History:         make([]Sale, 0, len(byOrder)),
		NextOrderNumber: remote.NextOrderNumber,
		LastDetailID:    remote.LastDetailID,
	}
	for _, s := range byOrder {
		res.History = append(res.History, s)
		if s.OrderNumber >= res.NextOrderNumber {
			res.NextOrderNumber = s.OrderNumber + 1
		}
	}
	sort.Slice(res.History, func(i, j int) bool {
		return res.History[i].OrderNumber < res.History[j].OrderNumber
	})
	return res
}

func parseDetailItem(row []string) Item {
	item := Item{
		ProductID:  atoi(cell(row, 2)),
		Name:       cell(row, 3),
		SideName:   cell(row, 5),
		Quantity:   atoi(cell(row, 6)),
		Price:      parseAmount(cell(row, 7)),
		CategoryID: strings.ToLower(cell(row, 9)),
	}
	if item.Name == "" {
		item.Name = "Producto"
	}
	if raw := cell(row, 4); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil {
			item.SideID = &id
		}
	}
	if item.Quantity == 0 {
		item.Quantity = 1
	}
	if item.CategoryID == "" {
		item.CategoryID = OtherCategory
	}
	return item
}
