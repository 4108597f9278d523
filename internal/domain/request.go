package domain

import (
	"math"
	"slices"
	"strings"
)

// RequestItem is the total quantity asked for one product.
type RequestItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// GroupedRequest is the stock request submitted at checkout: one item per
// product id, ascending by id. It is derived from trolley lines and never
// refers back to them.
type GroupedRequest struct {
	items []RequestItem
}

// GroupLines sums quantities per product id. Lines need not be merged
// or sorted first. A sum past math.MaxInt is held at math.MaxInt, which no
// store can cover, so it surfaces as a shortage instead of wrapping.
func GroupLines(lines []Line) GroupedRequest {
	index := make(map[string]int, len(lines))
	items := make([]RequestItem, 0, len(lines))
	for _, l := range lines {
		if i, ok := index[l.ProductID]; ok {
			items[i].Quantity = addCapped(items[i].Quantity, l.Quantity)
			continue
		}
		index[l.ProductID] = len(items)
		items = append(items, RequestItem{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	slices.SortFunc(items, func(a, b RequestItem) int {
		return strings.Compare(a.ProductID, b.ProductID)
	})
	return GroupedRequest{items: items}
}

func addCapped(a, b int) int {
	if b > 0 && a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

// NewGroupedRequest builds a request from explicit items, grouping them the
// same way GroupLines does.
func NewGroupedRequest(items ...RequestItem) GroupedRequest {
	lines := make([]Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, Line{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return GroupLines(lines)
}

// Items returns a copy of the request items in ascending id order.
func (r GroupedRequest) Items() []RequestItem {
	return slices.Clone(r.items)
}

// IDs returns the product ids in request order.
func (r GroupedRequest) IDs() []string {
	ids := make([]string, 0, len(r.items))
	for _, it := range r.items {
		ids = append(ids, it.ProductID)
	}
	return ids
}

// Quantity returns the total requested for id, or zero.
func (r GroupedRequest) Quantity(id string) int {
	for _, it := range r.items {
		if it.ProductID == id {
			return it.Quantity
		}
	}
	return 0
}

func (r GroupedRequest) Len() int { return len(r.items) }

func (r GroupedRequest) IsEmpty() bool { return len(r.items) == 0 }
