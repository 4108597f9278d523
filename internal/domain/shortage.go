package domain

import (
	"fmt"
	"strings"
)

// Shortage describes one product whose available stock is below the
// requested quantity at checkout.
type Shortage struct {
	ProductID   string `json:"product_id"`
	Description string `json:"description"`
	Available   int    `json:"available"`
	Requested   int    `json:"requested"`
}

func (s Shortage) String() string {
	return fmt.Sprintf("• %s, %s (Only %d available, %d requested)",
		s.ProductID, s.Description, s.Available, s.Requested)
}

// CheckShortages compares a request against available stock keyed by
// product id and returns one Shortage per undersupplied product, in request
// order. Ids missing from available count as zero stock. Stores call this
// after reading stock inside their transaction.
func CheckShortages(req GroupedRequest, available map[string]Product) []Shortage {
	var out []Shortage
	for _, it := range req.items {
		p, ok := available[it.ProductID]
		stock := 0
		desc := ""
		if ok {
			stock = p.StockQuantity
			desc = p.Description
		}
		if stock < it.Quantity {
			out = append(out, Shortage{
				ProductID:   it.ProductID,
				Description: desc,
				Available:   stock,
				Requested:   it.Quantity,
			})
		}
	}
	return out
}

// ShortageMessage is the status text shown when checkout is refused.
func ShortageMessage(shortages []Shortage) string {
	var b strings.Builder
	b.WriteString("Checkout failed due to insufficient stock for the following products:\n")
	for _, s := range shortages {
		b.WriteString(s.String())
		b.WriteString("\n")
	}
	return b.String()
}
