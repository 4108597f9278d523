package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Product is a catalogue record as held by an inventory store.
type Product struct {
	ID            string          `json:"id"          yaml:"id"`
	Description   string          `json:"description" yaml:"description"`
	ImageRef      string          `json:"image"       yaml:"image"`
	UnitPrice     decimal.Decimal `json:"price"       yaml:"price"`
	StockQuantity int             `json:"stock"       yaml:"stock"`
}

// Validate checks the fields a store relies on.
func (p Product) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidProduct)
	}
	if p.UnitPrice.IsNegative() {
		return fmt.Errorf("%w: product %s has negative price %s", ErrInvalidProduct, p.ID, p.UnitPrice)
	}
	if p.StockQuantity < 0 {
		return fmt.Errorf("%w: product %s has negative stock %d", ErrInvalidProduct, p.ID, p.StockQuantity)
	}
	return nil
}

// ValidateCatalogue validates every product and rejects duplicate ids.
func ValidateCatalogue(products []Product) error {
	seen := make(map[string]struct{}, len(products))
	for _, p := range products {
		if err := p.Validate(); err != nil {
			return err
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: duplicate id %s", ErrInvalidProduct, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}

// Matches reports whether keyword is a case-insensitive substring of the
// product id or description. An empty keyword matches every product.
func (p Product) Matches(keyword string) bool {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	if kw == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.ID), kw) ||
		strings.Contains(strings.ToLower(p.Description), kw)
}
