package domain

import "context"

// InventoryStore is the authoritative product and stock source.
type InventoryStore interface {
	// Search returns products whose id or description contains keyword,
	// case-insensitively, ascending by id.
	Search(ctx context.Context, keyword string) ([]Product, error)

	// PurchaseStocks decrements stock for every item in req, or for none.
	// It returns no shortages on commit, otherwise one Shortage per product
	// whose stock is below the requested quantity and nothing is changed.
	// Any other failure is returned as an error wrapping ErrStoreUnavailable.
	PurchaseStocks(ctx context.Context, req GroupedRequest) ([]Shortage, error)
}

// CatalogueSeeder replaces a store's catalogue with products. Ids absent
// from products are removed; an invalid product or a duplicate id is
// rejected before anything is written.
type CatalogueSeeder interface {
	Seed(ctx context.Context, products []Product) error
}

// ConfigLoader reads shop configuration from a directory.
type ConfigLoader interface {
	Load(dir string) (ShopConfig, error)
}

// OrderLog keeps a history of confirmed orders.
type OrderLog interface {
	Save(o Order) error
	Load() ([]Order, error)
}
