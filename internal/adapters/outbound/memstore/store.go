package memstore

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/happyshop/happyshop/internal/domain"
)

// Store is an in-process implementation of domain.InventoryStore.
// One mutex guards every read and the check-then-decrement of a purchase.
type Store struct {
	mu       sync.Mutex
	products map[string]domain.Product
}

// New creates a store holding products.
func New(products ...domain.Product) (*Store, error) {
	s := &Store{products: make(map[string]domain.Product)}
	if err := s.Seed(context.Background(), products); err != nil {
		return nil, err
	}
	return s, nil
}

// Seed replaces the catalogue with products.
func (s *Store) Seed(_ context.Context, products []domain.Product) error {
	if err := domain.ValidateCatalogue(products); err != nil {
		return err
	}
	next := make(map[string]domain.Product, len(products))
	for _, p := range products {
		next[p.ID] = p
	}

	s.mu.Lock()
	s.products = next
	s.mu.Unlock()
	return nil
}

func (s *Store) Search(ctx context.Context, keyword string) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.Product
	for _, p := range s.products {
		if p.Matches(keyword) {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b domain.Product) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (s *Store) PurchaseStocks(ctx context.Context, req domain.GroupedRequest) ([]domain.Shortage, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if shortages := domain.CheckShortages(req, s.products); len(shortages) > 0 {
		return shortages, nil
	}
	for _, it := range req.Items() {
		p := s.products[it.ProductID]
		p.StockQuantity -= it.Quantity
		s.products[it.ProductID] = p
	}
	return nil, nil
}

// Stock returns the current stock of id and whether it exists.
func (s *Store) Stock(id string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	return p.StockQuantity, ok
}
