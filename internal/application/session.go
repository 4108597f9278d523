package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/happyshop/happyshop/internal/domain"
)

const initialStatus = "No Product was searched yet"

// Session is one customer's shopping flow: search results, a selected
// product, a trolley and the last receipt. Calls must be sequential.
type Session struct {
	store    domain.InventoryStore
	checkout *CheckoutService

	currency    string
	imageFolder string

	trolley   *domain.Trolley
	results   []domain.Product
	selected  *domain.Product
	lastOrder *domain.Order

	status      string
	trolleyText string
	receiptText string
}

type SessionOption func(*Session)

// WithCurrency sets the symbol printed before amounts.
func WithCurrency(symbol string) SessionOption {
	return func(s *Session) { s.currency = symbol }
}

// WithImageFolder sets where product images are resolved from.
func WithImageFolder(dir string) SessionOption {
	return func(s *Session) { s.imageFolder = dir }
}

func NewSession(store domain.InventoryStore, checkout *CheckoutService, opts ...SessionOption) *Session {
	s := &Session{
		store:       store,
		checkout:    checkout,
		currency:    "£",
		imageFolder: "images",
		trolley:     domain.NewTrolley(),
		status:      initialStatus,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handle applies one intent and returns the resulting view. Store faults
// are returned as errors; the session stays usable afterwards.
func (s *Session) Handle(ctx context.Context, in domain.Intent) (domain.View, error) {
	var err error
	switch in.Kind {
	case domain.IntentSearch:
		err = s.search(ctx, in.Keyword)
	case domain.IntentAddToTrolley:
		err = s.add(in.ProductID, in.Quantity)
	case domain.IntentCheckout:
		err = s.doCheckout(ctx)
	case domain.IntentCancel:
		s.trolley.Clear()
		s.trolleyText = ""
	case domain.IntentCloseReceipt:
		s.receiptText = ""
	default:
		err = fmt.Errorf("%w: %s", domain.ErrUnknownIntent, in.Kind)
	}
	return s.View(), err
}

func (s *Session) search(ctx context.Context, keyword string) error {
	kw := strings.TrimSpace(keyword)
	if kw == "" {
		s.results = nil
		s.selected = nil
		s.status = string(domain.NoticeEmptyKeyword)
		return nil
	}

	found, err := s.store.Search(ctx, kw)
	if err != nil {
		if !errors.Is(err, domain.ErrStoreUnavailable) {
			err = fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
		}
		return fmt.Errorf("searching %q: %w", kw, err)
	}

	s.results = found
	if len(found) == 0 {
		s.selected = nil
		s.status = "No products found for: " + kw
		return nil
	}
	first := found[0]
	s.selected = &first
	s.status = fmt.Sprintf("%d products found for: %s", len(found), kw)
	return nil
}

func (s *Session) add(productID string, qty int) error {
	p := s.pick(productID)
	if qty == 0 {
		qty = 1
	}

	notice, err := s.trolley.AddSelection(p, qty)
	if err != nil {
		return err
	}
	if notice != domain.NoticeNone {
		s.status = string(notice)
	} else {
		s.selected = p
		s.trolleyText = domain.FormatLines(s.trolley.Lines(), s.currency)
	}
	s.receiptText = ""
	return nil
}

// pick finds id among the current results; an empty id means the
// selected product.
func (s *Session) pick(id string) *domain.Product {
	id = strings.TrimSpace(id)
	if id == "" {
		return s.selected
	}
	for i := range s.results {
		if s.results[i].ID == id {
			p := s.results[i]
			return &p
		}
	}
	return nil
}

func (s *Session) doCheckout(ctx context.Context) error {
	res, err := s.checkout.Checkout(ctx, s.trolley)
	if err != nil {
		return err
	}

	switch res.Status {
	case CheckoutEmptyTrolley:
		s.trolleyText = string(domain.NoticeEmptyTrolley)
	case CheckoutConfirmed:
		s.lastOrder = res.Order
		s.trolleyText = ""
		s.receiptText = domain.FormatReceipt(*res.Order, s.currency)
		s.selected = nil
	case CheckoutShortage:
		s.selected = nil
		s.status = domain.ShortageMessage(res.Shortages)
	}
	return nil
}

// View snapshots the presentation state.
func (s *Session) View() domain.View {
	image := domain.PlaceholderImage
	if s.selected != nil {
		image = domain.ImageURI(s.imageFolder, s.selected.ImageRef)
	}
	return domain.View{
		ImageRef: image,
		Status:   s.status,
		Trolley:  s.trolleyText,
		Receipt:  s.receiptText,
	}
}

// Lines returns a copy of the trolley lines.
func (s *Session) Lines() []domain.Line { return s.trolley.Lines() }

// Results returns the products from the last search.
func (s *Session) Results() []domain.Product {
	out := make([]domain.Product, len(s.results))
	copy(out, s.results)
	return out
}

// LastOrder is the most recent confirmed order, or nil.
func (s *Session) LastOrder() *domain.Order { return s.lastOrder }
