package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/happyshop/happyshop/internal/domain"
)

const tracerName = "github.com/happyshop/happyshop/internal/application"

// CheckoutStatus is the outcome of one checkout attempt.
type CheckoutStatus int

const (
	CheckoutEmptyTrolley CheckoutStatus = iota + 1
	CheckoutConfirmed
	CheckoutShortage
)

func (s CheckoutStatus) String() string {
	switch s {
	case CheckoutEmptyTrolley:
		return "empty_trolley"
	case CheckoutConfirmed:
		return "confirmed"
	case CheckoutShortage:
		return "shortage"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// CheckoutResult carries the order on success and the shortages on refusal.
type CheckoutResult struct {
	Status    CheckoutStatus
	Order     *domain.Order
	Shortages []domain.Shortage
}

// CheckoutService reconciles a trolley against the inventory store:
// group → purchase (all-or-nothing) → order → log → clear.
type CheckoutService struct {
	store    domain.InventoryStore
	orders   *domain.OrderFactory
	orderLog domain.OrderLog
	logger   *slog.Logger
	tracer   trace.Tracer
}

// CheckoutOption configures optional collaborators.
type CheckoutOption func(*CheckoutService)

// WithOrderLog records confirmed orders. Save failures are logged only.
func WithOrderLog(l domain.OrderLog) CheckoutOption {
	return func(s *CheckoutService) { s.orderLog = l }
}

func WithLogger(l *slog.Logger) CheckoutOption {
	return func(s *CheckoutService) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithTracer(t trace.Tracer) CheckoutOption {
	return func(s *CheckoutService) {
		if t != nil {
			s.tracer = t
		}
	}
}

func NewCheckoutService(
	store domain.InventoryStore,
	orders *domain.OrderFactory,
	opts ...CheckoutOption,
) *CheckoutService {
	s := &CheckoutService{
		store:  store,
		orders: orders,
		logger: slog.New(slog.DiscardHandler),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Checkout attempts to purchase everything in t. The trolley is cleared
// only when an order is confirmed; on shortage or store fault it is left
// exactly as it was.
func (s *CheckoutService) Checkout(ctx context.Context, t *domain.Trolley) (CheckoutResult, error) {
	ctx, span := s.tracer.Start(ctx, "checkout")
	defer span.End()

	// 1. Nothing to buy: never touch the store
	if t.IsEmpty() {
		span.SetAttributes(attribute.Int("happyshop.lines", 0))
		return CheckoutResult{Status: CheckoutEmptyTrolley}, nil
	}

	// 2. Group per product id
	lines := t.Lines()
	req := domain.GroupLines(lines)
	span.SetAttributes(attribute.Int("happyshop.lines", req.Len()))

	// 3. One atomic purchase
	shortages, err := s.store.PurchaseStocks(ctx, req)
	if err != nil {
		if !errors.Is(err, domain.ErrStoreUnavailable) {
			err = fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "purchase failed")
		s.logger.ErrorContext(ctx, "checkout purchase failed", "lines", req.Len(), "error", err)
		return CheckoutResult{}, err
	}

	// 4. Refused: report and keep the trolley
	if len(shortages) > 0 {
		span.SetAttributes(attribute.Int("happyshop.shortages", len(shortages)))
		s.logger.WarnContext(ctx, "checkout refused", "shortages", len(shortages), "products", shortageIDs(shortages))
		return CheckoutResult{Status: CheckoutShortage, Shortages: shortages}, nil
	}

	// 5. Committed: stamp the order
	order, err := s.orders.Create(lines)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "order creation failed")
		return CheckoutResult{}, fmt.Errorf("creating order: %w", err)
	}
	span.SetAttributes(
		attribute.Int("happyshop.shortages", 0),
		attribute.String("happyshop.order_id", order.ID()),
	)

	if s.orderLog != nil {
		if err := s.orderLog.Save(order); err != nil {
			s.logger.ErrorContext(ctx, "recording order failed", "order_id", order.ID(), "error", err)
		}
	}

	t.Clear()
	s.logger.InfoContext(ctx, "order confirmed",
		"order_id", order.ID(),
		"items", order.TotalQuantity(),
		"total", order.Total().StringFixed(2),
	)
	return CheckoutResult{Status: CheckoutConfirmed, Order: &order}, nil
}

func shortageIDs(shortages []domain.Shortage) []string {
	ids := make([]string, 0, len(shortages))
	for _, sh := range shortages {
		ids = append(ids, sh.ProductID)
	}
	return ids
}
