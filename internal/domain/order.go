package domain

import (
	"encoding/json"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// OrderTimeLayout is how order timestamps are shown on receipts.
const OrderTimeLayout = "2006-01-02 15:04:05"

// Order is a confirmed checkout. Its lines are frozen at creation.
type Order struct {
	id        string
	orderedAt time.Time
	lines     []Line
}

func (o Order) ID() string { return o.id }

func (o Order) OrderedAt() time.Time { return o.orderedAt }

// Lines returns a copy of the confirmed lines.
func (o Order) Lines() []Line { return slices.Clone(o.lines) }

func (o Order) Total() decimal.Decimal { return SumLines(o.lines) }

// TotalQuantity sums the confirmed quantities.
func (o Order) TotalQuantity() int {
	n := 0
	for _, l := range o.lines {
		n += l.Quantity
	}
	return n
}

type orderJSON struct {
	ID        string          `json:"id"`
	OrderedAt time.Time       `json:"ordered_at"`
	Lines     []Line          `json:"lines"`
	Total     decimal.Decimal `json:"total"`
}

func (o Order) MarshalJSON() ([]byte, error) {
	return json.Marshal(orderJSON{
		ID:        o.id,
		OrderedAt: o.orderedAt,
		Lines:     o.lines,
		Total:     o.Total(),
	})
}

func (o *Order) UnmarshalJSON(data []byte) error {
	var raw orderJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	o.id = raw.ID
	o.orderedAt = raw.OrderedAt
	o.lines = raw.Lines
	return nil
}

// IDGenerator mints order ids. Uniqueness is the only contract.
type IDGenerator interface {
	NextID() string
}

// OrderFactory stamps confirmed trolley lines into orders.
type OrderFactory struct {
	ids IDGenerator
	now func() time.Time
}

// NewOrderFactory builds a factory. A nil clock defaults to time.Now.
func NewOrderFactory(ids IDGenerator, now func() time.Time) *OrderFactory {
	if now == nil {
		now = time.Now
	}
	return &OrderFactory{ids: ids, now: now}
}

// Create returns a new order holding a copy of lines.
func (f *OrderFactory) Create(lines []Line) (Order, error) {
	if len(lines) == 0 {
		return Order{}, ErrEmptyOrder
	}
	return Order{
		id:        f.ids.NextID(),
		orderedAt: f.now(),
		lines:     slices.Clone(lines),
	}, nil
}
