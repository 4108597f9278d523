package domain

import (
	"math"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Line is one trolley entry: a snapshot of the product's display fields
// plus the requested quantity. It never aliases a store record.
type Line struct {
	ProductID   string          `json:"product_id"`
	Description string          `json:"description"`
	ImageRef    string          `json:"image"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
}

// Subtotal is UnitPrice * Quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Trolley holds at most one line per product id, sorted ascending by id.
// It is not safe for concurrent use; a trolley belongs to one session.
type Trolley struct {
	lines []Line
}

// NewTrolley returns an empty trolley.
func NewTrolley() *Trolley {
	return &Trolley{}
}

// Add is AddSelection with a quantity of one.
func (t *Trolley) Add(p *Product) (Notice, error) {
	return t.AddSelection(p, 1)
}

// AddSelection merges qty of p into the trolley. A nil product is a no-op
// reported as NoticeNoProductSelected. A merge that would exceed math.MaxInt
// fails with ErrQuantityOverflow and leaves the line unchanged. Stock is not
// checked here.
func (t *Trolley) AddSelection(p *Product, qty int) (Notice, error) {
	if p == nil {
		return NoticeNoProductSelected, nil
	}
	if qty < 1 {
		return NoticeNone, ErrInvalidQuantity
	}

	for i := range t.lines {
		if t.lines[i].ProductID == p.ID {
			if t.lines[i].Quantity > math.MaxInt-qty {
				return NoticeNone, ErrQuantityOverflow
			}
			t.lines[i].Quantity += qty
			return NoticeNone, nil
		}
	}

	t.lines = append(t.lines, Line{
		ProductID:   p.ID,
		Description: p.Description,
		ImageRef:    p.ImageRef,
		UnitPrice:   p.UnitPrice,
		Quantity:    qty,
	})
	slices.SortStableFunc(t.lines, func(a, b Line) int {
		return strings.Compare(a.ProductID, b.ProductID)
	})
	return NoticeNone, nil
}

// Clear empties the trolley.
func (t *Trolley) Clear() {
	t.lines = nil
}

// Lines returns a copy of the current lines in trolley order.
func (t *Trolley) Lines() []Line {
	return slices.Clone(t.lines)
}

func (t *Trolley) Len() int { return len(t.lines) }

func (t *Trolley) IsEmpty() bool { return len(t.lines) == 0 }

// TotalQuantity sums the quantities of all lines.
func (t *Trolley) TotalQuantity() int {
	n := 0
	for _, l := range t.lines {
		n += l.Quantity
	}
	return n
}

// Total sums the line subtotals.
func (t *Trolley) Total() decimal.Decimal {
	return SumLines(t.lines)
}

// SumLines sums the subtotals of lines.
func SumLines(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}
