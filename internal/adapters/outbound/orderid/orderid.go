// Package orderid provides domain.IDGenerator implementations.
package orderid

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/happyshop/happyshop/internal/domain"
)

// UUID mints random version 4 UUIDs.
type UUID struct{}

func NewUUID() UUID { return UUID{} }

func (UUID) NextID() string { return uuid.NewString() }

// Sequence mints increasing zero-padded numbers, safe for concurrent use.
type Sequence struct {
	next  atomic.Int64
	width int
}

// NewSequence starts after start; the first id is start+1.
func NewSequence(start int64, width int) *Sequence {
	s := &Sequence{width: width}
	s.next.Store(start)
	return s
}

func (s *Sequence) NextID() string {
	return fmt.Sprintf("%0*d", s.width, s.next.Add(1))
}

// New returns the generator for scheme, continuing a sequence after last.
func New(scheme string, last int64) (domain.IDGenerator, error) {
	switch scheme {
	case "", domain.OrderIDsUUID:
		return NewUUID(), nil
	case domain.OrderIDsSequence:
		return NewSequence(last, 6), nil
	default:
		return nil, fmt.Errorf("unknown order id scheme %q", scheme)
	}
}
